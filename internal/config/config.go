package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/docsite/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "docsite.json"

	// EnvPrefix prefixes every environment override, e.g. DOCSITE_DEV_PORT.
	EnvPrefix = "DOCSITE_"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "build"

	// DefaultDocs is the default docs source directory.
	DefaultDocs = "docs"

	// DefaultRouteBasePath is the URL segment docs are served under.
	DefaultRouteBasePath = "docs"
)

// Config represents docsite.json.
type Config struct {
	// Title is the site title, appended to page titles.
	Title string `json:"title,omitempty" env:"TITLE"`

	// URL is the public origin of the site, e.g. "https://acme.github.io".
	URL string `json:"url,omitempty" env:"URL"`

	// BaseURL is the path the site is served under. Must start with "/".
	BaseURL string `json:"baseURL,omitempty" env:"BASE_URL"`

	// Lang is the document language.
	Lang string `json:"lang,omitempty" env:"LANG"`

	// Paths contains source directories.
	Paths PathsConfig `json:"paths,omitempty" envPrefix:"PATHS_"`

	// Docs controls how pages are loaded and routed.
	Docs DocsConfig `json:"docs,omitempty" envPrefix:"DOCS_"`

	// Render controls HTML output.
	Render RenderConfig `json:"render,omitempty" envPrefix:"RENDER_"`

	// Build contains static build settings.
	Build BuildConfig `json:"build,omitempty" envPrefix:"BUILD_"`

	// Dev contains development server settings.
	Dev DevConfig `json:"dev,omitempty" envPrefix:"DEV_"`

	// Publish contains upload settings.
	Publish PublishConfig `json:"publish,omitempty" envPrefix:"PUBLISH_"`

	// Tracing configures OpenTelemetry export.
	Tracing TracingConfig `json:"tracing,omitempty" envPrefix:"TRACING_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PathsConfig contains project directories.
type PathsConfig struct {
	// Docs is the markdown source directory.
	Docs string `json:"docs,omitempty" env:"DOCS"`

	// Static is copied verbatim into the build output.
	Static string `json:"static,omitempty" env:"STATIC"`
}

// DocsConfig controls page loading.
type DocsConfig struct {
	// RouteBasePath is the URL segment docs are served under.
	RouteBasePath string `json:"routeBasePath,omitempty" env:"ROUTE_BASE_PATH"`

	// EditURL is the base URL of "edit this page" links.
	EditURL string `json:"editUrl,omitempty" env:"EDIT_URL"`

	// IncludeDrafts renders pages marked draft.
	IncludeDrafts bool `json:"includeDrafts,omitempty" env:"INCLUDE_DRAFTS"`
}

// RenderConfig controls HTML output.
type RenderConfig struct {
	// Pretty indents the generated HTML.
	Pretty bool `json:"pretty,omitempty" env:"PRETTY"`

	// Classes adds a CSS class to every element rendered for a tag,
	// e.g. {"pre": "shiki"}.
	Classes map[string]string `json:"classes,omitempty"`

	// Wrapper, when set, wraps every page body in an element with this class.
	Wrapper string `json:"wrapper,omitempty" env:"WRAPPER"`

	// StyleSheets are linked from every page.
	StyleSheets []string `json:"styleSheets,omitempty" env:"STYLESHEETS"`
}

// BuildConfig contains static build settings.
type BuildConfig struct {
	// Output is the output directory for builds.
	Output string `json:"output,omitempty" env:"OUTPUT"`

	// Concurrency bounds parallel page renders. Zero means one per CPU.
	Concurrency int `json:"concurrency,omitempty" env:"CONCURRENCY"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty" env:"PORT"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty" env:"HOST"`

	// HotReload reloads open pages when sources change. Defaults to true.
	HotReload *bool `json:"hotReload,omitempty" env:"HOT_RELOAD"`

	// PollInterval is how often sources are checked for changes (e.g. "200ms").
	PollInterval string `json:"pollInterval,omitempty" env:"POLL_INTERVAL"`
}

// PublishConfig contains S3 upload settings.
type PublishConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty" env:"BUCKET"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty" env:"PREFIX"`

	// Region overrides the AWS region from the environment.
	Region string `json:"region,omitempty" env:"REGION"`

	// CacheControl is set on every uploaded object.
	CacheControl string `json:"cacheControl,omitempty" env:"CACHE_CONTROL"`
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	// Exporter is "", "stdout" or "otlp". Empty disables export.
	Exporter string `json:"exporter,omitempty" env:"EXPORTER"`

	// Endpoint is the OTLP/HTTP collector URL.
	Endpoint string `json:"endpoint,omitempty" env:"ENDPOINT"`

	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `json:"serviceName,omitempty" env:"SERVICE_NAME"`
}

// New creates a new Config with default values.
func New() *Config {
	hot := true
	return &Config{
		Title:   "Docs",
		BaseURL: "/",
		Lang:    "en",
		Paths: PathsConfig{
			Docs:   DefaultDocs,
			Static: "static",
		},
		Docs: DocsConfig{
			RouteBasePath: DefaultRouteBasePath,
		},
		Build: BuildConfig{
			Output: DefaultOutput,
		},
		Dev: DevConfig{
			Port:         DefaultPort,
			Host:         DefaultHost,
			HotReload:    &hot,
			PollInterval: "200ms",
		},
		Publish: PublishConfig{
			CacheControl: "public, max-age=300",
		},
		Tracing: TracingConfig{
			ServiceName: "docsite",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for docsite.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path and applies
// DOCSITE_* environment overrides on top of it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No docsite.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'docsite init' to create a new project or create docsite.json manually")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithFile(path).
			WithDetail("Failed to parse docsite.json: " + err.Error()).
			WithSuggestion("Check that docsite.json is valid JSON")
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()
	cfg.configPath = path

	return cfg, nil
}

// FromEnv returns the default Config with DOCSITE_* environment overrides
// applied, for commands that run without a docsite.json.
func FromEnv() (*Config, error) {
	cfg := New()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// applyEnv sets every field whose DOCSITE_* variable is present, including
// explicit zero values such as DOCSITE_RENDER_PRETTY=false.
func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.New("E121").Wrap(err)
	}
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields. Pointer fields
// set by the file are kept as-is rather than merged through.
func (c *Config) applyDefaults() error {
	if err := mergo.Merge(c, New(), mergo.WithoutDereference); err != nil {
		return errors.New("E120").Wrap(err)
	}
	return nil
}

func (c *Config) normalize() {
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Build.Concurrency < 0 {
		return errors.New("E122").
			WithDetail("build.concurrency must not be negative")
	}
	switch c.Tracing.Exporter {
	case "", "stdout", "otlp":
	default:
		return errors.New("E122").
			WithDetail("tracing.exporter must be \"stdout\" or \"otlp\", got " + strconv.Quote(c.Tracing.Exporter))
	}
	if !strings.HasPrefix(c.BaseURL, "/") {
		return errors.New("E122").
			WithDetail("baseURL must start with \"/\", got " + strconv.Quote(c.BaseURL))
	}
	return nil
}

// HotReload reports whether the dev server reloads pages on change.
func (c *Config) HotReload() bool {
	return c.Dev.HotReload == nil || *c.Dev.HotReload
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server, including the base path.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress() + c.BaseURL
}

// OutputPath returns the absolute path to the build output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Build.Output)
}

// DocsPath returns the absolute path to the docs directory.
func (c *Config) DocsPath() string {
	return c.resolve(c.Paths.Docs)
}

// StaticPath returns the absolute path to the static files directory.
func (c *Config) StaticPath() string {
	return c.resolve(c.Paths.Static)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing docsite.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No docsite.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'docsite init' to create a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
