package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://docsite.vango.dev/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryRender,
		Message:  "Invalid component overrides",
		Detail:   "Overrides must be a literal mapping or a non-nil transform function of the current components.",
		DocURL:   docBase + "E001",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Unknown content node",
		Detail:   "The content tree contains a node type the renderer does not understand.",
		DocURL:   docBase + "E002",
	},
	"E003": {
		Category: CategoryRender,
		Message:  "HTML write failed",
		Detail:   "Writing rendered HTML to the output failed.",
		DocURL:   docBase + "E003",
	},

	// ============================================
	// Config Errors (E120-E159)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Failed to read docsite.json",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   docBase + "E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid environment configuration",
		Detail:   "A DOCSITE_* environment variable could not be parsed.",
		DocURL:   docBase + "E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is outside its allowed range.",
		DocURL:   docBase + "E122",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Project not found",
		Detail:   "No docsite.json was found in this directory or any parent.",
		DocURL:   docBase + "E141",
	},
	"E142": {
		Category: CategoryBuild,
		Message:  "Output directory error",
		Detail:   "The build output directory could not be created or written.",
		DocURL:   docBase + "E142",
	},
	"E145": {
		Category: CategoryCLI,
		Message:  "Unknown project template",
		Detail:   "docsite init was asked for a template that does not exist.",
		DocURL:   docBase + "E145",
	},

	// ============================================
	// Content Errors (E200-E299)
	// ============================================

	"E201": {
		Category: CategoryContent,
		Message:  "Failed to parse page",
		Detail:   "The markdown page or its front matter could not be parsed.",
		DocURL:   docBase + "E201",
	},
	"E202": {
		Category: CategoryContent,
		Message:  "Duplicate page id",
		Detail:   "Two pages resolve to the same id. Set a distinct `id` in front matter.",
		DocURL:   docBase + "E202",
	},
	"E203": {
		Category: CategoryContent,
		Message:  "Page not found",
		Detail:   "No page with the requested id or slug exists.",
		DocURL:   docBase + "E203",
	},

	// ============================================
	// Publish Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryPublish,
		Message:  "Publish failed",
		Detail:   "Uploading the build output to object storage failed.",
		DocURL:   docBase + "E301",
	},
	"E302": {
		Category: CategoryPublish,
		Message:  "No publish bucket configured",
		Detail:   "Set publish.bucket in docsite.json or DOCSITE_PUBLISH_BUCKET.",
		DocURL:   docBase + "E302",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
