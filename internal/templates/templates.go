package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/docsite/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// Title is the site title.
	Title string

	// Description is a short project description.
	Description string

	// Docs is the docs directory, relative to the project root.
	Docs string

	// Static is the static directory, relative to the project root.
	Static string
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "Docs"
	}
	if c.Description == "" {
		c.Description = "Welcome to your new docs site."
	}
	if c.Docs == "" {
		c.Docs = "docs"
	}
	if c.Static == "" {
		c.Static = "static"
	}
	return c
}

// Template represents a starter project.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// StyleSheets are static stylesheet URLs the project should link.
	StyleSheets []string

	// Files maps paths to file contents. Paths start with "{{docs}}/" or
	// "{{static}}/", which Create replaces with the configured directories.
	Files map[string]string
}

var templates = map[string]*Template{
	"minimal":  minimalTemplate(),
	"handbook": handbookTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E145").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: " + strings.Join(List(), ", "))
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template's files below dir and returns the paths it
// wrote. Existing files are kept unless overwrite is set.
func (t *Template) Create(dir string, cfg Config, overwrite bool) ([]string, error) {
	cfg = cfg.withDefaults()
	dirs := strings.NewReplacer("{{docs}}", cfg.Docs, "{{static}}", cfg.Static)

	rels := make([]string, 0, len(t.Files))
	for rel := range t.Files {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	var written []string
	for _, rel := range rels {
		tmpl, err := template.New(rel).Parse(t.Files[rel])
		if err != nil {
			return written, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", rel, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return written, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", rel, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(dirs.Replace(rel)))
		if _, err := os.Stat(fullPath); err == nil && !overwrite {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return written, errors.New("E142").WithFile(fullPath).Wrap(err)
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return written, errors.New("E142").WithFile(fullPath).Wrap(err)
		}
		written = append(written, fullPath)
	}

	return written, nil
}

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A single introduction page",
		Files: map[string]string{
			"{{docs}}/intro.md": `---
sidebar_position: 1
---

# Introduction

{{.Description}}

## Getting started

Run the development server and edit this page:

` + "```sh\ndocsite dev\n```\n",
			"{{static}}/.gitkeep": "",
		},
	}
}

func handbookTemplate() *Template {
	return &Template{
		Name:        "handbook",
		Description: "Sections, a custom stylesheet and a logo",
		StyleSheets: []string{"/css/custom.css"},
		Files: map[string]string{
			"{{docs}}/intro.md": `---
title: {{printf "%q" .Title}}
description: {{printf "%q" .Description}}
sidebar_position: 1
---

# {{.Title}}

{{.Description}}

- [Installation](guides/install)
- [Command reference](reference/commands)
`,
			"{{docs}}/guides/install.md": `---
sidebar_position: 2
---

# Installation

> Any Go toolchain from 1.24 on works.

` + "```sh\ngo install github.com/vango-dev/docsite/cmd/docsite@latest\n```\n",
			"{{docs}}/reference/commands.md": `---
sidebar_position: 3
---

# Command reference

| Command | Description |
| ------- | ----------- |
| ` + "`docsite dev`" + ` | Serve the site with hot reload |
| ` + "`docsite build`" + ` | Write static HTML |
| ` + "`docsite publish`" + ` | Upload the build to S3 |
`,
			"{{docs}}/reference/_drafts.md": `# Notes

Files starting with an underscore are never published.
`,
			"{{static}}/css/custom.css": `:root {
  --docsite-accent: #2563eb;
}

.navbar-brand {
  color: var(--docsite-accent);
}
`,
			"{{static}}/img/logo.svg": `<svg xmlns="http://www.w3.org/2000/svg" width="32" height="32"><rect width="32" height="32" rx="6" fill="#2563eb"/></svg>
`,
		},
	}
}
