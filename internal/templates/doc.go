// Package templates provides the starter projects created by docsite init.
//
// # Available Templates
//
//   - minimal: a single introduction page
//   - handbook: several sections with front matter, a custom stylesheet
//     and a logo
//
// # Usage
//
//	tmpl, err := templates.Get("handbook")
//	if err != nil {
//	    return err
//	}
//	if err := tmpl.Create(projectDir, templates.Config{Title: "Support"}, false); err != nil {
//	    return err
//	}
//
// # Template Variables
//
// Files are executed with text/template:
//
//	{{.Title}}        - Site title
//	{{.Description}}  - One-line description used on the first page
//	{{.Docs}}         - Docs directory name
//	{{.Static}}       - Static directory name
package templates
