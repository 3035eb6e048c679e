// Package errors provides structured, actionable error messages for docsite.
//
// Every error carries a registered code (e.g. "E201") that maps to a
// category, a short message, a longer explanation and a documentation URL.
// Errors can be enriched with the file or line they concern, a fix
// suggestion and a wrapped cause. Format prints a styled terminal block with
// a source excerpt when a line is known; FormatCompact and FormatJSON suit
// logs and tooling.
//
// # Usage
//
//	err := errors.New("E201").
//	    WithFile("docs/etcd.md").
//	    WithSuggestion("Check the YAML front matter between the --- lines").
//	    Wrap(yamlErr)
//
//	errors.Fprint(os.Stderr, err)
//
// DocsiteError implements Is by code, so callers can match on a template:
//
//	if stderrors.Is(err, errors.New("E203")) { ... }
package errors
