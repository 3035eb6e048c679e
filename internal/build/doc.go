// Package build renders a docs site to static files.
//
// Pages are rendered in parallel, bounded by build.concurrency, and written
// to a directory per permalink so any static file server can host them.
//
// # Usage
//
//	builder := build.New(site.New(cfg), build.Options{})
//	result, err := builder.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Built %d pages in %s\n", result.Pages, result.Duration)
//
// # Output Structure
//
//	build/
//	├── index.html            # Redirect to the first page
//	├── 404.html
//	├── docs/
//	│   ├── intro/index.html
//	│   └── commands/etcd/index.html
//	├── img/logo.png          # Copied from static/
//	├── sitemap.xml           # Only when url is configured
//	└── manifest.json
//
// # Manifest
//
// The manifest identifies the build and records a SHA-256 for every page
// and static file, so publish can tell what changed:
//
//	{
//	  "buildId": "3b0c4a4e-...",
//	  "generatedAt": "2026-10-19T09:30:00Z",
//	  "baseUrl": "/",
//	  "pages": [{"id": "intro", "file": "docs/intro/index.html", ...}],
//	  "assets": {"img/logo.png": "9f86d0..."}
//	}
package build
