// Package config provides configuration parsing for docsite projects.
//
// The configuration is stored in docsite.json at the project root. Every
// scalar setting can be overridden from the environment with a DOCSITE_
// prefixed variable; environment values win over the file, and the file wins
// over built-in defaults.
//
// # Configuration File Structure
//
//	{
//	  "title": "Support Tools",
//	  "url": "https://acme.github.io",
//	  "baseURL": "/automation-suite-support-tools/",
//	  "docs": {
//	    "routeBasePath": "docs",
//	    "editUrl": "https://github.com/acme/support-tools/edit/main/docs"
//	  },
//	  "render": {
//	    "classes": {"pre": "code-block"},
//	    "wrapper": "markdown"
//	  },
//	  "build": {
//	    "output": "build",
//	    "concurrency": 8
//	  },
//	  "dev": {
//	    "port": 3000,
//	    "hotReload": true
//	  },
//	  "publish": {
//	    "bucket": "acme-docs",
//	    "prefix": "support-tools"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Port:", cfg.Dev.Port) // DOCSITE_DEV_PORT overrides
package config
