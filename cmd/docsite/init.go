package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/docsite/internal/config"
	"github.com/vango-dev/docsite/internal/errors"
	"github.com/vango-dev/docsite/internal/templates"
)

func initCmd(a *app) *cobra.Command {
	var (
		title    string
		template string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a new docs project",
		Long: `Create docsite.json plus the docs and static directories of a
starter project.

Templates:
  minimal   A single introduction page (default)
  handbook  Sections, a custom stylesheet and a logo

Examples:
  docsite init
  docsite init handbook --title="Support Handbook" --template=handbook`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.dir
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(a, dir, title, template, force)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Site title")
	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Starter project: "+strings.Join(templates.List(), ", "))
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing docsite.json")

	return cmd
}

func runInit(a *app, dir, title, name string, force bool) error {
	if config.Exists(dir) && !force {
		return errors.Newf(errors.CategoryConfig, "%s already exists in %s", config.ConfigFileName, dir).
			WithSuggestion("Use --force to overwrite it")
	}
	tmpl, err := templates.Get(name)
	if err != nil {
		return err
	}

	cfg := config.New()
	if title != "" {
		cfg.Title = title
	}
	cfg.Render.StyleSheets = tmpl.StyleSheets

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New("E142").WithFile(dir).Wrap(err)
	}
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		return err
	}

	written, err := tmpl.Create(dir, templates.Config{
		Title:  cfg.Title,
		Docs:   cfg.Paths.Docs,
		Static: cfg.Paths.Static,
	}, force)
	if err != nil {
		return err
	}

	a.success("Created %s from the %s template", cfg.Path(), tmpl.Name)
	for _, file := range written {
		a.logger.Debug("wrote file", "path", file)
	}
	a.info("Next: cd %s && docsite dev", dir)
	return nil
}
