package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/vango-dev/docsite/internal/preview"
	"github.com/vango-dev/docsite/internal/site"
)

func showCmd(a *app) *cobra.Command {
	var (
		style    string
		width    int
		asJSON   bool
		listOnly bool
	)

	cmd := &cobra.Command{
		Use:   "show [page-id]",
		Short: "Preview a page in the terminal",
		Long: `Render a page's markdown in the terminal, print its metadata as
JSON, or list every page.

Examples:
  docsite show --list
  docsite show commands/etcd
  docsite show commands/etcd --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			s, err := site.New(cfg).Load(cmd.Context())
			if err != nil {
				return err
			}

			if listOnly || len(args) == 0 {
				for _, p := range s.Pages() {
					a.info("%-32s %s", p.ID, p.Permalink)
				}
				return nil
			}

			p, err := s.Page(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			return preview.Render(a.out, p, preview.Options{Style: style, Width: width})
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Glamour style: dark, light, notty (default: detect)")
	cmd.Flags().IntVarP(&width, "width", "w", preview.DefaultWidth, "Word wrap width")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print page metadata as JSON")
	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List pages")

	return cmd
}
