package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func versionCmd(a *app) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(a.out, version)
				return
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Version:\t%s\n", version)
			fmt.Fprintf(tw, "Commit:\t%s\n", commit)
			fmt.Fprintf(tw, "Built:\t%s\n", date)
			fmt.Fprintf(tw, "Go version:\t%s\n", runtime.Version())
			fmt.Fprintf(tw, "OS/Arch:\t%s/%s\n", runtime.GOOS, runtime.GOARCH)
			if md := depVersion("github.com/yuin/goldmark"); md != "" {
				fmt.Fprintf(tw, "Markdown:\tgoldmark %s\n", md)
			}
			_ = tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")
	return cmd
}

// depVersion returns the version of a linked module, or "".
func depVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return ""
}
