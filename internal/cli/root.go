// Package cli provides the command-line interface for stickercolors.
package cli

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

type globalFlags struct {
	verbose int
	quiet   bool
}

// NewRootCmd builds a fresh command tree. Commands carry no package-level
// state, so tests can build and execute as many trees as they like.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "stickercolors",
		Short: "Weighted colour palettes from sticker sets",
		Long: `stickercolors reduces a set of stickers to a weighted colour palette.

Every sticker is quantized, the colours of all stickers are pooled and
weighted by pixel count, then optionally clustered with k-means and
filtered by transparency, saturation and brightness.`,
		Version:      Version,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.CountVarP(&g.verbose, "verbose", "v", "increase log verbosity (-v debug, -vv trace)")
	pf.BoolVar(&g.quiet, "quiet", false, "only log errors")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newExtractCmd(g))
	return root
}

func (g *globalFlags) level() hclog.Level {
	switch {
	case g.quiet:
		return hclog.Error
	case g.verbose >= 2:
		return hclog.Trace
	case g.verbose == 1:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

func (g *globalFlags) logger(cmd *cobra.Command) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "stickercolors",
		Level:  g.level(),
		Output: cmd.ErrOrStderr(),
		Color:  hclog.AutoColor,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stickercolors %s (%s, %s/%s)\n",
				Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
