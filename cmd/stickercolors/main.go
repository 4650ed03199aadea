// stickercolors extracts weighted colour palettes from sets of stickers.
package main

import (
	"os"

	"github.com/setanarut/stickercolors/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
