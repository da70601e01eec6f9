// blox builds a colour catalog of Minecraft blocks.
//
// Every block texture is averaged into a single representative colour,
// tagged, paired with a wiki illustration and written to a catalog that can
// be searched by colour.
package main

import (
	"os"

	"github.com/jmylchreest/blox/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
