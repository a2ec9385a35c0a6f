// Swatch extracts prominent colour swatches from images.
//
// It quantizes an image with median cut and picks the swatches that best
// match light, normal and dark variants of vibrant and muted colours.
package main

import (
	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	cli.Execute()
}
