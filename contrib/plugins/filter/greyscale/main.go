// greyscale - Swatch filter plugin that drops near-grey colours.
//
// Uses the go-plugin RPC protocol. Colours whose saturation is below the
// threshold are rejected, so palettes built from photos with large grey
// areas keep their accent colours.
//
// Build:
//   go build -o swatch-greyscale
//
// Usage:
//   swatch extract photo.jpg --filter-plugin ./swatch-greyscale
//
// Environment:
//   GREYSCALE_MIN_SATURATION: minimum saturation to keep (default 0.15)

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

const defaultMinSaturation = 0.15

func info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            "greyscale",
		Version:         "0.1.0",
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Reject colours with little saturation",
		PluginProtocol:  string(plugin.PluginTypeGoPlugin),
	}
}

func minSaturation() float64 {
	if v, ok := os.LookupEnv("GREYSCALE_MIN_SATURATION"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		fmt.Fprintf(os.Stderr, "greyscale: ignoring invalid GREYSCALE_MIN_SATURATION %q\n", v)
	}
	return defaultMinSaturation
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		enc := json.NewEncoder(os.Stdout)
		if err := enc.Encode(info()); err != nil {
			os.Exit(1)
		}
		return
	}

	threshold := minSaturation()
	plugin.Serve(&plugin.PerColourFilter{
		Info: info(),
		IsAllowed: func(c plugin.FilterColour) bool {
			return c.Saturation >= threshold
		},
	})
}
