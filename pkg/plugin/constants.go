// Package plugin provides the public API for swatch filter plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	ProtocolVersion = "0.1.0"

	// FilterPluginName is the name a filter is dispensed under.
	FilterPluginName = "filter"
)

// Handshake is the handshake configuration for the go-plugin protocol.
// Plugins built against a different major protocol version are rejected.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0,
	MagicCookieKey:   "SWATCH_PLUGIN",
	MagicCookieValue: "swatch_colour_filter",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin reads a JSON array of colours on stdin
	// and writes a JSON array of booleans to stdout.
	PluginTypeJSON PluginType = "json-stdio"
)

// PluginMap returns the plugin set served by or dispensed from a filter
// plugin binary.
func PluginMap(impl FilterPlugin) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		FilterPluginName: &FilterPluginRPC{Impl: impl},
	}
}

// Serve runs impl as a filter plugin. It is called from the plugin's main
// function and blocks until the host disconnects.
func Serve(impl FilterPlugin) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}
