package plugin

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}

// RGBColour represents an RGB colour.
type RGBColour struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// FilterColour is a candidate colour sent to a filter plugin, with its HSL
// components precomputed by the host.
type FilterColour struct {
	RGB        RGBColour `json:"rgb"`
	Hue        float64   `json:"hue"`
	Saturation float64   `json:"saturation"`
	Lightness  float64   `json:"lightness"`
}
