package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

// InfoFlag is the argument a plugin answers with its metadata as JSON.
const InfoFlag = "--plugin-info"

// DetectorResult contains information about a detected plugin protocol.
type DetectorResult struct {
	// Type indicates which protocol the plugin uses.
	Type plugin.PluginType

	// PluginInfo contains metadata from --plugin-info.
	PluginInfo plugin.PluginInfo
}

// ParseInfo decodes the output of a plugin's --plugin-info query, determines
// its protocol and checks version compatibility.
func ParseInfo(output []byte) (*DetectorResult, error) {
	var info plugin.PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	result := &DetectorResult{PluginInfo: info}

	switch plugin.PluginType(info.PluginProtocol) {
	case plugin.PluginTypeGoPlugin:
		result.Type = plugin.PluginTypeGoPlugin
	case plugin.PluginTypeJSON, "":
		// Scripts that omit the field speak json-stdio.
		result.Type = plugin.PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	if info.ProtocolVersion != "" {
		if ok, err := IsCompatible(info.ProtocolVersion); !ok {
			return nil, fmt.Errorf("plugin %q: %w", info.Name, err)
		}
	}

	return result, nil
}
