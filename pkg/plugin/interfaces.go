package plugin

// FilterPlugin is the interface that filter plugins must implement for
// go-plugin RPC.
type FilterPlugin interface {
	// Allowed reports, for each colour, whether it may appear in a palette.
	// The result must have the same length as colours.
	Allowed(colours []FilterColour) ([]bool, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}

// PerColourFilter adapts a per-colour predicate into a FilterPlugin.
type PerColourFilter struct {
	Info      PluginInfo
	IsAllowed func(c FilterColour) bool
}

// Allowed applies IsAllowed to every colour.
func (f *PerColourFilter) Allowed(colours []FilterColour) ([]bool, error) {
	result := make([]bool, len(colours))
	for i, c := range colours {
		result[i] = f.IsAllowed(c)
	}
	return result, nil
}

// GetMetadata returns Info.
func (f *PerColourFilter) GetMetadata() PluginInfo {
	return f.Info
}
