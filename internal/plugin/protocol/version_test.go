package protocol

import (
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

func TestParse(t *testing.T) {
	tests := []struct {
		version     string
		expectError bool
		major       int
		minor       int
		patch       int
	}{
		{"0.1.0", false, 0, 1, 0},
		{"1.0.0", false, 1, 0, 0},
		{"10.99.42", false, 10, 99, 42},
		{"invalid", true, 0, 0, 0},
		{"1", true, 0, 0, 0},
		{"1.2", true, 0, 0, 0},
		{"1.-2.0", true, 0, 0, 0},
	}

	for _, tt := range tests {
		v, err := Parse(tt.version)
		if tt.expectError {
			if err == nil {
				t.Errorf("Parse(%q) expected error but got none", tt.version)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.version, err)
		}
		if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
			t.Errorf("Parse(%q) = %s, want %d.%d.%d", tt.version, v, tt.major, tt.minor, tt.patch)
		}
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		pluginVersion string
		compatible    bool
		errorContains string
	}{
		{plugin.ProtocolVersion, true, ""},
		{"0.1.7", true, ""},
		{"0.4.0", true, ""},
		{"0.0.9", false, "too old"},
		{"1.0.0", false, "incompatible major version"},
		{"invalid", false, "failed to parse"},
	}

	for _, tt := range tests {
		compatible, err := IsCompatible(tt.pluginVersion)
		if compatible != tt.compatible {
			t.Errorf("IsCompatible(%q) = %v, want %v", tt.pluginVersion, compatible, tt.compatible)
		}
		if tt.errorContains == "" {
			if err != nil {
				t.Errorf("IsCompatible(%q) unexpected error: %v", tt.pluginVersion, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.errorContains) {
			t.Errorf("IsCompatible(%q) error = %v, want error containing %q", tt.pluginVersion, err, tt.errorContains)
		}
	}
}

func TestVersionCompare(t *testing.T) {
	a := Version{Major: 0, Minor: 1, Patch: 0}
	b := Version{Major: 0, Minor: 1, Patch: 3}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Error("Compare ordering wrong")
	}
}

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		wantType plugin.PluginType
		wantErr  bool
	}{
		{
			name:     "go-plugin",
			output:   `{"name":"greyscale","protocol_version":"0.1.0","plugin_protocol":"go-plugin"}`,
			wantType: plugin.PluginTypeGoPlugin,
		},
		{
			name:     "json-stdio",
			output:   `{"name":"no-blue","plugin_protocol":"json-stdio"}`,
			wantType: plugin.PluginTypeJSON,
		},
		{
			name:     "missing protocol defaults to json-stdio",
			output:   `{"name":"legacy"}`,
			wantType: plugin.PluginTypeJSON,
		},
		{name: "unknown protocol", output: `{"name":"x","plugin_protocol":"grpc"}`, wantErr: true},
		{name: "incompatible version", output: `{"name":"x","protocol_version":"9.0.0"}`, wantErr: true},
		{name: "not json", output: `plugin v1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseInfo([]byte(tt.output))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInfo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && result.Type != tt.wantType {
				t.Errorf("ParseInfo() type = %s, want %s", result.Type, tt.wantType)
			}
		})
	}
}
