package plugin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-plugin"
)

type mockFilterPlugin struct {
	metadata  PluginInfo
	allowed   func(FilterColour) bool
	truncate  bool
	filterErr error
}

func (m *mockFilterPlugin) Allowed(colours []FilterColour) ([]bool, error) {
	if m.filterErr != nil {
		return nil, m.filterErr
	}
	result := make([]bool, len(colours))
	for i, c := range colours {
		result[i] = m.allowed(c)
	}
	if m.truncate && len(result) > 0 {
		result = result[:len(result)-1]
	}
	return result, nil
}

func (m *mockFilterPlugin) GetMetadata() PluginInfo {
	return m.metadata
}

func noRed(c FilterColour) bool {
	return c.RGB.R < 128
}

var testColours = []FilterColour{
	{RGB: RGBColour{R: 255}, Hue: 0, Saturation: 1, Lightness: 0.5},
	{RGB: RGBColour{G: 255}, Hue: 120, Saturation: 1, Lightness: 0.5},
	{RGB: RGBColour{R: 200, B: 200}, Hue: 300, Saturation: 1, Lightness: 0.39},
}

func TestFilterPluginRPC(t *testing.T) {
	mock := &mockFilterPlugin{allowed: noRed}
	rpc := &FilterPluginRPC{Impl: mock}

	t.Run("Server", func(t *testing.T) {
		server, err := rpc.Server(nil)
		if err != nil {
			t.Fatalf("Server() error = %v", err)
		}
		rpcServer, ok := server.(*FilterPluginRPCServer)
		if !ok {
			t.Fatal("Server() returned wrong type")
		}
		if rpcServer.Impl != mock {
			t.Fatal("Server() impl not set correctly")
		}
	})

	t.Run("Client", func(t *testing.T) {
		client, err := rpc.Client(nil, nil)
		if err != nil {
			t.Fatalf("Client() error = %v", err)
		}
		if _, ok := client.(*FilterPluginRPCClient); !ok {
			t.Fatal("Client() returned wrong type")
		}
	})
}

func TestFilterPluginRPCServer(t *testing.T) {
	tests := []struct {
		name    string
		mock    *mockFilterPlugin
		want    []bool
		wantErr bool
	}{
		{
			name: "filters colours",
			mock: &mockFilterPlugin{allowed: noRed},
			want: []bool{false, true, false},
		},
		{
			name:    "plugin error",
			mock:    &mockFilterPlugin{filterErr: errors.New("boom")},
			wantErr: true,
		},
		{
			name:    "short result",
			mock:    &mockFilterPlugin{allowed: noRed, truncate: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &FilterPluginRPCServer{Impl: tt.mock}
			var resp []bool
			err := server.Allowed(testColours, &resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Allowed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, resp); !tt.wantErr && diff != "" {
				t.Errorf("Allowed() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("GetMetadata", func(t *testing.T) {
		server := &FilterPluginRPCServer{Impl: &mockFilterPlugin{metadata: PluginInfo{Name: "test"}}}
		var resp PluginInfo
		if err := server.GetMetadata(nil, &resp); err != nil {
			t.Fatalf("GetMetadata() error = %v", err)
		}
		if resp.Name != "test" {
			t.Errorf("GetMetadata() name = %q, want %q", resp.Name, "test")
		}
	})
}

// TestFilterPluginRoundTrip exercises the client and server over an in-memory
// go-plugin connection.
func TestFilterPluginRoundTrip(t *testing.T) {
	info := PluginInfo{Name: "no-red", Version: "1.0.0", ProtocolVersion: ProtocolVersion}
	impl := &PerColourFilter{Info: info, IsAllowed: noRed}

	client, _ := plugin.TestPluginRPCConn(t, PluginMap(impl), nil)
	defer client.Close()

	raw, err := client.Dispense(FilterPluginName)
	if err != nil {
		t.Fatalf("Dispense() error = %v", err)
	}
	filter, ok := raw.(FilterPlugin)
	if !ok {
		t.Fatalf("Dispense() returned %T", raw)
	}

	got, err := filter.Allowed(testColours)
	if err != nil {
		t.Fatalf("Allowed() error = %v", err)
	}
	if diff := cmp.Diff([]bool{false, true, false}, got); diff != "" {
		t.Errorf("Allowed() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(info, filter.GetMetadata()); diff != "" {
		t.Errorf("GetMetadata() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterPluginRoundTripError(t *testing.T) {
	impl := &mockFilterPlugin{filterErr: errors.New("model not loaded")}

	client, _ := plugin.TestPluginRPCConn(t, PluginMap(impl), nil)
	defer client.Close()

	raw, err := client.Dispense(FilterPluginName)
	if err != nil {
		t.Fatalf("Dispense() error = %v", err)
	}

	_, err = raw.(FilterPlugin).Allowed(testColours)
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("Expected RPCError, got %v", err)
	}
}

func TestRPCError(t *testing.T) {
	err := &RPCError{Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err.Error(), "test error")
	}
}
