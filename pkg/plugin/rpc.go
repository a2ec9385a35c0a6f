package plugin

import (
	"fmt"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// FilterPluginRPC implements the go-plugin Plugin interface for filter plugins.
type FilterPluginRPC struct {
	plugin.Plugin
	Impl FilterPlugin
}

// Server returns an RPC server for this plugin.
func (p *FilterPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &FilterPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *FilterPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &FilterPluginRPCClient{client: c}, nil
}

// FilterPluginRPCServer is the RPC server implementation for filter plugins.
type FilterPluginRPCServer struct {
	Impl FilterPlugin
}

// Allowed implements the RPC method for filtering colours.
func (s *FilterPluginRPCServer) Allowed(colours []FilterColour, resp *[]bool) error {
	result, err := s.Impl.Allowed(colours)
	if err != nil {
		return err
	}
	if len(result) != len(colours) {
		return fmt.Errorf("plugin returned %d results for %d colours", len(result), len(colours))
	}
	*resp = result
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *FilterPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// FilterPluginRPCClient is the RPC client implementation for filter plugins.
type FilterPluginRPCClient struct {
	client *rpc.Client
}

// Allowed calls the remote Allowed method.
func (c *FilterPluginRPCClient) Allowed(colours []FilterColour) ([]bool, error) {
	var result []bool
	if err := c.client.Call("Plugin.Allowed", colours, &result); err != nil {
		return nil, &RPCError{Message: err.Error()}
	}
	if len(result) != len(colours) {
		return nil, &RPCError{Message: fmt.Sprintf("plugin returned %d results for %d colours", len(result), len(colours))}
	}
	return result, nil
}

// GetMetadata calls the remote GetMetadata method. Errors yield empty metadata.
func (c *FilterPluginRPCClient) GetMetadata() PluginInfo {
	var info PluginInfo
	if err := c.client.Call("Plugin.GetMetadata", new(any), &info); err != nil {
		return PluginInfo{}
	}
	return info
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
