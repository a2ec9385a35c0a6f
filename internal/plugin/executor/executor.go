// Package executor runs filter plugins regardless of their underlying
// protocol (go-plugin RPC or JSON-stdio).
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/swatch/internal/plugin/protocol"
	"github.com/jmylchreest/swatch/pkg/plugin"
)

const (
	infoTimeout   = 5 * time.Second
	filterTimeout = 30 * time.Second
)

// FilterExecutor runs one filter plugin binary.
type FilterExecutor struct {
	path         string
	protocolType plugin.PluginType
	info         plugin.PluginInfo
	runner       ProcessRunner
	logger       hclog.Logger

	client    *goplugin.Client
	rpcClient plugin.FilterPlugin
}

// New creates a FilterExecutor by querying the plugin for its metadata.
func New(ctx context.Context, pluginPath string, logger hclog.Logger) (*FilterExecutor, error) {
	return NewWithRunner(ctx, pluginPath, logger, NewRealProcessRunner())
}

// NewWithRunner creates a FilterExecutor that starts JSON-stdio plugins and
// the --plugin-info query through runner.
func NewWithRunner(ctx context.Context, pluginPath string, logger hclog.Logger, runner ProcessRunner) (*FilterExecutor, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	infoCtx, cancel := context.WithTimeout(ctx, infoTimeout)
	defer cancel()

	stdout, stderr, err := runner.Run(infoCtx, pluginPath, []string{protocol.InfoFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin %s: %w%s", pluginPath, err, stderrSuffix(stderr))
	}

	result, err := protocol.ParseInfo(stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	name := result.PluginInfo.Name
	if name == "" {
		name = "unnamed"
	}

	e := &FilterExecutor{
		path:         pluginPath,
		protocolType: result.Type,
		info:         result.PluginInfo,
		runner:       runner,
		logger:       logger.Named(name),
	}
	e.logger.Debug("detected filter plugin", "path", pluginPath, "protocol", e.protocolType, "version", e.info.Version)
	return e, nil
}

// Info returns the metadata the plugin reported.
func (e *FilterExecutor) Info() plugin.PluginInfo {
	return e.info
}

// Protocol returns the plugin's communication protocol.
func (e *FilterExecutor) Protocol() plugin.PluginType {
	return e.protocolType
}

// Allowed asks the plugin which colours may appear in the palette.
func (e *FilterExecutor) Allowed(ctx context.Context, colours []plugin.FilterColour) ([]bool, error) {
	var (
		result []bool
		err    error
	)
	switch e.protocolType {
	case plugin.PluginTypeGoPlugin:
		result, err = e.allowedGoPlugin(colours)
	case plugin.PluginTypeJSON:
		result, err = e.allowedJSON(ctx, colours)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
	if err != nil {
		return nil, err
	}

	if len(result) != len(colours) {
		return nil, fmt.Errorf("plugin %s returned %d results for %d colours", e.info.Name, len(result), len(colours))
	}
	return result, nil
}

// Close kills a running go-plugin process.
func (e *FilterExecutor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

// --- Go-Plugin RPC implementation ---

func (e *FilterExecutor) getRPCClient() (plugin.FilterPlugin, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  plugin.Handshake,
		Plugins:          plugin.PluginMap(nil),
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger,
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.FilterPluginName)
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(plugin.FilterPlugin)
	if !ok {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	e.rpcClient = client
	return client, nil
}

func (e *FilterExecutor) allowedGoPlugin(colours []plugin.FilterColour) ([]bool, error) {
	client, err := e.getRPCClient()
	if err != nil {
		return nil, err
	}
	return client.Allowed(colours)
}

// --- JSON-stdio implementation ---

func (e *FilterExecutor) allowedJSON(ctx context.Context, colours []plugin.FilterColour) ([]bool, error) {
	input, err := json.Marshal(colours)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal colours: %w", err)
	}

	execCtx, cancel := context.WithTimeout(ctx, filterTimeout)
	defer cancel()

	stdout, stderr, err := e.runner.Run(execCtx, e.path, nil, bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w%s", err, stderrSuffix(stderr))
	}

	var result []bool
	if err := json.Unmarshal(stdout, &result); err != nil {
		return nil, fmt.Errorf("failed to parse plugin output: %w\nOutput: %s", err, stdout)
	}
	return result, nil
}

func stderrSuffix(stderr []byte) string {
	if len(bytes.TrimSpace(stderr)) == 0 {
		return ""
	}
	return "\nStderr: " + string(bytes.TrimSpace(stderr))
}
