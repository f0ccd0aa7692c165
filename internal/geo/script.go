package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// ScriptGateway runs the geocoding worker scripts as subprocesses. Each
// invocation is independent; the script is expected to print a single JSON
// document to stdout and exit zero.
type ScriptGateway struct {
	interpreter string
	bulkScript  string
	pointScript string
	timeout     time.Duration
}

func NewScriptGateway(interpreter, bulkScript, pointScript string, timeout time.Duration) *ScriptGateway {
	return &ScriptGateway{
		interpreter: interpreter,
		bulkScript:  bulkScript,
		pointScript: pointScript,
		timeout:     timeout,
	}
}

func (g *ScriptGateway) BulkGeocode(ctx context.Context, csvPath string) (json.RawMessage, error) {
	return g.run(ctx, g.bulkScript, csvPath)
}

func (g *ScriptGateway) ReversePoint(ctx context.Context, lat, lon string) (json.RawMessage, error) {
	return g.run(ctx, g.pointScript, lat, lon)
}

func (g *ScriptGateway) run(ctx context.Context, script string, args ...string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmdArgs := append([]string{script}, args...)
	cmd := exec.CommandContext(ctx, g.interpreter, cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		slog.Error("geocoding script failed",
			"script", script,
			"error", err,
			"stderr", stderr.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("geocoding script %s failed: %w: %s", script, err, stderr.String())
	}

	var payload json.RawMessage
	err = json.Unmarshal(stdout.Bytes(), &payload)
	if err != nil {
		return nil, fmt.Errorf("geocoding script %s emitted invalid JSON: %w", script, err)
	}

	slog.Debug("geocoding script completed",
		"script", script,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return payload, nil
}
