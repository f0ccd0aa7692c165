package geo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(body), 0o755)
	require.NoError(t, err)
	return path
}

func TestScriptGateway_ReversePoint(t *testing.T) {
	script := writeScript(t, "point.sh", `#!/bin/sh
echo "{\"lat\": $1, \"lon\": $2, \"address\": \"Dam 1\"}"
`)
	g := NewScriptGateway("sh", "", script, 10*time.Second)

	out, err := g.ReversePoint(context.Background(), "52.37", "4.89")
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat": 52.37, "lon": 4.89, "address": "Dam 1"}`, string(out))
}

func TestScriptGateway_BulkGeocode(t *testing.T) {
	script := writeScript(t, "bulk.sh", `#!/bin/sh
echo "[{\"file\": \"$1\"}]"
`)
	g := NewScriptGateway("sh", script, "", 10*time.Second)

	out, err := g.BulkGeocode(context.Background(), "/tmp/in.csv")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"file": "/tmp/in.csv"}]`, string(out))
}

func TestScriptGateway_NonZeroExit(t *testing.T) {
	script := writeScript(t, "fail.sh", `#!/bin/sh
echo "boom" >&2
exit 3
`)
	g := NewScriptGateway("sh", script, script, 10*time.Second)

	_, err := g.BulkGeocode(context.Background(), "x.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestScriptGateway_InvalidJSON(t *testing.T) {
	script := writeScript(t, "garbage.sh", `#!/bin/sh
echo "not json"
`)
	g := NewScriptGateway("sh", script, script, 10*time.Second)

	_, err := g.ReversePoint(context.Background(), "1", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestScriptGateway_Timeout(t *testing.T) {
	script := writeScript(t, "slow.sh", `#!/bin/sh
sleep 5
echo "{}"
`)
	g := NewScriptGateway("sh", script, script, 100*time.Millisecond)

	_, err := g.BulkGeocode(context.Background(), "x.csv")
	assert.Error(t, err)
}
