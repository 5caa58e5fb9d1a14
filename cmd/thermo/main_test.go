package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/thermo"
	"github.com/fwojciec/thermo/refprop"
	"github.com/fwojciec/thermo/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnvironment(t *testing.T) {
	t.Parallel()
	vars := map[string]string{
		"RPPREFIX":           " /opt/refprop ",
		"FLUIDS_PATH":        "/opt/fluids",
		"REMOTE_BACKEND_URL": "http://rp:8002",
		"REMOTE_API_KEY":     "rk",
		"SECRET_API_KEY":     "sk",
		"ALLOWED_ORIGINS":    "https://a.example,https://b.example",
	}
	env := readEnvironment(func(k string) string { return vars[k] })
	assert.Equal(t, environment{
		rpprefix:       "/opt/refprop",
		fluidsPath:     "/opt/fluids",
		remoteURL:      "http://rp:8002",
		remoteKey:      "rk",
		secretKey:      "sk",
		allowedOrigins: "https://a.example,https://b.example",
		addr:           defaultAddr,
	}, env)

	vars["ADDR"] = "127.0.0.1:9000"
	assert.Equal(t, "127.0.0.1:9000", readEnvironment(func(k string) string { return vars[k] }).addr)
}

func TestResolveBackend(t *testing.T) {
	t.Parallel()
	cfg := thermo.Config{DataRoot: "/opt/refprop"}

	b := resolveBackend(cfg, "http://rp:8002", "key")
	assert.IsType(t, &remote.Client{}, b)

	b = resolveBackend(cfg, "", "")
	assert.IsType(t, &refprop.Backend{}, b)
}

func TestSplitOrigins(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"*"}, splitOrigins(""))
	assert.Equal(t, []string{"*"}, splitOrigins(" , "))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins("https://a.example, https://b.example,"))
}

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), nil, environment{}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command given")
	assert.Contains(t, stderr.String(), "-rpprefix")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"melt"}, environment{}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "melt"`)
}

func TestRun_Fluids(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "FLUIDS"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "FLUIDS", "R32.FLD"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "FLUIDS", "WATER.FLD"), nil, 0o644))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-rpprefix", dir, "fluids", "-json"}, environment{}, &stdout, &stderr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fluids":["R32","WATER"],"mixtures":[]}`, stdout.String())
}

func TestRun_NativeBackendMisconfigured(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-rpprefix", filepath.Join(t.TempDir(), "missing"), "calc", "R32", "PT", "1000", "300"},
		environment{}, &stdout, &stderr)
	assert.ErrorIs(t, err, thermo.ErrConfiguration)
}
