package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/thermo"
	"github.com/fwojciec/thermo/catalog"
	"github.com/fwojciec/thermo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeR32(ctx context.Context, c thermo.Call) (thermo.Reply, error) {
	switch c.Input {
	case "PT":
		return thermo.Reply{Output: []float64{300, 1e6, 20450, 24100.5, 112.3, -9999970, 95.1, 62.4, 420.7}}, nil
	case "CRIT":
		if c.Outputs[0] == "T" {
			return thermo.Reply{Output: []float64{351.255, 5782000, 30000, 0.052024}}, nil
		}
	case "EOSMIN":
		return thermo.Reply{Output: []float64{136.34}}, nil
	case "TQ":
		return thermo.Reply{Output: []float64{1000 * c.A, 100 * c.A * (1 + c.B)}}, nil
	}
	return thermo.Reply{Code: 851, Message: "unsupported"}, nil
}

func testApp(t *testing.T, cfg thermo.Config) (*app, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	return newApp(mock.NewBackend(fakeR32), cfg, &stdout, slog.New(slog.DiscardHandler)), &stdout
}

func TestApp_Calc(t *testing.T) {
	t.Parallel()

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		a, stdout := testApp(t, thermo.Config{})
		require.NoError(t, a.exec(context.Background(), "calc", []string{"R32", "pt", "1000", "300"}))
		out := ansi.Strip(stdout.String())
		assert.Contains(t, out, "R32  PT = 1000, 300")
		assert.Contains(t, out, "Pressure")
		assert.Contains(t, out, "1000 kPa")
		assert.Contains(t, out, "n/a")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		a, stdout := testApp(t, thermo.Config{})
		require.NoError(t, a.exec(context.Background(), "calc", []string{"-json", "R32", "PT", "1000", "300"}))
		assert.JSONEq(t, `{"T":300,"P":1000,"D":20.45,"H":24100.5,"S":112.3,"Q":null,"CP":95.1,"CV":62.4,"W":420.7}`, stdout.String())
	})

	t.Run("usage", func(t *testing.T) {
		t.Parallel()
		a, _ := testApp(t, thermo.Config{})
		err := a.exec(context.Background(), "calc", []string{"R32", "PT", "1000"})
		assert.ErrorIs(t, err, errUsage)
	})

	t.Run("not a number", func(t *testing.T) {
		t.Parallel()
		a, _ := testApp(t, thermo.Config{})
		err := a.exec(context.Background(), "calc", []string{"R32", "PT", "1000", "hot"})
		assert.ErrorIs(t, err, thermo.ErrInvalidInput)
	})
}

func TestApp_DomeSaveAndShow(t *testing.T) {
	t.Parallel()
	a, stdout := testApp(t, thermo.Config{})
	path := filepath.Join(t.TempDir(), "r32.json")

	require.NoError(t, a.exec(context.Background(), "dome", []string{"-out", path, "R32"}))
	first := ansi.Strip(stdout.String())
	assert.Contains(t, first, "R32 saturation dome")
	assert.Contains(t, first, "critical point: T 351.255 K, P 5782 kPa, H 30000 J/mol")
	assert.Contains(t, first, "64 liquid, 64 vapor points")

	stdout.Reset()
	require.NoError(t, a.exec(context.Background(), "show", []string{path}))
	assert.Equal(t, first, ansi.Strip(stdout.String()))
}

func TestApp_DomeJSON(t *testing.T) {
	t.Parallel()
	a, stdout := testApp(t, thermo.Config{})
	require.NoError(t, a.exec(context.Background(), "dome", []string{"-json", "R32"}))
	assert.True(t, strings.HasPrefix(stdout.String(), `{"liquid":[`))
}

func TestApp_Info(t *testing.T) {
	t.Parallel()
	a, stdout := testApp(t, thermo.Config{})
	require.NoError(t, a.exec(context.Background(), "info", []string{"-json", "R32"}))
	assert.Contains(t, stdout.String(), `"molecular_weight":52.024`)
	assert.Contains(t, stdout.String(), `"critical_temperature":351.255`)
}

func TestApp_ShowMissingFile(t *testing.T) {
	t.Parallel()
	a, _ := testApp(t, thermo.Config{})
	err := a.exec(context.Background(), "show", []string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dome")
}

func TestApp_ReplLine(t *testing.T) {
	t.Parallel()
	a, stdout := testApp(t, thermo.Config{})

	assert.True(t, a.replLine(context.Background(), []string{"quit"}))
	assert.True(t, a.replLine(context.Background(), []string{"exit"}))

	assert.False(t, a.replLine(context.Background(), []string{"help"}))
	assert.Contains(t, stdout.String(), "calc [-json]")

	stdout.Reset()
	assert.False(t, a.replLine(context.Background(), []string{"calc", "R32", "XX", "1", "2"}))
	assert.Contains(t, ansi.Strip(stdout.String()), "error: ")

	stdout.Reset()
	assert.False(t, a.replLine(context.Background(), []string{"serve"}))
	assert.Contains(t, ansi.Strip(stdout.String()), `unknown command "serve"`)
}

func TestCompleter(t *testing.T) {
	t.Parallel()
	complete := completer(catalog.Catalog{
		Fluids:   []string{"R1234YF", "R1234ZEE", "R32"},
		Mixtures: []string{"R410A"},
	})

	head, got, tail := complete("ca", 2)
	assert.Equal(t, "", head)
	assert.Equal(t, []string{"calc"}, got)
	assert.Equal(t, "", tail)

	head, got, tail = complete("calc r12 PT", 8)
	assert.Equal(t, "calc ", head)
	assert.Equal(t, []string{"R1234YF", "R1234ZEE"}, got)
	assert.Equal(t, " PT", tail)

	_, got, _ = complete("dome -o", 7)
	assert.Empty(t, got)

	_, got, _ = complete("info R4", 7)
	assert.Equal(t, []string{"R410A"}, got)

	line := "info ³ r3 PT"
	head, got, tail = complete(line, len([]rune("info ³ r3")))
	assert.Equal(t, "info ³ ", head)
	assert.Equal(t, []string{"R32"}, got)
	assert.Equal(t, " PT", tail)
}
