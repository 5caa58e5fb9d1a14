package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/thermo"
	"github.com/fwojciec/thermo/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("lists fluids and mixtures", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "FLUIDS", "R32.FLD"))
		touch(t, filepath.Join(dir, "FLUIDS", "R125.FLD"))
		touch(t, filepath.Join(dir, "FLUIDS", "propane.fld"))
		touch(t, filepath.Join(dir, "FLUIDS", "R1234ZEE.PPF"))
		touch(t, filepath.Join(dir, "FLUIDS", "README.TXT"))
		touch(t, filepath.Join(dir, "MIXTURES", "R410A.MIX"))
		touch(t, filepath.Join(dir, "MIXTURES", "R404A.MIX"))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "FLUIDS", "OLD.FLD"), 0o755))

		c, err := catalog.Load(thermo.Config{DataRoot: dir})
		require.NoError(t, err)
		assert.Equal(t, []string{"PROPANE", "R1234ZEE", "R125", "R32"}, c.Fluids)
		assert.Equal(t, []string{"R404A", "R410A"}, c.Mixtures)
	})

	t.Run("same fluid in two formats is listed once", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "FLUIDS", "R32.FLD"))
		touch(t, filepath.Join(dir, "FLUIDS", "R32.PPF"))

		c, err := catalog.Load(thermo.Config{DataRoot: dir})
		require.NoError(t, err)
		assert.Equal(t, []string{"R32"}, c.Fluids)
	})

	t.Run("fluids path overrides data root", func(t *testing.T) {
		t.Parallel()
		root, fluids := t.TempDir(), t.TempDir()
		touch(t, filepath.Join(root, "FLUIDS", "WATER.FLD"))
		touch(t, filepath.Join(fluids, "FLUIDS", "CO2.FLD"))

		c, err := catalog.Load(thermo.Config{DataRoot: root, FluidsPath: fluids})
		require.NoError(t, err)
		assert.Equal(t, []string{"CO2"}, c.Fluids)
	})

	t.Run("no mixtures directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "FLUIDS", "R32.FLD"))

		c, err := catalog.Load(thermo.Config{DataRoot: dir})
		require.NoError(t, err)
		assert.Empty(t, c.Mixtures)
		assert.NotNil(t, c.Mixtures)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.Load(thermo.Config{DataRoot: filepath.Join(t.TempDir(), "missing")})
		assert.ErrorIs(t, err, thermo.ErrConfiguration)
	})
}

func TestCatalog_Complete(t *testing.T) {
	t.Parallel()
	c := catalog.Catalog{
		Fluids:   []string{"R1234YF", "R1234ZEE", "R32", "WATER"},
		Mixtures: []string{"R404A", "R410A"},
	}
	assert.Equal(t, []string{"R1234YF", "R1234ZEE"}, c.Complete("r1234"))
	assert.Equal(t, []string{"R404A", "R410A"}, c.Complete("R4"))
	assert.Empty(t, c.Complete("XENON"))
	assert.Len(t, c.Complete(""), 6)
}
