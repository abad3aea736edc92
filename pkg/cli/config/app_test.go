package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/milstat-dev/milstat/pkg/cli/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadGridConfiguration(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `
[[slot]]
key = "HQ_1"
label = "Company Commander (Cadet)"
row_group = "HQ"

[[slot]]
key = "SQ_01_L"
label = "Squad 1 Leader"
row_group = "Squad 1"
`)
		grid, err := config.LoadGridConfiguration(path)
		gt.NoError(t, err).Required()
		gt.Array(t, grid.Slots).Length(2)
		gt.Value(t, grid.Slots[0].Key).Equal("HQ_1")
		gt.Value(t, grid.Slots[1].RowGroup).Equal("Squad 1")
	})

	t.Run("duplicate keys are rejected", func(t *testing.T) {
		path := writeConfig(t, `
[[slot]]
key = "HQ_1"
label = "a"
row_group = "HQ"

[[slot]]
key = "HQ_1"
label = "b"
row_group = "HQ"
`)
		_, err := config.LoadGridConfiguration(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("malformed TOML is rejected", func(t *testing.T) {
		path := writeConfig(t, `[[slot] key = `)
		_, err := config.LoadGridConfiguration(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadGridConfiguration(filepath.Join(t.TempDir(), "absent.toml"))
		gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
	})
}
