package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// GridConfig is the TOML representation of a unit's position grid. When no
// file is given the built-in company layout is used.
type GridConfig struct {
	Slots []GridSlot `toml:"slot"`
}

// GridSlot represents one position slot configuration
type GridSlot struct {
	Key      string `toml:"key"`
	Label    string `toml:"label"`
	RowGroup string `toml:"row_group"`
}

// AppConfig holds CLI flags for the grid layout configuration
type AppConfig struct {
	gridPath string
}

// Flags returns CLI flags for app configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "grid-config",
			Usage:       "Path to a TOML file describing the position grid (uses the built-in layout when omitted)",
			Sources:     cli.EnvVars("MILSTAT_GRID_CONFIG"),
			Destination: &a.gridPath,
		},
	}
}

// Path returns the configured grid config path
func (a *AppConfig) Path() string {
	return a.gridPath
}

// Configure loads and validates the grid structure
func (a *AppConfig) Configure() (*model.GridStructure, error) {
	if a.gridPath == "" {
		return model.DefaultGridStructure(), nil
	}
	return LoadGridConfiguration(a.gridPath)
}

// LoadGridConfiguration loads a grid structure from a TOML file
func LoadGridConfiguration(path string) (*model.GridStructure, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "grid config file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read grid config file", goerr.V(ConfigPathKey, path))
	}

	var cfg GridConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path))
	}

	structure := cfg.ToGridStructure()
	if err := structure.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path))
	}

	return structure, nil
}

// ToGridStructure converts the TOML representation to the domain structure
func (c *GridConfig) ToGridStructure() *model.GridStructure {
	slots := make([]model.GridSlot, len(c.Slots))
	for i, s := range c.Slots {
		slots[i] = model.GridSlot{
			Key:      s.Key,
			Label:    s.Label,
			RowGroup: s.RowGroup,
		}
	}
	return &model.GridStructure{Slots: slots}
}
