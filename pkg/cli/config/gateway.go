package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/interfaces"
	"github.com/milstat-dev/milstat/pkg/gateway/localfile"
	"github.com/milstat-dev/milstat/pkg/gateway/memory"
	"github.com/milstat-dev/milstat/pkg/gateway/remote"
	"github.com/milstat-dev/milstat/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Gateway holds CLI flags for record backend configuration
type Gateway struct {
	backend   string
	remoteURL string
	stateDir  string
}

// Flags returns CLI flags for gateway configuration
func (g *Gateway) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gateway-backend",
			Usage:       "Record backend type (remote, local or memory)",
			Value:       "remote",
			Sources:     cli.EnvVars("MILSTAT_GATEWAY_BACKEND"),
			Destination: &g.backend,
		},
		&cli.StringFlag{
			Name:        "remote-url",
			Usage:       "Action endpoint URL (required when using remote backend)",
			Sources:     cli.EnvVars("MILSTAT_REMOTE_URL"),
			Destination: &g.remoteURL,
		},
		&cli.StringFlag{
			Name:        "state-dir",
			Usage:       "Directory for the session profile and local record files",
			Sources:     cli.EnvVars("MILSTAT_STATE_DIR"),
			Destination: &g.stateDir,
		},
	}
}

// Backend returns the configured backend type
func (g *Gateway) Backend() string {
	return g.backend
}

// StateDir returns the local state directory, defaulting to
// $HOME/.milstat when unset.
func (g *Gateway) StateDir() (string, error) {
	if g.stateDir != "" {
		return g.stateDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve home directory for state dir")
	}
	return filepath.Join(home, ".milstat"), nil
}

// Configure initializes the record gateway and the session profile store.
// The profile store is file-backed for every backend so a session survives
// process restarts; the caller is responsible for Close() on the gateway.
func (g *Gateway) Configure(ctx context.Context) (interfaces.Gateway, interfaces.ProfileStore, error) {
	dir, err := g.StateDir()
	if err != nil {
		return nil, nil, err
	}
	local, err := localfile.New(dir)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize local state store")
	}

	switch g.backend {
	case "remote":
		if g.remoteURL == "" {
			return nil, nil, goerr.New("remote-url is required when using remote backend")
		}
		gw, err := remote.New(g.remoteURL)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize remote gateway")
		}
		logging.Default().Info("Using remote gateway", "url", g.remoteURL, "state_dir", dir)
		return gw, local.Profile(), nil

	case "local":
		logging.Default().Info("Using local file gateway", "state_dir", dir)
		return local, local.Profile(), nil

	case "memory":
		logging.Default().Info("Using in-memory gateway (development mode)")
		return memory.New(), local.Profile(), nil

	default:
		return nil, nil, goerr.New("invalid gateway backend", goerr.V("backend", g.backend))
	}
}
