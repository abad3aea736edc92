package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/interfaces"
	"github.com/milstat-dev/milstat/pkg/utils/safe"
)

// The backend is a single request/response endpoint accepting
// {action, ...payload} and returning {status, data?, message?}. There is no
// transaction, lock or conflict detection behind it; every write is a
// last-writer-wins upsert by natural key.

// Error kinds surfaced to callers. The client never retries; retry and
// rollback policy belongs to the caller.
var (
	ErrConnectivity = goerr.New("backend unreachable")
	ErrFormat       = goerr.New("backend returned an invalid response")
	ErrApplication  = goerr.New("backend reported an error")
)

// Gateway talks the action protocol to a remote spreadsheet-backed endpoint
type Gateway struct {
	client  *http.Client
	url     string
	roster  *rosterStore
	reports *reportStore
	tasks   *taskStore
}

var _ interfaces.Gateway = &Gateway{}

type Option func(*Gateway)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.client = c
	}
}

func New(url string, opts ...Option) (*Gateway, error) {
	if url == "" {
		return nil, goerr.New("remote gateway url is required")
	}

	g := &Gateway{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    strings.TrimSpace(url),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.roster = &rosterStore{g: g}
	g.reports = &reportStore{g: g}
	g.tasks = &taskStore{g: g}

	return g, nil
}

func (g *Gateway) Roster() interfaces.RosterStore {
	return g.roster
}

func (g *Gateway) Reports() interfaces.ReportStore {
	return g.reports
}

func (g *Gateway) Tasks() interfaces.TaskStore {
	return g.tasks
}

func (g *Gateway) Close() error {
	g.client.CloseIdleConnections()
	return nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// call issues one action request and decodes the data field into out.
// Three failure kinds are distinguished: connectivity (transport), format
// (the backend answered with something that is not the JSON envelope, e.g.
// an HTML error page), and application (the backend handled the request and
// reports an error message).
func (g *Gateway) call(ctx context.Context, action string, payload map[string]any, out any) error {
	body := make(map[string]any, len(payload)+1)
	body["action"] = action
	for k, v := range payload {
		body[k] = v
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return goerr.Wrap(err, "failed to encode request", goerr.V("action", action))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(encoded))
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V("action", action))
	}
	// The script endpoint rejects preflighted content types
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := g.client.Do(req)
	if err != nil {
		return goerr.Wrap(ErrConnectivity, err.Error(), goerr.V("action", action))
	}
	defer safe.Close(ctx, resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(ErrConnectivity, "failed to read response", goerr.V("action", action))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		text := string(raw)
		if strings.Contains(text, "<html") || strings.Contains(text, "script.google.com") {
			return goerr.Wrap(ErrFormat, "backend script is not reachable", goerr.V("action", action))
		}
		return goerr.Wrap(ErrFormat, "response is not well-formed JSON",
			goerr.V("action", action), goerr.V("status_code", resp.StatusCode))
	}

	if env.Status == "error" {
		return goerr.Wrap(ErrApplication, env.Message, goerr.V("action", action))
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return goerr.Wrap(ErrFormat, "unexpected data shape", goerr.V("action", action))
		}
	}

	return nil
}
