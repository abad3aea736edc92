package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
	"github.com/milstat-dev/milstat/pkg/gateway/remote"
)

func TestRequestShape(t *testing.T) {
	var captured map[string]any
	var contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	gw, err := remote.New(srv.URL)
	gt.NoError(t, err).Required()

	err = gw.Roster().Upsert(context.Background(), &model.RosterEntry{
		Unit:        types.UnitC3,
		PositionKey: "SQ_01_01",
		Name:        "kim",
	})
	gt.NoError(t, err).Required()

	gt.Value(t, contentType).Equal("text/plain;charset=utf-8")
	gt.Value(t, captured["action"]).Equal("update_roster")

	profile, ok := captured["profile"].(map[string]any)
	gt.Bool(t, ok).True()
	gt.Value(t, profile["unit"]).Equal("C3")
	gt.Value(t, profile["positionKey"]).Equal("SQ_01_01")
}

func TestListRoster(t *testing.T) {
	t.Run("filters foreign units client-side", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok","data":[
				{"unit":"C3","positionKey":"SQ_01_01","name":"kim"},
				{"unit":"C4","positionKey":"SQ_01_01","name":"park"},
				{"unit":"C3","positionKey":"","name":"broken"}
			]}`)) //nolint:errcheck
		}))
		defer srv.Close()

		gw, err := remote.New(srv.URL)
		gt.NoError(t, err).Required()

		entries, err := gw.Roster().List(context.Background(), types.UnitC3)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1).Required()
		gt.Value(t, entries[0].Name).Equal("kim")
	})
}

func TestErrorKinds(t *testing.T) {
	t.Run("application error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"error","message":"sheet is locked"}`)) //nolint:errcheck
		}))
		defer srv.Close()

		gw, err := remote.New(srv.URL)
		gt.NoError(t, err).Required()

		_, err = gw.Reports().List(context.Background(), types.UnitC3)
		gt.Bool(t, errors.Is(err, remote.ErrApplication)).True()
	})

	t.Run("HTML page is a format error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><body>Moved to script.google.com</body></html>`)) //nolint:errcheck
		}))
		defer srv.Close()

		gw, err := remote.New(srv.URL)
		gt.NoError(t, err).Required()

		_, err = gw.Tasks().List(context.Background(), types.UnitC3)
		gt.Bool(t, errors.Is(err, remote.ErrFormat)).True()
	})

	t.Run("unreachable endpoint is a connectivity error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		gw, err := remote.New(srv.URL)
		gt.NoError(t, err).Required()

		_, err = gw.Roster().List(context.Background(), types.UnitC3)
		gt.Bool(t, errors.Is(err, remote.ErrConnectivity)).True()
	})

	t.Run("rejects empty url", func(t *testing.T) {
		_, err := remote.New("")
		gt.Error(t, err)
	})
}

func TestTaskStatusNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","data":[
			{"id":"t1","unit":"C3","date":"2026-03-02","timeSlot":"08:00-09:00","taskName":"gate guard","assignees":["SQ_01_01"],"assigneeNames":["kim"]}
		]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	gw, err := remote.New(srv.URL)
	gt.NoError(t, err).Required()

	tasks, err := gw.Tasks().List(context.Background(), types.UnitC3)
	gt.NoError(t, err).Required()
	gt.Array(t, tasks).Length(1).Required()
	gt.Value(t, tasks[0].Status).Equal(types.TaskStatusInProgress)
}

func TestSaveReportID(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	gw, err := remote.New(srv.URL)
	gt.NoError(t, err).Required()

	err = gw.Reports().Upsert(context.Background(), &model.StatusReport{
		Unit:        types.UnitC3,
		PositionKey: "SQ_01_01",
		Name:        "kim",
		Date:        "2026-03-02",
		TimeSlot:    "08:00-09:00",
		Content:     "sick call",
	})
	gt.NoError(t, err).Required()

	report, ok := captured["report"].(map[string]any)
	gt.Bool(t, ok).True()
	gt.Value(t, report["id"]).Equal("C3_SQ_01_01_2026-03-02_0800-0900")
	gt.Value(t, report["userName"]).Equal("kim")
}
