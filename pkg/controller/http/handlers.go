package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
	"github.com/milstat-dev/milstat/pkg/usecase"
	"github.com/milstat-dev/milstat/pkg/utils/errutil"
	"github.com/milstat-dev/milstat/pkg/utils/safe"
)

type ctxKey int

const ctxKeyUnit ctxKey = iota

// unitCtx resolves and validates the {unit} path parameter
func unitCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		unit, err := types.ParseUnit(chi.URLParam(r, "unit"))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUnit, unit)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unitFrom(r *http.Request) types.Unit {
	unit, _ := r.Context().Value(ctxKeyUnit).(types.Unit)
	return unit
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// respondError maps domain errors onto HTTP status codes
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrSlotOccupied):
		errutil.HandleHTTP(ctx, w, err, http.StatusConflict)
	case errors.Is(err, usecase.ErrTaskNotFound), errors.Is(err, usecase.ErrNoProfile):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "invalid request body")
	}
	return nil
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	type unitResponse struct {
		ID          types.Unit `json:"id"`
		DisplayName string     `json:"displayName"`
	}
	units := types.AllUnits()
	resp := make([]unitResponse, len(units))
	for i, u := range units {
		resp[i] = unitResponse{ID: u, DisplayName: u.DisplayName()}
	}
	respondJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) handleTimeSlots(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, types.CanonicalTimeSlots())
}

func (s *Server) handleGridLayout(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, s.uc.GridStructure())
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.uc.Profile(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, profile)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var profile model.Profile
	if err := decodeBody(r, &profile); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	if err := profile.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	if err := s.uc.Register(r.Context(), &profile); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, &profile)
}

func (s *Server) handleUnbind(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Unbind(r.Context()); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRoster(w http.ResponseWriter, r *http.Request) {
	snap, err := s.uc.Snapshot(r.Context(), unitFrom(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, snap.Roster)
}

func (s *Server) handleRemoveRoster(w http.ResponseWriter, r *http.Request) {
	unit := unitFrom(r)
	positionKey := chi.URLParam(r, "positionKey")
	if positionKey == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("positionKey is required"), http.StatusBadRequest)
		return
	}
	if err := s.uc.RemoveRoster(r.Context(), unit, positionKey); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.uc.Reports(r.Context(), unitFrom(r), r.URL.Query().Get("positionKey"))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, reports)
}

func (s *Server) handleSaveReport(w http.ResponseWriter, r *http.Request) {
	var report model.StatusReport
	if err := decodeBody(r, &report); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	report.Unit = unitFrom(r)
	if err := report.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	if err := s.uc.SaveReport(r.Context(), &report); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, &report)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.DeleteReport(r.Context(), unitFrom(r), chi.URLParam(r, "id")); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// cellQuery extracts and validates the (date, timeSlot) query pair
func cellQuery(r *http.Request) (types.Date, types.TimeSlot, error) {
	date, err := types.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		return "", "", err
	}
	slot, err := types.ParseTimeSlot(r.URL.Query().Get("timeSlot"))
	if err != nil {
		return "", "", err
	}
	return date, slot, nil
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	var date types.Date
	var slot types.TimeSlot
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := types.ParseDate(raw)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		date = parsed
	}
	if raw := r.URL.Query().Get("timeSlot"); raw != "" {
		parsed, err := types.ParseTimeSlot(raw)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		slot = parsed
	}
	tasks, err := s.uc.Tasks(r.Context(), unitFrom(r), date, slot)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, tasks)
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date      types.Date     `json:"date"`
		TimeSlot  types.TimeSlot `json:"timeSlot"`
		TaskName  string         `json:"taskName"`
		Assignees []string       `json:"assignees"`
	}
	if err := decodeBody(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	task, err := s.uc.Dispatch(r.Context(), unitFrom(r), req.Date, req.TimeSlot, req.TaskName, req.Assignees)
	if err != nil {
		if errors.Is(err, usecase.ErrSlotOccupied) || errors.Is(err, usecase.ErrTaskNotFound) {
			respondError(r.Context(), w, err)
		} else {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		}
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, task)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.uc.ToggleTask(r.Context(), unitFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.DeleteTask(r.Context(), unitFrom(r), chi.URLParam(r, "id")); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	date, slot, err := cellQuery(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	candidates, err := s.uc.Candidates(r.Context(), unitFrom(r), date, slot)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, candidates)
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	date, slot, err := cellQuery(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	rows, err := s.uc.Grid(r.Context(), unitFrom(r), date, slot)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, rows)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Reload(r.Context(), unitFrom(r), true); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
