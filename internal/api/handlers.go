package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/deskulpt-apps/deskulpt/internal/plugin"
	"github.com/deskulpt-apps/deskulpt/internal/settings"
	"github.com/deskulpt-apps/deskulpt/internal/widget"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) handleListPlugins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"plugins": s.plugins.Plugins()})
}

func (s *Server) handleGetPlugin(w http.ResponseWriter, r *http.Request) {
	rec, err := s.plugins.Plugin(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleLoadPlugin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, errors.New("path is required"))
		return
	}

	rec, err := s.plugins.LoadPlugin(req.Path)
	if err != nil {
		var conflict *plugin.ConflictError
		if errors.As(err, &conflict) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUnloadPlugin(w http.ResponseWriter, r *http.Request) {
	if err := s.plugins.UnloadPlugin(chi.URLParam(r, "name")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReloadPlugin(w http.ResponseWriter, r *http.Request) {
	err := s.plugins.ReloadPlugin(chi.URLParam(r, "name"))
	if err == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if errors.Is(err, plugin.ErrReloadUnsupported) {
		writeError(w, http.StatusNotImplemented, err)
		return
	}
	writeError(w, statusFor(err), err)
}

func (s *Server) handleCallCommand(w http.ResponseWriter, r *http.Request) {
	command := chi.URLParam(r, "command")
	var req struct {
		WidgetID string          `json:"widgetId"`
		Payload  json.RawMessage `json:"payload"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	callID := uuid.NewString()
	w.Header().Set("X-Call-ID", callID)

	log := s.logger.With("call_id", callID, "command", command, "widget", req.WidgetID)
	start := time.Now()
	result, err := s.caller.CallCommand(command, req.WidgetID, string(req.Payload))
	if err != nil {
		log.Warn("command failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		writeError(w, statusFor(err), err)
		return
	}
	log.Debug("command dispatched", "duration_ms", time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"widgets": s.widgets.Widgets()})
}

func (s *Server) handleRescanWidgets(w http.ResponseWriter, r *http.Request) {
	if err := s.widgets.Rescan(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"widgets": s.widgets.Widgets()})
}

func (s *Server) handleAllSettings(w http.ResponseWriter, r *http.Request) {
	all, err := s.settings.All(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": all})
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	value, err := s.settings.Get(chi.URLParam(r, "id"), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"value": value})
}

func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.settings.Set(chi.URLParam(r, "id"), chi.URLParam(r, "key"), req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSetting(w http.ResponseWriter, r *http.Request) {
	if err := s.settings.Delete(chi.URLParam(r, "id"), chi.URLParam(r, "key")); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, plugin.ErrPluginNotFound),
		errors.Is(err, plugin.ErrUnknownCommand),
		errors.Is(err, settings.ErrNotFound),
		errors.Is(err, widget.ErrWidgetNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
