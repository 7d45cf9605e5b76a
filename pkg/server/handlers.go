package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/schema"
	"github.com/goliatone/go-pageblocks/pkg/session"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

type changeResponse struct {
	Path  string `json:"path"`
	Dirty bool   `json:"dirty"`
}

type alertsResponse struct {
	Alerts []session.Alert `json:"alerts"`
	Error  string          `json:"error,omitempty"`
}

type uploadResponse struct {
	Stored  string `json:"stored"`
	Preview string `json:"preview"`
}

type fieldRequest struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

type blockRequest struct {
	List  string `json:"list"`
	Index *int   `json:"index"`
	Kind  string `json:"kind"`
}

type moveRequest struct {
	List string `json:"list"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func notices(alerts []session.Alert) []render.Notice {
	out := make([]render.Notice, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, render.Notice{Level: string(alert.Level), Message: alert.Message})
	}
	return out
}

func (s *Server) page(mode render.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		options := render.RenderOptions{Mode: mode, Title: s.title, Theme: s.theme}
		if mode == render.ModeEdit {
			options.Notices = notices(s.session.Alerts())
		}
		result, err := s.renderer.Render(r.Context(), s.session.Page(), s.session.Schema(), options)
		if err != nil {
			s.logger.Error("render failed", "mode", mode, "error", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		s.metrics.diagnostics.Add(float64(len(result.Diagnostics)))
		w.Header().Set("Content-Type", s.renderer.ContentType())
		if _, err := w.Write(result.Body); err != nil {
			s.logger.Warn("page write failed", "error", err)
		}
	}
}

func (s *Server) content(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, s.session.Values())
}

func (s *Server) schema(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pageSchema := s.session.Schema()
	s.mu.Unlock()

	doc, err := schema.OpenAPI(pageSchema, schema.Info{Title: s.title})
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	format := r.URL.Query().Get("format")
	data, err := schema.Marshal(doc, format)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	contentType := "application/json"
	if format == "yaml" || format == "yml" {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func (s *Server) alerts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, alertsResponse{Alerts: nonNil(s.session.Alerts())})
}

func (s *Server) setField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	path, err := content.ParsePath(req.Path)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.session.Set(path, req.Value)
	s.metrics.edit("set", err)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, changeResponse{Path: path.String(), Dirty: s.session.Dirty()})
}

func (s *Server) addBlock(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	list, err := content.ParsePath(req.List)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	index := -1
	if req.Index != nil {
		index = *req.Index
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path, err := s.session.AddBlock(list, index, content.Kind(req.Kind))
	s.metrics.edit("add", err)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, changeResponse{Path: path.String(), Dirty: s.session.Dirty()})
}

func (s *Server) removeBlock(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	list, err := content.ParsePath(req.List)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if req.Index == nil {
		s.fail(w, http.StatusBadRequest, errors.New("index is required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.session.RemoveBlock(list, *req.Index)
	s.metrics.edit("remove", err)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, changeResponse{Path: list.String(), Dirty: s.session.Dirty()})
}

func (s *Server) moveBlock(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	list, err := content.ParsePath(req.List)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.session.MoveBlock(list, req.From, req.To)
	s.metrics.edit("move", err)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, changeResponse{Path: list.Index(req.To).String(), Dirty: s.session.Dirty()})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if s.assets == nil {
		s.fail(w, http.StatusNotImplemented, errors.New("uploads are not configured"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid upload: %w", err))
		return
	}
	path, err := content.ParsePath(r.FormValue("path"))
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid upload: %w", err))
		return
	}
	defer file.Close()
	name, err := store.BaseName(header.Filename)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.session.UploadDir(path)
	if err != nil {
		s.metrics.edit("upload", err)
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	written, err := s.assets.Write(r.Context(), dir, name, file)
	if err != nil {
		s.metrics.edit("upload", err)
		s.logger.Error("upload write failed", "path", path.String(), "error", err)
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	stored, err := s.session.Upload(path, name)
	s.metrics.edit("upload", err)
	if err != nil {
		if rmErr := os.Remove(written); rmErr != nil {
			s.logger.Warn("orphan upload not removed", "file", written, "error", rmErr)
		}
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	preview, _ := s.session.Preview(path)
	s.logger.Info("asset uploaded", "path", path.String(), "file", written)
	s.writeJSON(w, http.StatusOK, uploadResponse{Stored: stored, Preview: preview})
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.session.Submit(r.Context())
	resp := alertsResponse{Alerts: nonNil(s.session.Alerts())}
	if err != nil {
		s.metrics.submits.WithLabelValues("failure").Inc()
		resp.Error = err.Error()
		s.writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	s.metrics.submits.WithLabelValues("success").Inc()
	s.writeJSON(w, http.StatusOK, resp)
}

func nonNil(alerts []session.Alert) []session.Alert {
	if alerts == nil {
		return []session.Alert{}
	}
	return alerts
}
