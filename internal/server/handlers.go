package server

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"worldfeed/internal/feed"
	"worldfeed/internal/logging"
	"worldfeed/internal/viewer"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexData struct {
	LoadFailed bool
	FailedText string
	SortMode   string
	Tag        string
	TagOptions []string
	Entries    []viewer.Entry
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, view, loadErr := s.snapshot()

	data := indexData{
		FailedText: viewer.FailedToLoad,
		SortMode:   string(viewer.SortPopular),
		Tag:        viewer.TagAll,
	}
	if loadErr != nil || view == nil {
		data.LoadFailed = true
	} else {
		sortMode := viewer.SortPopular
		if mode, err := viewer.ParseSortMode(r.URL.Query().Get("sort")); err == nil {
			sortMode = mode
		}
		if tag := r.URL.Query().Get("tag"); tag != "" {
			data.Tag = tag
		}
		data.SortMode = string(sortMode)
		data.TagOptions = view.TagOptions()
		data.Entries = viewer.Render(view.Worlds(), sortMode, data.Tag)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("render index", logging.Error(err))
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, _, loadErr := s.snapshot()
	if loadErr != nil {
		http.Error(w, viewer.FailedToLoad, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, view, loadErr := s.snapshot()
	payload := map[string]any{
		"export":   feed.ExportFileName,
		"loaded":   loadErr == nil && view != nil,
		"worlds":   0,
		"tagCount": 0,
	}
	if view != nil {
		payload["worlds"] = len(view.Worlds())
		payload["tagCount"] = len(view.TagOptions()) - 1
	}
	if loadErr != nil {
		payload["error"] = loadErr.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		s.logger.Error("encode status", logging.Error(err))
	}
}
