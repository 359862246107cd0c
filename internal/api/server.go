package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"filegrip/internal/domain"
	"filegrip/internal/logging"
)

// maxUploadSize caps multipart bodies accepted by the handler
const maxUploadSize = 64 << 20

// NewHandler serves ds over the same /api routes the Client speaks.
// It backs the development server and the end-to-end tests.
func NewHandler(ds DataSource) http.Handler {
	s := &server{ds: ds}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.CleanPath,
		middleware.Timeout(30*time.Second),
		requestLogger,
	)
	r.Route("/api", func(r chi.Router) {
		r.Get("/files", s.list)
		r.Post("/directory", s.createDirectory)
		r.Post("/upload", s.upload)
		r.Delete("/delete/{id}", s.delete)
		r.Put("/rename/{id}", s.rename)
		r.Get("/disk-space", s.diskSpace)
	})
	return r
}

type server struct {
	ds DataSource
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	contents, err := s.ds.ListDirectory(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, err)
		return
	}
	if contents.Files == nil {
		contents.Files = []domain.FileEntry{}
	}
	writeJSON(w, http.StatusOK, listResponse{Path: contents.Path, ParentPath: contents.ParentPath, Files: contents.Files})
}

func (s *server) createDirectory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, &APIError{Op: "create", Status: http.StatusBadRequest, Message: "name is required"})
		return
	}
	entry, err := s.ds.CreateDirectory(r.Context(), req.Path, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Success: true, Item: entry})
}

func (s *server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, &APIError{Op: "upload", Status: http.StatusBadRequest, Message: err.Error()})
		return
	}
	defer file.Close()

	entry, err := s.ds.Upload(r.Context(), r.URL.Query().Get("path"), path.Base(header.Filename), file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Success: true, File: entry})
}

func (s *server) delete(w http.ResponseWriter, r *http.Request) {
	full := NormalizePath(r.URL.Query().Get("path"))
	entry := domain.FileEntry{ID: chi.URLParam(r, "id"), Name: path.Base(full), Path: full}
	if err := s.ds.Delete(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

func (s *server) rename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewName string `json:"newName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewName == "" {
		writeError(w, &APIError{Op: "rename", Status: http.StatusBadRequest, Message: "newName is required"})
		return
	}
	q := r.URL.Query()
	full := JoinPath(NormalizePath(q.Get("dir")), q.Get("path"))
	entry := domain.FileEntry{ID: chi.URLParam(r, "id"), Name: path.Base(full), Path: full}

	renamed, err := s.ds.Rename(r.Context(), entry, req.NewName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Success: true, Item: renamed})
}

func (s *server) diskSpace(w http.ResponseWriter, r *http.Request) {
	disk, err := s.ds.DiskSpace(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, diskSpaceResponse{Success: true, Data: disk})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()
	if apiErr, ok := AsAPIError(err); ok {
		if apiErr.Status >= 400 {
			status = apiErr.Status
		}
		msg = apiErr.Message
	} else if errors.Is(err, http.ErrHandlerTimeout) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, statusResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to write response", zap.Error(err))
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.Debug("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
