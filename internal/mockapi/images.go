package mockapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/storage"

	"github.com/gorilla/mux"
)

// handleDownload serves an uploaded image back by its storage key.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	file, size, err := s.images.Open(r.Context(), key)
	switch {
	case errors.Is(err, storage.ErrInvalidKey):
		http.Error(w, "Invalid key", http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", storage.ContentType(key))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Image download interrupted", "key", key, "error", err)
	}
}
