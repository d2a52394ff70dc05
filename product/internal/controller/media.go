package controller

import (
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Alturino/grocery/internal/storage"
)

const mediaPrefix = "/media"

// mediaFs exposes the blob store to http.FileServer. Directories are hidden.
type mediaFs struct {
	blob *storage.Blob
}

func (m mediaFs) Open(name string) (http.File, error) {
	f, err := m.blob.Open(strings.TrimPrefix(path.Clean(name), "/"))
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

// AttachMediaController serves stored images under /media/{path}.
func AttachMediaController(router *mux.Router, blob *storage.Blob) {
	files := http.StripPrefix(mediaPrefix, http.FileServer(mediaFs{blob: blob}))
	router.PathPrefix(mediaPrefix + "/").Handler(files).Methods(http.MethodGet, http.MethodHead)
}
