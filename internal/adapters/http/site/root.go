// Package site serves the embedded aura preview page.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("preview site serve failed")
)

// Register attaches the preview page and its assets to mux. Only the page
// and its assets are served; other paths stay 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	root := NewRootHandler()
	mux.HandleFunc("/", root.HandleRoot)
}

// RootHandler handles root path requests
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

// HandleRoot serves GET / and the preview assets.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	switch r.URL.Path {
	case "/", "/preview.js", "/preview.css":
		h.files.ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}
}
