package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cover-photo/preset"
	"cover-photo/session"
)

// DefaultMaxUploadBytes caps a single image upload.
const DefaultMaxUploadBytes = 10 << 20

type Options struct {
	MaxUploadBytes int64
}

func RegisterRoutes(manager *session.Manager, pm *preset.Manager, staticFS fs.FS, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &handler{manager: manager, presetManager: pm, maxUpload: opts.MaxUploadBytes}

	r.Get("/api/options", h.getOptions)

	// Presets API
	r.Get("/api/presets", h.getPresets)
	r.Put("/api/presets", h.putPresets)

	// Sessions API
	r.Get("/api/sessions", h.listSessions)
	r.Post("/api/sessions", h.createSession)
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.getSession)
		r.Delete("/", h.killSession)
		r.Patch("/config", h.patchConfig)
		r.Post("/viewport", h.resizeViewport)
		r.Post("/images", h.uploadImage)
		r.Put("/images/{imageID}", h.resizeImage)
		r.Delete("/images/{imageID}", h.removeImage)
		r.Get("/assets/{assetID}", h.getAsset)
		r.Get("/tree", h.getTree)
		r.Get("/export", h.exportImage)
		r.Post("/feedback", h.submitFeedback)

		// WebSocket
		r.Get("/ws", h.handleWS)
	})

	// Static sub-FS: strip the "static/" prefix present in the embed.FS. A
	// staticFS already rooted at the page directory is used as is.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	// Reading the file directly avoids http.FileServer's index.html redirect.
	r.Get("/", serveFile(staticSub, "index.html"))
	r.Get("/pencil.png", h.getPencil)

	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type handler struct {
	manager       *session.Manager
	presetManager *preset.Manager
	maxUpload     int64
}

// session looks up the {id} URL parameter, writing a 404 when it is unknown.
func (h *handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := h.manager.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
	}
	return s, ok
}
