package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/iamvkosarev/karaoke-server/internal/model"
	"github.com/rs/zerolog"
)

type SongService interface {
	List() (model.SongList, error)
}

type Handler struct {
	songService SongService
	files       fs.FS
	private     map[string]bool
}

// New serves files and songs from the same tree. Files whose base name is
// listed in private are answered with 404.
func New(songService SongService, files fs.FS, private ...string) *Handler {
	h := &Handler{
		songService: songService,
		files:       files,
		private:     make(map[string]bool, len(private)),
	}
	for _, name := range private {
		h.private[name] = true
	}
	return h
}

// Songs writes the current song directory names as a JSON array. Failing to
// read the songs directory is a server error, never an empty list.
func (h *Handler) Songs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := zerolog.Ctx(r.Context())

		songs, err := h.songService.List()
		if err != nil {
			log.Error().Err(err).Msg("failed to list songs")
			http.Error(w, "Failed to list songs", http.StatusInternalServerError)
			return
		}

		body, err := json.Marshal(songs.Names())
		if err != nil {
			log.Error().Err(err).Msg("failed to encode songs")
			http.Error(w, "Failed to encode songs", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			log.Debug().Err(err).Msg("client went away while sending songs")
		}
	}
}

// Static serves files from the library root. Only GET and HEAD are served.
func (h *Handler) Static() http.Handler {
	files := http.FileServer(http.FS(h.files))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, fmt.Sprintf("Unsupported method (%q)", r.Method), http.StatusNotImplemented)
			return
		}
		if h.private[path.Base(path.Clean(r.URL.Path))] {
			http.NotFound(w, r)
			return
		}
		// FileServer redirects .../index.html to its directory; a request
		// naming the file gets the file.
		if strings.HasSuffix(r.URL.Path, "/index.html") && h.serveFile(w, r) {
			return
		}
		files.ServeHTTP(w, r)
	})
}

// serveFile writes the regular file named by the request path and reports
// whether it did. Anything else is left to the file server.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request) bool {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	f, err := h.files.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
	return true
}
