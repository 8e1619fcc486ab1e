package middleware

import "net/http"

// FinalHeaders are added to every response just before its header block is
// written.
var FinalHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET",
	"Cache-Control":                "no-store, no-cache, must-revalidate",
}

// Finalize sets FinalHeaders on the response at the moment its headers are
// committed, after the wrapped handler has queued its own. Handlers that
// reset headers while producing an error still end up with them.
func Finalize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fw := &finalizingWriter{ResponseWriter: w}
		next.ServeHTTP(fw, r)
		// nothing was written: net/http sends an implicit 200 after return
		fw.finalize()
	})
}

type finalizingWriter struct {
	http.ResponseWriter
	done bool
}

func (w *finalizingWriter) finalize() {
	if w.done {
		return
	}
	w.done = true

	h := w.Header()
	for k, v := range FinalHeaders {
		h.Set(k, v)
	}
}

func (w *finalizingWriter) WriteHeader(code int) {
	w.finalize()
	w.ResponseWriter.WriteHeader(code)
}

func (w *finalizingWriter) Write(b []byte) (int, error) {
	w.finalize()
	return w.ResponseWriter.Write(b)
}

func (w *finalizingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
