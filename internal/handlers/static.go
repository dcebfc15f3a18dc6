package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler serves the built frontend. Unknown paths fall back to
// index.html so client-side routing works on refresh.
func SPAHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			index := filepath.Join(staticDir, "index.html")
			if _, err := os.Stat(index); err != nil {
				http.NotFound(w, r)
				return
			}
			http.ServeFile(w, r, index)
			return
		}
		http.ServeFile(w, r, path)
	}
}

// SwaggerHandler serves docs/swagger.json when the file exists and 404s
// otherwise; API docs are optional per instance.
func SwaggerHandler(docsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(docsDir, "swagger.json")
		if !strings.HasPrefix(path, filepath.Clean(docsDir)) {
			http.NotFound(w, r)
			return
		}
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, path)
	}
}
