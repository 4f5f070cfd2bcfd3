package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/angelmondragon/plu-backend/api/responses"
	"github.com/angelmondragon/plu-backend/pkg/version"
)

// Info answers with the program identification string.
func Info() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, version.ProgramName())
	}
}

// Index serves the front-end entry page from staticDir, falling back to Info when the
// bundle is not installed.
func Index(staticDir string) http.HandlerFunc {
	info := Info()
	return func(w http.ResponseWriter, r *http.Request) {
		if staticDir != "" {
			index := filepath.Join(staticDir, "index.html")
			if st, err := os.Stat(index); err == nil && !st.IsDir() {
				http.ServeFile(w, r, index)
				return
			}
		}
		info(w, r)
	}
}

// Static serves the bundle assets. Request paths keep their prefix, so /assets/app.js maps
// to <staticDir>/assets/app.js. Without a bundle directory every asset is a 404.
func Static(staticDir string) http.Handler {
	if staticDir == "" {
		return http.NotFoundHandler()
	}
	if st, err := os.Stat(staticDir); err != nil || !st.IsDir() {
		return http.NotFoundHandler()
	}
	return http.FileServer(http.Dir(staticDir))
}
