package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var embedded embed.FS

// mountAssets serves the embedded playground frontend at the root.
func (s *Server) mountAssets(mux *http.ServeMux) error {
	staticFS, err := fs.Sub(embedded, "static")
	if err != nil {
		return err
	}
	mux.Handle("/", http.FileServerFS(staticFS))
	return nil
}
