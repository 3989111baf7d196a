// Package web embebe la página del cliente. Una sola página estática;
// todo el estado vive en el browser y habla con la API JSON.
package web

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(indexHTML)
	}
}
