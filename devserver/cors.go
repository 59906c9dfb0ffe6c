package devserver

import (
	"net/http"
	"sync"
)

// CORS is the set of Access-Control headers added to every response.
type CORS struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
}

// DefaultCORS lets any origin load the application during development.
var DefaultCORS = CORS{
	AllowOrigin:  "*",
	AllowMethods: "GET, POST, OPTIONS",
	AllowHeaders: "Content-Type",
}

// Wrap adds the headers unconditionally, before next writes anything, so
// error pages and redirects from the file server carry them too.
func (c CORS) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", c.AllowOrigin)
		h.Set("Access-Control-Allow-Methods", c.AllowMethods)
		h.Set("Access-Control-Allow-Headers", c.AllowHeaders)
		next.ServeHTTP(w, r)
	})
}

// Serialize handles one request at a time.
func Serialize(next http.Handler) http.Handler {
	var mu sync.Mutex
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		next.ServeHTTP(w, r)
	})
}
