package devserver

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"fortio.org/log"
	"fortio.org/sets"
)

// JavaScriptType is what browsers accept for ES modules; some platform
// tables still map .js to text/plain or legacy x- types.
const JavaScriptType = "application/javascript"

// DefaultTypes are the content types forced regardless of the system tables.
var DefaultTypes = map[string]string{
	".js":   JavaScriptType,
	".mjs":  JavaScriptType,
	".css":  "text/css",
	".html": "text/html",
}

// MIMETypes holds the extension to content type overrides.
type MIMETypes struct {
	types map[string]string
}

// NewMIMETypes returns the DefaultTypes table extended (or amended) by extra.
func NewMIMETypes(extra map[string]string) *MIMETypes {
	m := &MIMETypes{types: make(map[string]string, len(DefaultTypes)+len(extra))}
	for ext, ctype := range DefaultTypes {
		m.types[ext] = ctype
	}
	for ext, ctype := range extra {
		m.types[ext] = ctype
	}
	return m
}

// ParseOverride parses an "ext=type" flag value, e.g. ".wasm=application/wasm".
// The leading dot of the extension is optional.
func ParseOverride(s string) (string, string, error) {
	ext, ctype, found := strings.Cut(s, "=")
	ext = strings.TrimSpace(ext)
	ctype = strings.TrimSpace(ctype)
	if !found || ext == "" || ctype == "" {
		return "", "", fmt.Errorf("invalid mime override %q, expecting ext=type", s)
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext, ctype, nil
}

// TypeByName returns the forced content type for name, if its extension has one.
// Matching is case sensitive; everything else is left to the file server.
func (m *MIMETypes) TypeByName(name string) (string, bool) {
	ctype, ok := m.types[path.Ext(name)]
	return ctype, ok
}

// Extensions returns the sorted overridden extensions.
func (m *MIMETypes) Extensions() []string {
	exts := sets.New[string]()
	for ext := range m.types {
		exts.Add(ext)
	}
	return sets.Sort(exts)
}

// Wrap sets the forced content type before delegating to next, http.FileServer
// keeps a Content-Type that is already present (and replaces it on errors).
// Directory requests are served from their index.html so they get its type.
func (m *MIMETypes) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if strings.HasSuffix(name, "/") {
			name += "index.html"
		}
		if ctype, ok := m.TypeByName(name); ok {
			log.LogVf("Forcing %s for %s", ctype, r.URL.Path)
			w.Header().Set("Content-Type", ctype)
		}
		next.ServeHTTP(w, r)
	})
}
