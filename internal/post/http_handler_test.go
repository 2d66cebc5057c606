package post

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestMux(h *HTTPHandler) *http.ServeMux {
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func TestHTTPHandler_Index(t *testing.T) {
	reader := NewReader(append(samplePosts(), Post{Title: "Two Words", Date: time.Now()}))
	mux := newTestMux(NewHTTPHandler(reader, "My blog"))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>My blog</title>")
	assert.Contains(t, body, `<a href="/post/Antigone">Antigone</a>`)
	assert.Contains(t, body, `<a href="/post/Two%20Words">Two Words</a>`)
	assert.Less(t, strings.Index(body, "Antigone"), strings.Index(body, "Beloved"))
}

func TestHTTPHandler_Show(t *testing.T) {
	mux := newTestMux(NewHTTPHandler(NewReader(samplePosts()), "My blog"))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		contains       []string
	}{
		{
			name:           "found",
			path:           "/post/Beloved",
			expectedStatus: http.StatusOK,
			contains:       []string{"<h1>Beloved</h1>", "2023-02-01", "Toni Morrison"},
		},
		{
			name:           "missing",
			path:           "/post/Missing",
			expectedStatus: http.StatusNotFound,
			contains:       []string{"404 not found"},
		},
		{
			name:           "case sensitive",
			path:           "/post/beloved",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestHTTPHandler_ShowEscapesBody(t *testing.T) {
	reader := NewReader([]Post{{Title: "XSS", Body: "<script>alert(1)</script>"}})
	mux := newTestMux(NewHTTPHandler(reader, "My blog"))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post/XSS", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>")
}

func TestHTTPHandler_RenderFailure(t *testing.T) {
	h := NewHTTPHandler(NewReader(samplePosts()), "My blog")
	h.tmpl = template.Must(template.New("broken").Parse(
		`{{define "index.html"}}{{.Missing}}{{end}}{{define "post.html"}}{{.Missing}}{{end}}`,
	))
	mux := newTestMux(h)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to render template. Error")

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post/Antigone", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "try again later\n", w.Body.String())
}

func TestHTTPHandler_UnknownPathIsNotIndex(t *testing.T) {
	mux := newTestMux(NewHTTPHandler(NewReader(nil), "My blog"))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
