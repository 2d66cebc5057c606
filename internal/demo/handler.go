// Package demo holds small endpoints that exercise routing and request
// extraction: path values, query strings, JSON bodies and static content.
package demo

import (
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"shelfblog/internal/httpx"
)

//go:embed static/hello.html
var helloHTML []byte

// 1x1 transparent PNG.
var demoPNG = mustDecode("iVBORw0KGgoAAAANSUhEUgAAAAEAAAAB" +
	"CAYAAAAfFcSJAAAADUlEQVR42mPk+89Q" +
	"DwADvgGOSHzRgAAAAABJRU5ErkJggg==")

func mustDecode(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Register mounts the demo routes and the catch-all fallback on mux.
func Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", Hello)
	mux.HandleFunc("GET /demo.html", DemoHTML)
	mux.HandleFunc("GET /hello.html", HelloHTML)
	mux.HandleFunc("GET /demo-status", DemoStatus)
	mux.HandleFunc("GET /demo-uri", DemoURI)
	mux.HandleFunc("GET /demo.png", DemoPNG)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete} {
		mux.HandleFunc(method+" /foo", Foo)
	}
	mux.HandleFunc("GET /items/{id}", ItemByID)
	mux.HandleFunc("GET /items", Items)
	mux.HandleFunc("GET /demo.json", GetDemoJSON)
	mux.HandleFunc("PUT /demo.json", PutDemoJSON)
	mux.Handle("/", &fallback{mux: mux})
}

var routedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// fallback answers requests no other pattern on mux claims. A path that is
// routed for some other method gets 405 with an Allow header.
type fallback struct {
	mux *http.ServeMux
}

func (f *fallback) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if allowed := f.allowedMethods(r); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	text(w, http.StatusNotFound, "No route "+r.URL.RequestURI())
}

func (f *fallback) allowedMethods(r *http.Request) []string {
	var allowed []string
	for _, method := range routedMethods {
		if method == r.Method {
			continue
		}
		alt := r.Clone(r.Context())
		alt.Method = method
		if _, pattern := f.mux.Handler(alt); pattern != "" && pattern != "/" {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func Hello(w http.ResponseWriter, r *http.Request) {
	text(w, http.StatusOK, "Hello, World!")
}

func DemoHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<h1>Hello</h1>"))
}

func HelloHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(helloHTML)
}

func DemoStatus(w http.ResponseWriter, r *http.Request) {
	text(w, http.StatusOK, "Everything is OK")
}

func DemoURI(w http.ResponseWriter, r *http.Request) {
	text(w, http.StatusOK, "The URI is: "+r.URL.RequestURI())
}

func DemoPNG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(demoPNG)
}

// Foo echoes the request method.
func Foo(w http.ResponseWriter, r *http.Request) {
	text(w, http.StatusOK, r.Method+" foo")
}

func ItemByID(w http.ResponseWriter, r *http.Request) {
	text(w, http.StatusOK, fmt.Sprintf("Get items with path id: %q", r.PathValue("id")))
}

func Items(w http.ResponseWriter, r *http.Request) {
	text(w, http.StatusOK, "Get items with query params: "+formatParams(r.URL.Query()))
}

// formatParams renders query params as {"k": "v", ...} sorted by key. The
// last value wins for repeated keys.
func formatParams(query map[string][]string) string {
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		values := query[key]
		pairs = append(pairs, strconv.Quote(key)+": "+strconv.Quote(values[len(values)-1]))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func GetDemoJSON(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"a": "b"})
}

func PutDemoJSON(w http.ResponseWriter, r *http.Request) {
	var data any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	text(w, http.StatusOK, fmt.Sprintf("Put demo JSON data: %v", data))
}

func text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
