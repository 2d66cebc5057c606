package post

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type indexPage struct {
	Title string
	Links []string
}

type HTTPHandler struct {
	repo  Repository
	title string
	tmpl  *template.Template
}

func NewHTTPHandler(repo Repository, title string) *HTTPHandler {
	return &HTTPHandler{repo: repo, title: title, tmpl: templates}
}

// Register mounts the blog routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /post/{title}", h.Show)
}

// Index handles GET /
// @Summary Blog index
// @Tags posts
// @Produce html
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router / [get]
func (h *HTTPHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{Title: h.title, Links: h.repo.Titles()}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		log.Printf("render index: error=%v", err)
		http.Error(w, fmt.Sprintf("Failed to render template. Error %v", err), http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

// Show handles GET /post/{title}
// @Summary Render one post
// @Tags posts
// @Produce html
// @Param title path string true "Post title"
// @Success 200 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /post/{title} [get]
func (h *HTTPHandler) Show(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.FindByTitle(r.PathValue("title"))
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "404 not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("find post: error=%v", err)
		http.Error(w, "try again later", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "post.html", p); err != nil {
		log.Printf("render post: title=%q error=%v", p.Title, err)
		http.Error(w, "try again later", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
