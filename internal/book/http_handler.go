package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"shelfblog/internal/httpx"
)

var formTemplate = template.Must(template.New("form").Parse(`<form method="post" action="/books/{{.ID}}/form">
<input type="hidden" name="id" value="{{.ID}}">
<p><input name="title" value="{{.Title}}"></p>
<p><input name="author" value="{{.Author}}"></p>
<input type="submit" value="Save">
</form>
`))

// HTTPHandler serves the catalog as HTML fragments. Missing books are
// reported with a 200 and a not-found body on every route.
type HTTPHandler struct {
	repo Repository
	form *template.Template
}

func NewHTTPHandler(repo Repository) *HTTPHandler {
	return &HTTPHandler{repo: repo, form: formTemplate}
}

// Register mounts the catalog routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("PUT /books", h.Put)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
	mux.HandleFunc("GET /books/{id}/form", h.EditForm)
	mux.HandleFunc("POST /books/{id}/form", h.SubmitForm)
}

// List handles GET /books
// @Summary List books
// @Description All books sorted by title, one paragraph per book
// @Tags books
// @Produce html
// @Success 200 {string} string
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	for _, b := range h.repo.List() {
		buf.WriteString(fragment(b))
	}
	writeHTML(w, http.StatusOK, buf.String())
}

// Get handles GET /books/{id}
// @Summary Get book by id
// @Tags books
// @Produce html
// @Param id path int true "Book id"
// @Success 200 {string} string
// @Failure 400 {string} string
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.repo.Get(id)
	if errors.Is(err, ErrNotFound) {
		writeHTML(w, http.StatusOK, fmt.Sprintf("<p>Book id %d not found</p>", id))
		return
	}
	writeHTML(w, http.StatusOK, fragment(b))
}

// Put handles PUT /books
// @Summary Insert or replace a book
// @Tags books
// @Accept json
// @Produce html
// @Param book body Book true "Book"
// @Success 200 {string} string
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books [put]
func (h *HTTPHandler) Put(w http.ResponseWriter, r *http.Request) {
	var b Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(b); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid book", details)
		return
	}

	h.repo.Put(b)
	writeHTML(w, http.StatusOK, "Put book: "+html.EscapeString(b.String()))
}

// EditForm handles GET /books/{id}/form
// @Summary Edit form for a book
// @Tags books
// @Produce html
// @Param id path int true "Book id"
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router /books/{id}/form [get]
func (h *HTTPHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.repo.Get(id)
	if errors.Is(err, ErrNotFound) {
		writeHTML(w, http.StatusOK, fmt.Sprintf("<p>Book id %d not found</p>", id))
		return
	}

	var buf bytes.Buffer
	if err := h.form.Execute(&buf, b); err != nil {
		log.Printf("render book form: id=%d error=%v", id, err)
		http.Error(w, "failed to render form", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, buf.String())
}

// SubmitForm handles POST /books/{id}/form
// @Summary Update an existing book from a form
// @Tags books
// @Accept x-www-form-urlencoded
// @Produce html
// @Param id path int true "Book id"
// @Success 200 {string} string
// @Failure 400 {string} string
// @Router /books/{id}/form [post]
func (h *HTTPHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	// The hidden id field, when present, overrides the path id.
	if raw := r.PostForm.Get("id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid book id %q", raw), http.StatusBadRequest)
			return
		}
		id = uint32(v)
	}

	b := Book{
		ID:     id,
		Title:  r.PostForm.Get("title"),
		Author: r.PostForm.Get("author"),
	}
	updated, err := h.repo.PutIfExists(b)
	if errors.Is(err, ErrNotFound) {
		writeHTML(w, http.StatusOK, fmt.Sprintf("Book id not found: %d", b.ID))
		return
	}
	writeHTML(w, http.StatusOK, fragment(updated))
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Produce html
// @Param id path int true "Book id"
// @Success 200 {string} string
// @Failure 400 {string} string
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(id); errors.Is(err, ErrNotFound) {
		writeHTML(w, http.StatusOK, fmt.Sprintf("Book id not found: %d", id))
		return
	}
	writeHTML(w, http.StatusOK, fmt.Sprintf("Delete book id: %d", id))
}

func pathID(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	raw := r.PathValue("id")
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid book id %q", raw), http.StatusBadRequest)
		return 0, false
	}
	return uint32(v), true
}

func fragment(b Book) string {
	return "<p>" + html.EscapeString(b.String()) + "</p>\n"
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
