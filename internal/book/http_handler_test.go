package book

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"shelfblog/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestServer(store *Store) (*HTTPHandler, *http.ServeMux) {
	handler := NewHTTPHandler(store)
	mux := http.NewServeMux()
	handler.Register(mux)
	return handler, mux
}

func serve(mux *http.ServeMux, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestHTTPHandler_List(t *testing.T) {
	_, mux := newTestServer(NewStore(
		Book{ID: 3, Title: "Candide", Author: "Voltaire"},
		Book{ID: 1, Title: "Antigone", Author: "Sophocles"},
	))

	w := serve(mux, httptest.NewRequest(http.MethodGet, "/books", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<p>Antigone by Sophocles</p>\n<p>Candide by Voltaire</p>\n", w.Body.String())
}

func TestHTTPHandler_Get(t *testing.T) {
	_, mux := newTestServer(NewStore(DefaultBooks()...))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "found",
			path:           "/books/2",
			expectedStatus: http.StatusOK,
			expectedBody:   "<p>Beloved by Toni Morrison</p>\n",
		},
		{
			name:           "not found keeps 200",
			path:           "/books/9",
			expectedStatus: http.StatusOK,
			expectedBody:   "<p>Book id 9 not found</p>",
		},
		{
			name:           "non numeric id",
			path:           "/books/abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "id out of range",
			path:           "/books/4294967296",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHTTPHandler_Put(t *testing.T) {
	store := NewStore()
	_, mux := newTestServer(store)

	t.Run("insert", func(t *testing.T) {
		w := serve(mux, testutil.NewJSONRequest(http.MethodPut, "/books", Book{ID: 1, Title: "Candide", Author: "Voltaire"}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Put book: Candide by Voltaire", w.Body.String())

		got, err := store.Get(1)
		assert.NoError(t, err)
		assert.Equal(t, Book{ID: 1, Title: "Candide", Author: "Voltaire"}, got)
	})

	t.Run("replace", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/books", strings.NewReader(`{"id":1,"title":"Candide, ou l'Optimisme","author":"Voltaire"}`))
		w := serve(mux, r)

		assert.Equal(t, http.StatusOK, w.Code)
		got, _ := store.Get(1)
		assert.Equal(t, "Candide, ou l'Optimisme", got.Title)
	})

	t.Run("output is escaped", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/books", strings.NewReader(`{"id":2,"title":"<b>Bold</b>","author":"X"}`))
		w := serve(mux, r)

		assert.Equal(t, "Put book: &lt;b&gt;Bold&lt;/b&gt; by X", w.Body.String())
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/books", strings.NewReader(`{"id":`))
		w := serve(mux, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("zero id", func(t *testing.T) {
		w := serve(mux, testutil.NewJSONRequest(http.MethodPut, "/books", Book{ID: 0, Title: "Nobody", Author: "None"}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := testutil.DecodeJSONBody(w)
		assert.Equal(t, false, body["success"])
		errBody, _ := body["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
		_, err := store.Get(0)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestHTTPHandler_EditForm(t *testing.T) {
	handler, mux := newTestServer(NewStore(DefaultBooks()...))

	t.Run("prefilled", func(t *testing.T) {
		w := serve(mux, httptest.NewRequest(http.MethodGet, "/books/3/form", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `action="/books/3/form"`)
		assert.Contains(t, body, `<input type="hidden" name="id" value="3">`)
		assert.Contains(t, body, `<input name="title" value="Candide">`)
		assert.Contains(t, body, `<input name="author" value="Voltaire">`)
	})

	t.Run("not found", func(t *testing.T) {
		w := serve(mux, httptest.NewRequest(http.MethodGet, "/books/8/form", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<p>Book id 8 not found</p>", w.Body.String())
	})

	t.Run("render failure", func(t *testing.T) {
		handler.form = template.Must(template.New("form").Parse(`{{.Missing}}`))
		w := serve(mux, httptest.NewRequest(http.MethodGet, "/books/3/form", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "Candide")
	})
}

func TestHTTPHandler_SubmitForm(t *testing.T) {
	store := NewStore(DefaultBooks()...)
	_, mux := newTestServer(store)

	post := func(path string, form url.Values) *httptest.ResponseRecorder {
		return serve(mux, testutil.NewFormRequest(http.MethodPost, path, form))
	}

	t.Run("existing book", func(t *testing.T) {
		w := post("/books/1/form", url.Values{"id": {"1"}, "title": {"Antigone"}, "author": {"Sophocles of Colonus"}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<p>Antigone by Sophocles of Colonus</p>\n", w.Body.String())
		got, _ := store.Get(1)
		assert.Equal(t, "Sophocles of Colonus", got.Author)
	})

	t.Run("id falls back to path", func(t *testing.T) {
		w := post("/books/2/form", url.Values{"title": {"Beloved"}, "author": {"Morrison"}})

		assert.Equal(t, http.StatusOK, w.Code)
		got, _ := store.Get(2)
		assert.Equal(t, "Morrison", got.Author)
	})

	t.Run("zero id reports not found", func(t *testing.T) {
		w := post("/books/0/form", url.Values{"title": {"Nobody"}, "author": {"None"}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Book id not found: 0", w.Body.String())
		_, err := store.Get(0)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing book is not created", func(t *testing.T) {
		w := post("/books/77/form", url.Values{"id": {"77"}, "title": {"Ulysses"}, "author": {"Joyce"}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Book id not found: 77", w.Body.String())
		_, err := store.Get(77)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("bad form id", func(t *testing.T) {
		w := post("/books/1/form", url.Values{"id": {"one"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	store := NewStore(
		Book{ID: 1, Title: "Antigone", Author: "Sophocles"},
		Book{ID: 2, Title: "Beloved", Author: "Toni Morrison"},
	)
	_, mux := newTestServer(store)

	w := serve(mux, httptest.NewRequest(http.MethodDelete, "/books/2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Delete book id: 2", w.Body.String())

	w = serve(mux, httptest.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, "<p>Antigone by Sophocles</p>\n", w.Body.String())

	w = serve(mux, httptest.NewRequest(http.MethodDelete, "/books/2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book id not found: 2", w.Body.String())
}

func TestHTTPHandler_MethodNotAllowed(t *testing.T) {
	_, mux := newTestServer(NewStore())

	w := serve(mux, httptest.NewRequest(http.MethodPatch, "/books/1", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
