package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// NewJSONRequest creates a request whose body is body encoded as JSON.
func NewJSONRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// NewFormRequest creates a request carrying form as a url-encoded body.
func NewFormRequest(method, path string, form url.Values) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// DecodeJSONBody decodes the recorded response body into a generic map.
func DecodeJSONBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&body)
	}
	return body
}
