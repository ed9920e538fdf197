package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSnippet(t *testing.T) {
	assert.Error(t, ValidateSnippet(""))
	assert.Error(t, ValidateSnippet("  \n\t "))
	assert.Error(t, ValidateSnippet(strings.Repeat("x", MaxSnippetBytes+1)))
	assert.NoError(t, ValidateSnippet("def add(a,b): return a+b"))
}

func TestValidateMessage(t *testing.T) {
	assert.Error(t, ValidateMessage(""))
	assert.Error(t, ValidateMessage(strings.Repeat("y", MaxMessageBytes+1)))
	assert.NoError(t, ValidateMessage("what does this function do?"))
}

func TestSessionMiddlewareKeepsClientID(t *testing.T) {
	var seen string
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "client-chosen-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "client-chosen-id", seen)
	assert.Equal(t, "client-chosen-id", rec.Header().Get(SessionHeader))
}

func TestSessionMiddlewareGeneratesID(t *testing.T) {
	var seen string
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(SessionHeader))
}
