package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hi", nil))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/hi", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := RequestID(Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/db", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "HTTP request", entry.Message)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/db", entry.Data["path"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

func TestRecovery(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hi", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "boom")
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://bank.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/hi", nil)
	req.Header.Set("Origin", "https://bank.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://bank.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogger_RecordsRecoveredPanic(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := RequestID(Logger(log)(Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/transactions/create", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Message, "Panic recovered")
	assert.Equal(t, "HTTP request", entries[1].Message)
	assert.Equal(t, http.StatusInternalServerError, entries[1].Data["status"])
}
