package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveNoteEvent(t *testing.T) {
	m := New(nil)

	m.ObserveNoteEvent("created")
	m.ObserveNoteEvent("created")
	m.ObserveNoteEvent("deleted")
	m.ObserveThemeToggle()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.noteEvents.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.noteEvents.WithLabelValues("deleted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.themeToggles))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New(nil)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/notes/{name}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/notes/a", "/notes/b", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/notes/{name}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ok", "200")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(func() int { return 3 })
	m.ObserveNoteEvent("updated")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `notepad_note_events_total{kind="updated"} 1`), body)
	assert.Contains(t, body, "notepad_sse_clients 3")
}
