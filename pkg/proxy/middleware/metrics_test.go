package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

type observation struct {
	method string
	path   string
	status int
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (o *recordingObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.obs = append(o.obs, observation{method, path, status})
}

func TestMetricsMiddleware_RouteTemplate(t *testing.T) {
	observer := &recordingObserver{}

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(observer))
	router.HandleFunc("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}).Methods(http.MethodPost)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/items/42", nil))

	if len(observer.obs) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(observer.obs))
	}
	got := observer.obs[0]
	if got.path != "/items/{id}" {
		t.Errorf("path = %q, want the route template", got.path)
	}
	if got.method != http.MethodPost || got.status != http.StatusAccepted {
		t.Errorf("unexpected observation %+v", got)
	}
}

func TestMetricsMiddleware_OutsideRouter(t *testing.T) {
	observer := &recordingObserver{}

	handler := MetricsMiddleware(observer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/anything", nil))

	if len(observer.obs) != 1 || observer.obs[0].path != unmatchedRoute {
		t.Errorf("expected one unmatched observation, got %+v", observer.obs)
	}
	if observer.obs[0].status != http.StatusOK {
		t.Errorf("status = %d, want default 200", observer.obs[0].status)
	}
}
