package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/showbooks/backend/internal/event/domain"
	"github.com/showbooks/backend/internal/event/service"
	"github.com/showbooks/backend/internal/platform/apperr"
)

type fakeEvents struct{ rows map[int64]*domain.Event }

func (f *fakeEvents) FindByID(_ context.Context, id int64) (*domain.Event, error) {
	if e, ok := f.rows[id]; ok {
		return e, nil
	}
	return nil, apperr.NotFound("event %d not found", id)
}

func (f *fakeEvents) Create(_ context.Context, e *domain.Event) error {
	e.ID = int64(len(f.rows) + 1)
	f.rows[e.ID] = e
	return nil
}

func (f *fakeEvents) Update(_ context.Context, e *domain.Event) error {
	if _, ok := f.rows[e.ID]; !ok {
		return apperr.NotFound("event %d not found", e.ID)
	}
	f.rows[e.ID] = e
	return nil
}

func (f *fakeEvents) List(_ context.Context, from, to time.Time) ([]domain.Event, error) {
	return nil, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewService(&fakeEvents{rows: map[int64]*domain.Event{}}, zap.NewNop())
	router := gin.New()
	NewEventHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateEventOverHTTP(t *testing.T) {
	router := newRouter()

	w := do(router, http.MethodPost, "/api/v1/events",
		`{"title":"Cohen Wedding","client_name":"Yossi Cohen","start_time":"2026-07-03T18:00:00Z","end_time":"2026-07-03T23:00:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var created domain.Event
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if created.ID == 0 || created.Status != domain.StatusInquiry {
		t.Fatalf("unexpected created event: %+v", created)
	}
}

func TestInvertedIntervalMapsTo400(t *testing.T) {
	router := newRouter()

	w := do(router, http.MethodPost, "/api/v1/events",
		`{"title":"Cohen Wedding","client_name":"Yossi Cohen","start_time":"2026-07-03T23:00:00Z","end_time":"2026-07-03T18:00:00Z"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", w.Code, w.Body.String())
	}
}

func TestGetMissingEventMapsTo404(t *testing.T) {
	router := newRouter()

	w := do(router, http.MethodGet, "/api/v1/events/9", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", w.Code, w.Body.String())
	}
}
