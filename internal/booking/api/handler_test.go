package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/showbooks/backend/internal/booking/domain"
	"github.com/showbooks/backend/internal/booking/service"
	"github.com/showbooks/backend/internal/platform/apperr"
)

type fakeMusicians struct{ rows map[int64]*domain.Musician }

func (f *fakeMusicians) FindByID(_ context.Context, id int64) (*domain.Musician, error) {
	if m, ok := f.rows[id]; ok {
		return m, nil
	}
	return nil, apperr.NotFound("musician %d not found", id)
}

func (f *fakeMusicians) Create(_ context.Context, m *domain.Musician) error {
	m.ID = int64(len(f.rows) + 1)
	f.rows[m.ID] = m
	return nil
}

func (f *fakeMusicians) List(_ context.Context) ([]domain.Musician, error) { return nil, nil }

type fakeWindows struct{ rows map[int64]domain.EventWindow }

func (f *fakeWindows) WindowOf(_ context.Context, eventID int64) (*domain.EventWindow, error) {
	if w, ok := f.rows[eventID]; ok {
		return &w, nil
	}
	return nil, apperr.NotFound("event %d not found", eventID)
}

type fakeAssignments struct {
	nextID  int64
	rows    map[int64]*domain.Assignment
	windows *fakeWindows
}

func (f *fakeAssignments) FindByID(_ context.Context, id int64) (*domain.Assignment, error) {
	if a, ok := f.rows[id]; ok {
		return a, nil
	}
	return nil, apperr.NotFound("assignment %d not found", id)
}

func (f *fakeAssignments) FindByEventAndMusician(_ context.Context, eventID, musicianID int64) (*domain.Assignment, error) {
	for _, a := range f.rows {
		if a.EventID == eventID && a.MusicianID == musicianID {
			return a, nil
		}
	}
	return nil, apperr.NotFound("no assignment for event %d and musician %d", eventID, musicianID)
}

func (f *fakeAssignments) Save(_ context.Context, a *domain.Assignment) error {
	if a.ID == 0 {
		f.nextID++
		a.ID = f.nextID
	}
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAssignments) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeAssignments) ListByEvent(_ context.Context, eventID int64) ([]domain.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignments) AcceptedWindows(_ context.Context, musicianID, excludeEventID, excludeAssignmentID int64) ([]domain.EventWindow, error) {
	var out []domain.EventWindow
	for _, a := range f.rows {
		if a.MusicianID != musicianID || a.Status != domain.StatusAccepted {
			continue
		}
		if excludeEventID > 0 && a.EventID == excludeEventID {
			continue
		}
		if excludeAssignmentID > 0 && a.ID == excludeAssignmentID {
			continue
		}
		out = append(out, f.windows.rows[a.EventID])
	}
	return out, nil
}

type passthroughSerializer struct{}

func (passthroughSerializer) WithMusicianLock(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newRouter() (*gin.Engine, *fakeWindows) {
	gin.SetMode(gin.TestMode)
	windows := &fakeWindows{rows: map[int64]domain.EventWindow{}}
	musicians := &fakeMusicians{rows: map[int64]*domain.Musician{
		1: {ID: 1, Name: "Sarah Levi", Instrument: "violin"},
	}}
	assignments := &fakeAssignments{rows: map[int64]*domain.Assignment{}, windows: windows}
	svc := service.NewService(musicians, assignments, windows, passthroughSerializer{}, zap.NewNop())

	router := gin.New()
	NewBookingHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, windows
}

func addWindow(windows *fakeWindows, id int64, title, start, end string) {
	day := "2026-07-03T"
	s, _ := time.Parse(time.RFC3339, day+start+":00Z")
	e, _ := time.Parse(time.RFC3339, day+end+":00Z")
	windows.rows[id] = domain.EventWindow{EventID: id, Title: title, Start: s, End: e}
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDoubleBookingMapsTo409(t *testing.T) {
	router, windows := newRouter()
	addWindow(windows, 10, "Cohen Wedding", "18:00", "23:00")
	addWindow(windows, 11, "Gala Dinner", "21:00", "23:30")

	if w := post(router, "/api/v1/assignments", `{"event_id":10,"musician_id":1,"status":"ACCEPTED"}`); w.Code != http.StatusOK {
		t.Fatalf("first accept: status = %d; body %s", w.Code, w.Body.String())
	}
	w := post(router, "/api/v1/assignments", `{"event_id":11,"musician_id":1,"status":"ACCEPTED"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("overlapping accept: status = %d, want 409; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Cohen Wedding") {
		t.Errorf("conflict body should name the colliding event: %s", w.Body.String())
	}
}

func TestUnknownMusicianMapsTo404(t *testing.T) {
	router, windows := newRouter()
	addWindow(windows, 10, "Cohen Wedding", "18:00", "23:00")

	w := post(router, "/api/v1/assignments", `{"event_id":10,"musician_id":99,"status":"ACCEPTED"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", w.Code, w.Body.String())
	}
}

func TestBadAssignmentStatusMapsTo400(t *testing.T) {
	router, windows := newRouter()
	addWindow(windows, 10, "Cohen Wedding", "18:00", "23:00")

	// rejected by gin binding before the service sees it
	w := post(router, "/api/v1/assignments", `{"event_id":10,"musician_id":1,"status":"BOOKED"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", w.Code, w.Body.String())
	}
}
