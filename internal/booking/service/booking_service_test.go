package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/showbooks/backend/internal/booking/domain"
	"github.com/showbooks/backend/internal/platform/apperr"
)

type fakeMusicians struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Musician
}

func (f *fakeMusicians) FindByID(_ context.Context, id int64) (*domain.Musician, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("musician %d not found", id)
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMusicians) Create(_ context.Context, m *domain.Musician) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	m.ID = f.nextID
	f.rows[m.ID] = m
	return nil
}

func (f *fakeMusicians) List(_ context.Context) ([]domain.Musician, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Musician, 0, len(f.rows))
	for _, m := range f.rows {
		out = append(out, *m)
	}
	return out, nil
}

type fakeWindows struct {
	rows map[int64]domain.EventWindow
}

func (f *fakeWindows) WindowOf(_ context.Context, eventID int64) (*domain.EventWindow, error) {
	w, ok := f.rows[eventID]
	if !ok {
		return nil, apperr.NotFound("event %d not found", eventID)
	}
	return &w, nil
}

type fakeAssignments struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]*domain.Assignment
	windows *fakeWindows
}

func (f *fakeAssignments) FindByID(_ context.Context, id int64) (*domain.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("assignment %d not found", id)
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssignments) FindByEventAndMusician(_ context.Context, eventID, musicianID int64) (*domain.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.EventID == eventID && a.MusicianID == musicianID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("no assignment for event %d and musician %d", eventID, musicianID)
}

func (f *fakeAssignments) Save(_ context.Context, a *domain.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID == 0 {
		f.nextID++
		a.ID = f.nextID
	}
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAssignments) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return apperr.NotFound("assignment %d not found", id)
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAssignments) ListByEvent(_ context.Context, eventID int64) ([]domain.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Assignment
	for _, a := range f.rows {
		if a.EventID == eventID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssignments) AcceptedWindows(_ context.Context, musicianID, excludeEventID, excludeAssignmentID int64) ([]domain.EventWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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

// fakeSerializer holds one mutex per musician, mirroring the advisory
// lock the real adapter takes.
type fakeSerializer struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (f *fakeSerializer) WithMusicianLock(ctx context.Context, musicianID int64, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	l, ok := f.locks[musicianID]
	if !ok {
		l = &sync.Mutex{}
		f.locks[musicianID] = l
	}
	f.mu.Unlock()
	l.Lock()
	defer l.Unlock()
	return fn(ctx)
}

type fixture struct {
	musicians   *fakeMusicians
	assignments *fakeAssignments
	windows     *fakeWindows
	svc         *Service
}

func win(title string, start, end string) domain.EventWindow {
	day := "2026-07-03T"
	s, _ := time.Parse(time.RFC3339, day+start+":00Z")
	e, _ := time.Parse(time.RFC3339, day+end+":00Z")
	return domain.EventWindow{Title: title, Start: s, End: e}
}

func newFixture() *fixture {
	windows := &fakeWindows{rows: map[int64]domain.EventWindow{}}
	musicians := &fakeMusicians{rows: map[int64]*domain.Musician{
		1: {ID: 1, Name: "Sarah Levi", Instrument: "violin"},
	}}
	assignments := &fakeAssignments{rows: map[int64]*domain.Assignment{}, windows: windows}
	svc := NewService(musicians, assignments, windows,
		&fakeSerializer{locks: map[int64]*sync.Mutex{}}, zap.NewNop())
	return &fixture{musicians: musicians, assignments: assignments, windows: windows, svc: svc}
}

func (f *fixture) addEvent(id int64, w domain.EventWindow) {
	w.EventID = id
	f.windows.rows[id] = w
}

func TestAcceptSucceedsWithoutOverlap(t *testing.T) {
	f := newFixture()
	f.addEvent(10, win("Cohen Wedding", "18:00", "23:00"))
	f.addEvent(11, win("Morning Brit", "09:00", "12:00"))
	ctx := context.Background()

	for _, eventID := range []int64{10, 11} {
		a := &domain.Assignment{EventID: eventID, MusicianID: 1, Status: domain.StatusAccepted}
		if err := f.svc.CreateOrUpdateAssignment(ctx, a); err != nil {
			t.Fatalf("accept on event %d: %v", eventID, err)
		}
	}
}

func TestAcceptRejectsOverlap(t *testing.T) {
	f := newFixture()
	f.addEvent(10, win("Cohen Wedding", "18:00", "23:00"))
	f.addEvent(11, win("Gala Dinner", "21:00", "23:30"))
	ctx := context.Background()

	first := &domain.Assignment{EventID: 10, MusicianID: 1, Status: domain.StatusAccepted}
	if err := f.svc.CreateOrUpdateAssignment(ctx, first); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	second := &domain.Assignment{EventID: 11, MusicianID: 1, Status: domain.StatusAccepted}
	err := f.svc.CreateOrUpdateAssignment(ctx, second)
	if !apperr.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "Cohen Wedding") {
		t.Errorf("conflict should name the colliding event, got %q", err)
	}
	if len(f.assignments.rows) != 1 {
		t.Errorf("conflicting assignment must not be saved, have %d rows", len(f.assignments.rows))
	}
}

func TestHasConflict(t *testing.T) {
	f := newFixture()
	f.addEvent(10, win("Cohen Wedding", "18:00", "23:00"))
	f.addEvent(11, win("Gala Dinner", "21:00", "23:30"))
	f.addEvent(12, win("Morning Brit", "09:00", "11:00"))
	ctx := context.Background()

	booked := &domain.Assignment{EventID: 10, MusicianID: 1, Status: domain.StatusAccepted}
	if err := f.svc.CreateOrUpdateAssignment(ctx, booked); err != nil {
		t.Fatalf("accept: %v", err)
	}

	got, err := f.svc.HasConflict(ctx, 1, f.windows.rows[11], 0)
	if err != nil || !got {
		t.Fatalf("overlapping candidate: got (%v, %v), want conflict", got, err)
	}
	got, err = f.svc.HasConflict(ctx, 1, f.windows.rows[12], 0)
	if err != nil || got {
		t.Fatalf("disjoint candidate: got (%v, %v), want no conflict", got, err)
	}
	// excluding the booking under edit clears its own conflict
	got, err = f.svc.HasConflict(ctx, 1, f.windows.rows[11], booked.ID)
	if err != nil || got {
		t.Fatalf("candidate excluding its own assignment: got (%v, %v), want no conflict", got, err)
	}
}

func TestTouchingEventsDoNotConflict(t *testing.T) {
	f := newFixture()
	f.addEvent(10, win("Afternoon Set", "12:00", "14:00"))
	f.addEvent(11, win("Evening Set", "14:00", "16:00"))
	ctx := context.Background()

	for _, eventID := range []int64{10, 11} {
		a := &domain.Assignment{EventID: eventID, MusicianID: 1, Status: domain.StatusAccepted}
		if err := f.svc.CreateOrUpdateAssignment(ctx, a); err != nil {
			t.Fatalf("back-to-back accept on event %d: %v", eventID, err)
		}
	}
}

func TestReacceptingOwnBookingIsNotAConflict(t *testing.T) {
	f := newFixture()
	f.addEvent(10, win("Cohen Wedding", "18:00", "23:00"))
	ctx := context.Background()

	a := &domain.Assignment{EventID: 10, MusicianID: 1, Status: domain.StatusAccepted}
	if err := f.svc.CreateOrUpdateAssignment(ctx, a); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	// update the same booking (fee change), still ACCEPTED
	again := &domain.Assignment{EventID: 10, MusicianID: 1, Status: domain.StatusAccepted}
	if err := f.svc.CreateOrUpdateAssignment(ctx, again); err != nil {
		t.Fatalf("re-accept: %v", err)
	}
	if again.ID != a.ID {
		t.Errorf("re-accept should update row %d, got new row %d", a.ID, again.ID)
	}
	if len(f.assignments.rows) != 1 {
		t.Errorf("want a single assignment row, have %d", len(f.assignments.rows))
	}
}

func TestPendingSkipsConflictCheck(t *testing.T) {
	f := newFixture()
	f.addEvent(10, win("Cohen Wedding", "18:00", "23:00"))
	f.addEvent(11, win("Gala Dinner", "20:00", "23:30"))
	ctx := context.Background()

	accepted := &domain.Assignment{EventID: 10, MusicianID: 1, Status: domain.StatusAccepted}
	if err := f.svc.CreateOrUpdateAssignment(ctx, accepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	// a tentative hold on an overlapping event is allowed
	pending := &domain.Assignment{EventID: 11, MusicianID: 1, Status: domain.StatusPending}
	if err := f.svc.CreateOrUpdateAssignment(ctx, pending); err != nil {
		t.Fatalf("pending: %v", err)
	}
}

func TestConcurrentAcceptsAdmitExactlyOne(t *testing.T) {
	f := newFixture()
	f.addEvent(10, win("Cohen Wedding", "18:00", "23:00"))
	f.addEvent(11, win("Gala Dinner", "20:00", "23:30"))
	ctx := context.Background()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, eventID := range []int64{10, 11} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			a := &domain.Assignment{EventID: id, MusicianID: 1, Status: domain.StatusAccepted}
			errs <- f.svc.CreateOrUpdateAssignment(ctx, a)
		}(eventID)
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.IsConflict(err):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Fatalf("want exactly one accepted and one conflict, got ok=%d conflict=%d", ok, conflict)
	}

	accepted := 0
	for _, a := range f.assignments.rows {
		if a.Status == domain.StatusAccepted {
			accepted++
		}
	}
	if accepted != 1 {
		t.Fatalf("want one ACCEPTED row after the race, have %d", accepted)
	}
}

func TestUnknownMusicianOrEvent(t *testing.T) {
	f := newFixture()
	f.addEvent(10, win("Cohen Wedding", "18:00", "23:00"))
	ctx := context.Background()

	a := &domain.Assignment{EventID: 10, MusicianID: 99, Status: domain.StatusAccepted}
	if err := f.svc.CreateOrUpdateAssignment(ctx, a); !apperr.IsNotFound(err) {
		t.Errorf("unknown musician: want not-found, got %v", err)
	}
	b := &domain.Assignment{EventID: 99, MusicianID: 1, Status: domain.StatusAccepted}
	if err := f.svc.CreateOrUpdateAssignment(ctx, b); !apperr.IsNotFound(err) {
		t.Errorf("unknown event: want not-found, got %v", err)
	}
}

func TestDeleteAssignment(t *testing.T) {
	f := newFixture()
	f.addEvent(10, win("Cohen Wedding", "18:00", "23:00"))
	ctx := context.Background()

	a := &domain.Assignment{EventID: 10, MusicianID: 1, Status: domain.StatusPending}
	if err := f.svc.CreateOrUpdateAssignment(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.svc.DeleteAssignment(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.svc.DeleteAssignment(ctx, a.ID); !apperr.IsNotFound(err) {
		t.Errorf("second delete: want not-found, got %v", err)
	}
}

func TestCreateMusicianValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.svc.CreateMusician(ctx, &domain.Musician{}); !apperr.IsValidation(err) {
		t.Errorf("empty name: want validation error, got %v", err)
	}
	m := &domain.Musician{Name: "David Peretz", Instrument: "drums"}
	if err := f.svc.CreateMusician(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.ID == 0 {
		t.Error("created musician should get an id")
	}
}
