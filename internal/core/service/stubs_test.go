package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campusevents/event-platform/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the guarantees of the Mongo
// implementation: unique email, unique (student, event) and a seat counter
// that is only incremented while below capacity.
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var errStore = errors.New("store unavailable")

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Interests = append([]string{}, u.Interests...)
	return &clone
}

type stubUserRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	nextID int
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	created, err := r.Create(context.Background(), u)
	if err != nil {
		panic(err)
	}
	return created
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
		if user.RollNo != "" && u.RollNo == user.RollNo {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.nextID)
	r.byID[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateInterests(_ context.Context, id string, interests []string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Interests = append([]string{}, interests...)
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, p domain.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.RollNo != nil {
		for _, other := range r.byID {
			if other.ID != id && other.RollNo == *p.RollNo {
				return nil, domain.ErrUserExists
			}
		}
		u.RollNo = *p.RollNo
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.CollegeName != nil {
		u.CollegeName = *p.CollegeName
	}
	if p.Branch != nil {
		u.Branch = *p.Branch
	}
	if p.Course != nil {
		u.Course = *p.Course
	}
	if p.EnrollYear != nil {
		y := *p.EnrollYear
		u.EnrollYear = &y
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.ProfilePic != nil {
		u.ProfilePic = *p.ProfilePic
	}
	return cloneUser(u), nil
}

type stubEventRepo struct {
	mu        sync.Mutex
	events    []*domain.Event // insertion order
	nextID    int
	err       error
	incrCalls int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{}
}

func (r *stubEventRepo) add(e domain.Event) *domain.Event {
	created, err := r.Create(context.Background(), &e)
	if err != nil {
		panic(err)
	}
	return created
}

// find matches ids case-insensitively, as hex ObjectIDs do.
func (r *stubEventRepo) find(id string) *domain.Event {
	for _, e := range r.events {
		if strings.EqualFold(e.ID, id) {
			return e
		}
	}
	return nil
}

func (r *stubEventRepo) registeredCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id).RegisteredCount
}

func cloneEvents(in []*domain.Event) []*domain.Event {
	out := make([]*domain.Event, 0, len(in))
	for _, e := range in {
		c := *e
		out = append(out, &c)
	}
	return out
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	c := *e
	c.ID = fmt.Sprintf("e%d", r.nextID)
	r.events = append(r.events, &c)
	out := c
	return &out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	e := r.find(id)
	if e == nil {
		return nil, domain.ErrEventNotFound
	}
	c := *e
	return &c, nil
}

func (r *stubEventRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var matched []*domain.Event
	// Reverse order so callers cannot rely on store order.
	for i := len(r.events) - 1; i >= 0; i-- {
		if _, ok := want[r.events[i].ID]; ok {
			matched = append(matched, r.events[i])
		}
	}
	return cloneEvents(matched), nil
}

func (r *stubEventRepo) List(_ context.Context) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return cloneEvents(r.events), nil
}

func (r *stubEventRepo) ListAvailable(_ context.Context) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var matched []*domain.Event
	for _, e := range r.events {
		if e.RegisteredCount < e.Capacity {
			matched = append(matched, e)
		}
	}
	return cloneEvents(matched), nil
}

func (r *stubEventRepo) ListByOrganizer(_ context.Context, organizerID string) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var matched []*domain.Event
	for _, e := range r.events {
		if e.OrganizerID == organizerID {
			matched = append(matched, e)
		}
	}
	out := cloneEvents(matched)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubEventRepo) ListPopular(_ context.Context, categories, excludeIDs []string, limit int) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	cats := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		cats[c] = struct{}{}
	}
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	var matched []*domain.Event
	for _, e := range r.events {
		if _, skip := excluded[e.ID]; skip {
			continue
		}
		if len(cats) > 0 {
			if _, ok := cats[e.Category]; !ok {
				continue
			}
		}
		matched = append(matched, e)
	}
	out := cloneEvents(matched)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RegisteredCount > out[j].RegisteredCount })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubEventRepo) IncrementRegistered(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.incrCalls++
	if r.err != nil {
		return false, r.err
	}
	e := r.find(id)
	if e == nil || e.RegisteredCount >= e.Capacity {
		return false, nil
	}
	e.RegisteredCount++
	return true, nil
}

type stubRegistrationRepo struct {
	mu        sync.Mutex
	regs      []*domain.Registration
	createErr error
	listErr   error
	deleted   int
}

func newStubRegistrationRepo() *stubRegistrationRepo {
	return &stubRegistrationRepo{}
}

func (r *stubRegistrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.regs {
		if existing.StudentID == reg.StudentID && existing.EventID == reg.EventID {
			return domain.ErrAlreadyRegistered
		}
	}
	c := *reg
	c.ID = fmt.Sprintf("r%d", len(r.regs)+1)
	r.regs = append(r.regs, &c)
	return nil
}

func (r *stubRegistrationRepo) Delete(_ context.Context, studentID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.regs {
		if existing.StudentID == studentID && existing.EventID == eventID {
			r.regs = append(r.regs[:i], r.regs[i+1:]...)
			r.deleted++
			return nil
		}
	}
	return nil
}

func (r *stubRegistrationRepo) ListByStudent(_ context.Context, studentID string) ([]*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Registration
	for _, existing := range r.regs {
		if existing.StudentID == studentID {
			c := *existing
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubRegistrationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.regs)
}

type stubGuard struct {
	mu       sync.Mutex
	marked   map[string]bool
	checked  []string
	checkErr error
	markErr  error
}

func newStubGuard() *stubGuard {
	return &stubGuard{marked: make(map[string]bool)}
}

func (g *stubGuard) IsRegistered(_ context.Context, studentID, eventID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.checked = append(g.checked, studentID+":"+eventID)
	if g.checkErr != nil {
		return false, g.checkErr
	}
	return g.marked[studentID+":"+eventID], nil
}

func (g *stubGuard) Mark(_ context.Context, studentID, eventID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.markErr != nil {
		return g.markErr
	}
	g.marked[studentID+":"+eventID] = true
	return nil
}
