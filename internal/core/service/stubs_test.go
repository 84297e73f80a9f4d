package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	seq     int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[created.ID] = created
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
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
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// seed inserts a user directly and returns its principal.
func (r *stubUserRepo) seed(name, email string, role domain.Role) domain.Principal {
	u, err := r.Create(context.Background(), &domain.User{Name: name, Email: email, Role: role})
	if err != nil {
		panic(err)
	}
	return domain.Principal{UserID: u.ID, Role: role}
}

// ---------------------------------------------------------------------------
// Jobs
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Job
	seq  int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	clone := *j
	clone.Applicants = slices.Clone(j.Applicants)
	return &clone
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	created := cloneJob(job)
	created.ID = fmt.Sprintf("job-%d", r.seq)
	r.byID[created.ID] = created
	return cloneJob(created), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) collect(keep func(*domain.Job) bool) []*domain.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.byID {
		if keep(j) {
			out = append(out, cloneJob(j))
		}
	}
	slices.SortFunc(out, func(a, b *domain.Job) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

func (r *stubJobRepo) List(_ context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	return r.collect(filter.Matches), nil
}

func (r *stubJobRepo) ListByPoster(_ context.Context, posterID string) ([]*domain.Job, error) {
	return r.collect(func(j *domain.Job) bool { return j.PostedBy == posterID }), nil
}

func (r *stubJobRepo) ListByApplicant(_ context.Context, userID string) ([]*domain.Job, error) {
	return r.collect(func(j *domain.Job) bool { return j.HasApplicant(userID) }), nil
}

func (r *stubJobRepo) AddApplicant(_ context.Context, jobID, userID string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if j.HasApplicant(userID) {
		return nil, domain.ErrAlreadyApplied
	}
	j.Applicants = append(j.Applicants, userID)
	return cloneJob(j), nil
}

func (r *stubJobRepo) DeleteOwned(_ context.Context, jobID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[jobID]
	if !ok || j.PostedBy != ownerID {
		return domain.ErrJobNotFound
	}
	delete(r.byID, jobID)
	return nil
}

// ---------------------------------------------------------------------------
// Activity and guard
// ---------------------------------------------------------------------------

type stubRecorder struct {
	mu     sync.Mutex
	events []ports.ActivityInput
}

func (r *stubRecorder) Enqueue(in ports.ActivityInput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, in)
}

func (r *stubRecorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

type stubActivityRepo struct {
	insertErr error
	inserted  []*domain.Activity
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, a)
	return nil
}

type stubGuard struct {
	acquired   bool
	acquireErr error
	released   int
}

func (g *stubGuard) Acquire(context.Context, string, string) (bool, error) {
	return g.acquired, g.acquireErr
}

func (g *stubGuard) Release(context.Context, string, string) error {
	g.released++
	return nil
}
