package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradhunt/gradboard-backend/internal/model"
	"github.com/gradhunt/gradboard-backend/internal/repository"
)

// fakeJobStore records calls and plays back canned results.
type fakeJobStore struct {
	listFilter repository.JobFilter
	listLimit  int
	listOffset int
	listJobs   []model.Job
	listTotal  int

	getJob *model.Job
	getErr error

	created   *model.Job
	createErr error

	updatedPatch model.JobPatch
	updateJob    *model.Job
	updateErr    error

	deletedID uuid.UUID
}

func (f *fakeJobStore) ListPaginated(_ context.Context, filter repository.JobFilter, limit, offset int) ([]model.Job, int, error) {
	f.listFilter, f.listLimit, f.listOffset = filter, limit, offset
	return f.listJobs, f.listTotal, nil
}

func (f *fakeJobStore) GetByID(_ context.Context, _ uuid.UUID) (*model.Job, error) {
	return f.getJob, f.getErr
}

func (f *fakeJobStore) Create(_ context.Context, j *model.Job) error {
	f.created = j
	return f.createErr
}

func (f *fakeJobStore) Update(_ context.Context, _ uuid.UUID, p model.JobPatch) (*model.Job, error) {
	f.updatedPatch = p
	return f.updateJob, f.updateErr
}

func (f *fakeJobStore) Delete(_ context.Context, id uuid.UUID) error {
	f.deletedID = id
	return nil
}

type fakeSigner struct {
	err    error
	signed []string
}

func (f *fakeSigner) SignedURL(path string, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.signed = append(f.signed, path)
	return "https://cdn.example.com/" + path + "?sig=abc", nil
}

func newTestJobService(store *fakeJobStore, signer *fakeSigner) *JobService {
	return NewJobService(store, signer, time.Hour, zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestPageWindow(t *testing.T) {
	offset := func(v int) *int { return &v }

	tests := []struct {
		name       string
		q          model.JobListQuery
		wantLimit  int
		wantOffset int
	}{
		{"defaults", model.JobListQuery{}, 20, 0},
		{"zero limit", model.JobListQuery{Limit: 0, Page: 1}, 20, 0},
		{"negative limit", model.JobListQuery{Limit: -5}, 20, 0},
		{"clamped to max", model.JobListQuery{Limit: 10000}, 500, 0},
		{"page math", model.JobListQuery{Limit: 10, Page: 3}, 10, 20},
		{"page below one", model.JobListQuery{Limit: 10, Page: -2}, 10, 0},
		{"explicit offset wins", model.JobListQuery{Limit: 10, Page: 3, Offset: offset(7)}, 10, 7},
		{"negative offset clamped", model.JobListQuery{Limit: 10, Offset: offset(-1)}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, off := PageWindow(tt.q)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, off)
		})
	}
}

func TestCreateAnonymousForcedPending(t *testing.T) {
	store := &fakeJobStore{}
	svc := newTestJobService(store, &fakeSigner{})

	req := model.CreateJobRequest{
		Title: "SWE", Company: "Acme", Country: "IN", Location: "Remote",
		Description: "desc", ApplyLink: "https://acme.example.com/jobs/1",
		Status: "published", // Ignored for anonymous callers.
	}
	job, err := svc.Create(context.Background(), req, false)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPending, job.Status)
}

func TestCreatePrivilegedStatus(t *testing.T) {
	store := &fakeJobStore{}
	svc := newTestJobService(store, &fakeSigner{})

	// Privileged default: published.
	job, err := svc.Create(context.Background(), model.CreateJobRequest{Title: "SWE"}, true)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPublished, job.Status)

	// Privileged explicit status is honored.
	job, err = svc.Create(context.Background(), model.CreateJobRequest{Title: "SWE", Status: "rejected"}, true)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusRejected, job.Status)
}

func TestCreateKindCoercion(t *testing.T) {
	store := &fakeJobStore{}
	svc := newTestJobService(store, &fakeSigner{})

	// Empty kind defaults to job.
	job, err := svc.Create(context.Background(), model.CreateJobRequest{Title: "SWE"}, true)
	require.NoError(t, err)
	require.NotNil(t, job.Kind)
	assert.Equal(t, model.JobKindJob, *job.Kind)

	// Case-insensitive normalization.
	job, err = svc.Create(context.Background(), model.CreateJobRequest{Title: "SWE", Kind: "INTERNSHIP"}, true)
	require.NoError(t, err)
	require.NotNil(t, job.Kind)
	assert.Equal(t, model.JobKindInternship, *job.Kind)

	// Unknown kind is dropped, not stored verbatim.
	job, err = svc.Create(context.Background(), model.CreateJobRequest{Title: "SWE", Kind: "freelance"}, true)
	require.NoError(t, err)
	assert.Nil(t, job.Kind)
}

func TestCreatePassoutCoercion(t *testing.T) {
	store := &fakeJobStore{}
	svc := newTestJobService(store, &fakeSigner{})

	job, err := svc.Create(context.Background(), model.CreateJobRequest{
		Title:   "SWE",
		Passout: model.GradYear{Value: 2026, Valid: true},
	}, true)
	require.NoError(t, err)
	require.NotNil(t, job.Passout)
	assert.Equal(t, 2026, *job.Passout)

	job, err = svc.Create(context.Background(), model.CreateJobRequest{Title: "SWE"}, true)
	require.NoError(t, err)
	assert.Nil(t, job.Passout)
}

func TestListVisibility(t *testing.T) {
	store := &fakeJobStore{}
	svc := newTestJobService(store, &fakeSigner{})

	_, _, err := svc.List(context.Background(), model.JobListQuery{Status: "pending"}, false)
	require.NoError(t, err)
	assert.False(t, store.listFilter.Privileged)
	assert.Equal(t, "pending", store.listFilter.Status) // Repository pins public reads regardless.

	_, _, err = svc.List(context.Background(), model.JobListQuery{Status: "pending", Limit: 50}, true)
	require.NoError(t, err)
	assert.True(t, store.listFilter.Privileged)
	assert.Equal(t, 50, store.listLimit)
}

func TestListResolvesLogos(t *testing.T) {
	abs := "https://elsewhere.example.com/logo.png"
	store := &fakeJobStore{
		listJobs: []model.Job{
			{Title: "A", LogoURL: strPtr("logos/1_acme.png")},
			{Title: "B", LogoURL: strPtr(abs)},
			{Title: "C"},
		},
		listTotal: 3,
	}
	signer := &fakeSigner{}
	svc := newTestJobService(store, signer)

	jobs, total, err := svc.List(context.Background(), model.JobListQuery{}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	assert.Equal(t, "https://cdn.example.com/logos/1_acme.png?sig=abc", *jobs[0].LogoURL)
	assert.Equal(t, abs, *jobs[1].LogoURL) // Absolute URLs pass through.
	assert.Nil(t, jobs[2].LogoURL)
	assert.Equal(t, []string{"logos/1_acme.png"}, signer.signed)
}

func TestListSwallowsSignerFailures(t *testing.T) {
	path := "logos/1_acme.png"
	store := &fakeJobStore{
		listJobs:  []model.Job{{Title: "A", LogoURL: strPtr(path)}},
		listTotal: 1,
	}
	svc := newTestJobService(store, &fakeSigner{err: errors.New("signer down")})

	jobs, _, err := svc.List(context.Background(), model.JobListQuery{}, false)
	require.NoError(t, err)
	assert.Equal(t, path, *jobs[0].LogoURL) // Left as-is, request still succeeds.
}

func TestGetByIDVisibility(t *testing.T) {
	pending := &model.Job{ID: uuid.New(), Status: model.JobStatusPending}

	store := &fakeJobStore{getJob: pending}
	svc := newTestJobService(store, &fakeSigner{})

	_, err := svc.GetByID(context.Background(), pending.ID, false)
	assert.ErrorIs(t, err, ErrJobNotFound)

	job, err := svc.GetByID(context.Background(), pending.ID, true)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, job.ID)
}

func TestGetByIDMissing(t *testing.T) {
	store := &fakeJobStore{getErr: pgx.ErrNoRows}
	svc := newTestJobService(store, &fakeSigner{})

	_, err := svc.GetByID(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestUpdatePatchCoercion(t *testing.T) {
	store := &fakeJobStore{updateJob: &model.Job{}}
	svc := newTestJobService(store, &fakeSigner{})

	status := "published"
	kind := "bad-kind"
	_, err := svc.Update(context.Background(), uuid.New(), model.UpdateJobRequest{
		Title:   strPtr("New Title"),
		Status:  &status,
		Kind:    &kind,
		Passout: model.GradYear{Value: 2025, Valid: true},
	})
	require.NoError(t, err)

	p := store.updatedPatch
	require.NotNil(t, p.Title)
	assert.Equal(t, "New Title", *p.Title)
	require.NotNil(t, p.Status)
	assert.Equal(t, model.JobStatusPublished, *p.Status)
	assert.Nil(t, p.Kind) // Invalid kind dropped from the patch.
	require.NotNil(t, p.Passout)
	assert.Equal(t, 2025, *p.Passout)
	assert.Nil(t, p.Company) // Untouched fields stay nil.
}

func TestUpdateMissingJob(t *testing.T) {
	store := &fakeJobStore{updateErr: pgx.ErrNoRows}
	svc := newTestJobService(store, &fakeSigner{})

	_, err := svc.Update(context.Background(), uuid.New(), model.UpdateJobRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestDelete(t *testing.T) {
	store := &fakeJobStore{}
	svc := newTestJobService(store, &fakeSigner{})

	id := uuid.New()
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, id, store.deletedID)
}
