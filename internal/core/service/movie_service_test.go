package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cinelog/movie-catalog/internal/core/domain"
	"github.com/cinelog/movie-catalog/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubMovieRepo struct {
	byID          map[string]*domain.Movie
	findByIDCalls int
	createErr     error
}

func newStubMovieRepo() *stubMovieRepo {
	return &stubMovieRepo{byID: make(map[string]*domain.Movie)}
}

func cloneMovie(m *domain.Movie) *domain.Movie {
	clone := *m
	clone.Genre = append([]string(nil), m.Genre...)
	clone.Cast = append([]string(nil), m.Cast...)
	return &clone
}

func (r *stubMovieRepo) Create(_ context.Context, m *domain.Movie) (*domain.Movie, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.MovieID == m.MovieID {
			return nil, domain.ErrMovieExists
		}
	}
	clone := cloneMovie(m)
	clone.ID = primitive.NewObjectID().Hex()
	r.byID[clone.ID] = clone
	return cloneMovie(clone), nil
}

func (r *stubMovieRepo) FindByID(_ context.Context, id string) (*domain.Movie, error) {
	r.findByIDCalls++
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return cloneMovie(m), nil
}

func (r *stubMovieRepo) FindByMovieID(_ context.Context, movieID string) (*domain.Movie, error) {
	for _, m := range r.byID {
		if m.MovieID == movieID {
			return cloneMovie(m), nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (r *stubMovieRepo) List(_ context.Context, f ports.MovieFilter) ([]*domain.Movie, error) {
	out := []*domain.Movie{}
	for _, m := range r.byID {
		if f.CreatedBy != "" && m.CreatedBy != f.CreatedBy {
			continue
		}
		out = append(out, cloneMovie(m))
	}
	return out, nil
}

func (r *stubMovieRepo) Update(_ context.Context, m *domain.Movie) error {
	if _, ok := r.byID[m.ID]; !ok {
		return domain.ErrMovieNotFound
	}
	for id, existing := range r.byID {
		if id != m.ID && existing.MovieID == m.MovieID {
			return domain.ErrMovieExists
		}
	}
	r.byID[m.ID] = cloneMovie(m)
	return nil
}

func (r *stubMovieRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrMovieNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func sampleMovie(movieID string, rating float64) *domain.Movie {
	return &domain.Movie{
		MovieID:     movieID,
		Title:       "T",
		Description: "D",
		ReleaseDate: time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC),
		Genre:       []string{"sci-fi"},
		Director:    "Wachowski",
		Cast:        []string{"Keanu Reeves"},
		Rating:      rating,
	}
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestMovieService_Create_SetsOwner(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)

	m, err := svc.Create(context.Background(), sampleMovie("m1", 7), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == "" {
		t.Error("expected surrogate id to be assigned")
	}
	if m.CreatedBy != "owner-1" {
		t.Errorf("expected createdBy owner-1, got %q", m.CreatedBy)
	}
	if m.CreatedAt.IsZero() || m.UpdatedAt.IsZero() {
		t.Error("timestamps must be set")
	}
}

func TestMovieService_Create_RatingBounds(t *testing.T) {
	cases := []struct {
		rating float64
		ok     bool
	}{
		{0, true},
		{10, true},
		{5.5, true},
		{-0.1, false},
		{10.01, false},
		{11, false},
	}
	for i, tc := range cases {
		repo := newStubMovieRepo()
		svc := NewMovieService(repo, discardLogger)

		_, err := svc.Create(context.Background(), sampleMovie("m", tc.rating), "owner")
		if tc.ok && err != nil {
			t.Errorf("case %d: rating %v should be accepted, got %v", i, tc.rating, err)
		}
		if !tc.ok && !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: rating %v should be rejected, got %v", i, tc.rating, err)
		}
	}
}

func TestMovieService_Create_RequiredFields(t *testing.T) {
	mutate := map[string]func(m *domain.Movie){
		"movieId":     func(m *domain.Movie) { m.MovieID = "  " },
		"title":       func(m *domain.Movie) { m.Title = "" },
		"description": func(m *domain.Movie) { m.Description = "" },
		"releaseDate": func(m *domain.Movie) { m.ReleaseDate = time.Time{} },
		"genre":       func(m *domain.Movie) { m.Genre = []string{" "} },
		"director":    func(m *domain.Movie) { m.Director = "" },
		"cast":        func(m *domain.Movie) { m.Cast = nil },
	}
	for field, fn := range mutate {
		t.Run(field, func(t *testing.T) {
			repo := newStubMovieRepo()
			svc := NewMovieService(repo, discardLogger)

			m := sampleMovie("m1", 5)
			fn(m)
			_, err := svc.Create(context.Background(), m, "owner")

			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != field {
				t.Fatalf("expected validation error on %s, got %v", field, err)
			}
			if len(repo.byID) != 0 {
				t.Fatal("invalid movie must not be stored")
			}
		})
	}
}

func TestMovieService_Create_DuplicateMovieID(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)

	if _, err := svc.Create(context.Background(), sampleMovie("m1", 5), "a"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), sampleMovie("m1", 6), "b"); !errors.Is(err, domain.ErrMovieExists) {
		t.Fatalf("expected ErrMovieExists, got %v", err)
	}
}

func TestMovieService_Create_RepoErrorIsWrapped(t *testing.T) {
	repo := newStubMovieRepo()
	repo.createErr = errors.New("connection reset")
	svc := NewMovieService(repo, discardLogger)

	_, err := svc.Create(context.Background(), sampleMovie("m1", 5), "a")
	if err == nil || errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected wrapped infrastructure error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Get (dual-key resolution)
// ---------------------------------------------------------------------------

func TestMovieService_Get_ByEitherKey(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), sampleMovie("m1", 7), "owner")

	byID, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	byBusinessID, err := svc.Get(context.Background(), "m1")
	if err != nil {
		t.Fatalf("get by movieId: %v", err)
	}
	if !reflect.DeepEqual(byID, byBusinessID) {
		t.Fatalf("lookups differ:\n%+v\n%+v", byID, byBusinessID)
	}
}

func TestMovieService_Get_NonObjectIDSkipsSurrogateLookup(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)
	_, _ = svc.Create(context.Background(), sampleMovie("m1", 7), "owner")

	if _, err := svc.Get(context.Background(), "m1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if repo.findByIDCalls != 0 {
		t.Fatalf("expected no surrogate lookup for non-ObjectID ref, got %d", repo.findByIDCalls)
	}
}

func TestMovieService_Get_ObjectIDShapedBusinessID(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)
	businessID := primitive.NewObjectID().Hex()
	_, _ = svc.Create(context.Background(), sampleMovie(businessID, 7), "owner")

	m, err := svc.Get(context.Background(), businessID)
	if err != nil {
		t.Fatalf("expected fallback to movieId lookup, got %v", err)
	}
	if m.MovieID != businessID {
		t.Fatalf("unexpected movie: %+v", m)
	}
}

func TestMovieService_Get_NotFound(t *testing.T) {
	svc := NewMovieService(newStubMovieRepo(), discardLogger)

	for _, ref := range []string{"", "missing", primitive.NewObjectID().Hex(), "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		if _, err := svc.Get(context.Background(), ref); !errors.Is(err, domain.ErrMovieNotFound) {
			t.Errorf("%q: expected ErrMovieNotFound, got %v", ref, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestMovieService_Update_OwnerMergesFields(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), sampleMovie("m1", 7), "owner")

	updated, err := svc.Update(context.Background(), "m1", domain.MoviePatch{Rating: ptr(9.0)}, "owner")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating != 9 {
		t.Errorf("expected rating 9, got %v", updated.Rating)
	}
	if updated.Title != created.Title || updated.Director != created.Director || !reflect.DeepEqual(updated.Cast, created.Cast) {
		t.Errorf("omitted fields must be preserved: %+v", updated)
	}
	if updated.CreatedBy != "owner" {
		t.Errorf("owner changed to %q", updated.CreatedBy)
	}
	if repo.byID[created.ID].Rating != 9 {
		t.Errorf("update not persisted")
	}
}

func TestMovieService_Update_RejectsInvalidMerge(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), sampleMovie("m1", 7), "owner")

	_, err := svc.Update(context.Background(), created.ID, domain.MoviePatch{Rating: ptr(10.5)}, "owner")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	_, err = svc.Update(context.Background(), created.ID, domain.MoviePatch{Genre: []string{}}, "owner")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty genre, got %v", err)
	}
	if repo.byID[created.ID].Rating != 7 {
		t.Fatalf("rejected update must not be persisted")
	}
}

func TestMovieService_Update_NonOwnerForbidden(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)
	_, _ = svc.Create(context.Background(), sampleMovie("m1", 7), "owner")

	_, err := svc.Update(context.Background(), "m1", domain.MoviePatch{Title: ptr("hijacked")}, "intruder")
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMovieService_Update_DuplicateBusinessID(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)
	_, _ = svc.Create(context.Background(), sampleMovie("m1", 7), "owner")
	_, _ = svc.Create(context.Background(), sampleMovie("m2", 7), "owner")

	_, err := svc.Update(context.Background(), "m2", domain.MoviePatch{MovieID: ptr("m1")}, "owner")
	if !errors.Is(err, domain.ErrMovieExists) {
		t.Fatalf("expected ErrMovieExists, got %v", err)
	}
}

func TestMovieService_Delete(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), sampleMovie("m1", 7), "owner")

	if err := svc.Delete(context.Background(), created.ID, "intruder"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "m1", "owner"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "m1", "owner"); !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound after delete, got %v", err)
	}
}

func TestMovieService_List(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, discardLogger)
	_, _ = svc.Create(context.Background(), sampleMovie("m1", 7), "a")
	_, _ = svc.Create(context.Background(), sampleMovie("m2", 7), "b")

	all, err := svc.List(context.Background(), ports.MovieFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 movies, got %d (%v)", len(all), err)
	}
	mine, err := svc.List(context.Background(), ports.MovieFilter{CreatedBy: "a"})
	if err != nil || len(mine) != 1 || mine[0].MovieID != "m1" {
		t.Fatalf("unexpected filtered list: %+v (%v)", mine, err)
	}
}
