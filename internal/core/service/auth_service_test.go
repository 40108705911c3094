package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinelog/movie-catalog/internal/core/domain"
	"github.com/cinelog/movie-catalog/internal/core/ports"
)

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("%024x", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	for _, u := range r.users {
		if googleID != "" && u.GoogleID == googleID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubVerifier struct {
	ident *domain.ExternalIdentity
	err   error
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (*domain.ExternalIdentity, error) {
	return v.ident, v.err
}

type stubReplayGuard struct {
	seen map[string]bool
	err  error
}

func (g *stubReplayGuard) FirstUse(_ context.Context, credential string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if g.seen[credential] {
		return false, nil
	}
	g.seen[credential] = true
	return true, nil
}

func newAuthService(repo ports.UserRepository, verifier ports.IdentityVerifier, guard ports.ReplayGuard) (*AuthService, *TokenService) {
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens, verifier, guard, discardLogger), tokens
}

func TestAuthService_Register_ThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthService(repo, &stubVerifier{}, nil)

	token, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Name: "Ann", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	registeredID, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("register token invalid: %v", err)
	}

	stored := repo.users[registeredID]
	if stored == nil {
		t.Fatalf("user %s not stored", registeredID)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed, got %q", stored.PasswordHash)
	}

	loginToken, err := svc.Login(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	loginID, err := tokens.Verify(loginToken)
	if err != nil || loginID != registeredID {
		t.Fatalf("login token resolves to %q (%v), want %q", loginID, err, registeredID)
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, &stubVerifier{}, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "  Ann@X.com ", Name: "Ann", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ann@x.com", "secret1"); err != nil {
		t.Fatalf("login with lower-cased email failed: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   ports.RegisterInput
	}{
		{"bad email", ports.RegisterInput{Email: "not-an-email", Name: "A", Password: "secret1"}},
		{"missing name", ports.RegisterInput{Email: "a@x.com", Name: "  ", Password: "secret1"}},
		{"short password", ports.RegisterInput{Email: "a@x.com", Name: "A", Password: "12345"}},
		{"long password", ports.RegisterInput{Email: "a@x.com", Name: "A", Password: strings.Repeat("x", 80)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubUserRepo()
			svc, _ := newAuthService(repo, &stubVerifier{}, nil)

			_, err := svc.Register(context.Background(), tc.in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(repo.users) != 0 {
				t.Fatalf("expected no user stored, got %d", len(repo.users))
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, &stubVerifier{}, nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "bob@example.com", Name: "Bob", Password: "pass123"})
	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "bob@example.com", Name: "Bob 2", Password: "pass456"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(repo.users))
	}
}

func TestAuthService_Login_FailuresLookTheSame(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, &stubVerifier{}, nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Name: "Dave", Password: "goodpass"})

	_, wrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, noUser := svc.Login(context.Background(), "ghost@example.com", "goodpass")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if noUser != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noUser)
	}
}

func TestAuthService_Login_GoogleOnlyAccount(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["g1"] = &domain.User{ID: "g1", Email: "g@x.com", GoogleID: "sub-1"}
	svc, _ := newAuthService(repo, &stubVerifier{}, nil)

	if _, err := svc.Login(context.Background(), "g@x.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "g@x.com", "anything"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_GoogleLogin_CreatesUser(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{ident: &domain.ExternalIdentity{Subject: "sub-1", Email: "New@X.com", Name: "Newbie"}}
	svc, tokens := newAuthService(repo, verifier, nil)

	token, err := svc.GoogleLogin(context.Background(), "cred")
	if err != nil {
		t.Fatalf("google login failed: %v", err)
	}
	id, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}

	u := repo.users[id]
	if u == nil || u.Email != "new@x.com" || u.GoogleID != "sub-1" || u.HasPassword() {
		t.Fatalf("unexpected stored user: %+v", u)
	}

	again, err := svc.GoogleLogin(context.Background(), "cred-2")
	if err != nil {
		t.Fatalf("second google login failed: %v", err)
	}
	if againID, _ := tokens.Verify(again); againID != id {
		t.Fatalf("expected same user on second login, got %s want %s", againID, id)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected one user, got %d", len(repo.users))
	}
}

func TestAuthService_GoogleLogin_LinksExistingEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthService(repo, &stubVerifier{ident: &domain.ExternalIdentity{Subject: "sub-9", Email: "a@x.com"}}, nil)

	regToken, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Name: "Ann", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	regID, _ := tokens.Verify(regToken)

	token, err := svc.GoogleLogin(context.Background(), "cred")
	if err != nil {
		t.Fatalf("google login failed: %v", err)
	}
	if id, _ := tokens.Verify(token); id != regID {
		t.Fatalf("expected linked account %s, got %s", regID, id)
	}
	if repo.users[regID].GoogleID != "sub-9" {
		t.Fatalf("google id not linked: %+v", repo.users[regID])
	}
	if !repo.users[regID].CheckPassword("secret1") {
		t.Fatalf("linking must keep the password")
	}
}

func TestAuthService_GoogleLogin_VerifierFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, &stubVerifier{err: errors.New("audience mismatch")}, nil)

	if _, err := svc.GoogleLogin(context.Background(), "cred"); err != domain.ErrExternalAuth {
		t.Fatalf("expected ErrExternalAuth, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be created")
	}
}

func TestAuthService_GoogleLogin_ReplayRejected(t *testing.T) {
	repo := newStubUserRepo()
	guard := &stubReplayGuard{seen: map[string]bool{}}
	svc, _ := newAuthService(repo, &stubVerifier{ident: &domain.ExternalIdentity{Subject: "s", Email: "s@x.com"}}, guard)

	if _, err := svc.GoogleLogin(context.Background(), "cred"); err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if _, err := svc.GoogleLogin(context.Background(), "cred"); err != domain.ErrExternalAuth {
		t.Fatalf("expected ErrExternalAuth on replay, got %v", err)
	}
}

func TestAuthService_GoogleLogin_GuardErrorIsNotFatal(t *testing.T) {
	repo := newStubUserRepo()
	guard := &stubReplayGuard{err: errors.New("redis down")}
	svc, _ := newAuthService(repo, &stubVerifier{ident: &domain.ExternalIdentity{Subject: "s", Email: "s@x.com"}}, guard)

	if _, err := svc.GoogleLogin(context.Background(), "cred"); err != nil {
		t.Fatalf("expected login to proceed, got %v", err)
	}
}

func TestAuthService_GoogleLogin_EmptyCredential(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo(), &stubVerifier{}, nil)

	if _, err := svc.GoogleLogin(context.Background(), " "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_GoogleLogin_RefusesSecondGoogleAccount(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{ident: &domain.ExternalIdentity{Subject: "sub-1", Email: "a@x.com"}}
	svc, _ := newAuthService(repo, verifier, nil)

	if _, err := svc.GoogleLogin(context.Background(), "cred"); err != nil {
		t.Fatalf("first google login failed: %v", err)
	}

	verifier.ident = &domain.ExternalIdentity{Subject: "sub-2", Email: "a@x.com"}
	if _, err := svc.GoogleLogin(context.Background(), "cred-2"); !errors.Is(err, domain.ErrExternalAuth) {
		t.Fatalf("expected ErrExternalAuth, got %v", err)
	}

	u, _ := repo.FindByEmail(context.Background(), "a@x.com")
	if u.GoogleID != "sub-1" {
		t.Fatalf("stored google id changed to %q", u.GoogleID)
	}
}

// racingUserRepo reports a duplicate on Create, optionally after another
// writer stored the same user.
type racingUserRepo struct {
	*stubUserRepo
	winnerStores bool
}

func (r *racingUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if r.winnerStores {
		if _, err := r.stubUserRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	return nil, domain.ErrUserExists
}

func TestAuthService_GoogleLogin_ConcurrentCreate(t *testing.T) {
	ident := &domain.ExternalIdentity{Subject: "sub-r", Email: "r@x.com"}

	t.Run("winner found", func(t *testing.T) {
		repo := &racingUserRepo{stubUserRepo: newStubUserRepo(), winnerStores: true}
		svc, tokens := newAuthService(repo, &stubVerifier{ident: ident}, nil)

		token, err := svc.GoogleLogin(context.Background(), "cred")
		if err != nil {
			t.Fatalf("expected login to reuse the stored user, got %v", err)
		}
		id, _ := tokens.Verify(token)
		if repo.users[id] == nil || repo.users[id].GoogleID != "sub-r" {
			t.Fatalf("token does not point at the stored user: %s", id)
		}
	})

	t.Run("no winner", func(t *testing.T) {
		repo := &racingUserRepo{stubUserRepo: newStubUserRepo()}
		svc, _ := newAuthService(repo, &stubVerifier{ident: ident}, nil)

		if _, err := svc.GoogleLogin(context.Background(), "cred"); !errors.Is(err, domain.ErrExternalAuth) {
			t.Fatalf("expected ErrExternalAuth, got %v", err)
		}
	})
}
