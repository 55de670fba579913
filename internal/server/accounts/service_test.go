package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/server/auth"
	"github.com/dmitrijs2005/recipekeeper/internal/server/config"
	"github.com/dmitrijs2005/recipekeeper/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

type fakeRepo struct {
	byUsername map[string]*models.Account
	nextID     int64

	createErr error
	getErr    error
	listErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byUsername: make(map[string]*models.Account), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byUsername[account.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	account.ID = f.nextID
	f.nextID++
	f.byUsername[account.Username] = account
	return account, nil
}

func (f *fakeRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	account, ok := f.byUsername[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return account, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*models.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.Account
	for _, a := range f.byUsername {
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeRepo) CreateIfAbsent(ctx context.Context, account *models.Account) error {
	if _, ok := f.byUsername[account.Username]; ok {
		return nil
	}
	_, err := f.Create(ctx, account)
	return err
}

const testSecret = "test-secret"

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		BcryptCost:            bcrypt.MinCost,
		AdminPassword:         "adminpw1",
		Admin2Password:        "adminpw2",
	}
	return NewService(repo, cfg)
}

// --- tests ---

func TestRegister_StoresVerifiableHash(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)

	account, err := s.Register(context.Background(), "chef1", "pw123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if account.Role != models.RoleGuest {
		t.Fatalf("expected guest role, got %q", account.Role)
	}

	stored, err := repo.GetByUsername(context.Background(), "chef1")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw123")); err != nil {
		t.Fatalf("stored hash does not verify original password: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("other")); err == nil {
		t.Fatalf("stored hash verified a wrong password")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)

	if _, err := s.Register(context.Background(), "chef1", "pw123"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err := s.Register(context.Background(), "chef1", "different")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
	if len(repo.byUsername) != 1 {
		t.Fatalf("duplicate registration created a row")
	}
}

func TestLoginScenario(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)

	account, err := s.Register(context.Background(), "chef1", "pw123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Wrong password: no token, unified error.
	token, err := s.Login(context.Background(), "chef1", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected common.ErrorUnauthorized, got %v", err)
	}
	if token != "" {
		t.Fatalf("token issued on failed login")
	}

	// Correct password: token verifies to the registered identity.
	token, err = s.Login(context.Background(), "chef1", "pw123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	ident, err := auth.GetIdentityFromToken(token, []byte(testSecret))
	if err != nil {
		t.Fatalf("GetIdentityFromToken error: %v", err)
	}
	if ident.AccountID != account.ID || ident.Role != models.RoleGuest {
		t.Fatalf("identity mismatch: got %+v want {%d %s}", ident, account.ID, models.RoleGuest)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	s := newTestService(t, newFakeRepo())

	_, err := s.Login(context.Background(), "nobody", "pw")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected common.ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_StoreError(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = errors.New("connection refused")
	s := newTestService(t, repo)

	_, err := s.Login(context.Background(), "chef1", "pw123")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("expected common.ErrorInternal, got %v", err)
	}
}

func TestList_RequiresAdminRole(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)

	if _, err := s.Register(context.Background(), "chef1", "pw123"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	cases := []struct {
		name  string
		ident *auth.Identity
	}{
		{"guest", &auth.Identity{AccountID: 1, Role: models.RoleGuest}},
		{"unknown role", &auth.Identity{AccountID: 1, Role: "superuser"}},
		{"nil identity", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.List(context.Background(), tc.ident)
			if !errors.Is(err, common.ErrorForbidden) {
				t.Fatalf("expected common.ErrorForbidden, got %v", err)
			}
		})
	}

	result, err := s.List(context.Background(), &auth.Identity{AccountID: 99, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 account, got %d", len(result))
	}
}

func TestSeedAdmins(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)

	if err := s.SeedAdmins(context.Background()); err != nil {
		t.Fatalf("SeedAdmins error: %v", err)
	}

	for username, password := range map[string]string{"admin": "adminpw1", "admin2": "adminpw2"} {
		account, err := repo.GetByUsername(context.Background(), username)
		if err != nil {
			t.Fatalf("seeded account %q missing: %v", username, err)
		}
		if account.Role != models.RoleAdmin {
			t.Fatalf("seeded account %q has role %q", username, account.Role)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
			t.Fatalf("seeded hash for %q does not verify: %v", username, err)
		}
	}
}

func TestSeedAdmins_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)

	if err := s.SeedAdmins(context.Background()); err != nil {
		t.Fatalf("SeedAdmins error: %v", err)
	}
	first, _ := repo.GetByUsername(context.Background(), "admin")

	if err := s.SeedAdmins(context.Background()); err != nil {
		t.Fatalf("second SeedAdmins error: %v", err)
	}
	second, _ := repo.GetByUsername(context.Background(), "admin")

	// Existing accounts stay untouched, hashes included.
	if first.PasswordHash != second.PasswordHash {
		t.Fatalf("re-seeding replaced an existing admin account")
	}
}
