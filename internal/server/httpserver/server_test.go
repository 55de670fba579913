package httpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/logging"
	"github.com/dmitrijs2005/recipekeeper/internal/server/accounts"
	"github.com/dmitrijs2005/recipekeeper/internal/server/auth"
	"github.com/dmitrijs2005/recipekeeper/internal/server/config"
	"github.com/dmitrijs2005/recipekeeper/internal/server/models"
	"github.com/dmitrijs2005/recipekeeper/internal/server/provider"
	"github.com/dmitrijs2005/recipekeeper/internal/server/recipes"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fakeAccountRepo struct {
	byUsername map[string]*models.Account
	nextID     int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byUsername: make(map[string]*models.Account), nextID: 1}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if _, ok := f.byUsername[account.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	account.ID = f.nextID
	f.nextID++
	f.byUsername[account.Username] = account
	return account, nil
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	account, ok := f.byUsername[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return account, nil
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]*models.Account, error) {
	var result []*models.Account
	for _, a := range f.byUsername {
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAccountRepo) CreateIfAbsent(ctx context.Context, account *models.Account) error {
	if _, ok := f.byUsername[account.Username]; ok {
		return nil
	}
	_, err := f.Create(ctx, account)
	return err
}

type fakeRecipeRepo struct {
	recipes map[int64]*models.Recipe
	nextID  int64
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[int64]*models.Recipe), nextID: 1}
}

func (f *fakeRecipeRepo) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.ID = f.nextID
	f.nextID++
	f.recipes[recipe.ID] = recipe
	return recipe, nil
}

func (f *fakeRecipeRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Recipe, error) {
	var result []*models.Recipe
	for _, r := range f.recipes {
		if r.OwnerID == ownerID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRecipeRepo) DeleteOwned(ctx context.Context, id int64, ownerID int64) error {
	if r, ok := f.recipes[id]; ok && r.OwnerID == ownerID {
		delete(f.recipes, id)
	}
	return nil
}

type testEnv struct {
	server      *Server
	router      http.Handler
	accountRepo *fakeAccountRepo
	recipeRepo  *fakeRecipeRepo
}

// newTestEnv wires a full server over in-memory stores. upstream may be nil
// when the test never touches the provider routes.
func newTestEnv(t *testing.T, upstream http.HandlerFunc) *testEnv {
	t.Helper()

	providerURL := "http://127.0.0.1:0"
	if upstream != nil {
		srv := httptest.NewServer(upstream)
		t.Cleanup(srv.Close)
		providerURL = srv.URL
	}

	cfg := &config.Config{
		EndpointAddr:          ":0",
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		BcryptCost:            bcrypt.MinCost,
		ProviderAPIKey:        "test-api-key",
		ProviderBaseURL:       providerURL,
		ProviderTimeout:       5 * time.Second,
		AdminPassword:         "adminpw1",
		Admin2Password:        "adminpw2",
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	accountRepo := newFakeAccountRepo()
	recipeRepo := newFakeRecipeRepo()

	as := accounts.NewService(accountRepo, cfg)
	rs := recipes.NewService(recipeRepo)
	pc := provider.NewClient(cfg, logger)

	server, err := NewServer(cfg, logger, as, rs, pc)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	return &testEnv{
		server:      server,
		router:      server.routes(),
		accountRepo: accountRepo,
		recipeRepo:  recipeRepo,
	}
}

// registerAccount creates an account directly in the store and returns it.
func (e *testEnv) registerAccount(t *testing.T, username, password, role string) *models.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	account, err := e.accountRepo.Create(context.Background(), &models.Account{
		Username: username, PasswordHash: string(hash), Role: role,
	})
	if err != nil {
		t.Fatalf("account setup error: %v", err)
	}
	return account
}

// sessionCookie issues a signed token for the account, as a login would.
func (e *testEnv) sessionCookie(t *testing.T, account *models.Account) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateToken(account.ID, account.Role, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return &http.Cookie{Name: common.SessionCookieName, Value: token}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// findCookie returns the last Set-Cookie entry with the given name, or nil.
func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
