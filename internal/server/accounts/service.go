package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/server/auth"
	"github.com/dmitrijs2005/recipekeeper/internal/server/config"
	"github.com/dmitrijs2005/recipekeeper/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// Seed admin usernames are fixed; only their passwords come from configuration.
const (
	seedAdminUsername  = "admin"
	seedAdmin2Username = "admin2"
)

// dummyHash is a valid bcrypt hash compared against when a login names an
// unknown user, so the unknown-user and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type adminSeed struct {
	username string
	password string
}

type Service struct {
	repo          Repository
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
	adminSeeds    []adminSeed
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
		adminSeeds: []adminSeed{
			{username: seedAdminUsername, password: cfg.AdminPassword},
			{username: seedAdmin2Username, password: cfg.Admin2Password},
		},
	}
}

// Register creates a guest account with a bcrypt-hashed password. A duplicate
// username (case-sensitive) yields common.ErrorAlreadyExists and no row.
func (s *Service) Register(ctx context.Context, username string, password string) (*models.Account, error) {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleGuest,
	}

	account, err = s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	return account, nil
}

// Login verifies the credentials and issues a session token carrying the
// account id and a snapshot of its role. Unknown user and wrong password both
// collapse into common.ErrorUnauthorized; the unknown-user path still runs a
// bcrypt comparison so the two failures are not timing-distinguishable.
func (s *Service) Login(ctx context.Context, username string, password string) (string, error) {

	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(account.ID, account.Role, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// List returns every account. Only admins may call it; any other role yields
// common.ErrorForbidden. The role claim in the token is trusted as-is, it is
// not re-checked against the store (see design notes).
func (s *Service) List(ctx context.Context, ident *auth.Identity) ([]*models.Account, error) {

	if ident == nil || ident.Role != models.RoleAdmin {
		return nil, common.ErrorForbidden
	}

	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}

// SeedAdmins upserts the two fixed admin accounts if they are absent. It runs
// once at startup and is idempotent: existing accounts are left untouched,
// including their stored password hashes.
func (s *Service) SeedAdmins(ctx context.Context) error {

	for _, seed := range s.adminSeeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("error hashing seed password: %w", err)
		}

		account := &models.Account{
			Username:     seed.username,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}

		if err := s.repo.CreateIfAbsent(ctx, account); err != nil {
			return fmt.Errorf("error seeding admin %q: %w", seed.username, err)
		}
	}

	return nil
}
