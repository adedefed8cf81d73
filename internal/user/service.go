package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"warehouse-be/internal/logger"
	"warehouse-be/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	Authenticate(ctx context.Context, login, password string) (Identity, error)
	Register(ctx context.Context, login, password string, role Role) (*User, error)
	IssueToken(ctx context.Context, id Identity) (string, error)
	ResolveIdentity(ctx context.Context, claimed Identity) (Identity, error)
	UpdateRole(ctx context.Context, id int64, role Role) error
	UpdateRoles(ctx context.Context, roles map[int64]Role) error
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, ids []int64) (int64, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	EnsureAdministrator(ctx context.Context, login, password string) (bool, error)
}

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type service struct {
	repo            Repository
	bootstrapBypass bool
	token           TokenConfig
}

func NewService(repo Repository, bootstrapBypass bool, token TokenConfig) Service {
	return &service{repo: repo, bootstrapBypass: bootstrapBypass, token: token}
}

func (s *service) Authenticate(ctx context.Context, login, password string) (Identity, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Authenticate"),
		zap.String("login", login),
	)

	if s.bootstrapBypass && login == bootstrapLogin && password == bootstrapPassword {
		log.Warn("bootstrap credential used")
		metrics.RecordLogin("bootstrap")
		id := Identity{Login: login, Role: RoleAdministrator}
		// Carry the seeded row's id when there is one.
		if u, err := s.repo.FindByLogin(ctx, login); err == nil {
			id.UserID = u.ID
		}
		return id, nil
	}

	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("unknown login")
			metrics.RecordLogin("failure")
			return Identity{}, ErrInvalidCredentials
		}
		log.Error("failed to load user", zap.Error(err))
		metrics.RecordLogin("error")
		return Identity{}, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Info("password mismatch")
		metrics.RecordLogin("failure")
		return Identity{}, ErrInvalidCredentials
	}

	metrics.RecordLogin("success")
	return Identity{UserID: u.ID, Login: u.Login, Role: u.Role}, nil
}

func (s *service) Register(ctx context.Context, login, password string, role Role) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrEmptyLogin
	}
	if !ValidatePassword(password) {
		return nil, ErrWeakPassword
	}
	role, err := ParseRole(string(role))
	if err != nil {
		return nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, login, hashed, role)
	if err != nil {
		log.Warn("failed to create user", zap.String("login", login), zap.Error(err))
		return nil, err
	}

	log.Info("user registered",
		zap.Int64("new_user_id", u.ID),
		zap.String("login", u.Login),
		zap.String("role", string(u.Role)),
	)
	return u, nil
}

func (s *service) IssueToken(ctx context.Context, id Identity) (string, error) {
	token, err := GenerateJWT(s.token.Secret, s.token.TTL, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to generate jwt",
			zap.String("login", id.Login),
			zap.Error(err),
		)
		return "", err
	}
	return token, nil
}

// ResolveIdentity re-reads the caller behind a token so role changes and
// deletions apply to tokens already issued. The bootstrap identity (id 0)
// has no row and stays valid only while the bypass is enabled.
func (s *service) ResolveIdentity(ctx context.Context, claimed Identity) (Identity, error) {
	bootstrap := s.bootstrapBypass && claimed.Login == bootstrapLogin && claimed.Role == RoleAdministrator
	if claimed.UserID == 0 {
		if bootstrap {
			return claimed, nil
		}
		return Identity{}, ErrUserNotFound
	}

	u, err := s.repo.FindByID(ctx, claimed.UserID)
	if err != nil {
		return Identity{}, err
	}
	// The bypass grants Administrator to the seeded row whatever its stored role.
	if bootstrap && u.Login == bootstrapLogin {
		return claimed, nil
	}
	return Identity{UserID: u.ID, Login: u.Login, Role: u.Role}, nil
}

func (s *service) UpdateRole(ctx context.Context, id int64, role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("role updated", zap.Int64("target_id", id), zap.String("role", string(role)))
	return nil
}

func (s *service) UpdateRoles(ctx context.Context, roles map[int64]Role) error {
	if len(roles) == 0 {
		return ErrNoUsersSelected
	}
	for _, r := range roles {
		if !r.Valid() {
			return ErrInvalidRole
		}
	}
	if err := s.repo.UpdateRoles(ctx, roles); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("roles updated", zap.Int("count", len(roles)))
	return nil
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoUsersSelected
	}
	n, err := s.repo.Delete(ctx, ids)
	if err != nil {
		return 0, err
	}
	logger.FromCtx(ctx).Info("users deleted", zap.Int64s("ids", ids), zap.Int64("removed", n))
	return n, nil
}

func (s *service) GetByLogin(ctx context.Context, login string) (*User, error) {
	return s.repo.FindByLogin(ctx, login)
}

// EnsureAdministrator seeds an Administrator account on first run.
func (s *service) EnsureAdministrator(ctx context.Context, login, password string) (bool, error) {
	if login == "" {
		return false, ErrEmptyLogin
	}
	if !ValidatePassword(password) {
		return false, ErrWeakPassword
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	created, err := s.repo.EnsureAdministrator(ctx, login, hashed)
	if err != nil {
		return false, err
	}
	if created {
		logger.FromCtx(ctx).Info("administrator account seeded", zap.String("login", login))
	}
	return created, nil
}
