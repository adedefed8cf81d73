package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse-be/internal/apperror"
	"warehouse-be/internal/logger"
	"warehouse-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, login, passwordHash string, role Role) (*User, error) {
	args := m.Called(ctx, login, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (*User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) UpdateRole(ctx context.Context, id int64, role Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockRepository) UpdateRoles(ctx context.Context, roles map[int64]Role) error {
	return m.Called(ctx, roles).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) EnsureAdministrator(ctx context.Context, login, passwordHash string) (bool, error) {
	args := m.Called(ctx, login, passwordHash)
	return args.Bool(0), args.Error(1)
}

var testToken = TokenConfig{Secret: "testsecret", TTL: time.Hour}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)

		mockRepo.On("Create", ctx, "alice", mock.MatchedBy(func(h string) bool {
			return CheckPasswordHash("secret!1", h)
		}), RoleCustomer).Return(&User{ID: 1, Login: "alice", Role: RoleCustomer}, nil)

		u, err := svc.Register(ctx, "alice", "secret!1", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("LogsNewUserID", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		defer logger.Replace(zap.New(core))()

		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)
		mockRepo.On("Create", mock.Anything, "dave", mock.Anything, RoleCustomer).
			Return(&User{ID: 5, Login: "dave", Role: RoleCustomer}, nil)

		callerCtx := utils.SetUserContext(ctx, 1, "admin", string(RoleAdministrator))
		_, err := svc.Register(callerCtx, "dave", "secret!1", RoleCustomer)
		require.NoError(t, err)

		entries := logs.FilterMessage("user registered").All()
		require.Len(t, entries, 1)
		var userIDs int
		for _, f := range entries[0].Context {
			if f.Key == "user_id" {
				userIDs++
				assert.Equal(t, int64(1), f.Integer)
			}
		}
		assert.Equal(t, 1, userIDs)
		assert.Equal(t, int64(5), entries[0].ContextMap()["new_user_id"])
	})

	t.Run("WeakPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)

		_, err := svc.Register(ctx, "alice", "secret", RoleCustomer)
		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.ErrorIs(t, err, apperror.ErrValidation)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("EmptyLogin", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)

		_, err := svc.Register(ctx, "  ", "secret!1", RoleCustomer)
		assert.ErrorIs(t, err, ErrEmptyLogin)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)

		_, err := svc.Register(ctx, "alice", "secret!1", Role("Root"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("LoginExists", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)

		mockRepo.On("Create", ctx, "alice", mock.Anything, RoleEmployee).Return(nil, ErrLoginExists)

		_, err := svc.Register(ctx, "alice", "secret!1", RoleEmployee)
		assert.ErrorIs(t, err, ErrLoginExists)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("secret!1")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)
		mockRepo.On("FindByLogin", ctx, "bob").
			Return(&User{ID: 4, Login: "bob", PasswordHash: hash, Role: RoleEmployee}, nil)

		id, err := svc.Authenticate(ctx, "bob", "secret!1")
		require.NoError(t, err)
		assert.Equal(t, Identity{UserID: 4, Login: "bob", Role: RoleEmployee}, id)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)
		mockRepo.On("FindByLogin", ctx, "bob").
			Return(&User{ID: 4, Login: "bob", PasswordHash: hash, Role: RoleEmployee}, nil)

		_, err := svc.Authenticate(ctx, "bob", "wrong!1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("UnknownLogin", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)
		mockRepo.On("FindByLogin", ctx, "nobody").Return(nil, ErrUserNotFound)

		_, err := svc.Authenticate(ctx, "nobody", "x")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DBError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)
		dbErr := apperror.Database("user.FindByLogin", errors.New("disk I/O error"))
		mockRepo.On("FindByLogin", ctx, "bob").Return(nil, dbErr)

		_, err := svc.Authenticate(ctx, "bob", "secret!1")
		assert.ErrorIs(t, err, apperror.ErrDatabase)
	})

	t.Run("BootstrapBypass", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		defer logger.Replace(zap.New(core))()

		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, true, testToken)
		mockRepo.On("FindByLogin", ctx, "admin").Return(nil, ErrUserNotFound)

		id, err := svc.Authenticate(ctx, "admin", "admin")
		require.NoError(t, err)
		assert.Equal(t, RoleAdministrator, id.Role)
		assert.Equal(t, 1, logs.FilterMessage("bootstrap credential used").Len())
	})

	t.Run("BootstrapBypassUsesSeededID", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, true, testToken)
		mockRepo.On("FindByLogin", ctx, "admin").
			Return(&User{ID: 1, Login: "admin", PasswordHash: "other", Role: RoleCustomer}, nil)

		id, err := svc.Authenticate(ctx, "admin", "admin")
		require.NoError(t, err)
		assert.Equal(t, Identity{UserID: 1, Login: "admin", Role: RoleAdministrator}, id)
	})

	t.Run("BootstrapDisabled", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)
		mockRepo.On("FindByLogin", ctx, "admin").Return(nil, ErrUserNotFound)

		_, err := svc.Authenticate(ctx, "admin", "admin")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_ResolveIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("StoredRoleWins", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)
		mockRepo.On("FindByID", ctx, int64(4)).Return(&User{ID: 4, Login: "chief", Role: RoleCustomer}, nil)

		id, err := svc.ResolveIdentity(ctx, Identity{UserID: 4, Login: "chief", Role: RoleAdministrator})
		require.NoError(t, err)
		assert.Equal(t, Identity{UserID: 4, Login: "chief", Role: RoleCustomer}, id)
	})

	t.Run("DeletedUser", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, false, testToken)
		mockRepo.On("FindByID", ctx, int64(4)).Return(nil, ErrUserNotFound)

		_, err := svc.ResolveIdentity(ctx, Identity{UserID: 4, Login: "chief", Role: RoleAdministrator})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("BootstrapWithoutRow", func(t *testing.T) {
		bootstrap := Identity{Login: "admin", Role: RoleAdministrator}

		id, err := NewService(new(MockRepository), true, testToken).ResolveIdentity(ctx, bootstrap)
		require.NoError(t, err)
		assert.Equal(t, bootstrap, id)

		_, err = NewService(new(MockRepository), false, testToken).ResolveIdentity(ctx, bootstrap)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("BootstrapOnSeededRow", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, true, testToken)
		mockRepo.On("FindByID", ctx, int64(1)).Return(&User{ID: 1, Login: "admin", Role: RoleCustomer}, nil)

		claimed := Identity{UserID: 1, Login: "admin", Role: RoleAdministrator}
		id, err := svc.ResolveIdentity(ctx, claimed)
		require.NoError(t, err)
		assert.Equal(t, claimed, id)
	})
}

func TestService_IssueToken(t *testing.T) {
	svc := NewService(new(MockRepository), false, testToken)
	id := Identity{UserID: 9, Login: "carol", Role: RoleCustomer}

	token, err := svc.IssueToken(context.Background(), id)
	require.NoError(t, err)

	claims, err := ParseJWT(testToken.Secret, token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())

	_, err = NewService(new(MockRepository), false, TokenConfig{}).IssueToken(context.Background(), id)
	assert.Error(t, err)
}

func TestService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, false, testToken)

	mockRepo.On("UpdateRole", ctx, int64(3), RoleEmployee).Return(nil)

	assert.NoError(t, svc.UpdateRole(ctx, 3, RoleEmployee))
	assert.ErrorIs(t, svc.UpdateRole(ctx, 3, Role("Boss")), ErrInvalidRole)
	mockRepo.AssertNumberOfCalls(t, "UpdateRole", 1)
}

func TestService_UpdateRoles(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, false, testToken)

	roles := map[int64]Role{1: RoleAdministrator, 2: RoleCustomer}
	mockRepo.On("UpdateRoles", ctx, roles).Return(nil)

	assert.NoError(t, svc.UpdateRoles(ctx, roles))
	assert.ErrorIs(t, svc.UpdateRoles(ctx, nil), ErrNoUsersSelected)
	assert.ErrorIs(t, svc.UpdateRoles(ctx, map[int64]Role{1: "x"}), ErrInvalidRole)
	mockRepo.AssertNumberOfCalls(t, "UpdateRoles", 1)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, false, testToken)

	mockRepo.On("Delete", ctx, []int64{2, 3}).Return(int64(2), nil)

	n, err := svc.Delete(ctx, []int64{2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.Delete(ctx, nil)
	assert.ErrorIs(t, err, ErrNoUsersSelected)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, false, testToken)

	mockRepo.On("List", ctx).Return([]User{{ID: 1, Login: "admin", Role: RoleAdministrator}}, nil)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestService_EnsureAdministrator(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, false, testToken)

	mockRepo.On("EnsureAdministrator", ctx, "root", mock.MatchedBy(func(h string) bool {
		return CheckPasswordHash("root!pw", h)
	})).Return(true, nil)

	created, err := svc.EnsureAdministrator(ctx, "root", "root!pw")
	require.NoError(t, err)
	assert.True(t, created)

	_, err = svc.EnsureAdministrator(ctx, "", "x")
	assert.ErrorIs(t, err, ErrEmptyLogin)

	_, err = svc.EnsureAdministrator(ctx, "admin", "admin")
	assert.ErrorIs(t, err, ErrWeakPassword)
	mockRepo.AssertNumberOfCalls(t, "EnsureAdministrator", 1)
}
