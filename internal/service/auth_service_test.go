package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"billed/internal/dto"
	"billed/internal/models"
	"billed/pkg/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryUsers struct {
	byID map[uuid.UUID]*models.User
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.byID[user.ID] = user
	return nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func newAuthService() (*AuthService, *auth.JWTManager) {
	jwtManager := auth.NewJWTManager("secret", time.Hour, 24*time.Hour)
	users := &memoryUsers{byID: make(map[uuid.UUID]*models.User)}
	return NewAuthService(users, jwtManager, zap.NewNop()), jwtManager
}

func TestRegisterAndLogin(t *testing.T) {
	svc, jwtManager := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Email: "Employee@Test.tld", Password: "employee"})
	require.NoError(t, err)
	assert.Equal(t, "employee@test.tld", registered.User.Email)
	assert.Equal(t, "Employee", registered.User.Type)
	assert.Equal(t, "Bearer", registered.TokenType)

	claims, err := jwtManager.ValidateToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "employee@test.tld", claims.Email)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "employee@test.tld", Password: "another"})
	assert.ErrorIs(t, err, ErrUserExists)

	loggedIn, err := svc.Login(ctx, &dto.LoginRequest{Email: "employee@test.tld", Password: "employee"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "employee@test.tld", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "not-an-email", Password: "employee"})
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{Email: "a@b.tld", Password: "short"})
	assert.Error(t, err)

	_, err = svc.Provision(context.Background(), &dto.RegisterRequest{Email: "a@b.tld", Password: "employee"}, "Boss")
	assert.Error(t, err)
}

func TestRegisterIgnoresRequestedType(t *testing.T) {
	svc, jwtManager := newAuthService()

	var req dto.RegisterRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email":"intruder@test.tld","password":"intruder","type":"Admin"}`), &req))

	registered, err := svc.Register(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, string(models.UserTypeEmployee), registered.User.Type)

	claims, err := jwtManager.ValidateToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(models.UserTypeEmployee), claims.Type)
}

func TestRefreshToken(t *testing.T) {
	svc, jwtManager := newAuthService()
	ctx := context.Background()

	registered, err := svc.Provision(ctx, &dto.RegisterRequest{Email: "admin@test.tld", Password: "admin123"}, models.UserTypeAdmin)
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "Admin", refreshed.User.Type)

	_, err = svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	orphan, err := jwtManager.GenerateRefreshToken(uuid.NewString())
	require.NoError(t, err)
	_, err = svc.RefreshToken(ctx, orphan)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
