package service

import (
	"context"
	"testing"

	"agriportal/internal/model"
	"agriportal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users  map[uuid.UUID]*model.User
	tokens map[string]*model.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uuid.UUID]*model.User),
		tokens: make(map[string]*model.RefreshToken),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByOfficerCode(_ context.Context, code string) (*model.User, error) {
	for _, user := range f.users {
		if user.OfficerCode == code {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	var out []model.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) SaveRefreshToken(_ context.Context, token *model.RefreshToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeUserRepo) GetRefreshToken(_ context.Context, token string) (*model.RefreshToken, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func newUserFixture(t *testing.T) (*fakeUserRepo, *fakeRoleRepo, UserService, *model.Role) {
	t.Helper()
	userRepo := newFakeUserRepo()
	roleRepo := newFakeRoleRepo()
	role := roleRepo.addRole(&model.Role{Name: "inspector"})
	return userRepo, roleRepo, NewUserService(userRepo, roleRepo), role
}

func seedUser(t *testing.T, repo *fakeUserRepo, role *model.Role, email, password string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Email:       email,
		Name:        "Officer",
		OfficerCode: "OFF-" + email,
		RoleID:      role.ID,
		Role:        role,
		Password:    string(hashed),
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestCreateUserValidatesUniqueness(t *testing.T) {
	userRepo, _, svc, role := newUserFixture(t)
	seedUser(t, userRepo, role, "a@gov.in", "secret1")

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email:       "a@gov.in",
		Name:        "Dup",
		OfficerCode: "OFF-NEW",
		Password:    "secret1",
		RoleID:      role.ID.String(),
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svc.CreateUser(context.Background(), CreateUserRequest{
		Email:       "b@gov.in",
		Name:        "Bad Role",
		OfficerCode: "OFF-B",
		Password:    "secret1",
		RoleID:      uuid.New().String(),
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLoginIssuesTokens(t *testing.T) {
	userRepo, _, svc, role := newUserFixture(t)
	user := seedUser(t, userRepo, role, "officer@gov.in", "secret1")

	res, err := svc.Login(context.Background(), LoginRequest{Email: "officer@gov.in", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)

	claims := parseClaims(t, res.AccessToken)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, role.ID.String(), claims["role_id"])
	assert.Equal(t, false, claims["is_super"])

	_, err = svc.Login(context.Background(), LoginRequest{Email: "officer@gov.in", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestSuperUserLoginBypassesUserStore(t *testing.T) {
	t.Setenv("SUPER_USER_EMAIL", "root@gov.in")
	t.Setenv("SUPER_USER_PASSWORD", "break-glass")

	_, _, svc, _ := newUserFixture(t)

	// No user row exists for this identity
	res, err := svc.Login(context.Background(), LoginRequest{Email: "root@gov.in", Password: "break-glass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Empty(t, res.RefreshToken)

	claims := parseClaims(t, res.AccessToken)
	assert.Equal(t, true, claims["is_super"])
	assert.Equal(t, "super", claims["role"])

	_, err = svc.Login(context.Background(), LoginRequest{Email: "root@gov.in", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestRefreshRotatesToken(t *testing.T) {
	userRepo, _, svc, role := newUserFixture(t)
	seedUser(t, userRepo, role, "officer@gov.in", "secret1")

	login, err := svc.Login(context.Background(), LoginRequest{Email: "officer@gov.in", Password: "secret1"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The consumed token is gone
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}
