package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"agriportal/internal/auth"
	"agriportal/internal/model"
	"agriportal/internal/repository"
	"agriportal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required"`
	OfficerCode string `json:"officer_code" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	RoleID      string `json:"role_id" binding:"required"`
	District    string `json:"district"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Name     string `json:"name"`
	RoleID   string `json:"role_id"`
	District string `json:"district"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// UserResponse returns a User without exposing sensitive data
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	OfficerCode string    `json:"officer_code"`
	RoleID      uuid.UUID `json:"role_id"`
	RoleName    string    `json:"role_name,omitempty"`
	District    string    `json:"district"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	// Login authenticates against stored credentials. The super-user email
	// follows an alternate path that requires no user row at all.
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo     repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{repo: repo, roleRepo: roleRepo}
}

// SuperUserEmail returns the fixed out-of-band super-user identity, empty
// when the deployment has none configured.
func SuperUserEmail() string {
	return os.Getenv("SUPER_USER_EMAIL")
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key" // Development fallback only
	}
	return []byte(secret)
}

// IssueAccessToken signs a 24h session token for the given actor
func IssueAccessToken(actor auth.Actor) (string, error) {
	claims := jwt.MapClaims{
		"sub":      actor.UserID.String(),
		"role_id":  actor.RoleID.String(),
		"role":     actor.RoleName,
		"is_super": actor.IsSuperUser,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return nil, apperror.Validation("invalid role id")
	}
	if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("role", req.RoleID)
		}
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Conflict("email already exists")
	}
	if _, err := s.repo.GetByOfficerCode(ctx, req.OfficerCode); err == nil {
		return nil, apperror.Conflict("officer code already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &model.User{
		Email:       req.Email,
		Name:        req.Name,
		OfficerCode: req.OfficerCode,
		RoleID:      roleID,
		Password:    string(hashedPassword),
		District:    req.District,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapToUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	// Alternate authentication path: the fixed super-user identity is not
	// row-backed and bypasses the regular credential store.
	if superEmail := SuperUserEmail(); superEmail != "" && req.Email == superEmail {
		superPassword := os.Getenv("SUPER_USER_PASSWORD")
		if superPassword == "" || req.Password != superPassword {
			return nil, apperror.Unauthorized("invalid email or password")
		}
		accessToken, err := IssueAccessToken(auth.Actor{RoleName: "super", IsSuperUser: true})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return &TokenResponse{AccessToken: accessToken}, nil
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	actor := auth.Actor{UserID: user.ID, RoleID: user.RoleID}
	if user.Role != nil {
		actor.RoleName = user.Role.Name
	}

	accessToken, err := IssueAccessToken(actor)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	refreshToken, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	stored, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil || time.Now().After(stored.ExpiresAt) {
		return nil, apperror.Unauthorized("invalid or expired refresh token")
	}

	user, err := s.repo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, apperror.Unauthorized("user no longer exists")
	}

	actor := auth.Actor{UserID: user.ID, RoleID: user.RoleID}
	if user.Role != nil {
		actor.RoleName = user.Role.Name
	}

	accessToken, err := IssueAccessToken(actor)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Rotate the refresh token on every use
	if err := s.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, apperror.Internal(err)
	}
	rotated, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &TokenResponse{AccessToken: accessToken, RefreshToken: rotated}, nil
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid user id")
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("user", id)
	}
	return mapToUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapToUserResponse(&users[i]))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid user id")
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("user", id)
	}

	if req.RoleID != "" {
		roleID, err := uuid.Parse(req.RoleID)
		if err != nil {
			return nil, apperror.Validation("invalid role id")
		}
		if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound("role", req.RoleID)
			}
			return nil, err
		}
		user.RoleID = roleID
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, apperror.Conflict("email already exists")
		}
		user.Email = req.Email
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.District != "" {
		user.District = req.District
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return mapToUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid user id")
	}
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return apperror.NotFound("user", id)
	}
	return s.repo.Delete(ctx, userID)
}

// --- Helpers ---

func (s *userService) issueRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	rt := &model.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := s.repo.SaveRefreshToken(ctx, rt); err != nil {
		return "", err
	}
	return token, nil
}

func mapToUserResponse(user *model.User) *UserResponse {
	resp := &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		OfficerCode: user.OfficerCode,
		RoleID:      user.RoleID,
		District:    user.District,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   user.UpdatedAt.Format(time.RFC3339),
	}
	if user.Role != nil {
		resp.RoleName = user.Role.Name
	}
	return resp
}
