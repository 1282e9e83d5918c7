package services

import (
	"context"
	"time"

	"planhub/backend/errs"
	"planhub/backend/models"
	"planhub/backend/utils"
)

// AuthService exchanges credentials for bearer tokens.
type AuthService struct {
	users    *UserService
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users *UserService, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL}
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	// Legacy clients send one of these instead of identifier.
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) login() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// LoginResult carries the signed token plus display enrichment. Name and
// Department are read from the user record for the client's convenience;
// they are not signed claims and must never drive authorization.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Name        string `json:"name,omitempty"`
	Department  string `json:"department,omitempty"`
}

type RegisterRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

func (r RegisterRequest) login() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// Login authenticates and issues a token. Every failure path returns
// ErrUnauthorized so callers cannot distinguish unknown logins from wrong
// passwords.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.Authenticate(ctx, req.login(), req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrUnauthorized
	}

	token, err := utils.GenerateToken(s.secret, user.ID.Hex(), string(user.Role), user.Login(), s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		Name:        user.Name,
		Department:  user.Department,
	}, nil
}

// Register creates a member account from a self-service signup.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	return s.users.Create(ctx, UserCreate{
		LoginID:    req.login(),
		Name:       req.Name,
		Role:       string(models.RoleMember),
		Department: req.Department,
		Password:   req.Password,
	}, "")
}
