package services

import (
	"context"
	"fmt"
	"time"

	"planhub/backend/errs"
	"planhub/backend/models"
	"planhub/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

type UserCreate struct {
	LoginID      string `json:"login_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
	Department   string `json:"department"`
	Title        string `json:"title"`
	Phone        string `json:"phone"`
	AvatarURL    string `json:"avatar_url"`
	Timezone     string `json:"timezone"`
	Password     string `json:"password"`
}

type UserUpdate struct {
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	DepartmentID *string `json:"department_id"`
	Department   *string `json:"department"`
	Title        *string `json:"title"`
	Phone        *string `json:"phone"`
	AvatarURL    *string `json:"avatar_url"`
	Timezone     *string `json:"timezone"`
	IsActive     *bool   `json:"is_active"`
}

func (u UserUpdate) setFields() (bson.M, error) {
	fields := bson.M{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Role != nil {
		fields["role"] = *u.Role
	}
	if u.DepartmentID != nil {
		departmentID, err := parseOptionalID(*u.DepartmentID, "department")
		if err != nil {
			return nil, err
		}
		fields["department_id"] = departmentID
	}
	if u.Department != nil {
		fields["department"] = *u.Department
	}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Phone != nil {
		fields["phone"] = *u.Phone
	}
	if u.AvatarURL != nil {
		fields["avatar_url"] = *u.AvatarURL
	}
	if u.Timezone != nil {
		fields["timezone"] = *u.Timezone
	}
	if u.IsActive != nil {
		fields["is_active"] = *u.IsActive
	}
	return fields, nil
}

// Create hashes the password and stores the user; the plaintext never
// leaves this method.
func (s *UserService) Create(ctx context.Context, req UserCreate, actorID string) (*models.User, error) {
	departmentID, err := parseOptionalID(req.DepartmentID, "department")
	if err != nil {
		return nil, err
	}
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.RoleMember
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = "Asia/Seoul"
	}

	now := time.Now().UTC()
	user := &models.User{
		LoginID:      req.LoginID,
		Name:         req.Name,
		Role:         role,
		DepartmentID: departmentID,
		Department:   req.Department,
		Title:        req.Title,
		Phone:        req.Phone,
		AvatarURL:    req.AvatarURL,
		IsActive:     true,
		Timezone:     timezone,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
	}
	id, err := s.store.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	created, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: user missing after insert", errs.ErrInternal)
	}
	return created, nil
}

func (s *UserService) List(ctx context.Context, departmentID string) ([]models.User, error) {
	id, err := parseOptionalID(departmentID, "department")
	if err != nil {
		return nil, err
	}
	return s.store.FindMany(ctx, id)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	userID, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrNotFound
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req UserUpdate, actorID string) (bool, error) {
	userID, err := parseID(id, "user")
	if err != nil {
		return false, err
	}
	fields, err := req.setFields()
	if err != nil {
		return false, err
	}
	if actorID != "" {
		fields["updated_by"] = actorID
	}
	return s.store.Update(ctx, userID, fields)
}

// UpdatePassword re-hashes the new plaintext; it never compares against
// password history.
func (s *UserService) UpdatePassword(ctx context.Context, id, password string) (bool, error) {
	userID, err := parseID(id, "user")
	if err != nil {
		return false, err
	}
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}
	return s.store.Update(ctx, userID, bson.M{"password_hash": passwordHash})
}

func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	userID, err := parseID(id, "user")
	if err != nil {
		return false, err
	}
	return s.store.Delete(ctx, userID)
}

// Authenticate returns nil for an unknown login, a record without a hash,
// or a failed verification. The three cases are indistinguishable to the
// caller so a login probe learns nothing about which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, loginID, password string) (*models.User, error) {
	user, err := s.store.FindByLogin(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, nil
	}
	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}
