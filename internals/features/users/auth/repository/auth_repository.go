// file: internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	userModel "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/user/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

type UserRepository interface {
	Create(ctx context.Context, user *userModel.UserModel) error
	FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]userModel.UserModel, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *userModel.UserModel) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.Errorf(helper.ErrConflict, "User with this email already exists")
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := r.db.WithContext(ctx).Where("email = ?", userModel.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.Errorf(helper.ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.Errorf(helper.ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs loads every user in ids with a single query. Missing ids are skipped.
func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]userModel.UserModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []userModel.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// isUniqueViolation covers lib/pq, pgx and sqlite error shapes.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "sqlstate 23505") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint")
}
