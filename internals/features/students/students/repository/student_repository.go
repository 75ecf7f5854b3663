// file: internals/features/students/students/repository/student_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
	helperAuth "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers/auth"
)

type ListFilter struct {
	Skip          int
	Limit         int
	NameSearch    string
	CountrySearch string
}

// StudentRepository applies the principal's visible scope to every read,
// update and delete. Out of scope rows look exactly like missing rows.
type StudentRepository interface {
	Create(ctx context.Context, s *model.StudentModel) error
	List(ctx context.Context, p helperAuth.Principal, f ListFilter) ([]model.StudentModel, int64, error)
	GetByID(ctx context.Context, p helperAuth.Principal, id uuid.UUID) (*model.StudentModel, error)
	Save(ctx context.Context, p helperAuth.Principal, s *model.StudentModel) error
	Delete(ctx context.Context, p helperAuth.Principal, id uuid.UUID) (bool, error)
	AllVisible(ctx context.Context, p helperAuth.Principal) ([]model.StudentModel, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) scoped(ctx context.Context, p helperAuth.Principal) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.StudentModel{}).Scopes(helperAuth.VisibleScope(p, "created_by"))
}

func (r *studentRepository) Create(ctx context.Context, s *model.StudentModel) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *studentRepository) List(ctx context.Context, p helperAuth.Principal, f ListFilter) ([]model.StudentModel, int64, error) {
	q := r.scoped(ctx, p)
	if name := strings.TrimSpace(f.NameSearch); name != "" {
		q = q.Where("LOWER(full_name) LIKE ? ESCAPE '\\'", likePattern(name))
	}
	if country := strings.TrimSpace(f.CountrySearch); country != "" {
		q = q.Where("LOWER(target_country) LIKE ? ESCAPE '\\'", likePattern(country))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.StudentModel
	if err := q.Order("created_at DESC").Order("id").Offset(f.Skip).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *studentRepository) GetByID(ctx context.Context, p helperAuth.Principal, id uuid.UUID) (*model.StudentModel, error) {
	var s model.StudentModel
	err := r.scoped(ctx, p).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.Errorf(helper.ErrNotFound, "Student not found")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the whole aggregate in one UPDATE, still filtered by scope.
func (r *studentRepository) Save(ctx context.Context, p helperAuth.Principal, s *model.StudentModel) error {
	res := r.db.WithContext(ctx).
		Scopes(helperAuth.VisibleScope(p, "created_by")).
		Select("*").
		Omit("id", "created_by", "created_at").
		Where("id = ?", s.ID).
		Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.Errorf(helper.ErrNotFound, "Student not found")
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, p helperAuth.Principal, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Scopes(helperAuth.VisibleScope(p, "created_by")).
		Where("id = ?", id).
		Delete(&model.StudentModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *studentRepository) AllVisible(ctx context.Context, p helperAuth.Principal) ([]model.StudentModel, error) {
	var rows []model.StudentModel
	if err := r.scoped(ctx, p).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// likePattern lowercases and escapes % and _ so the input matches literally.
func likePattern(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return "%" + s + "%"
}
