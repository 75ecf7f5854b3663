package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/analytics/dto"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/repository"
	studentService "github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/service"
	helperAuth "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers/auth"
)

type AnalyticsService struct {
	repo  repository.StudentRepository
	users studentService.UserDirectory
}

func NewAnalyticsService(repo repository.StudentRepository, users studentService.UserDirectory) *AnalyticsService {
	return &AnalyticsService{repo: repo, users: users}
}

// Funnel computes the report over the principal's visible students.
func (s *AnalyticsService) Funnel(ctx context.Context, p helperAuth.Principal) (dto.FunnelReport, error) {
	rows, err := s.repo.AllVisible(ctx, p)
	if err != nil {
		return dto.FunnelReport{}, err
	}
	if len(rows) == 0 {
		return dto.EmptyReport(), nil
	}

	seen := map[uuid.UUID]struct{}{}
	ids := []uuid.UUID{}
	for _, r := range rows {
		if r.AssignedCounselorID == nil {
			continue
		}
		if _, ok := seen[*r.AssignedCounselorID]; ok {
			continue
		}
		seen[*r.AssignedCounselorID] = struct{}{}
		ids = append(ids, *r.AssignedCounselorID)
	}

	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return dto.FunnelReport{}, err
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}
	return Compute(rows, names), nil
}
