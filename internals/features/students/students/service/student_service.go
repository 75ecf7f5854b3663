// file: internals/features/students/students/service/student_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/dto"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/repository"
	userModel "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/user/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
	helperAuth "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers/auth"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/infra/queue"
)

// UserDirectory is the slice of the users repository the student feature needs.
type UserDirectory interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]userModel.UserModel, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type TransitionObserver interface {
	ObserveTransition(newStatus string)
}

type StudentService struct {
	repo     repository.StudentRepository
	users    UserDirectory
	events   queue.Publisher
	observer TransitionObserver
	now      func() time.Time
}

type Option func(*StudentService)

func WithPublisher(p queue.Publisher) Option {
	return func(s *StudentService) {
		if p != nil {
			s.events = p
		}
	}
}

func WithObserver(o TransitionObserver) Option {
	return func(s *StudentService) { s.observer = o }
}

func WithClock(now func() time.Time) Option {
	return func(s *StudentService) { s.now = now }
}

func NewStudentService(repo repository.StudentRepository, users UserDirectory, opts ...Option) *StudentService {
	s := &StudentService{
		repo:   repo,
		users:  users,
		events: queue.NoopPublisher{},
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/* =======================================================
   CREATE / READ
   ======================================================= */

func (s *StudentService) Create(ctx context.Context, p helperAuth.Principal, req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	var counselor *uuid.UUID
	if req.AssignedCounselorID != nil {
		counselor = req.CounselorID()
		if counselor == nil {
			return nil, helper.Errorf(helper.ErrValidation, "assigned_counselor_id must be a valid UUID")
		}
		ok, err := s.users.Exists(ctx, *counselor)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, helper.Errorf(helper.ErrValidation, "Assigned counselor not found")
		}
	}

	st, err := BuildStudent(req, p.ID, counselor, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	log.Printf("[INFO] student created id=%s by=%s choices=%d", st.ID, p.ID, len(st.UniversityChoices))
	return s.respond(ctx, *st, dto.PopulateOptions{})
}

func (s *StudentService) List(ctx context.Context, p helperAuth.Principal, q dto.ListStudentsQuery) ([]dto.StudentResponse, int64, error) {
	rows, total, err := s.repo.List(ctx, p, repository.ListFilter{
		Skip:          q.Skip,
		Limit:         q.Limit,
		NameSearch:    q.NameSearch,
		CountrySearch: q.CountrySearch,
	})
	if err != nil {
		return nil, 0, err
	}
	h, err := s.hydrate(ctx, rows, q.Populate)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToStudentResponses(rows, h), total, nil
}

func (s *StudentService) Get(ctx context.Context, p helperAuth.Principal, id uuid.UUID, populate dto.PopulateOptions) (*dto.StudentResponse, error) {
	st, err := s.repo.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, *st, populate)
}

/* =======================================================
   UPDATE
   ======================================================= */

// Update applies a partial edit. A null counselor clears the assignment;
// an id with no matching user is NotFound.
func (s *StudentService) Update(ctx context.Context, p helperAuth.Principal, id uuid.UUID, patch dto.PatchStudentRequest) (*dto.StudentResponse, error) {
	st, err := s.repo.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if patch.AssignedCounselorID.Present {
		if !patch.AssignedCounselorID.Value.Valid {
			st.AssignedCounselorID = nil
		} else {
			cid, err := uuid.Parse(patch.AssignedCounselorID.Value.Value)
			if err != nil {
				return nil, helper.Errorf(helper.ErrValidation, "assigned_counselor_id must be a valid UUID")
			}
			ok, err := s.users.Exists(ctx, cid)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, helper.Errorf(helper.ErrNotFound, "Assigned counselor not found")
			}
			st.AssignedCounselorID = &cid
		}
	}

	if err := ApplyPatch(st, patch, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p, st); err != nil {
		return nil, err
	}
	return s.respond(ctx, *st, dto.PopulateOptions{})
}

// ChangeStatus stores only real changes. Events and metrics are best effort
// and never fail the request.
func (s *StudentService) ChangeStatus(ctx context.Context, p helperAuth.Principal, id uuid.UUID, index int, next model.ApplicationStatus) (*dto.StudentResponse, error) {
	st, err := s.repo.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	var prev model.ApplicationStatus
	if st.HasChoice(index) {
		prev = st.UniversityChoices[index].ApplicationStatus
	}

	now := s.now()
	changed, err := ApplyStatusChange(st, index, next, p.ID, now)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.repo.Save(ctx, p, st); err != nil {
			return nil, err
		}
		s.announce(ctx, st, index, prev, next, p.ID, now)
	}
	return s.respond(ctx, *st, dto.PopulateOptions{})
}

func (s *StudentService) announce(ctx context.Context, st *model.StudentModel, index int, prev, next model.ApplicationStatus, actor uuid.UUID, now time.Time) {
	if s.observer != nil {
		s.observer.ObserveTransition(string(next))
	}
	ev := queue.StatusChangedEvent{
		StudentID:             st.ID.String(),
		UniversityChoiceIndex: index,
		UniversityName:        st.UniversityChoices[index].UniversityName,
		PreviousStatus:        string(prev),
		NewStatus:             string(next),
		ChangedBy:             actor.String(),
		Timestamp:             now,
	}
	if err := s.events.PublishStatusChanged(ctx, ev); err != nil {
		log.Printf("[WARN] publish status event student=%s index=%d: %v", st.ID, index, err)
	}
}

func (s *StudentService) AddUniversityNote(ctx context.Context, p helperAuth.Principal, id uuid.UUID, index int, req dto.UniversityNoteCreateRequest) (*dto.StudentResponse, error) {
	if req.Empty() {
		return nil, helper.Errorf(helper.ErrValidation, "Note requires a title or a description")
	}
	st, err := s.repo.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := AddUniversityNote(st, index, req.Title, req.Description, p.ID, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p, st); err != nil {
		return nil, err
	}
	return s.respond(ctx, *st, dto.PopulateOptions{})
}

func (s *StudentService) AddOverviewNote(ctx context.Context, p helperAuth.Principal, id uuid.UUID, req dto.OverviewNoteCreateRequest) (*dto.StudentResponse, error) {
	if req.Empty() {
		return nil, helper.Errorf(helper.ErrValidation, "Note requires a title or content")
	}
	st, err := s.repo.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	AddOverviewNote(st, req.Title, req.Content, p.ID, s.now())
	if err := s.repo.Save(ctx, p, st); err != nil {
		return nil, err
	}
	return s.respond(ctx, *st, dto.PopulateOptions{})
}

/* =======================================================
   DELETE
   ======================================================= */

// Delete reports whether a visible student was removed.
func (s *StudentService) Delete(ctx context.Context, p helperAuth.Principal, id uuid.UUID) (bool, error) {
	ok, err := s.repo.Delete(ctx, p, id)
	if err != nil {
		return false, err
	}
	if ok {
		log.Printf("[INFO] student deleted id=%s by=%s", id, p.ID)
	}
	return ok, nil
}

/* =======================================================
   HYDRATION
   ======================================================= */

func (s *StudentService) respond(ctx context.Context, st model.StudentModel, populate dto.PopulateOptions) (*dto.StudentResponse, error) {
	h, err := s.hydrate(ctx, []model.StudentModel{st}, populate)
	if err != nil {
		return nil, err
	}
	resp := dto.ToStudentResponse(st, h)
	return &resp, nil
}

// hydrate loads every user the page references in a single query.
func (s *StudentService) hydrate(ctx context.Context, rows []model.StudentModel, populate dto.PopulateOptions) (*dto.Hydration, error) {
	if !populate.Any() || len(rows) == 0 {
		return nil, nil
	}
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0)
	add := func(id uuid.UUID) {
		if id == uuid.Nil {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, r := range rows {
		if populate.Counselor && r.AssignedCounselorID != nil {
			add(*r.AssignedCounselorID)
		}
		if populate.Creator {
			add(r.CreatedBy)
		}
		if populate.NoteAuthors {
			for _, ch := range r.UniversityChoices {
				for _, n := range ch.Notes {
					add(n.CreatedBy)
				}
			}
			for _, l := range r.StatusLogs {
				add(l.ChangedBy)
			}
			for _, n := range r.OverviewNotes {
				add(n.CreatedBy)
			}
		}
	}

	h := &dto.Hydration{Users: map[uuid.UUID]userModel.UserPublic{}, Populate: populate}
	if len(ids) == 0 {
		return h, nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		h.Users[u.ID] = u.ToPublic()
	}
	return h, nil
}
