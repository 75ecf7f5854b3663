// file: internals/features/students/students/controller/student_controller.go
package controller

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/dto"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/service"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
	helperAuth "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers/auth"
)

type StudentController struct {
	Students *service.StudentService
	Validate *validator.Validate
}

func NewStudentController(students *service.StudentService) *StudentController {
	return &StudentController{Students: students, Validate: helper.NewValidator()}
}

/* =======================================================
   helpers
   ======================================================= */

func principalAndID(c *fiber.Ctx) (helperAuth.Principal, uuid.UUID, error) {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return p, uuid.Nil, err
	}
	// A malformed id can never be visible, so it reads as not found.
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return p, uuid.Nil, helper.Errorf(helper.ErrNotFound, "Student not found")
	}
	return p, id, nil
}

func populateFromQuery(c *fiber.Ctx) dto.PopulateOptions {
	return dto.PopulateOptions{
		Counselor:   helper.QueryBool(c, "populate_counselor", false),
		Creator:     helper.QueryBool(c, "populate_creator", false),
		NoteAuthors: helper.QueryBool(c, "populate_note_authors", false),
	}
}

/* =======================================================
   CRUD
   ======================================================= */

// POST /students
func (sc *StudentController) Create(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := sc.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	out, err := sc.Students.Create(c.UserContext(), p, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Student created", out)
}

// GET /students
func (sc *StudentController) List(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	pg := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := dto.ListStudentsQuery{
		Skip:          pg.Skip,
		Limit:         pg.Limit,
		NameSearch:    strings.TrimSpace(c.Query("name_search")),
		CountrySearch: strings.TrimSpace(c.Query("country_search")),
		Populate:      populateFromQuery(c),
	}

	rows, total, err := sc.Students.List(c.UserContext(), p, q)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromOffset(total, pg.Skip, pg.Limit, len(rows)))
}

// GET /students/:id
func (sc *StudentController) Get(c *fiber.Ctx) error {
	p, id, err := principalAndID(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	out, err := sc.Students.Get(c.UserContext(), p, id, populateFromQuery(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// PATCH /students/:id
func (sc *StudentController) Patch(c *fiber.Ctx) error {
	p, id, err := principalAndID(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	// Decoded with encoding/json so an explicit null reaches NullableString.
	var req dto.PatchStudentRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := req.Validate(sc.Validate); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	out, err := sc.Students.Update(c.UserContext(), p, id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Student updated", out)
}

// DELETE /students/:id
func (sc *StudentController) Delete(c *fiber.Ctx) error {
	p, id, err := principalAndID(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	ok, err := sc.Students.Delete(c.UserContext(), p, id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	return helper.JsonDeleted(c)
}

/* =======================================================
   STATUS + NOTES
   ======================================================= */

// PUT /students/:id/application-status
func (sc *StudentController) UpdateApplicationStatus(c *fiber.Ctx) error {
	p, id, err := principalAndID(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	var req dto.ApplicationStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := sc.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	out, err := sc.Students.ChangeStatus(c.UserContext(), p, id, *req.UniversityChoiceIndex, model.ApplicationStatus(strings.TrimSpace(req.NewStatus)))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Application status updated", out)
}

// POST /students/:id/university-notes/:index
func (sc *StudentController) AddUniversityNote(c *fiber.Ctx) error {
	p, id, err := principalAndID(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "University choice index must be an integer")
	}

	var req dto.UniversityNoteCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := sc.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	out, err := sc.Students.AddUniversityNote(c.UserContext(), p, id, index, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Note added", out)
}

// POST /students/:id/overview-notes
func (sc *StudentController) AddOverviewNote(c *fiber.Ctx) error {
	p, id, err := principalAndID(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	var req dto.OverviewNoteCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := sc.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	out, err := sc.Students.AddOverviewNote(c.UserContext(), p, id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Note added", out)
}
