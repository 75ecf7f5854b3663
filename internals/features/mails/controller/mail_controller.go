package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/mails/dto"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/mails/service"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

type MailController struct {
	Mailboxes service.MailboxProvisioner
	Validate  *validator.Validate
}

func NewMailController(p service.MailboxProvisioner) *MailController {
	return &MailController{Mailboxes: p, Validate: helper.NewValidator()}
}

// POST /mails/inboxes
func (mc *MailController) CreateInbox(c *fiber.Ctx) error {
	var req dto.CreateInboxRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := mc.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	inbox, err := mc.Mailboxes.CreateInbox(c.UserContext(), req.Name, req.Birthdate)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Inbox created", dto.CreateInboxResponse{
		Name:             req.Name,
		EmailAddress:     req.EmailAddress,
		MailSlurpInboxID: inbox.ID,
		MailSlurpEmail:   inbox.EmailAddress,
	})
}

// GET /mails/verify-domain
func (mc *MailController) VerifyDomain(c *fiber.Ctx) error {
	ok, err := mc.Mailboxes.VerifyDomain(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.VerifyDomainResponse{
		DomainVerified: ok,
		CustomDomain:   mc.Mailboxes.CustomDomain(),
		DomainID:       mc.Mailboxes.DomainID(),
	})
}
