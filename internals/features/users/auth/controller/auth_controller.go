package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/dto"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/service"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
	helperAuth "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers/auth"
)

type AuthController struct {
	Auth     *service.AuthService
	Validate *validator.Validate
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{Auth: auth, Validate: helper.NewValidator()}
}

// POST /auth/signup
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	user, err := ac.Auth.Signup(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "User registered", user.ToPublic())
}

// POST /auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Identifier() == "" || strings.TrimSpace(req.Password) == "" {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return helper.JsonError(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}

	tok, err := ac.Auth.Login(c.UserContext(), req.Identifier(), req.Password)
	if err != nil {
		if helper.StatusOf(err) == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}
		return helper.FromServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tok)
}

// GET /auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	user, err := ac.Auth.Me(c.UserContext(), p)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", user)
}
