package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/constants"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/dto"
	authRepo "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/repository"
	userModel "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/user/model"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
	helperAuth "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers/auth"
)

// AuthService issues and verifies principals against the users table.
type AuthService struct {
	users  authRepo.UserRepository
	tokens *TokenService
}

func NewAuthService(users authRepo.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Signup(ctx context.Context, in dto.SignupRequest) (*userModel.UserModel, error) {
	role, ok := constants.NormalizeRole(in.Role)
	if !ok {
		return nil, helper.Errorf(helper.ErrValidation, "role must be admin or counselor")
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, helper.Errorf(helper.ErrConflict, "User with this email already exists")
	} else if !errors.Is(err, helper.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &userModel.UserModel{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("[INFO] user signed up id=%s role=%s", user.ID, user.Role)
	return user, nil
}

// Login never tells the caller which half of the credentials was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, helper.ErrNotFound) {
			return nil, helper.Errorf(helper.ErrUnauthorized, "Incorrect email or password")
		}
		return nil, err
	}
	if err := CheckPasswordHash(user.PasswordHash, password); err != nil {
		return nil, helper.Errorf(helper.ErrUnauthorized, "Incorrect email or password")
	}

	role, _ := constants.NormalizeRole(user.Role)
	token, err := s.tokens.Issue(user.ID, user.Email, role)
	if err != nil {
		return nil, err
	}
	pub := user.ToPublic()
	pub.Role = role
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer", User: pub}, nil
}

// Resolve turns a bearer token into a principal. The user must still exist;
// the stored role wins over the one in the token.
func (s *AuthService) Resolve(ctx context.Context, token string) (helperAuth.Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return helperAuth.Principal{}, err
	}
	id, _ := uuid.Parse(claims.ID)
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, helper.ErrNotFound) {
			return helperAuth.Principal{}, helper.Errorf(helper.ErrUnauthorized, "Could not validate credentials")
		}
		return helperAuth.Principal{}, err
	}
	role, ok := constants.NormalizeRole(user.Role)
	if !ok {
		return helperAuth.Principal{}, helper.Errorf(helper.ErrForbidden, "Unknown role")
	}
	return helperAuth.Principal{ID: user.ID, Role: role, Name: user.Name, Email: user.Email}, nil
}

func (s *AuthService) Me(ctx context.Context, p helperAuth.Principal) (userModel.UserPublic, error) {
	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return userModel.UserPublic{}, err
	}
	pub := user.ToPublic()
	pub.Role = p.Role
	return pub, nil
}

// EnsureAdmin creates the admin account unless the email is already taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (*userModel.UserModel, bool, error) {
	if existing, err := s.users.FindByEmail(ctx, email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, helper.ErrNotFound) {
		return nil, false, err
	}
	user, err := s.Signup(ctx, dto.SignupRequest{Name: name, Email: email, Password: password, Role: constants.RoleAdmin})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
