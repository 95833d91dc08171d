package service

import (
	"errors"

	"gorm.io/gorm"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
	"go-papeleria-pos/pkg/jwt"
)

type AuthService interface {
	Login(req *model.LoginRequest) (*LoginResponse, error)
	Register(req *model.RegisterRequest, createdBy string) (*model.UserResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(req *model.LoginRequest) (*LoginResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validationf("invalid email or password")
		}
		return nil, apperr.Wrap(err, "failed to look up user")
	}

	if !user.CheckPassword(req.Password) {
		return nil, apperr.Validationf("invalid email or password")
	}

	if !user.Active {
		return nil, apperr.BusinessRulef("user account is inactive, contact an administrator")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to generate token")
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) Register(req *model.RegisterRequest, createdBy string) (*model.UserResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check email")
	}
	if exists {
		return nil, apperr.Conflictf("email '%s' is already registered", req.Email)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Active:   true,
	}
	user.CreatedBy = createdBy
	user.UpdatedBy = createdBy
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperr.Wrap(err, "failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Wrap(err, "failed to create user")
	}

	resp := user.ToResponse()
	return &resp, nil
}
