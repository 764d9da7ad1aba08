package service

import (
	"errors"
	"time"

	"educonnect_backend/internal/config"
	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{UserRepo: userRepo, Config: cfg}
}

type RegisterReq struct {
	FullName    string         `json:"fullName" binding:"required"`
	Email       string         `json:"email" binding:"required,email"`
	Password    string         `json:"password" binding:"required,min=6"`
	Role        model.UserRole `json:"role"`
	Institution string         `json:"institution"`
	Subject     string         `json:"subject"`
	Bio         string         `json:"bio"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResp pairs the signed token with the public view of the user.
type LoginResp struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func validRole(r model.UserRole) bool {
	switch r {
	case model.Student, model.Teacher, model.Institution, model.Admin:
		return true
	}
	return false
}

// Register creates a user with a bcrypt password hash. Email uniqueness is
// checked up front and backed by the unique column for concurrent registers.
func (s *AuthService) Register(req *RegisterReq) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.Student
	}
	if !validRole(role) {
		return nil, util.NewValidationError("invalid role")
	}

	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    string(hash),
		Role:        role,
		Institution: req.Institution,
		Subject:     req.Subject,
		Bio:         req.Bio,
	}
	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a JWT. Lookup and hash-compare
// failures collapse into the same error so the response leaks nothing about
// which part failed.
func (s *AuthService) Login(req *LoginReq) (*LoginResp, error) {
	user, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Disabled {
		return nil, util.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret,
		time.Duration(s.Config.JWT.ExpireHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}
	return &LoginResp{Token: token, User: user}, nil
}
