package service

import (
	"errors"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// UserUpdateReq carries the profile fields a user may change about
// themselves. Pointer fields distinguish "absent" from "set to empty".
type UserUpdateReq struct {
	FullName    *string `json:"fullName"`
	Image       *string `json:"image"`
	Institution *string `json:"institution"`
	Subject     *string `json:"subject"`
	Bio         *string `json:"bio"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req *UserUpdateReq) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, util.NewValidationError("fullName cannot be empty")
		}
		user.FullName = *req.FullName
	}
	if req.Image != nil {
		user.Image = *req.Image
	}
	if req.Institution != nil {
		user.Institution = *req.Institution
	}
	if req.Subject != nil {
		user.Subject = *req.Subject
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
