package service

import (
	"errors"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"

	"gorm.io/gorm"
)

type PostService struct {
	Repo *repository.PostRepository
}

func NewPostService(repo *repository.PostRepository) *PostService {
	return &PostService{Repo: repo}
}

type PostCreateReq struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags"`
}

type PostUpdateReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

func (s *PostService) Create(callerID uint, role model.UserRole, req *PostCreateReq) (*model.Post, error) {
	if !CanAuthorContent(role) {
		return nil, util.ErrPermissionDenied
	}
	p := &model.Post{
		Title:       req.Title,
		Description: req.Description,
		Tags:        model.StringList(req.Tags),
		AuthorID:    callerID,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) List() ([]model.Post, error) {
	return s.Repo.List()
}

func (s *PostService) Get(id string) (*model.Post, error) {
	p, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PostService) Update(callerID uint, role model.UserRole, id string, req *PostUpdateReq) (*model.Post, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, p.AuthorID) {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.NewValidationError("title cannot be empty")
		}
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Tags != nil {
		p.Tags = model.StringList(req.Tags)
	}

	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Delete(callerID uint, role model.UserRole, id string) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, p.AuthorID) {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(id)
}
