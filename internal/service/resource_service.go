package service

import (
	"context"
	"errors"
	"io"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"
	"educonnect_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ResourceService struct {
	Repo    *repository.ResourceRepository
	Storage *StorageService
}

func NewResourceService(repo *repository.ResourceRepository, storage *StorageService) *ResourceService {
	return &ResourceService{Repo: repo, Storage: storage}
}

// ResourceCreateReq carries the multipart form fields; the file itself comes
// through Upload's reader.
type ResourceCreateReq struct {
	Title       string
	Description string
	Visibility  model.ResourceVisibility
	Audience    []string
	Filename    string
	ContentType string
	Size        int64
}

// Upload stores the file through the storage provider and persists the
// resource row. A failed insert removes the freshly stored object.
func (s *ResourceService) Upload(ctx context.Context, callerID uint, role model.UserRole, req *ResourceCreateReq, file io.Reader) (*model.Resource, error) {
	if !CanAuthorContent(role) {
		return nil, util.ErrPermissionDenied
	}
	if req.Title == "" {
		return nil, util.NewValidationError("title is required")
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = model.ResourcePublic
	}
	if visibility != model.ResourcePublic && visibility != model.ResourcePrivate {
		return nil, util.NewValidationError("invalid visibility")
	}
	audience := req.Audience
	if len(audience) == 0 {
		audience = []string{"all"}
	}
	if !validAudience(audience) {
		return nil, util.NewValidationError("invalid audience value")
	}

	stored, err := s.Storage.Upload(ctx, file, req.Size, req.Filename, req.ContentType)
	if err != nil {
		return nil, err
	}

	res := &model.Resource{
		Title:       req.Title,
		Description: req.Description,
		Visibility:  visibility,
		URL:         stored.URL,
		ObjectKey:   stored.ObjectKey,
		FileType:    stored.FileType,
		FileSize:    stored.Size,
		Audience:    model.StringList(audience),
		AuthorID:    callerID,
	}
	if err := s.Repo.Create(res); err != nil {
		if rmErr := s.Storage.Remove(ctx, stored.ObjectKey); rmErr != nil {
			logger.Log.Warn("orphaned upload cleanup failed",
				zap.String("objectKey", stored.ObjectKey), zap.Error(rmErr))
		}
		return nil, err
	}
	return res, nil
}

func (s *ResourceService) List() ([]model.Resource, error) {
	return s.Repo.ListPublic()
}

func (s *ResourceService) Get(id string) (*model.Resource, error) {
	res, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResourceNotFound
		}
		return nil, err
	}
	return res, nil
}

// Download bumps the counter and returns the resource for redirecting.
func (s *ResourceService) Download(id string) (*model.Resource, error) {
	res, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.IncrementDownloads(id); err != nil {
		return nil, err
	}
	res.Downloads++
	return res, nil
}

// Delete removes the row, then the stored object best-effort; a dangling
// object is preferable to a row pointing at nothing.
func (s *ResourceService) Delete(ctx context.Context, callerID uint, role model.UserRole, id string) error {
	res, err := s.Get(id)
	if err != nil {
		return err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, res.AuthorID) {
		return util.ErrPermissionDenied
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if res.ObjectKey != "" {
		if err := s.Storage.Remove(ctx, res.ObjectKey); err != nil {
			logger.Log.Warn("stored object removal failed",
				zap.String("objectKey", res.ObjectKey), zap.Error(err))
		}
	}
	return nil
}
