package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"
	"educonnect_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pollListingKey = "educonnect:polls:listing"

type PollService struct {
	Repo  *repository.PollRepository
	Cache *redis.Client
}

func NewPollService(repo *repository.PollRepository, cache *redis.Client) *PollService {
	return &PollService{Repo: repo, Cache: cache}
}

type PollCreateReq struct {
	Title           string         `json:"title" binding:"required"`
	Description     string         `json:"description" binding:"required"`
	Type            model.PollType `json:"type"`
	Options         []string       `json:"options" binding:"required"`
	Deadline        time.Time      `json:"deadline" binding:"required"`
	AnonymousMember bool           `json:"anonymousMember"`
	Audience        []string       `json:"audience"`
}

type PollUpdateReq struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Options     []string          `json:"options"`
	Deadline    *time.Time        `json:"deadline"`
	Status      *model.PollStatus `json:"status"`
	Audience    []string          `json:"audience"`
}

type VoteReq struct {
	SelectedOptions []int `json:"selectedOptions" binding:"required"`
}

func (s *PollService) Create(ctx context.Context, callerID uint, role model.UserRole, req *PollCreateReq) (*model.Poll, error) {
	if !CanAuthorContent(role) {
		return nil, util.ErrPermissionDenied
	}
	if len(req.Options) < 2 {
		return nil, util.NewValidationError("a poll needs at least two options")
	}
	pollType := req.Type
	if pollType == "" {
		pollType = model.PollSingle
	}
	if pollType != model.PollSingle && pollType != model.PollMultiple {
		return nil, util.NewValidationError("invalid poll type")
	}
	audience := req.Audience
	if len(audience) == 0 {
		audience = []string{"students"}
	}
	if !validAudience(audience) {
		return nil, util.NewValidationError("invalid audience value")
	}

	options := make(model.PollOptions, len(req.Options))
	for i, text := range req.Options {
		if text == "" {
			return nil, util.NewValidationError("poll options cannot be empty")
		}
		options[i] = model.PollOption{Text: text}
	}

	p := &model.Poll{
		Title:           req.Title,
		Description:     req.Description,
		Type:            pollType,
		Options:         options,
		Deadline:        req.Deadline,
		AnonymousMember: req.AnonymousMember,
		Status:          model.PollActive,
		Audience:        model.StringList(audience),
		AuthorID:        callerID,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return p, nil
}

func (s *PollService) List(ctx context.Context) ([]model.Poll, error) {
	if polls, ok := s.cachedListing(ctx); ok {
		return polls, nil
	}
	polls, err := s.Repo.ListNotExpired()
	if err != nil {
		return nil, err
	}
	s.storeListing(ctx, polls)
	return polls, nil
}

func (s *PollService) Get(id string) (*model.Poll, error) {
	p, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPollNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update replaces fields wholesale; replacing the option list resets every
// tally and the recorded ballots no longer apply to the new options.
func (s *PollService) Update(ctx context.Context, callerID uint, role model.UserRole, id string, req *PollUpdateReq) (*model.Poll, error) {
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
	if req.Options != nil {
		if len(req.Options) < 2 {
			return nil, util.NewValidationError("a poll needs at least two options")
		}
		options := make(model.PollOptions, len(req.Options))
		for i, text := range req.Options {
			if text == "" {
				return nil, util.NewValidationError("poll options cannot be empty")
			}
			options[i] = model.PollOption{Text: text}
		}
		p.Options = options
	}
	if req.Deadline != nil {
		p.Deadline = *req.Deadline
	}
	if req.Status != nil {
		switch *req.Status {
		case model.PollActive, model.PollInactive, model.PollExpired:
		default:
			return nil, util.NewValidationError("invalid status")
		}
		p.Status = *req.Status
	}
	if req.Audience != nil {
		if !validAudience(req.Audience) {
			return nil, util.NewValidationError("invalid audience value")
		}
		p.Audience = model.StringList(req.Audience)
	}

	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return p, nil
}

func (s *PollService) Delete(ctx context.Context, callerID uint, role model.UserRole, id string) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, p.AuthorID) {
		return util.ErrPermissionDenied
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

// Vote records one ballot per user. Single-type polls accept exactly one
// selected option; options are referenced positionally.
func (s *PollService) Vote(ctx context.Context, userID uint, role model.UserRole, pollID string, req *VoteReq) (*model.Poll, error) {
	if !CanSubmit(role) {
		return nil, util.ErrPermissionDenied
	}
	p, err := s.Get(pollID)
	if err != nil {
		return nil, err
	}
	if len(req.SelectedOptions) == 0 {
		return nil, util.NewValidationError("select at least one option")
	}
	if p.Type == model.PollSingle && len(req.SelectedOptions) != 1 {
		return nil, util.NewValidationError("this poll accepts exactly one option")
	}

	seen := make(map[int]bool, len(req.SelectedOptions))
	for _, idx := range req.SelectedOptions {
		if idx < 0 || idx >= len(p.Options) {
			return nil, util.NewValidationError("selected option out of range")
		}
		if seen[idx] {
			return nil, util.NewValidationError("duplicate selected option")
		}
		seen[idx] = true
		p.Options[idx].Votes++
	}

	vote := &model.PollVote{
		PollID:          pollID,
		UserID:          userID,
		SelectedOptions: model.IntList(req.SelectedOptions),
	}
	if err := s.Repo.RecordVote(p, vote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyVoted
		}
		return nil, err
	}
	s.invalidateListing(ctx)
	return p, nil
}

func (s *PollService) cachedListing(ctx context.Context) ([]model.Poll, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, pollListingKey).Bytes()
	if err != nil {
		return nil, false
	}
	var polls []model.Poll
	if err := json.Unmarshal(raw, &polls); err != nil {
		return nil, false
	}
	return polls, true
}

func (s *PollService) storeListing(ctx context.Context, polls []model.Poll) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(polls)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, pollListingKey, raw, listingTTL).Err(); err != nil {
		logger.Log.Warn("poll listing cache write failed", zap.Error(err))
	}
}

func (s *PollService) invalidateListing(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, pollListingKey).Err(); err != nil {
		logger.Log.Warn("poll listing cache invalidation failed", zap.Error(err))
	}
}
