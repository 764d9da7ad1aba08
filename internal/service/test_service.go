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

const (
	testListingKey = "educonnect:tests:listing"
	listingTTL     = 5 * time.Minute
)

type TestService struct {
	Repo  *repository.TestRepository
	Cache *redis.Client
}

func NewTestService(repo *repository.TestRepository, cache *redis.Client) *TestService {
	return &TestService{Repo: repo, Cache: cache}
}

type TestQuestionReq struct {
	Question      string                 `json:"question" binding:"required"`
	Type          model.QuestionType     `json:"type"`
	Options       []model.QuestionOption `json:"options"`
	CorrectAnswer string                 `json:"correctAnswer"`
	Marks         int                    `json:"marks"`
}

type TestCreateReq struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Subject     string            `json:"subject" binding:"required"`
	Duration    int               `json:"duration" binding:"required"`
	TotalMarks  int               `json:"totalMarks" binding:"required"`
	Status      string            `json:"status"` // accepted but ignored, create always activates
	StartDate   time.Time         `json:"startDate"`
	EndDate     time.Time         `json:"endDate"`
	Audience    []string          `json:"audience"`
	Questions   []TestQuestionReq `json:"questions" binding:"required"`
}

// TestUpdateReq replaces fields wholesale; nil pointers leave the stored
// value untouched. A non-nil Questions slice replaces the whole question set.
type TestUpdateReq struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Subject     *string           `json:"subject"`
	Duration    *int              `json:"duration"`
	TotalMarks  *int              `json:"totalMarks"`
	Status      *model.TestStatus `json:"status"`
	StartDate   *time.Time        `json:"startDate"`
	EndDate     *time.Time        `json:"endDate"`
	Audience    []string          `json:"audience"`
	Questions   []TestQuestionReq `json:"questions"`
}

type TestSubmitReq struct {
	Answers   []model.SubmittedAnswer `json:"answers" binding:"required"`
	TimeTaken int                     `json:"timeTaken"` // Minutes, client reported
}

type GradeReq struct {
	Marks    *int   `json:"marks" binding:"required"`
	Feedback string `json:"feedback"`
}

func validAudience(audience []string) bool {
	for _, a := range audience {
		switch a {
		case "all", "students", "teachers", "institutions":
		default:
			return false
		}
	}
	return true
}

// buildQuestions validates and converts the incoming question payload.
// Marks default to 1 when omitted; a multiple-choice question may flag at
// most one option correct.
func buildQuestions(reqs []TestQuestionReq) ([]model.TestQuestion, error) {
	questions := make([]model.TestQuestion, 0, len(reqs))
	for i, q := range reqs {
		if q.Question == "" {
			return nil, util.NewValidationError("question text is required")
		}
		qType := q.Type
		if qType == "" {
			qType = model.QuestionMultipleChoice
		}
		marks := q.Marks
		if marks == 0 {
			marks = 1
		}
		if marks < 0 {
			return nil, util.NewValidationError("question marks cannot be negative")
		}

		switch qType {
		case model.QuestionMultipleChoice:
			if len(q.Options) < 2 {
				return nil, util.NewValidationError("multiple-choice questions need at least two options")
			}
			correct := 0
			for _, opt := range q.Options {
				if opt.IsCorrect {
					correct++
				}
			}
			if correct > 1 {
				return nil, util.NewValidationError("multiple-choice questions may flag at most one correct option")
			}
		case model.QuestionTrueFalse:
			if q.CorrectAnswer == "" {
				return nil, util.NewValidationError("true-false questions need a correctAnswer")
			}
		case model.QuestionShortAnswer:
			// Free text, graded manually.
		default:
			return nil, util.NewValidationError("unknown question type")
		}

		questions = append(questions, model.TestQuestion{
			Question:      q.Question,
			Type:          qType,
			Options:       model.QuestionOptions(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Marks:         marks,
			Position:      i,
		})
	}
	return questions, nil
}

// Create persists a new test. The stored status is always active regardless
// of what the client sent; drafts are not exposed through this API.
func (s *TestService) Create(ctx context.Context, callerID uint, role model.UserRole, req *TestCreateReq) (*model.Test, error) {
	if !CanAuthorContent(role) {
		return nil, util.ErrPermissionDenied
	}
	if req.Duration <= 0 {
		return nil, util.NewValidationError("duration must be positive")
	}
	if req.TotalMarks <= 0 {
		return nil, util.NewValidationError("totalMarks must be positive")
	}
	if len(req.Questions) == 0 {
		return nil, util.NewValidationError("a test needs at least one question")
	}
	audience := req.Audience
	if len(audience) == 0 {
		audience = []string{"students"}
	}
	if !validAudience(audience) {
		return nil, util.NewValidationError("invalid audience value")
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Duration:    req.Duration,
		TotalMarks:  req.TotalMarks,
		Status:      model.TestActive,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Audience:    model.StringList(audience),
		AuthorID:    callerID,
		Questions:   questions,
	}
	if err := s.Repo.Create(test); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return test, nil
}

// List returns every non-expired test, newest first, through a short-lived
// Redis cache.
func (s *TestService) List(ctx context.Context) ([]model.Test, error) {
	if tests, ok := s.cachedListing(ctx); ok {
		return tests, nil
	}
	tests, err := s.Repo.ListNotExpired()
	if err != nil {
		return nil, err
	}
	s.storeListing(ctx, tests)
	return tests, nil
}

func (s *TestService) Get(id string) (*model.Test, error) {
	test, err := s.Repo.FindByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}

// Update applies a wholesale field replacement; only the author may update.
func (s *TestService) Update(ctx context.Context, callerID uint, role model.UserRole, id string, req *TestUpdateReq) (*model.Test, error) {
	test, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, test.AuthorID) {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.NewValidationError("title cannot be empty")
		}
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.Subject != nil {
		test.Subject = *req.Subject
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, util.NewValidationError("duration must be positive")
		}
		test.Duration = *req.Duration
	}
	if req.TotalMarks != nil {
		if *req.TotalMarks <= 0 {
			return nil, util.NewValidationError("totalMarks must be positive")
		}
		test.TotalMarks = *req.TotalMarks
	}
	if req.Status != nil {
		if !model.ValidTestStatus(*req.Status) {
			return nil, util.NewValidationError("invalid status")
		}
		test.Status = *req.Status
	}
	if req.StartDate != nil {
		test.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		test.EndDate = *req.EndDate
	}
	if req.Audience != nil {
		if !validAudience(req.Audience) {
			return nil, util.NewValidationError("invalid audience value")
		}
		test.Audience = model.StringList(req.Audience)
	}

	var questions []model.TestQuestion
	if req.Questions != nil {
		if len(req.Questions) == 0 {
			return nil, util.NewValidationError("a test needs at least one question")
		}
		questions, err = buildQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
	}

	// Save the scalar fields first, then swap the question set so a
	// validation failure above never leaves the test half updated.
	test.Questions = nil
	if err := s.Repo.Update(test); err != nil {
		return nil, err
	}
	if questions != nil {
		if err := s.Repo.ReplaceQuestions(test.ID, questions); err != nil {
			return nil, err
		}
	}
	s.invalidateListing(ctx)
	return s.Get(id)
}

func (s *TestService) Delete(ctx context.Context, callerID uint, role model.UserRole, id string) error {
	test, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTestNotFound
		}
		return err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, test.AuthorID) {
		return util.ErrPermissionDenied
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

// Submit records a student's single attempt. The score is computed once,
// here, and never recomputed afterwards. The unique (test_id, student_id)
// index makes the insert the at-most-once guard; a concurrent duplicate
// surfaces as ErrTestAlreadySubmitted and the stored attempt is untouched.
func (s *TestService) Submit(studentID uint, role model.UserRole, testID string, req *TestSubmitReq) (*model.Test, error) {
	if !CanSubmit(role) {
		return nil, util.ErrPermissionDenied
	}
	if req.Answers == nil {
		return nil, util.NewValidationError("answers are required")
	}

	test, err := s.Repo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	if _, err := s.Repo.FindSubmission(testID, studentID); err == nil {
		return nil, util.ErrTestAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := &model.TestSubmission{
		TestID:      testID,
		StudentID:   studentID,
		Answers:     model.AnswerList(req.Answers),
		Score:       ScoreAnswers(test.Questions, req.Answers),
		SubmittedAt: time.Now(),
		TimeTaken:   req.TimeTaken,
	}
	if err := s.Repo.CreateSubmission(sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrTestAlreadySubmitted
		}
		return nil, err
	}
	return s.Get(testID)
}

// Grade overlays a manual mark on a submission. It never touches the auto
// score and may be repeated; the latest marks and feedback win.
func (s *TestService) Grade(callerID uint, role model.UserRole, testID string, studentID uint, req *GradeReq) (*model.TestSubmission, error) {
	if req.Marks == nil {
		return nil, util.NewValidationError("marks are required")
	}

	test, err := s.Repo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, test.AuthorID) {
		return nil, util.ErrPermissionDenied
	}

	sub, err := s.Repo.FindSubmission(testID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	marks := *req.Marks
	sub.Marks = &marks
	sub.Feedback = req.Feedback
	if err := s.Repo.UpdateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *TestService) cachedListing(ctx context.Context) ([]model.Test, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, testListingKey).Bytes()
	if err != nil {
		return nil, false
	}
	var tests []model.Test
	if err := json.Unmarshal(raw, &tests); err != nil {
		return nil, false
	}
	return tests, true
}

func (s *TestService) storeListing(ctx context.Context, tests []model.Test) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(tests)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, testListingKey, raw, listingTTL).Err(); err != nil {
		logger.Log.Warn("test listing cache write failed", zap.Error(err))
	}
}

func (s *TestService) invalidateListing(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, testListingKey).Err(); err != nil {
		logger.Log.Warn("test listing cache invalidation failed", zap.Error(err))
	}
}
