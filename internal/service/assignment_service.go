package service

import (
	"errors"
	"time"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	Repo *repository.AssignmentRepository
}

func NewAssignmentService(repo *repository.AssignmentRepository) *AssignmentService {
	return &AssignmentService{Repo: repo}
}

type AssignmentCreateReq struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Subject     string    `json:"subject" binding:"required"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	TotalMarks  int       `json:"totalMarks" binding:"required"`
	Audience    []string  `json:"audience"`
}

type AssignmentUpdateReq struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Subject     *string                 `json:"subject"`
	Deadline    *time.Time              `json:"deadline"`
	TotalMarks  *int                    `json:"totalMarks"`
	Status      *model.AssignmentStatus `json:"status"`
	Audience    []string                `json:"audience"`
}

// AssignmentSubmitReq carries the text answer; an attached file is uploaded
// separately through the storage service and referenced by URL.
type AssignmentSubmitReq struct {
	Content string `json:"content"`
	FileURL string `json:"fileUrl"`
}

func (s *AssignmentService) Create(callerID uint, role model.UserRole, req *AssignmentCreateReq) (*model.Assignment, error) {
	if !CanAuthorContent(role) {
		return nil, util.ErrPermissionDenied
	}
	if req.TotalMarks <= 0 {
		return nil, util.NewValidationError("totalMarks must be positive")
	}
	audience := req.Audience
	if len(audience) == 0 {
		audience = []string{"students"}
	}
	if !validAudience(audience) {
		return nil, util.NewValidationError("invalid audience value")
	}

	a := &model.Assignment{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Deadline:    req.Deadline,
		TotalMarks:  req.TotalMarks,
		Status:      model.AssignmentActive,
		Audience:    model.StringList(audience),
		AuthorID:    callerID,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) List() ([]model.Assignment, error) {
	return s.Repo.ListNotExpired()
}

func (s *AssignmentService) Get(id string) (*model.Assignment, error) {
	a, err := s.Repo.FindByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) Update(callerID uint, role model.UserRole, id string, req *AssignmentUpdateReq) (*model.Assignment, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, a.AuthorID) {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.NewValidationError("title cannot be empty")
		}
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Subject != nil {
		a.Subject = *req.Subject
	}
	if req.Deadline != nil {
		a.Deadline = *req.Deadline
	}
	if req.TotalMarks != nil {
		if *req.TotalMarks <= 0 {
			return nil, util.NewValidationError("totalMarks must be positive")
		}
		a.TotalMarks = *req.TotalMarks
	}
	if req.Status != nil {
		switch *req.Status {
		case model.AssignmentActive, model.AssignmentInactive, model.AssignmentExpired:
		default:
			return nil, util.NewValidationError("invalid status")
		}
		a.Status = *req.Status
	}
	if req.Audience != nil {
		if !validAudience(req.Audience) {
			return nil, util.NewValidationError("invalid audience value")
		}
		a.Audience = model.StringList(req.Audience)
	}

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *AssignmentService) Delete(callerID uint, role model.UserRole, id string) error {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAssignmentNotFound
		}
		return err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, a.AuthorID) {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(id)
}

// Submit records a student's answer. The unique (assignment_id, student_id)
// index keeps it to one submission per student.
func (s *AssignmentService) Submit(studentID uint, role model.UserRole, assignmentID string, req *AssignmentSubmitReq) (*model.Assignment, error) {
	if !CanSubmit(role) {
		return nil, util.ErrPermissionDenied
	}
	if req.Content == "" && req.FileURL == "" {
		return nil, util.NewValidationError("submission needs content or an attachment")
	}

	if _, err := s.Repo.FindByID(assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	if _, err := s.Repo.FindSubmission(assignmentID, studentID); err == nil {
		return nil, util.ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := &model.AssignmentSubmission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      req.Content,
		FileURL:      req.FileURL,
		SubmittedAt:  time.Now(),
	}
	if err := s.Repo.CreateSubmission(sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}
	return s.Get(assignmentID)
}

// Grade sets marks and feedback on a submission; repeatable, latest wins.
func (s *AssignmentService) Grade(callerID uint, role model.UserRole, assignmentID string, studentID uint, req *GradeReq) (*model.AssignmentSubmission, error) {
	if req.Marks == nil {
		return nil, util.NewValidationError("marks are required")
	}

	a, err := s.Repo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if !CanAuthorContent(role) || !IsOwner(callerID, a.AuthorID) {
		return nil, util.ErrPermissionDenied
	}

	sub, err := s.Repo.FindSubmission(assignmentID, studentID)
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
