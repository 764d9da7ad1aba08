package repository

import (
	"educonnect_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(a *model.Assignment) error {
	return r.DB.Create(a).Error
}

func (r *AssignmentRepository) FindByID(id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) FindByIDFull(id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.
		Preload("Author", authorFields).
		Preload("Submissions", func(db *gorm.DB) *gorm.DB { return db.Order("submitted_at asc") }).
		Preload("Submissions.Student", studentFields).
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) ListNotExpired() ([]model.Assignment, error) {
	var as []model.Assignment
	err := r.DB.
		Preload("Author", authorFields).
		Where("status <> ?", model.AssignmentExpired).
		Order("created_at desc").
		Find(&as).Error
	return as, err
}

func (r *AssignmentRepository) Update(a *model.Assignment) error {
	return r.DB.Save(a).Error
}

func (r *AssignmentRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("assignment_id = ?", id).Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assignment{}, "id = ?", id).Error
	})
}

// CreateSubmission relies on the unique (assignment_id, student_id) index
// for the one-submission-per-student guarantee.
func (r *AssignmentRepository) CreateSubmission(sub *model.AssignmentSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *AssignmentRepository) FindSubmission(assignmentID string, studentID uint) (*model.AssignmentSubmission, error) {
	var sub model.AssignmentSubmission
	err := r.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *AssignmentRepository) UpdateSubmission(sub *model.AssignmentSubmission) error {
	return r.DB.Save(sub).Error
}
