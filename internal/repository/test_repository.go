package repository

import (
	"educonnect_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// authorFields limits what of the author travels with a test, mirroring the
// read-side projection of the public API (name, email, role only).
func authorFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "full_name", "email", "role")
}

func studentFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "full_name", "email")
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// Create persists the test together with its question rows.
func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

// FindByID loads a test with its ordered questions; no associations beyond
// that, for internal checks.
func (r *TestRepository) FindByID(id string) (*model.Test, error) {
	var t model.Test
	err := r.DB.Preload("Questions", orderedQuestions).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByIDFull loads a test with author and submission students populated,
// for the read API.
func (r *TestRepository) FindByIDFull(id string) (*model.Test, error) {
	var t model.Test
	err := r.DB.
		Preload("Author", authorFields).
		Preload("Questions", orderedQuestions).
		Preload("Submissions", func(db *gorm.DB) *gorm.DB { return db.Order("submitted_at asc") }).
		Preload("Submissions.Student", studentFields).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListNotExpired returns every test whose status is not expired, newest
// first, with the author populated.
func (r *TestRepository) ListNotExpired() ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.
		Preload("Author", authorFields).
		Preload("Questions", orderedQuestions).
		Where("status <> ?", model.TestExpired).
		Order("created_at desc").
		Find(&tests).Error
	return tests, err
}

func (r *TestRepository) Update(test *model.Test) error {
	return r.DB.Save(test).Error
}

// ReplaceQuestions swaps the whole question set of a test in one
// transaction; the update path replaces questions wholesale, never patches.
func (r *TestRepository) ReplaceQuestions(testID string, questions []model.TestQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("test_id = ?", testID).Delete(&model.TestQuestion{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].TestID = testID
			questions[i].Position = i
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

// Delete removes the test and everything embedded in it.
func (r *TestRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("test_id = ?", id).Delete(&model.TestSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("test_id = ?", id).Delete(&model.TestQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, "id = ?", id).Error
	})
}

// CreateSubmission is the atomic append: the unique (test_id, student_id)
// index turns a concurrent duplicate into gorm.ErrDuplicatedKey instead of a
// lost update.
func (r *TestRepository) CreateSubmission(sub *model.TestSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *TestRepository) FindSubmission(testID string, studentID uint) (*model.TestSubmission, error) {
	var sub model.TestSubmission
	err := r.DB.Where("test_id = ? AND student_id = ?", testID, studentID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *TestRepository) UpdateSubmission(sub *model.TestSubmission) error {
	return r.DB.Save(sub).Error
}
