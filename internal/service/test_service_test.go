package service

import (
	"context"
	"testing"
	"time"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.TestQuestion{},
		&model.TestSubmission{},
		&model.Assignment{},
		&model.AssignmentSubmission{},
		&model.Poll{},
		&model.PollVote{},
		&model.Post{},
		&model.Resource{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		FullName: "Seed " + string(role),
		Email:    string(role) + "-" + model.GenerateUUID() + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestService(t *testing.T) (*TestService, *gorm.DB) {
	db := newTestDB(t)
	return NewTestService(repository.NewTestRepository(db), nil), db
}

func sampleCreateReq() *TestCreateReq {
	return &TestCreateReq{
		Title:       "Geography basics",
		Description: "Capitals and facts",
		Subject:     "Geography",
		Duration:    30,
		TotalMarks:  100,
		Status:      "draft",
		StartDate:   time.Now(),
		EndDate:     time.Now().Add(24 * time.Hour),
		Questions: []TestQuestionReq{
			{
				Question: "Capital of France?",
				Type:     model.QuestionMultipleChoice,
				Options: []model.QuestionOption{
					{Text: "Paris", IsCorrect: true},
					{Text: "London"},
				},
				Marks: 5,
			},
			{
				Question:      "The Earth is round.",
				Type:          model.QuestionTrueFalse,
				CorrectAnswer: "true",
				Marks:         5,
			},
		},
	}
}

func TestCreateForcesActiveStatus(t *testing.T) {
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)

	test, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)

	assert.Equal(t, model.TestActive, test.Status)
	assert.Equal(t, []string{"students"}, []string(test.Audience))
	assert.Equal(t, teacher.ID, test.AuthorID)
	assert.Len(t, test.Questions, 2)
}

func TestCreateValidation(t *testing.T) {
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)
	student := seedUser(t, db, model.Student)

	t.Run("student forbidden", func(t *testing.T) {
		_, err := svc.Create(context.Background(), student.ID, student.Role, sampleCreateReq())
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	t.Run("empty questions rejected", func(t *testing.T) {
		req := sampleCreateReq()
		req.Questions = nil
		_, err := svc.Create(context.Background(), teacher.ID, teacher.Role, req)
		assert.True(t, util.IsValidationError(err))
	})

	t.Run("two flagged options rejected", func(t *testing.T) {
		req := sampleCreateReq()
		req.Questions[0].Options = []model.QuestionOption{
			{Text: "A", IsCorrect: true},
			{Text: "B", IsCorrect: true},
		}
		_, err := svc.Create(context.Background(), teacher.ID, teacher.Role, req)
		assert.True(t, util.IsValidationError(err))
	})

	t.Run("negative marks rejected", func(t *testing.T) {
		req := sampleCreateReq()
		req.Questions[1].Marks = -1
		_, err := svc.Create(context.Background(), teacher.ID, teacher.Role, req)
		assert.True(t, util.IsValidationError(err))
	})
}

func TestSubmitScoresOnce(t *testing.T) {
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)
	student := seedUser(t, db, model.Student)

	created, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)

	test, err := svc.Submit(student.ID, student.Role, created.ID, &TestSubmitReq{
		Answers: []model.SubmittedAnswer{
			{QuestionIndex: 0, Answer: "Paris"},
			{QuestionIndex: 1, Answer: "false"},
		},
		TimeTaken: 12,
	})
	require.NoError(t, err)
	require.Len(t, test.Submissions, 1)

	sub := test.Submissions[0]
	assert.Equal(t, 5, sub.Score)
	assert.Equal(t, student.ID, sub.StudentID)
	assert.Equal(t, 12, sub.TimeTaken)
	assert.False(t, sub.Graded())
	assert.False(t, sub.SubmittedAt.IsZero())
}

func TestSubmitUnknownTest(t *testing.T) {
	svc, db := newTestService(t)
	student := seedUser(t, db, model.Student)

	_, err := svc.Submit(student.ID, student.Role, model.GenerateUUID(), &TestSubmitReq{
		Answers: []model.SubmittedAnswer{},
	})
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestSubmitAtMostOnce(t *testing.T) {
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)
	student := seedUser(t, db, model.Student)

	created, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)

	first := &TestSubmitReq{Answers: []model.SubmittedAnswer{{QuestionIndex: 0, Answer: "Paris"}}}
	_, err = svc.Submit(student.ID, student.Role, created.ID, first)
	require.NoError(t, err)

	second := &TestSubmitReq{Answers: []model.SubmittedAnswer{{QuestionIndex: 1, Answer: "true"}}}
	_, err = svc.Submit(student.ID, student.Role, created.ID, second)
	assert.ErrorIs(t, err, util.ErrTestAlreadySubmitted)

	// The original attempt survives untouched.
	test, err := svc.Get(created.ID)
	require.NoError(t, err)
	require.Len(t, test.Submissions, 1)
	assert.Equal(t, 5, test.Submissions[0].Score)
}

func TestSubmitDuplicateAtStoreLevel(t *testing.T) {
	// Bypass the service pre-check to hit the unique index directly, the way
	// a concurrent second submit would.
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)
	student := seedUser(t, db, model.Student)

	created, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)

	repo := repository.NewTestRepository(db)
	require.NoError(t, repo.CreateSubmission(&model.TestSubmission{
		TestID:      created.ID,
		StudentID:   student.ID,
		SubmittedAt: time.Now(),
	}))

	err = repo.CreateSubmission(&model.TestSubmission{
		TestID:      created.ID,
		StudentID:   student.ID,
		SubmittedAt: time.Now(),
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestGradeOverlay(t *testing.T) {
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)
	other := seedUser(t, db, model.Teacher)
	student := seedUser(t, db, model.Student)

	created, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)

	_, err = svc.Submit(student.ID, student.Role, created.ID, &TestSubmitReq{
		Answers: []model.SubmittedAnswer{{QuestionIndex: 0, Answer: "Paris"}},
	})
	require.NoError(t, err)

	t.Run("marks required", func(t *testing.T) {
		_, err := svc.Grade(teacher.ID, teacher.Role, created.ID, student.ID, &GradeReq{})
		assert.True(t, util.IsValidationError(err))
	})

	t.Run("non-author forbidden", func(t *testing.T) {
		marks := 80
		_, err := svc.Grade(other.ID, other.Role, created.ID, student.ID, &GradeReq{Marks: &marks})
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	t.Run("unknown submission", func(t *testing.T) {
		marks := 80
		_, err := svc.Grade(teacher.ID, teacher.Role, created.ID, student.ID+99, &GradeReq{Marks: &marks})
		assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
	})

	t.Run("sets marks and keeps score", func(t *testing.T) {
		marks := 80
		sub, err := svc.Grade(teacher.ID, teacher.Role, created.ID, student.ID, &GradeReq{Marks: &marks, Feedback: "good work"})
		require.NoError(t, err)
		require.NotNil(t, sub.Marks)
		assert.Equal(t, 80, *sub.Marks)
		assert.Equal(t, "good work", sub.Feedback)
		assert.Equal(t, 5, sub.Score)
		assert.True(t, sub.Graded())
	})

	t.Run("regrade is idempotent", func(t *testing.T) {
		marks := 90
		sub, err := svc.Grade(teacher.ID, teacher.Role, created.ID, student.ID, &GradeReq{Marks: &marks})
		require.NoError(t, err)
		assert.Equal(t, 90, *sub.Marks)
		assert.Equal(t, 5, sub.Score)
	})
}

func TestUpdateReplacesWholesale(t *testing.T) {
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)
	student := seedUser(t, db, model.Student)

	created, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)

	t.Run("non-author forbidden", func(t *testing.T) {
		title := "hijacked"
		_, err := svc.Update(context.Background(), student.ID, student.Role, created.ID, &TestUpdateReq{Title: &title})
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	t.Run("absent fields retained, questions replaced", func(t *testing.T) {
		title := "Geography advanced"
		updated, err := svc.Update(context.Background(), teacher.ID, teacher.Role, created.ID, &TestUpdateReq{
			Title: &title,
			Questions: []TestQuestionReq{
				{
					Question:      "Water boils at 100C at sea level.",
					Type:          model.QuestionTrueFalse,
					CorrectAnswer: "true",
					Marks:         2,
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Geography advanced", updated.Title)
		assert.Equal(t, "Geography", updated.Subject)
		assert.Equal(t, 30, updated.Duration)
		require.Len(t, updated.Questions, 1)
		assert.Equal(t, model.QuestionTrueFalse, updated.Questions[0].Type)
	})

	t.Run("status change honored on update", func(t *testing.T) {
		status := model.TestInactive
		updated, err := svc.Update(context.Background(), teacher.ID, teacher.Role, created.ID, &TestUpdateReq{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, model.TestInactive, updated.Status)
	})
}

func TestDeleteCascades(t *testing.T) {
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)
	student := seedUser(t, db, model.Student)

	created, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)
	_, err = svc.Submit(student.ID, student.Role, created.ID, &TestSubmitReq{
		Answers: []model.SubmittedAnswer{{QuestionIndex: 0, Answer: "Paris"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), teacher.ID, teacher.Role, created.ID))

	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, util.ErrTestNotFound)

	var questionCount, submissionCount int64
	db.Model(&model.TestQuestion{}).Where("test_id = ?", created.ID).Count(&questionCount)
	db.Model(&model.TestSubmission{}).Where("test_id = ?", created.ID).Count(&submissionCount)
	assert.Zero(t, questionCount)
	assert.Zero(t, submissionCount)
}

func TestListSkipsExpired(t *testing.T) {
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)

	created, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)

	status := model.TestExpired
	_, err = svc.Update(context.Background(), teacher.ID, teacher.Role, second.ID, &TestUpdateReq{Status: &status})
	require.NoError(t, err)

	tests, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, created.ID, tests[0].ID)
	require.NotNil(t, tests[0].Author)
	assert.Equal(t, teacher.FullName, tests[0].Author.FullName)
}

func TestAdminPassesOwnershipGateOnlyAsAuthor(t *testing.T) {
	// Admin role clears the role gate but not ownership; only the author may
	// mutate a test.
	svc, db := newTestService(t)
	teacher := seedUser(t, db, model.Teacher)
	admin := seedUser(t, db, model.Admin)

	created, err := svc.Create(context.Background(), teacher.ID, teacher.Role, sampleCreateReq())
	require.NoError(t, err)

	title := "renamed"
	_, err = svc.Update(context.Background(), admin.ID, admin.Role, created.ID, &TestUpdateReq{Title: &title})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
