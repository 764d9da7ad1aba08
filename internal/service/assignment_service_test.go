package service

import (
	"testing"
	"time"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignmentService(t *testing.T) (*AssignmentService, *TestFixtures) {
	db := newTestDB(t)
	return NewAssignmentService(repository.NewAssignmentRepository(db)), &TestFixtures{
		teacher: seedUser(t, db, model.Teacher),
		student: seedUser(t, db, model.Student),
	}
}

func sampleAssignmentReq() *AssignmentCreateReq {
	return &AssignmentCreateReq{
		Title:       "Essay on photosynthesis",
		Description: "500 words minimum",
		Subject:     "Biology",
		Deadline:    time.Now().Add(7 * 24 * time.Hour),
		TotalMarks:  50,
	}
}

func TestAssignmentSubmitOnce(t *testing.T) {
	svc, fx := newAssignmentService(t)

	a, err := svc.Create(fx.teacher.ID, fx.teacher.Role, sampleAssignmentReq())
	require.NoError(t, err)

	t.Run("empty submission rejected", func(t *testing.T) {
		_, err := svc.Submit(fx.student.ID, fx.student.Role, a.ID, &AssignmentSubmitReq{})
		assert.True(t, util.IsValidationError(err))
	})

	updated, err := svc.Submit(fx.student.ID, fx.student.Role, a.ID, &AssignmentSubmitReq{Content: "my essay"})
	require.NoError(t, err)
	require.Len(t, updated.Submissions, 1)
	assert.Equal(t, "my essay", updated.Submissions[0].Content)

	_, err = svc.Submit(fx.student.ID, fx.student.Role, a.ID, &AssignmentSubmitReq{Content: "second try"})
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
}

func TestAssignmentGrade(t *testing.T) {
	svc, fx := newAssignmentService(t)

	a, err := svc.Create(fx.teacher.ID, fx.teacher.Role, sampleAssignmentReq())
	require.NoError(t, err)
	_, err = svc.Submit(fx.student.ID, fx.student.Role, a.ID, &AssignmentSubmitReq{Content: "my essay"})
	require.NoError(t, err)

	t.Run("marks required", func(t *testing.T) {
		_, err := svc.Grade(fx.teacher.ID, fx.teacher.Role, a.ID, fx.student.ID, &GradeReq{Feedback: "?"})
		assert.True(t, util.IsValidationError(err))
	})

	marks := 42
	sub, err := svc.Grade(fx.teacher.ID, fx.teacher.Role, a.ID, fx.student.ID, &GradeReq{Marks: &marks, Feedback: "solid"})
	require.NoError(t, err)
	require.NotNil(t, sub.Marks)
	assert.Equal(t, 42, *sub.Marks)
	assert.Equal(t, "solid", sub.Feedback)

	t.Run("student cannot grade", func(t *testing.T) {
		_, err := svc.Grade(fx.student.ID, fx.student.Role, a.ID, fx.student.ID, &GradeReq{Marks: &marks})
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})
}
