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
)

func newPollService(t *testing.T) (*PollService, *TestFixtures) {
	db := newTestDB(t)
	return NewPollService(repository.NewPollRepository(db), nil), &TestFixtures{
		teacher: seedUser(t, db, model.Teacher),
		student: seedUser(t, db, model.Student),
	}
}

type TestFixtures struct {
	teacher *model.User
	student *model.User
}

func samplePollReq(pollType model.PollType) *PollCreateReq {
	return &PollCreateReq{
		Title:       "Field trip destination",
		Description: "Pick where we go",
		Type:        pollType,
		Options:     []string{"Museum", "Planetarium", "Zoo"},
		Deadline:    time.Now().Add(48 * time.Hour),
	}
}

func TestPollCreateValidation(t *testing.T) {
	svc, fx := newPollService(t)

	t.Run("student forbidden", func(t *testing.T) {
		_, err := svc.Create(context.Background(), fx.student.ID, fx.student.Role, samplePollReq(model.PollSingle))
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	t.Run("needs two options", func(t *testing.T) {
		req := samplePollReq(model.PollSingle)
		req.Options = []string{"only one"}
		_, err := svc.Create(context.Background(), fx.teacher.ID, fx.teacher.Role, req)
		assert.True(t, util.IsValidationError(err))
	})
}

func TestVoteTallies(t *testing.T) {
	svc, fx := newPollService(t)

	poll, err := svc.Create(context.Background(), fx.teacher.ID, fx.teacher.Role, samplePollReq(model.PollMultiple))
	require.NoError(t, err)

	voted, err := svc.Vote(context.Background(), fx.student.ID, fx.student.Role, poll.ID, &VoteReq{SelectedOptions: []int{0, 2}})
	require.NoError(t, err)

	assert.Equal(t, 1, voted.Options[0].Votes)
	assert.Equal(t, 0, voted.Options[1].Votes)
	assert.Equal(t, 1, voted.Options[2].Votes)

	// Tallies survive a reload.
	reloaded, err := svc.Get(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Options[0].Votes)
}

func TestVoteOncePerUser(t *testing.T) {
	svc, fx := newPollService(t)

	poll, err := svc.Create(context.Background(), fx.teacher.ID, fx.teacher.Role, samplePollReq(model.PollSingle))
	require.NoError(t, err)

	_, err = svc.Vote(context.Background(), fx.student.ID, fx.student.Role, poll.ID, &VoteReq{SelectedOptions: []int{1}})
	require.NoError(t, err)

	_, err = svc.Vote(context.Background(), fx.student.ID, fx.student.Role, poll.ID, &VoteReq{SelectedOptions: []int{0}})
	assert.ErrorIs(t, err, util.ErrAlreadyVoted)

	// The duplicate ballot never reached the tallies.
	reloaded, err := svc.Get(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Options[0].Votes)
	assert.Equal(t, 1, reloaded.Options[1].Votes)
}

func TestSinglePollAcceptsExactlyOneOption(t *testing.T) {
	svc, fx := newPollService(t)

	poll, err := svc.Create(context.Background(), fx.teacher.ID, fx.teacher.Role, samplePollReq(model.PollSingle))
	require.NoError(t, err)

	_, err = svc.Vote(context.Background(), fx.student.ID, fx.student.Role, poll.ID, &VoteReq{SelectedOptions: []int{0, 1}})
	assert.True(t, util.IsValidationError(err))

	_, err = svc.Vote(context.Background(), fx.student.ID, fx.student.Role, poll.ID, &VoteReq{SelectedOptions: []int{}})
	assert.True(t, util.IsValidationError(err))

	_, err = svc.Vote(context.Background(), fx.student.ID, fx.student.Role, poll.ID, &VoteReq{SelectedOptions: []int{5}})
	assert.True(t, util.IsValidationError(err))
}

func TestPollOptionReplacementResetsTallies(t *testing.T) {
	svc, fx := newPollService(t)

	poll, err := svc.Create(context.Background(), fx.teacher.ID, fx.teacher.Role, samplePollReq(model.PollSingle))
	require.NoError(t, err)

	_, err = svc.Vote(context.Background(), fx.student.ID, fx.student.Role, poll.ID, &VoteReq{SelectedOptions: []int{0}})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), fx.teacher.ID, fx.teacher.Role, poll.ID, &PollUpdateReq{
		Options: []string{"Aquarium", "Library"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Options, 2)
	assert.Equal(t, 0, updated.Options[0].Votes)
	assert.Equal(t, 0, updated.Options[1].Votes)
}
