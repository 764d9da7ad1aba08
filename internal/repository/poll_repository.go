package repository

import (
	"educonnect_backend/internal/model"

	"gorm.io/gorm"
)

type PollRepository struct {
	DB *gorm.DB
}

func NewPollRepository(db *gorm.DB) *PollRepository {
	return &PollRepository{DB: db}
}

func (r *PollRepository) Create(p *model.Poll) error {
	return r.DB.Create(p).Error
}

func (r *PollRepository) FindByID(id string) (*model.Poll, error) {
	var p model.Poll
	err := r.DB.Preload("Author", authorFields).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PollRepository) ListNotExpired() ([]model.Poll, error) {
	var ps []model.Poll
	err := r.DB.
		Preload("Author", authorFields).
		Where("status <> ?", model.PollExpired).
		Order("created_at desc").
		Find(&ps).Error
	return ps, err
}

func (r *PollRepository) Update(p *model.Poll) error {
	return r.DB.Save(p).Error
}

func (r *PollRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("poll_id = ?", id).Delete(&model.PollVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Poll{}, "id = ?", id).Error
	})
}

// RecordVote inserts the ballot and bumps the option tallies in one
// transaction; the vote insert hits the unique (poll_id, user_id) index
// first, so a duplicate ballot never touches the tallies.
func (r *PollRepository) RecordVote(poll *model.Poll, vote *model.PollVote) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vote).Error; err != nil {
			return err
		}
		return tx.Model(poll).Update("options", poll.Options).Error
	})
}

func (r *PollRepository) FindVote(pollID string, userID uint) (*model.PollVote, error) {
	var v model.PollVote
	err := r.DB.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}
