package repository

import (
	"educonnect_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(p *model.Post) error {
	return r.DB.Create(p).Error
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var p model.Post
	err := r.DB.Preload("Author", authorFields).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) List() ([]model.Post, error) {
	var ps []model.Post
	err := r.DB.
		Preload("Author", authorFields).
		Order("created_at desc").
		Find(&ps).Error
	return ps, err
}

func (r *PostRepository) Update(p *model.Post) error {
	return r.DB.Save(p).Error
}

func (r *PostRepository) Delete(id string) error {
	return r.DB.Delete(&model.Post{}, "id = ?", id).Error
}
