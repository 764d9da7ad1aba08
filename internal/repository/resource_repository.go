package repository

import (
	"educonnect_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) Create(res *model.Resource) error {
	return r.DB.Create(res).Error
}

func (r *ResourceRepository) FindByID(id string) (*model.Resource, error) {
	var res model.Resource
	err := r.DB.Preload("Author", authorFields).First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) ListPublic() ([]model.Resource, error) {
	var rs []model.Resource
	err := r.DB.
		Preload("Author", authorFields).
		Where("visibility = ?", model.ResourcePublic).
		Order("created_at desc").
		Find(&rs).Error
	return rs, err
}

func (r *ResourceRepository) IncrementDownloads(id string) error {
	return r.DB.Model(&model.Resource{}).Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
}

func (r *ResourceRepository) Delete(id string) error {
	return r.DB.Delete(&model.Resource{}, "id = ?", id).Error
}
