package model

type ResourceVisibility string

const (
	ResourcePublic  ResourceVisibility = "public"
	ResourcePrivate ResourceVisibility = "private"
)

// swagger:model Resource
type Resource struct {
	UUIDBase
	Title       string             `gorm:"size:255;not null" json:"title"`
	Description string             `gorm:"type:text;not null" json:"description"`
	Visibility  ResourceVisibility `gorm:"size:10;default:'public'" json:"visibility"`
	URL         string             `gorm:"size:512;not null" json:"url"`
	ObjectKey   string             `gorm:"size:512" json:"-"` // storage key, used on delete
	FileType    string             `gorm:"size:100" json:"fileType,omitempty"`
	FileSize    int64              `gorm:"default:0" json:"fileSize,omitempty"`
	Downloads   int                `gorm:"default:0" json:"downloads"`
	Audience    StringList         `gorm:"type:json" json:"audience"`
	AuthorID    uint               `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author      *User              `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Resource) TableName() string {
	return "resources"
}
