package model

// swagger:model Post
type Post struct {
	UUIDBase
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Tags        StringList `gorm:"type:json" json:"tags"`
	AuthorID    uint       `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author      *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}
