package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type PollType string

const (
	PollSingle   PollType = "single"
	PollMultiple PollType = "multiple"
)

type PollStatus string

const (
	PollActive   PollStatus = "active"
	PollInactive PollStatus = "inactive"
	PollExpired  PollStatus = "expired"
)

type PollOption struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// PollOptions stores the ordered option tally as a JSON column.
type PollOptions []PollOption

func (o PollOptions) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func (o *PollOptions) Scan(value interface{}) error {
	return scanJSON(value, o)
}

// swagger:model Poll
type Poll struct {
	UUIDBase
	Title           string      `gorm:"size:255;not null" json:"title"`
	Description     string      `gorm:"type:text;not null" json:"description"`
	Type            PollType    `gorm:"size:20;default:'single'" json:"type"`
	Options         PollOptions `gorm:"type:json" json:"options"`
	Deadline        time.Time   `json:"deadline"`
	AnonymousMember bool        `gorm:"default:false" json:"anonymousMember"`
	Status          PollStatus  `gorm:"size:20;default:'active';index" json:"status"`
	Audience        StringList  `gorm:"type:json" json:"audience"`
	AuthorID        uint        `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author          *User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Votes           []PollVote  `gorm:"foreignKey:PollID" json:"votes"`
}

func (Poll) TableName() string {
	return "polls"
}

// PollVote records one user's ballot; the unique index enforces one vote
// per (poll, user) pair at the store level.
type PollVote struct {
	UUIDBase
	PollID          string  `gorm:"type:varchar(36);uniqueIndex:idx_poll_user" json:"pollId"`
	UserID          uint    `gorm:"type:bigint unsigned;uniqueIndex:idx_poll_user" json:"userId"`
	SelectedOptions IntList `gorm:"type:json" json:"selectedOptions"`
}

func (PollVote) TableName() string {
	return "poll_votes"
}
