package model

import "time"

type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "active"
	AssignmentInactive AssignmentStatus = "inactive"
	AssignmentExpired  AssignmentStatus = "expired"
)

// swagger:model Assignment
type Assignment struct {
	UUIDBase
	Title       string                 `gorm:"size:255;not null" json:"title"`
	Description string                 `gorm:"type:text;not null" json:"description"`
	Subject     string                 `gorm:"size:100;not null" json:"subject"`
	Deadline    time.Time              `json:"deadline"`
	TotalMarks  int                    `gorm:"not null" json:"totalMarks"`
	Status      AssignmentStatus       `gorm:"size:20;default:'active';index" json:"status"`
	Audience    StringList             `gorm:"type:json" json:"audience"`
	AuthorID    uint                   `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author      *User                  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Submissions []AssignmentSubmission `gorm:"foreignKey:AssignmentID" json:"submissions"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// swagger:model AssignmentSubmission
type AssignmentSubmission struct {
	UUIDBase
	AssignmentID string    `gorm:"type:varchar(36);uniqueIndex:idx_assignment_student" json:"assignmentId"`
	StudentID    uint      `gorm:"type:bigint unsigned;uniqueIndex:idx_assignment_student" json:"studentId"`
	Student      *User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Content      string    `gorm:"type:text" json:"content"`
	FileURL      string    `gorm:"size:512" json:"fileUrl,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Marks        *int      `json:"marks,omitempty"`
	Feedback     string    `gorm:"type:text" json:"feedback,omitempty"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}
