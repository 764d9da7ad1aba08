package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type TestStatus string

const (
	TestDraft    TestStatus = "draft"
	TestActive   TestStatus = "active"
	TestInactive TestStatus = "inactive"
	TestExpired  TestStatus = "expired"
)

func ValidTestStatus(s TestStatus) bool {
	switch s {
	case TestDraft, TestActive, TestInactive, TestExpired:
		return true
	}
	return false
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

type QuestionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionOptions stores the ordered option list as a JSON column.
type QuestionOptions []QuestionOption

func (o QuestionOptions) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func (o *QuestionOptions) Scan(value interface{}) error {
	return scanJSON(value, o)
}

// TestQuestion carries a stable uuid identity so that later edits to the
// question set cannot be confused with the original questions a submission
// was scored against. Position preserves authoring order.
// swagger:model TestQuestion
type TestQuestion struct {
	UUIDBase
	TestID        string          `gorm:"index;type:varchar(36)" json:"testId"`
	Question      string          `gorm:"type:text;not null" json:"question"`
	Type          QuestionType    `gorm:"size:20;default:'multiple-choice'" json:"type"`
	Options       QuestionOptions `gorm:"type:json" json:"options,omitempty"`
	CorrectAnswer string          `gorm:"size:255" json:"correctAnswer,omitempty"`
	Marks         int             `gorm:"default:1" json:"marks"`
	Position      int             `gorm:"default:0" json:"-"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}

// swagger:model Test
type Test struct {
	UUIDBase
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Subject     string           `gorm:"size:100;not null" json:"subject"`
	Duration    int              `gorm:"not null" json:"duration"` // Minutes
	TotalMarks  int              `gorm:"not null" json:"totalMarks"`
	Status      TestStatus       `gorm:"size:20;default:'draft';index" json:"status"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     time.Time        `json:"endDate"`
	Audience    StringList       `gorm:"type:json" json:"audience"`
	AuthorID    uint             `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author      *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Questions   []TestQuestion   `gorm:"foreignKey:TestID" json:"questions"`
	Submissions []TestSubmission `gorm:"foreignKey:TestID" json:"submissions"`
}

func (Test) TableName() string {
	return "tests"
}

type SubmittedAnswer struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

// AnswerList stores a submission's positional answers as a JSON column.
type AnswerList []SubmittedAnswer

func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *AnswerList) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// TestSubmission is one student's single attempt. The composite unique index
// makes the insert itself the at-most-once guard under concurrent submits.
// Score is the auto-computed total; Marks/Feedback exist only once a teacher
// has graded manually.
// swagger:model TestSubmission
type TestSubmission struct {
	UUIDBase
	TestID      string     `gorm:"type:varchar(36);uniqueIndex:idx_test_student" json:"testId"`
	StudentID   uint       `gorm:"type:bigint unsigned;uniqueIndex:idx_test_student" json:"studentId"`
	Student     *User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Answers     AnswerList `gorm:"type:json" json:"answers"`
	Score       int        `gorm:"default:0" json:"score"`
	Marks       *int       `json:"marks,omitempty"`
	Feedback    string     `gorm:"type:text" json:"feedback,omitempty"`
	SubmittedAt time.Time  `json:"submittedAt"`
	TimeTaken   int        `gorm:"default:0" json:"timeTaken"` // Minutes
}

func (TestSubmission) TableName() string {
	return "test_submissions"
}

// Graded reports whether a teacher has overridden the auto score.
func (s *TestSubmission) Graded() bool {
	return s.Marks != nil
}
