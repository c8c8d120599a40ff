package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxAnswerTextLength caps open answers, matching the text column size.
const MaxAnswerTextLength = 2000

var (
	scaleMin = decimal.NewFromInt(0)
	scaleMax = decimal.NewFromInt(1)
	ten      = decimal.NewFromInt(10)
)

// Answer records one respondent value for one question. Exactly one of Text,
// OptionID and Scale is meaningful, chosen by the question's type. Answers
// are append-only: created during response intake, never edited or deleted.
type Answer struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	InvitationID uint             `json:"invitation_id" gorm:"not null;index"`
	QuestionID   uint             `json:"question_id" gorm:"not null;index"`
	Text         string           `json:"text" gorm:"size:2000"`
	OptionID     *uint            `json:"option_id"`
	Scale        *decimal.Decimal `json:"scale" gorm:"type:numeric(2,1)"`
	CreatedAt    time.Time        `json:"created_at"`

	// Relationships
	Invitation *Invitation `json:"invitation,omitempty" gorm:"foreignKey:InvitationID"`
	Question   *Question   `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	// SET NULL keeps the answer row when its option is deleted.
	Option *Option `json:"option,omitempty" gorm:"foreignKey:OptionID;constraint:OnDelete:SET NULL"`
}

// ValidateAnswer checks that the answer's populated field matches the
// question's type. Pure check, no storage access.
func ValidateAnswer(a *Answer, q *Question) error {
	switch q.Type {
	case QuestionOpen:
		if a.Text == "" {
			return NewValidationError("question %d: text answer is required", q.Number)
		}
		if len(a.Text) > MaxAnswerTextLength {
			return NewValidationError("question %d: text answer exceeds %d characters", q.Number, MaxAnswerTextLength)
		}
	case QuestionMultipleChoice:
		if a.OptionID == nil {
			return NewValidationError("question %d: choose one option", q.Number)
		}
	case QuestionScale:
		if a.Scale == nil {
			return NewValidationError("question %d: scale value is required", q.Number)
		}
		if a.Scale.LessThan(scaleMin) || a.Scale.GreaterThan(scaleMax) {
			return NewValidationError("question %d: scale value must be between 0 and 1", q.Number)
		}
		if !a.Scale.Mul(ten).IsInteger() {
			return NewValidationError("question %d: scale value must have one decimal place", q.Number)
		}
	default:
		return NewValidationError("question %d: unknown question type %q", q.Number, q.Type)
	}
	return nil
}
