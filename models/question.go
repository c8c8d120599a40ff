package models

import (
	"time"
)

// Question types. A question owns options only when its type is
// QuestionMultipleChoice.
const (
	QuestionOpen           = "open"
	QuestionMultipleChoice = "mc"
	QuestionScale          = "scale"
)

type Question struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	SurveyID         uint      `json:"survey_id" gorm:"not null;index"`
	Number           int       `json:"number" gorm:"not null"` // ordering, conventionally sequential
	Title            string    `json:"title" gorm:"not null"`
	Text             string    `json:"text" gorm:"type:text"`
	ImageURL         string    `json:"image_url"`
	TableDescription string    `json:"table_description"`
	Type             string    `json:"type" gorm:"not null"` // open, mc, scale
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relationships
	Survey  *Survey  `json:"survey,omitempty" gorm:"foreignKey:SurveyID"`
	Options []Option `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func ValidQuestionType(t string) bool {
	switch t {
	case QuestionOpen, QuestionMultipleChoice, QuestionScale:
		return true
	}
	return false
}
