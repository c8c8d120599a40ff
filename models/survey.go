package models

import (
	"time"
)

type Survey struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsPublished bool      `json:"is_published" gorm:"not null;default:false"`
	StartDate   time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate     time.Time `json:"end_date" gorm:"type:date;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Questions   []Question   `json:"questions,omitempty" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
	Invitations []Invitation `json:"invitations,omitempty" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

// ValidateDates checks the date ordering rule. The publication rule needs a
// live question count and lives in SurveyService.Validate.
func (s *Survey) ValidateDates() error {
	if s.EndDate.Before(s.StartDate) {
		return NewValidationError("end date must be on or after start date")
	}
	return nil
}
