package models

import (
	"time"
)

// Invitation is a single-use link for anonymous participation. The token is
// the only credential a respondent presents; it is a random 128-bit UUID with
// a uniqueness constraint.
type Invitation struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	SurveyID    uint       `json:"survey_id" gorm:"not null;index"`
	Token       string     `json:"token" gorm:"uniqueIndex;not null;size:36"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at"`

	// Relationships
	Survey  *Survey  `json:"survey,omitempty" gorm:"foreignKey:SurveyID"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:InvitationID;constraint:OnDelete:CASCADE"`
}

// Answered reports whether a response has already been recorded against this
// invitation.
func (i *Invitation) Answered() bool {
	return i.RespondedAt != nil
}
