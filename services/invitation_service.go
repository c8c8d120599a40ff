package services

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"surveypro/models"
)

type InvitationService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewInvitationService(db *gorm.DB, log *zap.Logger) *InvitationService {
	return &InvitationService{db: db, log: log}
}

// CreateInvitation issues a single-use invitation link for a survey.
// Publication gates issuance: an unpublished survey cannot be handed out.
func (s *InvitationService) CreateInvitation(surveyID uint) (*models.Invitation, error) {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return nil, err
	}

	if !survey.IsPublished {
		return nil, models.NewValidationError("survey is not published")
	}

	invitation := models.Invitation{
		SurveyID: surveyID,
		Token:    uuid.NewString(),
	}

	if err := s.db.Create(&invitation).Error; err != nil {
		return nil, err
	}

	s.log.Info("invitation created",
		zap.Uint("survey_id", surveyID),
		zap.Uint("invitation_id", invitation.ID))
	return &invitation, nil
}

func (s *InvitationService) GetInvitations(surveyID uint) ([]models.Invitation, error) {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return nil, err
	}

	var invitations []models.Invitation
	err := s.db.Where("survey_id = ?", surveyID).Order("created_at").Find(&invitations).Error
	return invitations, err
}

// GetInvitationByToken resolves the respondent credential. Unknown tokens
// surface as gorm.ErrRecordNotFound.
func (s *InvitationService) GetInvitationByToken(token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := s.db.Where("token = ?", token).First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}
