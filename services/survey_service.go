package services

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"surveypro/models"
)

// MinQuestionsForPublication is the minimum live question count a survey
// needs before it may be published.
const MinQuestionsForPublication = 10

const dateLayout = "2006-01-02"

type SurveyService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSurveyService(db *gorm.DB, log *zap.Logger) *SurveyService {
	return &SurveyService{db: db, log: log}
}

type CreateSurveyRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
	StartDate   string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     string `json:"end_date" binding:"required"`   // YYYY-MM-DD
}

type UpdateSurveyRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsPublished *bool   `json:"is_published"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

func parseDate(value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, models.NewValidationError("invalid date %q, expected YYYY-MM-DD", value)
	}
	return d, nil
}

// Validate applies the survey rules against current persisted state. The
// question count is a live read, so validating an unsaved survey with
// unsaved questions fails the publication rule.
func (s *SurveyService) Validate(survey *models.Survey) error {
	if err := survey.ValidateDates(); err != nil {
		return err
	}
	if survey.IsPublished {
		var count int64
		if err := s.db.Model(&models.Question{}).Where("survey_id = ?", survey.ID).Count(&count).Error; err != nil {
			return err
		}
		if count < MinQuestionsForPublication {
			return models.NewValidationError("survey needs at least %d questions before publication", MinQuestionsForPublication)
		}
	}
	return nil
}

func (s *SurveyService) CreateSurvey(req *CreateSurveyRequest) (*models.Survey, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	survey := models.Survey{
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
		StartDate:   start,
		EndDate:     end,
	}

	if err := s.Validate(&survey); err != nil {
		return nil, err
	}

	if err := s.db.Create(&survey).Error; err != nil {
		return nil, err
	}

	s.log.Info("survey created", zap.Uint("survey_id", survey.ID), zap.String("title", survey.Title))
	return &survey, nil
}

func (s *SurveyService) GetSurveys() ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.db.Order("start_date DESC").Find(&surveys).Error
	return surveys, err
}

func (s *SurveyService) GetSurveyByID(surveyID uint) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.number")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id")
		}).
		First(&survey, surveyID).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (s *SurveyService) UpdateSurvey(surveyID uint, req *UpdateSurveyRequest) (*models.Survey, error) {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return nil, err
	}

	if req.Title != "" {
		survey.Title = req.Title
	}
	if req.Description != nil {
		survey.Description = *req.Description
	}
	if req.IsPublished != nil {
		survey.IsPublished = *req.IsPublished
	}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		survey.StartDate = start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		survey.EndDate = end
	}

	if err := s.Validate(&survey); err != nil {
		return nil, err
	}

	if err := s.db.Save(&survey).Error; err != nil {
		return nil, err
	}

	return s.GetSurveyByID(survey.ID)
}

// DeleteSurvey removes the survey; questions, options, invitations and
// answers go with it through the foreign key cascades.
func (s *SurveyService) DeleteSurvey(surveyID uint) error {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return err
	}

	if err := s.db.Delete(&survey).Error; err != nil {
		return err
	}

	s.log.Info("survey deleted", zap.Uint("survey_id", surveyID))
	return nil
}
