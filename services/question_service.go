package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"surveypro/models"
)

type QuestionService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewQuestionService(db *gorm.DB, log *zap.Logger) *QuestionService {
	return &QuestionService{db: db, log: log}
}

type CreateQuestionRequest struct {
	Number           int                   `json:"number" binding:"required,min=1"`
	Title            string                `json:"title" binding:"required"`
	Text             string                `json:"text"`
	ImageURL         string                `json:"image_url"`
	TableDescription string                `json:"table_description"`
	Type             string                `json:"type" binding:"required"`
	Options          []CreateOptionRequest `json:"options"`
}

type CreateOptionRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateQuestionRequest struct {
	Number           int                   `json:"number"`
	Title            string                `json:"title"`
	Text             *string               `json:"text"`
	ImageURL         *string               `json:"image_url"`
	TableDescription *string               `json:"table_description"`
	Type             string                `json:"type"`
	Options          []CreateOptionRequest `json:"options"`
}

// CreateQuestion adds a question (with nested options) to a survey. Question
// management is independent of the survey's publication state.
func (s *QuestionService) CreateQuestion(surveyID uint, req *CreateQuestionRequest) (*models.Question, error) {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return nil, err
	}

	if !models.ValidQuestionType(req.Type) {
		return nil, models.NewValidationError("unknown question type %q", req.Type)
	}
	if req.Type == models.QuestionMultipleChoice && len(req.Options) == 0 {
		return nil, models.NewValidationError("multiple choice questions need at least one option")
	}

	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	question := models.Question{
		SurveyID:         surveyID,
		Number:           req.Number,
		Title:            req.Title,
		Text:             req.Text,
		ImageURL:         req.ImageURL,
		TableDescription: req.TableDescription,
		Type:             req.Type,
	}

	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, optReq := range req.Options {
		option := models.Option{
			QuestionID: question.ID,
			Text:       optReq.Text,
		}
		if err := tx.Create(&option).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuestionByID(question.ID)
}

func (s *QuestionService) GetQuestions(surveyID uint) ([]models.Question, error) {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return nil, err
	}

	var questions []models.Question
	err := s.db.Where("survey_id = ?", surveyID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id")
		}).
		Order("number").
		Find(&questions).Error
	return questions, err
}

func (s *QuestionService) GetQuestionByID(questionID uint) (*models.Question, error) {
	var question models.Question
	err := s.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id")
		}).
		First(&question, questionID).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) UpdateQuestion(questionID uint, req *UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	if req.Number != 0 {
		question.Number = req.Number
	}
	if req.Title != "" {
		question.Title = req.Title
	}
	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.ImageURL != nil {
		question.ImageURL = *req.ImageURL
	}
	if req.TableDescription != nil {
		question.TableDescription = *req.TableDescription
	}
	if req.Type != "" {
		if !models.ValidQuestionType(req.Type) {
			return nil, models.NewValidationError("unknown question type %q", req.Type)
		}
		question.Type = req.Type
	}

	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Omit("Options").Save(question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// If options are provided, replace the existing set
	if req.Options != nil {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Option{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		for _, optReq := range req.Options {
			option := models.Option{
				QuestionID: questionID,
				Text:       optReq.Text,
			}
			if err := tx.Create(&option).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuestionByID(questionID)
}

func (s *QuestionService) DeleteQuestion(questionID uint) error {
	question, err := s.GetQuestionByID(questionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(question).Error; err != nil {
		return err
	}

	s.log.Info("question deleted",
		zap.Uint("question_id", questionID),
		zap.Uint("survey_id", question.SurveyID))
	return nil
}
