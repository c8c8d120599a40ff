package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"surveypro/forms"
	"surveypro/models"
)

// submitClaimTTL bounds how long a submission claim can linger if a worker
// dies between claiming and committing.
const submitClaimTTL = time.Minute

// ResponseService owns the anonymous response intake path. The invitation
// token is the only credential involved; no operator session is required.
type ResponseService struct {
	db    *gorm.DB
	redis *redis.Client
	log   *zap.Logger
}

// NewResponseService constructs the service. The redis client serializes
// concurrent submissions against the same token and may be nil; the
// database-side guard inside SubmitResponse holds on its own.
func NewResponseService(db *gorm.DB, redisClient *redis.Client, log *zap.Logger) *ResponseService {
	return &ResponseService{db: db, redis: redisClient, log: log}
}

type SubmittedAnswer struct {
	QuestionID uint             `json:"question_id" binding:"required"`
	Text       string           `json:"text"`
	OptionID   *uint            `json:"option_id"`
	Scale      *decimal.Decimal `json:"scale"`
}

type SubmitResponseRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required"`
}

// ResponseForm is what a respondent sees when opening an invitation link.
type ResponseForm struct {
	SurveyID    uint          `json:"survey_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Answered    bool          `json:"answered"`
	Fields      []forms.Field `json:"fields"`
}

func (s *ResponseService) GetResponseForm(token string) (*ResponseForm, error) {
	var invitation models.Invitation
	if err := s.db.Where("token = ?", token).First(&invitation).Error; err != nil {
		return nil, err
	}

	var survey models.Survey
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.number")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id")
		}).
		First(&survey, invitation.SurveyID).Error
	if err != nil {
		return nil, err
	}

	return &ResponseForm{
		SurveyID:    survey.ID,
		Title:       survey.Title,
		Description: survey.Description,
		Answered:    invitation.Answered(),
		Fields:      forms.Build(survey.Questions),
	}, nil
}

// SubmitResponse records one answer per question and stamps the invitation,
// all inside a single transaction. A second submission against an answered
// invitation is rejected with models.ErrAlreadyResponded.
func (s *ResponseService) SubmitResponse(ctx context.Context, token string, req *SubmitResponseRequest) error {
	var invitation models.Invitation
	if err := s.db.Where("token = ?", token).First(&invitation).Error; err != nil {
		return err
	}
	if invitation.Answered() {
		return models.ErrAlreadyResponded
	}

	if s.redis != nil {
		claimed, err := s.redis.SetNX(ctx, "surveypro:respond:"+token, 1, submitClaimTTL).Result()
		if err != nil {
			// The conditional update below still guards correctness.
			s.log.Warn("submission claim unavailable", zap.Error(err))
		} else if !claimed {
			return models.ErrAlreadyResponded
		} else {
			defer s.redis.Del(ctx, "surveypro:respond:"+token)
		}
	}

	var questions []models.Question
	err := s.db.Where("survey_id = ?", invitation.SurveyID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id")
		}).
		Order("number").
		Find(&questions).Error
	if err != nil {
		return err
	}

	answers, err := buildAnswers(invitation.ID, questions, req.Answers)
	if err != nil {
		return err
	}

	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Conditional update doubles as the re-submission guard under
	// concurrency: only one transaction can flip responded_at from NULL.
	now := time.Now().UTC()
	res := tx.Model(&models.Invitation{}).
		Where("id = ? AND responded_at IS NULL", invitation.ID).
		Update("responded_at", now)
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return models.ErrAlreadyResponded
	}

	for i := range answers {
		if err := tx.Create(&answers[i]).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.log.Info("response recorded",
		zap.Uint("survey_id", invitation.SurveyID),
		zap.Uint("invitation_id", invitation.ID),
		zap.Int("answers", len(answers)))
	return nil
}

// buildAnswers checks each submitted value against its field's domain and
// constructs one answer per question, in the questions' stored order.
func buildAnswers(invitationID uint, questions []models.Question, submitted []SubmittedAnswer) ([]models.Answer, error) {
	values := make(map[uint]forms.Value, len(submitted))
	for _, ans := range submitted {
		if _, dup := values[ans.QuestionID]; dup {
			return nil, models.NewValidationError("question %d answered more than once", ans.QuestionID)
		}
		values[ans.QuestionID] = forms.Value{Text: ans.Text, OptionID: ans.OptionID, Scale: ans.Scale}
	}

	fields := forms.Build(questions)
	answers := make([]models.Answer, 0, len(questions))
	for i, field := range fields {
		q := questions[i]
		value, ok := values[q.ID]
		if !ok {
			return nil, models.NewValidationError("%s: an answer is required", q.Title)
		}
		delete(values, q.ID)

		if err := field.Check(value); err != nil {
			return nil, err
		}

		answer := models.Answer{InvitationID: invitationID, QuestionID: q.ID}
		switch q.Type {
		case models.QuestionOpen:
			answer.Text = value.Text
		case models.QuestionMultipleChoice:
			answer.OptionID = value.OptionID
		case models.QuestionScale:
			answer.Scale = value.Scale
		}

		if err := models.ValidateAnswer(&answer, &q); err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}

	if len(values) > 0 {
		return nil, models.NewValidationError("submission contains answers for unknown questions")
	}
	return answers, nil
}
