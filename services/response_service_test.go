package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"surveypro/forms"
	"surveypro/models"
)

func submission(questions []models.Question) *SubmitResponseRequest {
	scale := decimal.RequireFromString("0.7")
	optionID := questions[1].Options[0].ID
	return &SubmitResponseRequest{Answers: []SubmittedAnswer{
		{QuestionID: questions[0].ID, Text: "hello"},
		{QuestionID: questions[1].ID, OptionID: &optionID},
		{QuestionID: questions[2].ID, Scale: &scale},
	}}
}

func TestGetResponseForm(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil, testLogger())
	survey := seedSurvey(t, db, true)
	questions := seedQuestionSet(t, db, survey.ID)
	invitation := seedInvitation(t, db, survey.ID)

	form, err := svc.GetResponseForm(invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, survey.ID, form.SurveyID)
	assert.Equal(t, "Customer satisfaction", form.Title)
	assert.False(t, form.Answered)
	require.Len(t, form.Fields, 3)
	assert.Equal(t, forms.FieldText, form.Fields[0].Kind)
	assert.Equal(t, forms.FieldChoice, form.Fields[1].Kind)
	assert.Equal(t, forms.FieldScale, form.Fields[2].Kind)
	assert.Equal(t, questions[0].ID, form.Fields[0].QuestionID)
}

func TestGetResponseFormUnknownToken(t *testing.T) {
	svc := NewResponseService(newTestDB(t), nil, testLogger())

	_, err := svc.GetResponseForm("no-such-token")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSubmitResponse(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil, testLogger())
	survey := seedSurvey(t, db, true)
	questions := seedQuestionSet(t, db, survey.ID)
	invitation := seedInvitation(t, db, survey.ID)

	require.NoError(t, svc.SubmitResponse(context.Background(), invitation.Token, submission(questions)))

	var answers []models.Answer
	require.NoError(t, db.Where("invitation_id = ?", invitation.ID).Order("id").Find(&answers).Error)
	require.Len(t, answers, 3)
	assert.Equal(t, "hello", answers[0].Text)
	require.NotNil(t, answers[1].OptionID)
	assert.Equal(t, questions[1].Options[0].ID, *answers[1].OptionID)
	require.NotNil(t, answers[2].Scale)
	assert.Equal(t, "0.7", answers[2].Scale.StringFixed(1))

	var stamped models.Invitation
	require.NoError(t, db.First(&stamped, invitation.ID).Error)
	assert.NotNil(t, stamped.RespondedAt)
}

func TestSubmitResponseTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil, testLogger())
	survey := seedSurvey(t, db, true)
	questions := seedQuestionSet(t, db, survey.ID)
	invitation := seedInvitation(t, db, survey.ID)

	require.NoError(t, svc.SubmitResponse(context.Background(), invitation.Token, submission(questions)))

	err := svc.SubmitResponse(context.Background(), invitation.Token, submission(questions))
	assert.True(t, errors.Is(err, models.ErrAlreadyResponded))

	// No duplicate answer rows either.
	var count int64
	require.NoError(t, db.Model(&models.Answer{}).Where("invitation_id = ?", invitation.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSubmitResponseUnknownToken(t *testing.T) {
	svc := NewResponseService(newTestDB(t), nil, testLogger())

	err := svc.SubmitResponse(context.Background(), "no-such-token", &SubmitResponseRequest{})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSubmitResponseAtomicOnBadValue(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil, testLogger())
	survey := seedSurvey(t, db, true)
	questions := seedQuestionSet(t, db, survey.ID)
	invitation := seedInvitation(t, db, survey.ID)

	req := submission(questions)
	outOfRange := decimal.RequireFromString("1.5")
	req.Answers[2].Scale = &outOfRange

	err := svc.SubmitResponse(context.Background(), invitation.Token, req)
	assert.True(t, models.IsValidation(err))

	// Nothing was committed: no answers and no response stamp.
	var count int64
	require.NoError(t, db.Model(&models.Answer{}).Where("invitation_id = ?", invitation.ID).Count(&count).Error)
	assert.Zero(t, count)

	var untouched models.Invitation
	require.NoError(t, db.First(&untouched, invitation.ID).Error)
	assert.Nil(t, untouched.RespondedAt)
}

func TestSubmitResponseRequiresEveryQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil, testLogger())
	survey := seedSurvey(t, db, true)
	questions := seedQuestionSet(t, db, survey.ID)
	invitation := seedInvitation(t, db, survey.ID)

	req := submission(questions)
	req.Answers = req.Answers[:2] // drop the scale answer

	err := svc.SubmitResponse(context.Background(), invitation.Token, req)
	assert.True(t, models.IsValidation(err))
}

func TestSubmitResponseRejectsForeignOption(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil, testLogger())
	survey := seedSurvey(t, db, true)
	questions := seedQuestionSet(t, db, survey.ID)
	invitation := seedInvitation(t, db, survey.ID)

	// An option that belongs to some other question.
	other := models.Option{QuestionID: questions[0].ID, Text: "smuggled"}
	require.NoError(t, db.Create(&other).Error)

	req := submission(questions)
	req.Answers[1].OptionID = &other.ID

	err := svc.SubmitResponse(context.Background(), invitation.Token, req)
	assert.True(t, models.IsValidation(err))
}

func TestSubmitResponseRejectsUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, nil, testLogger())
	survey := seedSurvey(t, db, true)
	questions := seedQuestionSet(t, db, survey.ID)
	invitation := seedInvitation(t, db, survey.ID)

	req := submission(questions)
	req.Answers = append(req.Answers, SubmittedAnswer{QuestionID: 9999, Text: "stray"})

	err := svc.SubmitResponse(context.Background(), invitation.Token, req)
	assert.True(t, models.IsValidation(err))
}
