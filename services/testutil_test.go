package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"surveypro/models"
)

// newTestDB opens a private in-memory database with foreign keys enforced
// and the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Survey{},
		&models.Question{},
		&models.Option{},
		&models.Invitation{},
		&models.Answer{},
	))
	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedSurvey inserts a survey directly, bypassing service validation so
// tests can set up arbitrary states.
func seedSurvey(t *testing.T, db *gorm.DB, published bool) *models.Survey {
	t.Helper()

	survey := models.Survey{
		Title:       "Customer satisfaction",
		Description: "How did we do?",
		IsPublished: published,
		StartDate:   date(2024, time.March, 1),
		EndDate:     date(2024, time.March, 31),
	}
	require.NoError(t, db.Create(&survey).Error)
	return &survey
}

// seedQuestionSet inserts the standard three-question set: an open question,
// a multiple-choice question with two options and a scale question.
func seedQuestionSet(t *testing.T, db *gorm.DB, surveyID uint) []models.Question {
	t.Helper()

	questions := []models.Question{
		{SurveyID: surveyID, Number: 1, Title: "Tell us more", Type: models.QuestionOpen},
		{SurveyID: surveyID, Number: 2, Title: "Pick one", Type: models.QuestionMultipleChoice},
		{SurveyID: surveyID, Number: 3, Title: "Rate it", Type: models.QuestionScale},
	}
	for i := range questions {
		require.NoError(t, db.Create(&questions[i]).Error)
	}

	for _, text := range []string{"Optie A", "Optie B"} {
		require.NoError(t, db.Create(&models.Option{QuestionID: questions[1].ID, Text: text}).Error)
	}

	loaded := make([]models.Question, 0, len(questions))
	require.NoError(t, db.Preload("Options").Order("number").Where("survey_id = ?", surveyID).Find(&loaded).Error)
	return loaded
}

func seedInvitation(t *testing.T, db *gorm.DB, surveyID uint) *models.Invitation {
	t.Helper()

	invitation := models.Invitation{SurveyID: surveyID, Token: uuid.NewString()}
	require.NoError(t, db.Create(&invitation).Error)
	return &invitation
}
