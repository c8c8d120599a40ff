package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return &d
}

func TestValidateAnswerOpen(t *testing.T) {
	q := Question{Number: 1, Type: QuestionOpen}

	assert.Error(t, ValidateAnswer(&Answer{}, &q))
	assert.NoError(t, ValidateAnswer(&Answer{Text: "hello"}, &q))
	assert.Error(t, ValidateAnswer(&Answer{Text: strings.Repeat("x", MaxAnswerTextLength+1)}, &q))
	assert.NoError(t, ValidateAnswer(&Answer{Text: strings.Repeat("x", MaxAnswerTextLength)}, &q))
}

func TestValidateAnswerMultipleChoice(t *testing.T) {
	q := Question{Number: 2, Type: QuestionMultipleChoice}

	assert.Error(t, ValidateAnswer(&Answer{}, &q))

	optionID := uint(7)
	assert.NoError(t, ValidateAnswer(&Answer{OptionID: &optionID}, &q))
}

func TestValidateAnswerScale(t *testing.T) {
	q := Question{Number: 3, Type: QuestionScale}

	tests := []struct {
		name    string
		scale   *decimal.Decimal
		wantErr bool
	}{
		{"nil", nil, true},
		{"below range", dec(t, "-0.1"), true},
		{"above range", dec(t, "1.1"), true},
		{"too precise", dec(t, "0.75"), true},
		{"zero", dec(t, "0.0"), false},
		{"one", dec(t, "1.0"), false},
		{"mid", dec(t, "0.7"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswer(&Answer{Scale: tt.scale}, &q)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAnswerUnknownType(t *testing.T) {
	q := Question{Number: 4, Type: "riddle"}
	assert.Error(t, ValidateAnswer(&Answer{Text: "sphinx"}, &q))
}

func TestValidateAnswerErrorsAreValidationErrors(t *testing.T) {
	q := Question{Number: 1, Type: QuestionOpen}
	err := ValidateAnswer(&Answer{}, &q)
	assert.True(t, IsValidation(err))
}

func TestSurveyValidateDates(t *testing.T) {
	day := 24 * time.Hour
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	s := Survey{StartDate: start, EndDate: start.Add(-day)}
	assert.Error(t, s.ValidateDates())

	s.EndDate = start
	assert.NoError(t, s.ValidateDates())

	s.EndDate = start.Add(day)
	assert.NoError(t, s.ValidateDates())
}
