package services

import (
	"database/sql"
	"encoding/csv"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"surveypro/models"
)

type ResultsService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewResultsService(db *gorm.DB, log *zap.Logger) *ResultsService {
	return &ResultsService{db: db, log: log}
}

// ResultRow is one (question, answer) pair in answer-creation order.
type ResultRow struct {
	QuestionNumber int       `json:"question_number"`
	QuestionTitle  string    `json:"question_title"`
	QuestionType   string    `json:"question_type"`
	Answer         string    `json:"answer"`
	CreatedAt      time.Time `json:"created_at"`
}

type resultScan struct {
	Number     int
	Title      string
	Type       string
	Text       string
	Scale      sql.NullString
	OptionText sql.NullString
	CreatedAt  time.Time
}

// renderValue turns a scanned answer into its display string: raw text for
// open questions, option text (empty once the option is deleted) for multiple
// choice, the one-decimal value for scales.
func renderValue(r *resultScan) string {
	switch r.Type {
	case models.QuestionMultipleChoice:
		return r.OptionText.String
	case models.QuestionScale:
		if !r.Scale.Valid {
			return ""
		}
		if d, err := decimal.NewFromString(r.Scale.String); err == nil {
			return d.StringFixed(1)
		}
		return r.Scale.String
	default:
		return r.Text
	}
}

func (s *ResultsService) resultRows(surveyID uint) (*sql.Rows, error) {
	return s.db.Model(&models.Answer{}).
		Select("questions.number, questions.title, questions.type, answers.text, answers.scale, options.text, answers.created_at").
		Joins("JOIN questions ON questions.id = answers.question_id").
		Joins("JOIN invitations ON invitations.id = answers.invitation_id").
		Joins("LEFT JOIN options ON options.id = answers.option_id").
		Where("invitations.survey_id = ?", surveyID).
		Order("answers.id").
		Rows()
}

// Aggregate returns all (question, answer) pairs for the survey's
// invitations, for the human-readable results view.
func (s *ResultsService) Aggregate(surveyID uint) ([]ResultRow, error) {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return nil, err
	}

	rows, err := s.resultRows(surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []ResultRow{}
	for rows.Next() {
		var r resultScan
		if err := rows.Scan(&r.Number, &r.Title, &r.Type, &r.Text, &r.Scale, &r.OptionText, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, ResultRow{
			QuestionNumber: r.Number,
			QuestionTitle:  r.Title,
			QuestionType:   r.Type,
			Answer:         renderValue(&r),
			CreatedAt:      r.CreatedAt,
		})
	}
	return results, rows.Err()
}

// StreamCSV writes `question,answer,timestamp` rows straight from the
// database cursor to w, one flush per row, without materializing the result
// set. Values are quoted by encoding/csv, so embedded commas and quotes are
// safe.
func (s *ResultsService) StreamCSV(surveyID uint, w io.Writer) error {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return err
	}

	rows, err := s.resultRows(surveyID)
	if err != nil {
		return err
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"question", "answer", "timestamp"}); err != nil {
		return err
	}

	for rows.Next() {
		var r resultScan
		if err := rows.Scan(&r.Number, &r.Title, &r.Type, &r.Text, &r.Scale, &r.OptionText, &r.CreatedAt); err != nil {
			return err
		}
		rec := []string{r.Title, renderValue(&r), r.CreatedAt.UTC().Format(time.RFC3339)}
		if err := cw.Write(rec); err != nil {
			return err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
