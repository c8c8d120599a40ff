// Package forms builds the per-survey response field set. Each question maps
// to exactly one field descriptor whose shape follows the question's type
// tag; the descriptors are served to respondents and reused to re-validate
// submitted values before anything is persisted.
package forms

import (
	"github.com/shopspring/decimal"

	"surveypro/models"
)

type FieldKind string

const (
	FieldText   FieldKind = "text"   // multi-line text box
	FieldChoice FieldKind = "choice" // single-select
	FieldScale  FieldKind = "scale"  // bounded decimal
)

type Choice struct {
	OptionID uint   `json:"option_id"`
	Text     string `json:"text"`
}

// Field describes one validated input. MaxLength applies to text fields,
// Choices to choice fields, Min/Max/Step to scale fields.
type Field struct {
	QuestionID uint             `json:"question_id"`
	Kind       FieldKind        `json:"kind"`
	Label      string           `json:"label"`
	MaxLength  int              `json:"max_length,omitempty"`
	Choices    []Choice         `json:"choices,omitempty"`
	Min        *decimal.Decimal `json:"min,omitempty"`
	Max        *decimal.Decimal `json:"max,omitempty"`
	Step       *decimal.Decimal `json:"step,omitempty"`
}

// Value is one submitted input, keyed to its field by question ID.
type Value struct {
	Text     string           `json:"text"`
	OptionID *uint            `json:"option_id"`
	Scale    *decimal.Decimal `json:"scale"`
}

var (
	scaleMin  = decimal.NewFromInt(0)
	scaleMax  = decimal.NewFromInt(1)
	scaleStep = decimal.New(1, -1) // 0.1
)

// Build maps questions to field descriptors, one per question, preserving the
// questions' stored order. Choices keep the options' creation order. Pure
// mapping, no persistence.
func Build(questions []models.Question) []Field {
	fields := make([]Field, 0, len(questions))
	for _, q := range questions {
		f := Field{QuestionID: q.ID, Label: q.Title}
		switch q.Type {
		case models.QuestionMultipleChoice:
			f.Kind = FieldChoice
			f.Choices = make([]Choice, 0, len(q.Options))
			for _, opt := range q.Options {
				f.Choices = append(f.Choices, Choice{OptionID: opt.ID, Text: opt.Text})
			}
		case models.QuestionScale:
			f.Kind = FieldScale
			f.Min = &scaleMin
			f.Max = &scaleMax
			f.Step = &scaleStep
		default:
			f.Kind = FieldText
			f.MaxLength = models.MaxAnswerTextLength
		}
		fields = append(fields, f)
	}
	return fields
}

// Check re-validates a submitted value against the field's domain.
func (f *Field) Check(v Value) error {
	switch f.Kind {
	case FieldText:
		if v.Text == "" {
			return models.NewValidationError("%s: an answer is required", f.Label)
		}
		if len(v.Text) > f.MaxLength {
			return models.NewValidationError("%s: answer exceeds %d characters", f.Label, f.MaxLength)
		}
	case FieldChoice:
		if v.OptionID == nil {
			return models.NewValidationError("%s: choose one option", f.Label)
		}
		for _, c := range f.Choices {
			if c.OptionID == *v.OptionID {
				return nil
			}
		}
		return models.NewValidationError("%s: option does not belong to this question", f.Label)
	case FieldScale:
		if v.Scale == nil {
			return models.NewValidationError("%s: a scale value is required", f.Label)
		}
		if v.Scale.LessThan(*f.Min) || v.Scale.GreaterThan(*f.Max) {
			return models.NewValidationError("%s: value must be between %s and %s", f.Label, f.Min, f.Max)
		}
		if !v.Scale.Div(*f.Step).IsInteger() {
			return models.NewValidationError("%s: value must be a multiple of %s", f.Label, f.Step)
		}
	}
	return nil
}
