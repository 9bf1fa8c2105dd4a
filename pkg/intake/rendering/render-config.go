package rendering

import (
	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

// Default numeric ranges per kind, applied when the catalog carries none.
const (
	DEFAULT_RATING_MIN = 0
	DEFAULT_RATING_MAX = 10
	DEFAULT_SCALE_MIN  = 1
	DEFAULT_SCALE_MAX  = 10
	DEFAULT_RANGE_MIN  = 0
	DEFAULT_RANGE_MAX  = 100

	DEFAULT_LONG_TEXT_ROWS = 4
	DEFAULT_MAX_FILES      = 5
)

// RenderConfig is the fully typed, per-question configuration handed to the
// rendering layer. Kind selects which of the variant fields is populated;
// the remaining variant fields stay nil.
type RenderConfig struct {
	ID          string             `json:"id"`
	Kind        string             `json:"kind"`
	Question    string             `json:"question"`
	Description string             `json:"description,omitempty"`
	Required    bool               `json:"required"`
	Value       *types.AnswerValue `json:"value,omitempty"`

	LongText     *LongTextConfig     `json:"longText,omitempty"`
	NumericRange *NumericRangeConfig `json:"numericRange,omitempty"`
	Choice       *ChoiceConfig       `json:"choice,omitempty"`
	FileUpload   *FileUploadConfig   `json:"fileUpload,omitempty"`
	Matrix       *MatrixConfig       `json:"matrix,omitempty"`
}

type LongTextConfig struct {
	Rows      int  `json:"rows"`
	MaxLength *int `json:"maxLength,omitempty"`
}

// NumericRangeConfig drives rating, scale and range inputs.
type NumericRangeConfig struct {
	MinValue float64 `json:"minValue"`
	MaxValue float64 `json:"maxValue"`
	MinLabel string  `json:"minLabel,omitempty"`
	MaxLabel string  `json:"maxLabel,omitempty"`
}

// ChoiceConfig drives single-choice, multiple-choice and dropdown inputs.
// MinSelections/MaxSelections are soft UI constraints for multi-select;
// submission-time validation only enforces required (at least one selection).
type ChoiceConfig struct {
	Options       []ChoiceOption `json:"options"`
	MinSelections *int           `json:"minSelections,omitempty"`
	MaxSelections *int           `json:"maxSelections,omitempty"`
}

type FileUploadConfig struct {
	MaxFiles int `json:"maxFiles"`
}

type MatrixConfig struct {
	Rows    []ChoiceOption `json:"rows"`
	Columns []ChoiceOption `json:"columns"`
}

// BuildRenderConfig derives the typed rendering configuration of a question.
// It is a total function: any malformed catalog record maps to a usable
// config (free text in the worst case), never an error. It runs per question
// on every page render and must stay pure.
func BuildRenderConfig(question types.Question, value *types.AnswerValue) RenderConfig {
	kind := MapQuestionKind(question.Type)
	rules := ParseValidationRules(question.ValidationRules)

	config := RenderConfig{
		ID:          question.ID,
		Kind:        kind,
		Question:    question.Text,
		Description: question.Description,
		Required:    question.Required,
		Value:       value,
	}

	switch kind {
	case types.QUESTION_KIND_LONG_TEXT:
		rows := DEFAULT_LONG_TEXT_ROWS
		if rules.Min != nil {
			rows = int(*rules.Min)
		}
		var maxLength *int
		if rules.Max != nil {
			length := int(*rules.Max)
			maxLength = &length
		}
		config.LongText = &LongTextConfig{
			Rows:      rows,
			MaxLength: maxLength,
		}
	case types.QUESTION_KIND_RATING:
		config.NumericRange = numericRangeConfig(rules, DEFAULT_RATING_MIN, DEFAULT_RATING_MAX)
	case types.QUESTION_KIND_SCALE:
		config.NumericRange = numericRangeConfig(rules, DEFAULT_SCALE_MIN, DEFAULT_SCALE_MAX)
	case types.QUESTION_KIND_RANGE:
		config.NumericRange = numericRangeConfig(rules, DEFAULT_RANGE_MIN, DEFAULT_RANGE_MAX)
	case types.QUESTION_KIND_SINGLE_CHOICE, types.QUESTION_KIND_DROPDOWN:
		config.Choice = &ChoiceConfig{
			Options: ParseOptions(question.Options),
		}
	case types.QUESTION_KIND_MULTIPLE_CHOICE:
		config.Choice = &ChoiceConfig{
			Options:       ParseOptions(question.Options),
			MinSelections: rules.MinSelections,
			MaxSelections: rules.MaxSelections,
		}
	case types.QUESTION_KIND_FILE_UPLOAD:
		maxFiles := DEFAULT_MAX_FILES
		if rules.MaxFiles != nil {
			maxFiles = *rules.MaxFiles
		}
		config.FileUpload = &FileUploadConfig{
			MaxFiles: maxFiles,
		}
	case types.QUESTION_KIND_MATRIX:
		config.Matrix = matrixConfig(question.Options)
	}

	return config
}

func numericRangeConfig(rules ValidationRules, defaultMin float64, defaultMax float64) *NumericRangeConfig {
	config := &NumericRangeConfig{
		MinValue: defaultMin,
		MaxValue: defaultMax,
	}
	// "min"/"max" and "minValue"/"maxValue" are both in use in seeded catalogs
	if rules.MinValue != nil {
		config.MinValue = *rules.MinValue
	} else if rules.Min != nil {
		config.MinValue = *rules.Min
	}
	if rules.MaxValue != nil {
		config.MaxValue = *rules.MaxValue
	} else if rules.Max != nil {
		config.MaxValue = *rules.Max
	}
	if rules.MinLabel != nil {
		config.MinLabel = *rules.MinLabel
	}
	if rules.MaxLabel != nil {
		config.MaxLabel = *rules.MaxLabel
	}
	return config
}

// matrixConfig reads the {rows, columns} options document of a matrix
// question. A malformed document yields empty rows/columns, the renderer
// shows nothing rather than failing.
func matrixConfig(rawOptions interface{}) *MatrixConfig {
	config := &MatrixConfig{
		Rows:    []ChoiceOption{},
		Columns: []ChoiceOption{},
	}
	doc := toStringMap(rawOptions)
	if doc == nil {
		return config
	}
	config.Rows = ParseOptions(doc["rows"])
	config.Columns = ParseOptions(doc["columns"])
	return config
}
