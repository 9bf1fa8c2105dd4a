package types

// Answer value kinds.
const (
	ANSWER_KIND_TEXT       = "text"
	ANSWER_KIND_NUMBER     = "number"
	ANSWER_KIND_BOOLEAN    = "boolean"
	ANSWER_KIND_DATE       = "date"
	ANSWER_KIND_STRUCTURED = "structured"
	ANSWER_KIND_FILE_LIST  = "fileList"
)

// AnswerValue is the UI-facing answer of a single question. At most one
// variant is populated; a nil *AnswerValue means the question is unanswered.
// An empty Text string is a valid answer and distinct from unanswered.
type AnswerValue struct {
	Text    *string  `bson:"text,omitempty" json:"text,omitempty"`
	Number  *float64 `bson:"number,omitempty" json:"number,omitempty"`
	Boolean *bool    `bson:"boolean,omitempty" json:"boolean,omitempty"`
	// canonical calendar date (YYYY-MM-DD), no time of day, no zone
	Date       *string     `bson:"date,omitempty" json:"date,omitempty"`
	Structured interface{} `bson:"structured,omitempty" json:"structured,omitempty"`
	FileList   []string    `bson:"fileList,omitempty" json:"fileList,omitempty"`
}

func TextAnswer(v string) *AnswerValue {
	return &AnswerValue{Text: &v}
}

func NumberAnswer(v float64) *AnswerValue {
	return &AnswerValue{Number: &v}
}

func BooleanAnswer(v bool) *AnswerValue {
	return &AnswerValue{Boolean: &v}
}

func DateAnswer(v string) *AnswerValue {
	return &AnswerValue{Date: &v}
}

func StructuredAnswer(v interface{}) *AnswerValue {
	return &AnswerValue{Structured: v}
}

func FileListAnswer(refs []string) *AnswerValue {
	return &AnswerValue{FileList: refs}
}

// Kind reports which variant is populated.
func (v *AnswerValue) Kind() string {
	if v == nil {
		return ""
	}
	switch {
	case v.Text != nil:
		return ANSWER_KIND_TEXT
	case v.Number != nil:
		return ANSWER_KIND_NUMBER
	case v.Boolean != nil:
		return ANSWER_KIND_BOOLEAN
	case v.Date != nil:
		return ANSWER_KIND_DATE
	case v.Structured != nil:
		return ANSWER_KIND_STRUCTURED
	case v.FileList != nil:
		return ANSWER_KIND_FILE_LIST
	}
	return ""
}

func (v *AnswerValue) IsAnswered() bool {
	return v.Kind() != ""
}

// DraftState is the page scoped mapping of question ID to current answer.
// The persisted store stays the durable source of truth; a draft is advisory
// and rebuilt from persisted responses whenever a page is opened.
type DraftState map[string]*AnswerValue

func (d DraftState) Clone() DraftState {
	copied := make(DraftState, len(d))
	for questionID, value := range d {
		copied[questionID] = value
	}
	return copied
}
