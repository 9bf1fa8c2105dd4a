package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	FORM_STATUS_ACTIVE   = "active"
	FORM_STATUS_INACTIVE = "inactive"
)

// Form is the admin-seeded questionnaire catalog. Pages, sections and
// questions are embedded so one document describes the whole form.
type Form struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key         string             `bson:"key" json:"key"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Pages       []FormPage         `bson:"pages" json:"pages"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   int64              `bson:"updatedAt" json:"updatedAt"`
}

type FormPage struct {
	ID          string        `bson:"id" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Order       int32         `bson:"order" json:"order"`
	Sections    []FormSection `bson:"sections" json:"sections"`
}

type FormSection struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Order       int32      `bson:"order" json:"order"`
	Questions   []Question `bson:"questions" json:"questions"`
}

// Question is the stored, loosely typed question definition. Options and
// ValidationRules keep whatever shape the seeding tool wrote; interpretation
// happens in the rendering package together with the question type.
type Question struct {
	ID              string      `bson:"id" json:"id"`
	Text            string      `bson:"text" json:"text"`
	Description     string      `bson:"description,omitempty" json:"description,omitempty"`
	Type            string      `bson:"type" json:"type"`
	Required        bool        `bson:"required" json:"required"`
	Order           int32       `bson:"order" json:"order"`
	Options         interface{} `bson:"options,omitempty" json:"options,omitempty"`
	ValidationRules interface{} `bson:"validationRules,omitempty" json:"validationRules,omitempty"`
}

// Questions returns the questions of a page flattened over its sections,
// in section then question order.
func (p FormPage) AllQuestions() []Question {
	questions := []Question{}
	for _, section := range p.Sections {
		questions = append(questions, section.Questions...)
	}
	return questions
}

func (f Form) GetPageByOrder(order int32) (FormPage, bool) {
	for _, page := range f.Pages {
		if page.Order == order {
			return page, true
		}
	}
	return FormPage{}, false
}

func (f Form) GetPageByID(pageID string) (FormPage, bool) {
	for _, page := range f.Pages {
		if page.ID == pageID {
			return page, true
		}
	}
	return FormPage{}, false
}

func (f Form) QuestionCount() int {
	count := 0
	for _, page := range f.Pages {
		for _, section := range page.Sections {
			count += len(section.Questions)
		}
	}
	return count
}
