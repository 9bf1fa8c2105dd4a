package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// ResponseValues is the persisted representation of one answer. Exactly one
// field is populated per answer; the bson tags deliberately omit "omitempty"
// so that writing a record explicitly nulls the fields of any previous answer
// of a different kind for the same question.
type ResponseValues struct {
	TextValue    *string     `bson:"textValue" json:"textValue,omitempty"`
	NumberValue  *float64    `bson:"numberValue" json:"numberValue,omitempty"`
	BooleanValue *bool       `bson:"booleanValue" json:"booleanValue,omitempty"`
	DateValue    *string     `bson:"dateValue" json:"dateValue,omitempty"`
	JSONValue    interface{} `bson:"jsonValue" json:"jsonValue,omitempty"`
	FileURLs     []string    `bson:"fileUrls" json:"fileUrls,omitempty"`
}

func (rv ResponseValues) IsEmpty() bool {
	return rv.TextValue == nil &&
		rv.NumberValue == nil &&
		rv.BooleanValue == nil &&
		rv.DateValue == nil &&
		rv.JSONValue == nil &&
		rv.FileURLs == nil
}

// Response is one stored answer record, unique per (submissionID, questionID).
type Response struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SubmissionID primitive.ObjectID `bson:"submissionID" json:"submissionId"`
	QuestionID   string             `bson:"questionID" json:"questionId"`
	Values       ResponseValues     `bson:"values" json:"values"`
	UpdatedAt    int64              `bson:"updatedAt" json:"updatedAt"`
}
