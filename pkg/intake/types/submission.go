package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	SUBMISSION_STATUS_IN_PROGRESS = "IN_PROGRESS"
	SUBMISSION_STATUS_SUBMITTED   = "SUBMITTED"
)

// Submission tracks one user's pass through a form. There is at most one
// submission per (formKey, userID).
type Submission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FormKey       string             `bson:"formKey" json:"formKey"`
	UserID        string             `bson:"userID" json:"userId"`
	Status        string             `bson:"status" json:"status"`
	CurrentPageID string             `bson:"currentPageID,omitempty" json:"currentPageId,omitempty"`
	StartedAt     int64              `bson:"startedAt" json:"startedAt"`
	LastSavedAt   int64              `bson:"lastSavedAt,omitempty" json:"lastSavedAt,omitempty"`
	SubmittedAt   int64              `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
}

type SubmissionProgress struct {
	Answered   int `json:"answered"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
