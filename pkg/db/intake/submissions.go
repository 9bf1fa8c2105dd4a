package intake

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	intakeTypes "github.com/willem4130/thecareranchintake/pkg/intake/types"
)

var indexesForSubmissionsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "formKey", Value: 1},
			{Key: "userID", Value: 1},
		},
		Options: options.Index().SetName("formKey_userID_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("status_1"),
	},
	{
		Keys: bson.D{
			{Key: "submittedAt", Value: 1},
		},
		Options: options.Index().SetName("submittedAt_1"),
	},
}

func (dbService *IntakeDBService) CreateIndexesForSubmissionsCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionSubmissions(instanceID).Indexes().CreateMany(ctx, indexesForSubmissionsCollection)
	return err
}

// GetOrCreateSubmission returns the user's submission for the form, creating
// an in-progress one if none exists yet.
func (dbService *IntakeDBService) GetOrCreateSubmission(instanceID string, formKey string, userID string) (submission intakeTypes.Submission, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"formKey": formKey,
		"userID":  userID,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"formKey":   formKey,
			"userID":    userID,
			"status":    intakeTypes.SUBMISSION_STATUS_IN_PROGRESS,
			"startedAt": time.Now().Unix(),
		},
	}
	err = dbService.collectionSubmissions(instanceID).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&submission)
	return submission, err
}

func (dbService *IntakeDBService) GetSubmission(instanceID string, formKey string, userID string) (submission intakeTypes.Submission, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"formKey": formKey,
		"userID":  userID,
	}
	err = dbService.collectionSubmissions(instanceID).FindOne(ctx, filter).Decode(&submission)
	return submission, err
}

// UpdateSubmissionSavePoint records when and on which page the draft was
// last persisted.
func (dbService *IntakeDBService) UpdateSubmissionSavePoint(instanceID string, submissionID primitive.ObjectID, currentPageID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": submissionID}
	update := bson.M{
		"$set": bson.M{
			"lastSavedAt":   time.Now().Unix(),
			"currentPageID": currentPageID,
		},
	}
	_, err := dbService.collectionSubmissions(instanceID).UpdateOne(ctx, filter, update)
	return err
}

// MarkSubmissionSubmitted finalizes an in-progress submission. Submitting an
// already submitted record is a no-op, so retries after a reported failure
// are safe.
func (dbService *IntakeDBService) MarkSubmissionSubmitted(instanceID string, submissionID primitive.ObjectID) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"_id":    submissionID,
		"status": intakeTypes.SUBMISSION_STATUS_IN_PROGRESS,
	}
	update := bson.M{
		"$set": bson.M{
			"status":      intakeTypes.SUBMISSION_STATUS_SUBMITTED,
			"submittedAt": time.Now().Unix(),
		},
	}
	_, err := dbService.collectionSubmissions(instanceID).UpdateOne(ctx, filter, update)
	return err
}
