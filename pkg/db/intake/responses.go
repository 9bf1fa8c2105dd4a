package intake

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	intakeTypes "github.com/willem4130/thecareranchintake/pkg/intake/types"
)

var indexesForResponsesCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "submissionID", Value: 1},
			{Key: "questionID", Value: 1},
		},
		Options: options.Index().SetName("submissionID_questionID_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "submissionID", Value: 1},
		},
		Options: options.Index().SetName("submissionID_1"),
	},
}

func (dbService *IntakeDBService) CreateIndexesForResponsesCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionResponses(instanceID).Indexes().CreateMany(ctx, indexesForResponsesCollection)
	return err
}

// UpsertResponse writes one answer record. The whole values document is
// replaced, including nil fields, so a previous answer of a different kind
// never leaves stale fields behind.
func (dbService *IntakeDBService) UpsertResponse(instanceID string, submissionID primitive.ObjectID, questionID string, values intakeTypes.ResponseValues) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"submissionID": submissionID,
		"questionID":   questionID,
	}
	update := bson.M{
		"$set": bson.M{
			"values":    values,
			"updatedAt": time.Now().Unix(),
		},
		"$setOnInsert": bson.M{
			"submissionID": submissionID,
			"questionID":   questionID,
		},
	}
	_, err := dbService.collectionResponses(instanceID).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetResponsesForQuestions loads the stored answer records of a submission
// restricted to the given question IDs (one page worth of questions).
func (dbService *IntakeDBService) GetResponsesForQuestions(instanceID string, submissionID primitive.ObjectID, questionIDs []string) (responses []intakeTypes.Response, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"submissionID": submissionID,
		"questionID":   bson.M{"$in": questionIDs},
	}
	cursor, err := dbService.collectionResponses(instanceID).Find(ctx, filter)
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, err
}

func (dbService *IntakeDBService) GetAllResponses(instanceID string, submissionID primitive.ObjectID) (responses []intakeTypes.Response, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"submissionID": submissionID}
	cursor, err := dbService.collectionResponses(instanceID).Find(ctx, filter)
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, err
}

// CountAnsweredResponses counts the records of a submission that hold a
// populated value, used for the progress computation.
func (dbService *IntakeDBService) CountAnsweredResponses(instanceID string, submissionID primitive.ObjectID) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"submissionID": submissionID,
		"$or": []bson.M{
			{"values.textValue": bson.M{"$ne": nil}},
			{"values.numberValue": bson.M{"$ne": nil}},
			{"values.booleanValue": bson.M{"$ne": nil}},
			{"values.dateValue": bson.M{"$ne": nil}},
			{"values.jsonValue": bson.M{"$ne": nil}},
			{"values.fileUrls": bson.M{"$ne": nil}},
		},
	}
	return dbService.collectionResponses(instanceID).CountDocuments(ctx, filter)
}
