package intake

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	intakeTypes "github.com/willem4130/thecareranchintake/pkg/intake/types"
)

var indexesForFormsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "key", Value: 1},
		},
		Options: options.Index().SetName("key_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("status_1"),
	},
}

func (dbService *IntakeDBService) CreateIndexesForFormsCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionForms(instanceID).Indexes().CreateMany(ctx, indexesForFormsCollection)
	return err
}

// GetActiveForm returns the single active questionnaire of the instance.
func (dbService *IntakeDBService) GetActiveForm(instanceID string) (form intakeTypes.Form, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"status": intakeTypes.FORM_STATUS_ACTIVE}
	err = dbService.collectionForms(instanceID).FindOne(ctx, filter).Decode(&form)
	return form, err
}

func (dbService *IntakeDBService) GetFormByKey(instanceID string, formKey string) (form intakeTypes.Form, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"key": formKey}
	err = dbService.collectionForms(instanceID).FindOne(ctx, filter).Decode(&form)
	return form, err
}

// SaveForm upserts a form catalog document by key, used by the seeding job.
func (dbService *IntakeDBService) SaveForm(instanceID string, form intakeTypes.Form) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if form.Key == "" {
		return errors.New("form key must not be empty")
	}

	now := time.Now().Unix()
	if form.CreatedAt == 0 {
		form.CreatedAt = now
	}
	form.UpdatedAt = now

	filter := bson.M{"key": form.Key}
	upsert := true
	_, err := dbService.collectionForms(instanceID).ReplaceOne(ctx, filter, form, &options.ReplaceOptions{
		Upsert: &upsert,
	})
	return err
}

// MarkOtherFormsInactive demotes every form except the given one, to keep
// the single-active-form assumption true after seeding.
func (dbService *IntakeDBService) MarkOtherFormsInactive(instanceID string, activeFormKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"key": bson.M{"$ne": activeFormKey}}
	update := bson.M{"$set": bson.M{"status": intakeTypes.FORM_STATUS_INACTIVE}}
	_, err := dbService.collectionForms(instanceID).UpdateMany(ctx, filter, update)
	return err
}
