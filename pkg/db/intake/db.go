package intake

import (
	"context"
	"log/slog"
	"time"

	"github.com/willem4130/thecareranchintake/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_FORMS       = "forms"
	COLLECTION_NAME_SUBMISSIONS = "formSubmissions"
	COLLECTION_NAME_RESPONSES   = "responses"
)

type IntakeDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
	InstanceIDs     []string
}

func NewIntakeDBService(configs db.DBConfig) (*IntakeDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	intakeDBSc := &IntakeDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
		InstanceIDs:     configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := intakeDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for intake DB", slog.String("error", err.Error()))
		}
	}

	return intakeDBSc, nil
}

func (dbService *IntakeDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_intakeDB"
}

func (dbService *IntakeDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *IntakeDBService) collectionForms(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_FORMS)
}

func (dbService *IntakeDBService) collectionSubmissions(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_SUBMISSIONS)
}

func (dbService *IntakeDBService) collectionResponses(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_RESPONSES)
}

func (dbService *IntakeDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for intake DB")

	for _, instanceID := range dbService.InstanceIDs {
		if err := dbService.CreateIndexesForFormsCollection(instanceID); err != nil {
			slog.Error("Error creating indexes for forms", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
		if err := dbService.CreateIndexesForSubmissionsCollection(instanceID); err != nil {
			slog.Error("Error creating indexes for submissions", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
		if err := dbService.CreateIndexesForResponsesCollection(instanceID); err != nil {
			slog.Error("Error creating indexes for responses", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
	}
	return nil
}
