package intakeuser

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	USER_ROLE_PARTICIPANT = "PARTICIPANT"
	USER_ROLE_ADMIN       = "ADMIN"
)

// User is an intake participant, provisioned on the first verified
// magic-link sign-in.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email           string             `bson:"email" json:"email"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	Role            string             `bson:"role" json:"role"`
	EmailVerifiedAt int64              `bson:"emailVerifiedAt,omitempty" json:"emailVerifiedAt,omitempty"`
	CreatedAt       int64              `bson:"createdAt" json:"createdAt"`
	LastLoginAt     int64              `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
}

var indexesForUsersCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "email", Value: 1},
		},
		Options: options.Index().SetName("email_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("createdAt_1"),
	},
}

func (dbService *IntakeUserDBService) CreateIndexesForUsersCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionUsers(instanceID).Indexes().CreateMany(ctx, indexesForUsersCollection)
	return err
}

func (dbService *IntakeUserDBService) GetUserByEmail(instanceID string, email string) (user User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"email": email}
	err = dbService.collectionUsers(instanceID).FindOne(ctx, filter).Decode(&user)
	return user, err
}

func (dbService *IntakeUserDBService) GetUserByID(instanceID string, userID string) (user User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return user, err
	}

	filter := bson.M{"_id": _id}
	err = dbService.collectionUsers(instanceID).FindOne(ctx, filter).Decode(&user)
	return user, err
}

// ProvisionUserByEmail returns the user for the email address, creating a
// participant record on first sign-in. Also stamps the verification and
// login timestamps.
func (dbService *IntakeUserDBService) ProvisionUserByEmail(instanceID string, email string) (user User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()
	filter := bson.M{"email": email}
	update := bson.M{
		"$set": bson.M{
			"emailVerifiedAt": now,
			"lastLoginAt":     now,
		},
		"$setOnInsert": bson.M{
			"email":     email,
			"role":      USER_ROLE_PARTICIPANT,
			"createdAt": now,
		},
	}
	err = dbService.collectionUsers(instanceID).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&user)
	return user, err
}

// EnsureAdminUser creates or updates an admin account, used by the seeding
// job. Existing records keep their timestamps but get the admin role.
func (dbService *IntakeUserDBService) EnsureAdminUser(instanceID string, email string, name string) (user User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()
	filter := bson.M{"email": email}
	update := bson.M{
		"$set": bson.M{
			"name": name,
			"role": USER_ROLE_ADMIN,
		},
		"$setOnInsert": bson.M{
			"email":           email,
			"emailVerifiedAt": now,
			"createdAt":       now,
		},
	}
	err = dbService.collectionUsers(instanceID).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&user)
	return user, err
}
