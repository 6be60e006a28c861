package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/EO-DataHub/eodhp-user-services/internal/events"
	"github.com/EO-DataHub/eodhp-user-services/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetUsers retrieves every user in the order the store returns them.
func (w *UserDB) GetUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := w.Collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}

	return users, nil
}

// GetUser retrieves a single user. A missing user is reported as nil, nil.
func (w *UserDB) GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := w.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// User does not exist, return nil user and nil error
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// CreateUser inserts a new user and lets the store assign its ID.
func (w *UserDB) CreateUser(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	res, err := w.Collection.InsertOne(ctx, user)
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return &models.InsertResult{Acknowledged: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	w.notify(id.Hex(), events.ActionCreate)

	return &models.InsertResult{
		Acknowledged: true,
		InsertedID:   id,
	}, nil
}

// ReplaceUser overwrites the whole document at userID with user.
func (w *UserDB) ReplaceUser(ctx context.Context, userID primitive.ObjectID, user *models.User) (*models.UpdateResult, error) {
	res, err := w.Collection.ReplaceOne(ctx, bson.M{"_id": userID}, user)
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return &models.UpdateResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error replacing user: %w", err)
	}

	if res.ModifiedCount > 0 {
		w.notify(userID.Hex(), events.ActionUpdate)
	}

	return &models.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteUser removes the user with the given ID.
func (w *UserDB) DeleteUser(ctx context.Context, userID primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := w.Collection.DeleteOne(ctx, bson.M{"_id": userID})
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return &models.DeleteResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error deleting user: %w", err)
	}

	if res.DeletedCount > 0 {
		w.notify(userID.Hex(), events.ActionDelete)
	}

	return &models.DeleteResult{DeletedCount: res.DeletedCount}, nil
}
