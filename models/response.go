package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Message is the JSON error body returned for failed requests.
type Message struct {
	Message string `json:"message"`
}

// InsertResult reports the outcome of inserting a user.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// UpdateResult reports how many documents a replacement matched and modified.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
