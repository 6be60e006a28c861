package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidUserID = errors.New("invalid user id")

// User is a document in the users collection. Field values are opaque and
// stored as given, with absent values kept as null. Keys outside the known
// fields are collected in Extra when a document is read back.
type User struct {
	ID            primitive.ObjectID     `json:"_id" bson:"_id,omitempty"`
	FirstName     interface{}            `json:"firstName" bson:"firstName"`
	LastName      interface{}            `json:"lastName" bson:"lastName"`
	Email         interface{}            `json:"email" bson:"email"`
	FavoriteColor interface{}            `json:"favoriteColor" bson:"favoriteColor"`
	Birthday      interface{}            `json:"birthday" bson:"birthday"`
	Extra         map[string]interface{} `json:"-" bson:",inline"`
}

// MarshalJSON writes the document as stored, including any keys in Extra.
func (u User) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(u.Extra)+6)
	for k, v := range u.Extra {
		doc[k] = v
	}
	doc["_id"] = u.ID
	doc["firstName"] = u.FirstName
	doc["lastName"] = u.LastName
	doc["email"] = u.Email
	doc["favoriteColor"] = u.FavoriteColor
	doc["birthday"] = u.Birthday
	return json.Marshal(doc)
}

// UserRequest is the payload accepted when creating or replacing a user.
type UserRequest struct {
	FirstName     interface{} `json:"firstName" example:"Jane"`
	LastName      interface{} `json:"lastName" example:"Doe"`
	Email         interface{} `json:"email" example:"jane@doe.com"`
	FavoriteColor interface{} `json:"favoriteColor" example:"blue"`
	Birthday      interface{} `json:"birthday" example:"1990-05-05"`
}

// ToUser builds a fresh document from the request. The ID is left unset so
// the store assigns it on insert and keeps it on replace.
func (r UserRequest) ToUser() *User {
	return &User{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		FavoriteColor: r.FavoriteColor,
		Birthday:      r.Birthday,
	}
}

// ParseUserID converts the external string form of a user ID into an
// ObjectID. Anything other than 24 hex characters is rejected.
func ParseUserID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q: %v", ErrInvalidUserID, s, err)
	}
	return id, nil
}
