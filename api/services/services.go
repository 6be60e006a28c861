package services

import (
	"context"

	"github.com/EO-DataHub/eodhp-user-services/internal/appconfig"
	"github.com/EO-DataHub/eodhp-user-services/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the set of store operations the user handlers depend on.
type UserStore interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.InsertResult, error)
	ReplaceUser(ctx context.Context, userID primitive.ObjectID, user *models.User) (*models.UpdateResult, error)
	DeleteUser(ctx context.Context, userID primitive.ObjectID) (*models.DeleteResult, error)
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config *appconfig.Config
	DB     UserStore
}
