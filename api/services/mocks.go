package services

import (
	"context"

	"github.com/EO-DataHub/eodhp-user-services/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserDB struct {
	mock.Mock
}

func (m *MockUserDB) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockUserDB) GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserDB) CreateUser(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	args := m.Called(ctx, user)
	res, _ := args.Get(0).(*models.InsertResult)
	return res, args.Error(1)
}

func (m *MockUserDB) ReplaceUser(ctx context.Context, userID primitive.ObjectID, user *models.User) (*models.UpdateResult, error) {
	args := m.Called(ctx, userID, user)
	res, _ := args.Get(0).(*models.UpdateResult)
	return res, args.Error(1)
}

func (m *MockUserDB) DeleteUser(ctx context.Context, userID primitive.ObjectID) (*models.DeleteResult, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*models.DeleteResult)
	return res, args.Error(1)
}
