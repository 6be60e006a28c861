package db

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/EO-DataHub/eodhp-user-services/internal/appconfig"
	"github.com/EO-DataHub/eodhp-user-services/internal/events"
	"github.com/EO-DataHub/eodhp-user-services/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recordingNotifier implements the Notifier interface for testing
type recordingNotifier struct {
	mu     sync.Mutex
	events []events.UserEvent
}

func (n *recordingNotifier) Notify(event events.UserEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) Close() {}

func (n *recordingNotifier) actions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, e := range n.events {
		out = append(out, e.Action)
	}
	return out
}

// Helper function to setup a MongoDB container using testcontainers
func setupMongoContainer(t *testing.T) (string, func()) {
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("could not start container: %s", err)
	}

	host, err := mongoC.Host(ctx)
	require.NoError(t, err)
	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	return uri, func() {
		if err := mongoC.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
}

func newTestUserDB(t *testing.T, uri, collection string, notifier events.Notifier) *UserDB {
	t.Helper()
	logger := zerolog.Nop()
	userDB, err := NewUserDB(context.Background(), appconfig.DatabaseConfig{
		URI:        uri,
		Name:       "users_test",
		Collection: collection,
		Timeout:    10 * time.Second,
	}, notifier, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = userDB.Client.Disconnect(context.Background()) })
	return userDB
}

func TestUserDB(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MongoDB integration tests in short mode")
	}

	uri, teardown := setupMongoContainer(t)
	defer teardown()

	ctx := context.Background()

	t.Run("InitCollection is idempotent", func(t *testing.T) {
		userDB := newTestUserDB(t, uri, "init", nil)
		require.NoError(t, userDB.InitCollection(ctx))
		require.NoError(t, userDB.InitCollection(ctx))

		names, err := userDB.Collection.Database().ListCollectionNames(ctx, map[string]string{"name": "init"})
		require.NoError(t, err)
		assert.Equal(t, []string{"init"}, names)
	})

	t.Run("GetUsers on empty collection", func(t *testing.T) {
		userDB := newTestUserDB(t, uri, "empty", nil)

		users, err := userDB.GetUsers(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Len(t, users, 0)
	})

	t.Run("create then get round trip", func(t *testing.T) {
		notifier := &recordingNotifier{}
		userDB := newTestUserDB(t, uri, "roundtrip", notifier)

		res, err := userDB.CreateUser(ctx, &models.User{
			FirstName:     "A",
			LastName:      "B",
			Email:         "a@b.com",
			FavoriteColor: "red",
			Birthday:      "2000-01-01",
		})
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
		assert.False(t, res.InsertedID.IsZero())

		user, err := userDB.GetUser(ctx, res.InsertedID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, res.InsertedID, user.ID)
		assert.Equal(t, "A", user.FirstName)
		assert.Equal(t, "B", user.LastName)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Equal(t, "red", user.FavoriteColor)
		assert.Equal(t, "2000-01-01", user.Birthday)

		assert.Equal(t, []string{events.ActionCreate}, notifier.actions())
	})

	t.Run("GetUser missing returns nil", func(t *testing.T) {
		userDB := newTestUserDB(t, uri, "missing", nil)

		id, err := models.ParseUserID("64b7f0c2a1b2c3d4e5f60718")
		require.NoError(t, err)

		user, err := userDB.GetUser(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetUsers after two creates", func(t *testing.T) {
		userDB := newTestUserDB(t, uri, "list", nil)

		for _, name := range []string{"Jane", "John"} {
			_, err := userDB.CreateUser(ctx, &models.User{FirstName: name})
			require.NoError(t, err)
		}

		users, err := userDB.GetUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("reads return stored documents as is", func(t *testing.T) {
		userDB := newTestUserDB(t, uri, "opaque", nil)

		res, err := userDB.Collection.InsertOne(ctx, bson.D{
			{Key: "firstName", Value: "A"},
			{Key: "birthday", Value: int32(20000101)},
			{Key: "favoriteColor", Value: true},
			{Key: "nickname", Value: "Al"},
			{Key: "address", Value: bson.D{{Key: "city", Value: "Oxford"}}},
		})
		require.NoError(t, err)
		id := res.InsertedID.(primitive.ObjectID)

		users, err := userDB.GetUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, int32(20000101), users[0].Birthday)

		user, err := userDB.GetUser(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "A", user.FirstName)
		assert.Equal(t, true, user.FavoriteColor)
		assert.Nil(t, user.Email)
		assert.Equal(t, "Al", user.Extra["nickname"])
		assert.Equal(t, primitive.M{"city": "Oxford"}, user.Extra["address"])
	})

	t.Run("non-string values are stored", func(t *testing.T) {
		userDB := newTestUserDB(t, uri, "values", nil)

		created, err := userDB.CreateUser(ctx, &models.User{
			Birthday:      float64(20000101),
			FavoriteColor: false,
			Email:         map[string]interface{}{"work": "a@b.com"},
		})
		require.NoError(t, err)

		user, err := userDB.GetUser(ctx, created.InsertedID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, float64(20000101), user.Birthday)
		assert.Equal(t, false, user.FavoriteColor)
		assert.Equal(t, primitive.M{"work": "a@b.com"}, user.Email)
		assert.Empty(t, user.Extra)
	})

	t.Run("ReplaceUser is a full replace", func(t *testing.T) {
		notifier := &recordingNotifier{}
		userDB := newTestUserDB(t, uri, "replace", notifier)

		created, err := userDB.CreateUser(ctx, &models.User{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@doe.com",
		})
		require.NoError(t, err)

		res, err := userDB.ReplaceUser(ctx, created.InsertedID, &models.User{FirstName: "Janet"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(1), res.ModifiedCount)

		user, err := userDB.GetUser(ctx, created.InsertedID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Janet", user.FirstName)
		assert.Nil(t, user.LastName)
		assert.Nil(t, user.Email)

		// Replacing with identical content modifies nothing
		res, err = userDB.ReplaceUser(ctx, created.InsertedID, &models.User{FirstName: "Janet"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(0), res.ModifiedCount)

		assert.Equal(t, []string{events.ActionCreate, events.ActionUpdate}, notifier.actions())
	})

	t.Run("ReplaceUser missing modifies nothing", func(t *testing.T) {
		userDB := newTestUserDB(t, uri, "replace_missing", nil)

		id, err := models.ParseUserID("64b7f0c2a1b2c3d4e5f60718")
		require.NoError(t, err)

		res, err := userDB.ReplaceUser(ctx, id, &models.User{FirstName: "Nobody"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.ModifiedCount)
	})

	t.Run("DeleteUser twice", func(t *testing.T) {
		notifier := &recordingNotifier{}
		userDB := newTestUserDB(t, uri, "delete", notifier)

		created, err := userDB.CreateUser(ctx, &models.User{FirstName: "Jane"})
		require.NoError(t, err)

		res, err := userDB.DeleteUser(ctx, created.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.DeletedCount)

		res, err = userDB.DeleteUser(ctx, created.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.DeletedCount)

		assert.Equal(t, []string{events.ActionCreate, events.ActionDelete}, notifier.actions())
	})
}

func TestNewUserDB_RequiresURI(t *testing.T) {
	logger := zerolog.Nop()
	_, err := NewUserDB(context.Background(), appconfig.DatabaseConfig{}, nil, &logger)
	assert.EqualError(t, err, "database URI is not set")
}
