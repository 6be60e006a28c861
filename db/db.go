package db

import (
	"context"
	"fmt"

	"github.com/EO-DataHub/eodhp-user-services/internal/appconfig"
	"github.com/EO-DataHub/eodhp-user-services/internal/events"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type UserDB struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	Events     events.Notifier
	Log        *zerolog.Logger
}

// NewUserDB connects to MongoDB and returns a handle shared by all requests.
// It is created once at start-up and released with Close.
func NewUserDB(ctx context.Context, cfg appconfig.DatabaseConfig, notifier events.Notifier, log *zerolog.Logger) (*UserDB, error) {
	if cfg.URI == "" {
		log.Error().Msg("database URI is not set")
		return nil, fmt.Errorf("database URI is not set")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = appconfig.DefaultTimeout
	}

	// Embedded documents in opaque user fields decode as maps so they
	// serialize as JSON objects.
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database connection")
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Check we are actually connected
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Error().Err(err).Msg("Database connection failed during ping")
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database connection failed during ping: %w", err)
	}

	if notifier == nil {
		notifier = events.NoopNotifier{}
	}

	return &UserDB{
		Client:     client,
		Collection: client.Database(cfg.Name).Collection(cfg.Collection),
		Events:     notifier,
		Log:        log,
	}, nil
}

func (w *UserDB) Close(ctx context.Context) error {
	if err := w.Client.Disconnect(ctx); err != nil {
		return err
	}
	w.Log.Info().Msg("database connection closed")

	w.Events.Close()
	w.Log.Info().Msg("event publisher closed")

	return nil
}

// InitCollection creates the users collection if it does not already exist.
func (w *UserDB) InitCollection(ctx context.Context) error {
	if err := w.Client.Ping(ctx, readpref.Primary()); err != nil {
		w.Log.Error().Err(err).Msg("Database connection ping failed")
		return fmt.Errorf("database connection ping failed: %w", err)
	}

	database := w.Collection.Database()
	name := w.Collection.Name()

	w.Log.Debug().Str("database", database.Name()).Str("collection", name).Msg("Database connection is healthy, checking collection")

	names, err := database.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("error listing collections: %w", err)
	}

	if len(names) > 0 {
		w.Log.Info().Str("collection", name).Msg("Collection already exists")
		return nil
	}

	if err := database.CreateCollection(ctx, name); err != nil {
		w.Log.Error().Err(err).Str("collection", name).Msg("error creating collection")
		return fmt.Errorf("error creating collection %s: %w", name, err)
	}

	w.Log.Info().Str("collection", name).Msg("Collection initialized successfully")
	return nil
}

// notify hands an event to the notifier. Delivery failures do not affect the
// write that produced the event.
func (w *UserDB) notify(userID, action string) {
	if err := w.Events.Notify(events.NewUserEvent(userID, action)); err != nil {
		w.Log.Error().Err(err).Str("user_id", userID).Str("action", action).Msg("Failed to publish user event")
	}
}
