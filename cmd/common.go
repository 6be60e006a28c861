package cmd

import (
	"context"
	"fmt"

	"github.com/EO-DataHub/eodhp-user-services/db"
	"github.com/EO-DataHub/eodhp-user-services/internal/appconfig"
	awsclient "github.com/EO-DataHub/eodhp-user-services/internal/aws"
	"github.com/EO-DataHub/eodhp-user-services/internal/events"
	"github.com/rs/zerolog/log"
)

var (
	appCfg *appconfig.Config
	userDB *db.UserDB
)

// commonSetUp loads the config, sets up logging and opens the shared
// database handle. The caller is responsible for closing userDB.
func commonSetUp(ctx context.Context, withEvents bool) {
	setLogging(logLevel)

	var err error
	appCfg, err = appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := resolveDatabaseURI(ctx, appCfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve database URI")
	}

	var notifier events.Notifier = events.NoopNotifier{}
	if withEvents && appCfg.Pulsar.URL != "" {
		notifier, err = events.NewEventPublisher(appCfg.Pulsar.URL, appCfg.Pulsar.TopicProducer)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event publisher")
		}
		log.Info().Str("topic", appCfg.Pulsar.TopicProducer).Msg("Publishing user events")
	}

	logger := log.With().Str("component", "db").Logger()
	userDB, err = db.NewUserDB(ctx, appCfg.Database, notifier, &logger)
	if err != nil {
		notifier.Close()
		log.Fatal().Err(err).Msg("Failed to initialize UserDB")
	}
}

// resolveDatabaseURI reads the connection URI from AWS Secrets Manager when a
// secret name is configured.
func resolveDatabaseURI(ctx context.Context, cfg *appconfig.Config) error {
	if cfg.Database.SecretName == "" {
		return nil
	}

	awsCfg, err := awsclient.LoadAWSConfig(ctx, cfg.AWS.Region)
	if err != nil {
		return err
	}

	uri, err := awsclient.GetSecretString(ctx, awsclient.NewSecretsManagerClient(awsCfg),
		cfg.Database.SecretName, cfg.Database.SecretKey)
	if err != nil {
		return fmt.Errorf("failed to read database secret: %w", err)
	}

	log.Info().Str("secret", cfg.Database.SecretName).Msg("Loaded database URI from Secrets Manager")
	cfg.Database.URI = uri
	return nil
}
