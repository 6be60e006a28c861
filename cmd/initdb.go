package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize the users collection",
	Long:  `This job connects to the database and creates the users collection if it does not exist.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Load the config and initialize the database
		commonSetUp(ctx, false)
		defer userDB.Close(ctx)

		log.Info().Msg("Initializing collection...")
		if err := userDB.InitCollection(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize collection")
		}

		log.Info().Msg("Initialization complete")
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
