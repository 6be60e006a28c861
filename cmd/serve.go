package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/EO-DataHub/eodhp-user-services/api/handlers"
	"github.com/EO-DataHub/eodhp-user-services/api/middleware"
	"github.com/EO-DataHub/eodhp-user-services/api/services"
	docs "github.com/EO-DataHub/eodhp-user-services/docs"
	"github.com/EO-DataHub/eodhp-user-services/internal/appconfig"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpSwagger "github.com/swaggo/http-swagger"
)

const shutdownTimeout = 15 * time.Second

// @title EODHP Users API
// @version v1
// @description CRUD API over the users collection.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Load the config, initialize the database and set up logging
		commonSetUp(ctx, true)
		defer func() {
			if err := userDB.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to close database connection")
			}
		}()

		service := &services.Service{
			Config: appCfg,
			DB:     userDB,
		}

		server := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", host, port),
			Handler: newRouter(appCfg, service),
		}

		go func() {
			<-ctx.Done()
			log.Info().Msg("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown failed")
			}
		}()

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}

// newRouter registers the API and docs routes.
func newRouter(cfg *appconfig.Config, service *services.Service) *mux.Router {
	r := mux.NewRouter()

	api := r
	if cfg.BasePath != "" {
		api = r.PathPrefix(cfg.BasePath).Subrouter()
	}
	api.Use(middleware.WithLogger)

	handlers.RegisterUserRoutes(api, service)

	// Docs
	docs.SwaggerInfo.Host = cfg.Host
	docs.SwaggerInfo.BasePath = cfg.BasePath
	r.PathPrefix(cfg.DocsPath).Handler(httpSwagger.Handler(
		httpSwagger.URL(path.Join(cfg.DocsPath, "/doc.json")),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)).Methods(http.MethodGet)

	return r
}
