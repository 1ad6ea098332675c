package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riskscreen/internal/classifier"
	"riskscreen/internal/handlers"
	"riskscreen/internal/logger"
	"riskscreen/internal/metrics"
	"riskscreen/internal/repository"
	"riskscreen/internal/server"
	"riskscreen/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// load the frozen classifier; it is read-only from here on
	clf, err := loadClassifier(log)
	if err != nil {
		log.Fatalw("failed to load model artifact", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, clf, authConfig())
	m := metrics.New()
	apiHandler := handlers.NewHandler(services, log, m)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "riskscreen.db")
		dbPath = "riskscreen.db"
	}
	return repository.InitDB(dbPath)
}

// loadClassifier reads the frozen model artifact from the configured path.
func loadClassifier(log *logger.Logger) (*classifier.Tree, error) {
	modelPath := viper.GetString("model.path")
	if modelPath == "" {
		log.Infow("model.path not set in config; using default artifact", "default", "model/risk_model.json")
		modelPath = "model/risk_model.json"
	}
	return classifier.Load(modelPath)
}

// authConfig reads token signing parameters from configuration.
func authConfig() service.AuthConfig {
	ttl := viper.GetInt("auth.token_ttl_minutes")
	if ttl <= 0 {
		ttl = 60
	}
	return service.AuthConfig{
		SigningKey: viper.GetString("auth.signing_key"),
		TokenTTL:   time.Duration(ttl) * time.Minute,
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
