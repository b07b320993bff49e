package main

import (
	"context"
	"os"

	"github.com/yigit/mathplan/internal/pkg/logger"
	"github.com/yigit/mathplan/internal/server"
)

// @title Math Plan API
// @version 1.0
// @description Computes first-year math course sequences for incoming students from their majors and prior work.

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Advisor JWT, issued with "mathplan token"

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
