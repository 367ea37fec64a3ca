// Package main starts the balance API server to manage users, accounts,
// deposits, purchases and transfers.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/DenisSivko/autumn-2021-intern-assignment/cmd/httpserver"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/middleware"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/configpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("BALANCE API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
