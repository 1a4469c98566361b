/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package startcmd

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/mosip/esignet-go/pkg/restapi/v1/binding"
	"github.com/mosip/esignet-go/pkg/restapi/v1/vci"
)

var logger = log.New("esignet-rest")

// GetStartCmd returns the Cobra start command.
func GetStartCmd() *cobra.Command {
	startCmd := createStartCmd()

	createFlags(startCmd)

	return startCmd
}

func createStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start esignet-rest",
		Long:  "Start the identity binding and credential issuance REST server",
		RunE: func(cmd *cobra.Command, args []string) error {
			parameters, err := getStartupParameters(cmd)
			if err != nil {
				return err
			}

			if parameters.logLevel != "" {
				setLogLevel(parameters.logLevel)
			}

			conf, err := prepareConfiguration(cmd.Context(), parameters)
			if err != nil {
				return err
			}

			return startServer(conf)
		},
	}
}

func startServer(conf *Configuration) error {
	e := buildEchoHandler(conf)

	defer closeConfiguration(conf)

	logger.Info("Starting esignet-rest server on host " + conf.StartupParameters.hostURL)

	return e.Start(conf.StartupParameters.hostURL)
}

func buildEchoHandler(conf *Configuration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())

	bindingController := binding.NewController(&binding.Config{
		KeyBindingService: conf.KeyBindingService,
		Tracer:            conf.Tracer,
	})

	bindingController.RegisterRoutes(e.Group("/v1/esignet/binding"))

	vciController := vci.NewController(&vci.Config{
		IssuanceService: conf.IssuanceService,
		Tracer:          conf.Tracer,
	})

	vciGroup := e.Group("/v1/esignet/vci", conf.TokenIngestor.Middleware())

	vciController.RegisterRoutes(vciGroup)

	return e
}

func closeConfiguration(conf *Configuration) {
	if conf.MongoClient != nil {
		if err := conf.MongoClient.Close(); err != nil {
			logger.Warn("Failed to close mongodb client", log.WithError(err))
		}
	}

	if conf.RedisClient != nil {
		if err := conf.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", log.WithError(err))
		}
	}
}

func setLogLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("Unknown log level, defaulting to info", log.WithError(err))

		parsed = log.INFO
	}

	log.SetLevel("", parsed)
}
