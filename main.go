package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	v1 "github.com/cheqify/backend/internal/controllers/v1"
	"github.com/cheqify/backend/internal/models"
	"github.com/cheqify/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//	@title			Cheqify
//	@description	The backend for Cheqify, a cheque tracking solution for small businesses.

//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		ginMode = "release"
	}
	gin.SetMode(ginMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create the data and upload directories
	err := os.MkdirAll(filepath.Join(".", "data"), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = os.MkdirAll(v1.UploadDir(), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database
	err = models.Connect(filepath.Join("data", "cheqify.db"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The API URL clients use to reach this instance, used for the
	// link fields in responses
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Str("API_URL", apiURL).Msg(err.Error())
	}

	r, teardown, err := router.Config(u)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(r.Group(""))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
