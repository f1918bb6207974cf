package cmd

import (
	"fmt"
	"os"

	"github.com/achilleasa/pbr/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

const (
	// Environment variable consulted for the log level when the flag is not set.
	logLevelEnvVar = "PBR_LOG_LEVEL"
)

var logger = log.New("pbr")

// Load environment overrides from a dotenv file before command flags are
// parsed. A missing default .env file is not an error.
func LoadEnv(ctx *cli.Context) error {
	envFile := ctx.GlobalString("env-file")
	if envFile == "" {
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		if !ctx.GlobalIsSet("env-file") && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not load env file %s: %w", envFile, err)
	}
	return nil
}

func setupLogging(ctx *cli.Context) error {
	levelName := ctx.GlobalString("log-level")
	if levelName == "" {
		levelName = os.Getenv(logLevelEnvVar)
	}
	if levelName != "" {
		level, err := log.ParseLevel(levelName)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}
