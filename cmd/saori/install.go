package main

import (
	"errors"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/saori/internal/config"
	"github.com/sandevgo/saori/internal/service/installer"
	"github.com/sandevgo/saori/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:          "install",
	Short:        "Create the Saori runtime directory and configuration",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, flush := setupLogger(cmd.Context())
		defer flush()
		logger := log.FromCtx(ctx)

		state, err := installer.RunWizard()
		if errors.Is(err, installer.ErrInterrupted) {
			logger.Warn().Msg("install aborted, nothing was written")
			return nil
		}
		if err != nil {
			return err
		}

		dir := config.GetRuntimePath()
		envFile := filepath.Join(dir, ".env")
		if err := godotenv.Load(envFile); err != nil {
			logger.Warn().Err(err).Str("path", envFile).Msg("written .env could not be loaded")
		}

		logger.Info().
			Str("dir", dir).
			Str("provider", state.EnvVars["SAORI_LLM_PROVIDER"]).
			Str("model", state.EnvVars["SAORI_LLM_MODEL"]).
			Str("store", state.EnvVars["SAORI_STORE_DRIVER"]).
			Msg("saori installed, run 'saori start'")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
