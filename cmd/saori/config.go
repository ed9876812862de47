package main

import (
	"fmt"

	"github.com/sandevgo/saori/internal/config"
	"github.com/sandevgo/saori/pkg/env"
	"github.com/spf13/cobra"
)

var showSecrets bool

var configCmd = &cobra.Command{
	Use:          "config",
	Short:        "Print the effective configuration as .env lines",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		for _, c := range []any{config.NewAppConfig(ctx), config.NewProviderConfig(ctx)} {
			out, err := env.MarshalEnv(c, showSecrets)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print keys and passwords instead of ***")
	rootCmd.AddCommand(configCmd)
}
