package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/grocery/cart/cmd"
	"github.com/Alturino/grocery/internal/config"
	"github.com/Alturino/grocery/internal/constants"
	"github.com/Alturino/grocery/internal/infra"
	"github.com/Alturino/grocery/internal/log"
	productCmd "github.com/Alturino/grocery/product/cmd"
	userCmd "github.com/Alturino/grocery/user/cmd"
)

func Start() {
	logger := log.InitLogger(filepath.Join("/var/log/", "grocery.log")).
		With().
		Str(log.KeyAppName, constants.AppMain).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "grocery", Short: "Grocery catalog and cart backend"}
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "product",
			Short: "Run product service",
			Run: func(cmd *cobra.Command, args []string) {
				productCmd.RunProductService(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "user",
			Short: "Run user service",
			Run: func(cmd *cobra.Command, args []string) {
				userCmd.RunUserService(cmd.Context())
			},
		},
		migrateCommand(),
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}

func migrateCommand() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			cfg := config.InitConfig(c, constants.AppMigration)
			direction := infra.MigrationUp
			if down {
				direction = infra.MigrationDown
			}
			return infra.Migrate(c, cfg.Database, direction)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "revert every migration instead of applying them")
	return cmd
}
