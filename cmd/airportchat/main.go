package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"AirportChat/internal/archive"
	"AirportChat/internal/chatbot"
	"AirportChat/internal/config"
	"AirportChat/internal/qa"
	"AirportChat/internal/server"
	"AirportChat/internal/session"
	"AirportChat/internal/store"
	"AirportChat/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the wired application pieces shared by the subcommands.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *store.Store
	bot     *chatbot.Bot
	cleanup func()
}

func newApp(v *viper.Viper) (*app, error) {
	cfg := config.Load(v)

	logger, err := telemetry.InitLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tracer, meter, telemetryCleanup, err := telemetry.InitTelemetry(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		telemetryCleanup()
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	contexts, err := session.NewContextStore(cfg.ContextSize)
	if err != nil {
		telemetryCleanup()
		st.Close()
		return nil, fmt.Errorf("failed to create context store: %w", err)
	}

	bot := chatbot.New(cfg, st, contexts, logger, tracer, meter)
	bot.AttachTurnLog(st)
	bot.AttachQA(qa.NewResponder(st.DB(), logger))
	if cfg.ArchiveDump != "" {
		bot.AttachArchive(archive.NewReader(cfg.ArchiveDump, logger))
	}

	logger.Info("application wired",
		"db_path", cfg.DBPath,
		"archive_dump", cfg.ArchiveDump,
		"context_size", cfg.ContextSize,
	)

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  st,
		bot:    bot,
		cleanup: func() {
			if err := st.Close(); err != nil {
				logger.Error("failed to close store", "error", err)
			}
			telemetryCleanup()
		},
	}, nil
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "airportchat",
		Short:        "Rule-based airport information chatbot",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("db-path", "airportchat.db", "Path to the SQLite airline database")
	root.PersistentFlags().String("archive-dump", "", "Optional path to the historical flights SQL dump")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cobra.CheckErr(v.BindPFlags(root.PersistentFlags()))

	root.AddCommand(newServeCmd(v), newChatCmd(v))
	return root
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP chat service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			a, err := newApp(v)
			if err != nil {
				return err
			}
			defer a.cleanup()

			srv := server.New(a.bot, a.store, a.logger, a.cfg.Debug)
			return srv.Run(a.cfg.HTTPAddr)
		},
	}
	cmd.Flags().String("http-addr", ":8080", "Listen address for the chat service")
	return cmd
}

func newChatCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat interactively on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(v)
			if err != nil {
				return err
			}
			defer a.cleanup()

			return a.bot.Run()
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
