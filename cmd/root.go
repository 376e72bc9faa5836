package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// appName shows up in CLI usage output and log fields
const appName = "pagelens"

// k holds flag values for the lifetime of the process
var k *koanf.Koanf

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "web page SEO analysis and audit service",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cobra.CheckErr(loadFlags(cmd))
	},
}

// Execute runs the CLI with a context that is cancelled on SIGINT/SIGTERM,
// which drives graceful shutdown in long-running subcommands.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down gracefully...")
	}()

	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func init() {
	k = koanf.New(".")
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().Bool("pretty", false, "human readable logging output")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging output")
}

func initConfig() {
	if err := loadFlags(rootCmd); err != nil {
		log.Fatal().Err(err).Msg("error loading flags")
	}

	setupLogging()
}

// loadFlags merges the command's flag set into the koanf instance.
func loadFlags(cmd *cobra.Command) error {
	return k.Load(posflag.Provider(cmd.Flags(), k.Delim(), k), nil)
}

// setupLogging configures the global zerolog logger from the debug and
// pretty flags.
func setupLogging() {
	level := zerolog.InfoLevel
	if k.Bool("debug") {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Logger = log.With().Str("service", appName).Logger()

	if k.Bool("pretty") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
