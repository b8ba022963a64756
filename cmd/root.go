package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	flagUser   string
	flagFormat string
	flagToken  string
)

var rootCmd = &cobra.Command{
	Use:   "healthsync",
	Short: "healthsync – mirror your health records API from the command line",
	Long: `healthsync fetches and creates diary entries, lab reports and daily
measurements against the health records API. The API root is read from
HEALTHSYNC_API_URL or ~/.healthsync/config.yaml.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Owner user ID (default: taken from the current token)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Session token; checked before the environment and the token file")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text, json, csv")

	rootCmd.AddCommand(diaryCmd)
	rootCmd.AddCommand(labsCmd)
	rootCmd.AddCommand(measurementsCmd)
	rootCmd.AddCommand(syncCmd)
}
