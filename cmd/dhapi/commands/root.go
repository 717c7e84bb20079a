package commands

import (
	"context"

	"dhapi/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	envPath    *string
	verbose    *bool
	dumpHttp   *string
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "dhapi.json5", "The config file, dhapi.local.json5 next to it takes precedence.")
	envPath = rootCmd.PersistentFlags().String("env", ".env", "A dotenv file to read DHAPI_USERNAME and DHAPI_PASSWORD from.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enables debug logging.")
	dumpHttp = rootCmd.PersistentFlags().String("dump-http", "", "A directory to write every request/response pair to, passwords are redacted.")
}

var rootCmd = &cobra.Command{
	Use:   "dhapi",
	Short: "dhapi is a CLI for buying lotto 6/45 tickets and managing the deposit on dhlottery.co.kr.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the command line, every deferred cleanup of the
// command has run by the time it returns.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
