package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(balanceCmd)
}

var balanceCmd = &cobra.Command{
	Use:   "show-balance",
	Short: "Shows the deposit balance of the account.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close(cmd.Context())

		balance, err := s.client.Balance(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get balance: %w", err)
		}
		s.printer.PrintBalance(balance)
		return nil
	},
}
