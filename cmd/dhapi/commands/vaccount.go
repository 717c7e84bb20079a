package commands

import (
	"fmt"
	"strings"

	"dhapi/lib/deposit"

	"github.com/spf13/cobra"
)

var vaccountYes *bool

func init() {
	vaccountYes = vaccountCmd.Flags().BoolP("yes", "y", false, "Assigns the account without asking for confirmation.")
	rootCmd.AddCommand(vaccountCmd)
}

func allowedAmounts() string {
	amounts := deposit.Amounts()
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = fmt.Sprint(a)
	}
	return strings.Join(out, ", ")
}

var vaccountCmd = &cobra.Command{
	Use:   "assign-virtual-account <amount>",
	Short: "Assigns a virtual account to top up the deposit with.",
	Long: fmt.Sprintf(`Assigns a virtual account to top up the deposit with.

The amount is in won and must be one of %s.`, allowedAmounts()),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := deposit.Parse(args[0])
		if err != nil {
			return err
		}

		question := fmt.Sprintf("%d원을 충전할 가상계좌를 할당하시겠습니까?", amount.Amount())
		if !*vaccountYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
			fmt.Fprintln(cmd.OutOrStdout(), "가상계좌 할당을 취소했습니다.")
			return nil
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close(cmd.Context())

		account, err := s.client.AssignVirtualAccount(cmd.Context(), amount)
		if err != nil {
			return fmt.Errorf("failed to assign a virtual account: %w", err)
		}
		s.printer.PrintVirtualAccount(account)
		return nil
	},
}
