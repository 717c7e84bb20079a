package commands

import (
	"errors"
	"fmt"
	"strings"

	"dhapi/lib/dhlottery"
	"dhapi/lib/lotto"

	"github.com/spf13/cobra"
)

var (
	buyAuto *int
	buyYes  *bool
)

func init() {
	buyAuto = buyCmd.Flags().Int("auto", lotto.MaxTicketsPerBatch, "The amount of auto tickets to buy when no ticket is given.")
	buyYes = buyCmd.Flags().BoolP("yes", "y", false, "Buys without asking for confirmation.")
	rootCmd.AddCommand(buyCmd)
}

// ticketsFromArgs turns "1,2,3,4,5,6" style arguments into tickets, an
// empty argument list means `auto` auto tickets.
func ticketsFromArgs(args []string, auto int) ([]lotto.Ticket, error) {
	if len(args) == 0 {
		return lotto.NewAutoTickets(auto)
	}
	return lotto.ParseTickets(args)
}

func describeTickets(tickets []lotto.Ticket) string {
	lines := make([]string, len(tickets))
	for i, t := range tickets {
		lines[i] = fmt.Sprintf("  %c. %s", 'A'+i, t.String())
	}
	return strings.Join(lines, "\n")
}

var buyCmd = &cobra.Command{
	Use:   "buy-lotto645 [--auto <n>] [-y] [\"1,2,3,4,5,6\" | \"1,2\" | \"\"]...",
	Short: "Buys up to 5 lotto 6/45 tickets for the current round.",
	Long: `Buys up to 5 lotto 6/45 tickets for the current round.

Each argument is one ticket: 6 numbers is a manual ticket, 1 to 5 numbers
is a semi-auto ticket and an empty string is an auto ticket. Without any
argument --auto auto tickets are bought.`,
	Args: cobra.MaximumNArgs(lotto.MaxTicketsPerBatch),
	RunE: func(cmd *cobra.Command, args []string) error {
		tickets, err := ticketsFromArgs(args, *buyAuto)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d장, %d원\n%s\n", len(tickets), len(tickets)*lotto.TicketPrice, describeTickets(tickets))
		if !*buyYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "구매하시겠습니까?") {
			fmt.Fprintln(cmd.OutOrStdout(), "구매를 취소했습니다.")
			return nil
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close(cmd.Context())

		_, err = s.client.Buy(cmd.Context(), tickets)
		if errors.Is(err, dhlottery.ErrObserver) {
			// the tickets were bought, only a notification failed
			cmd.PrintErrln(err)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to buy tickets: %w", err)
		}
		return nil
	},
}
