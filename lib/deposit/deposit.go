package deposit

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid deposit amount")

// amounts are the only values (in won) the portal accepts for a top-up.
var amounts = []int{
	5_000,
	10_000,
	20_000,
	30_000,
	50_000,
	100_000,
	200_000,
	300_000,
	500_000,
	700_000,
	1_000_000,
}

// Deposit is a validated top-up amount.
type Deposit struct {
	amount int
}

func New(amount int) (Deposit, error) {
	if !slices.Contains(amounts, amount) {
		return Deposit{}, fmt.Errorf(
			"%w: allowed amounts are %s won (got %d)",
			ErrInvalidAmount, formatAmounts(), amount,
		)
	}
	return Deposit{amount: amount}, nil
}

// Parse creates a Deposit from user input like "10000".
func Parse(text string) (Deposit, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return Deposit{}, fmt.Errorf("%w: not a number (got '%s')", ErrInvalidAmount, text)
	}
	return New(amount)
}

func (d Deposit) Amount() int {
	return d.amount
}

// Amounts returns every allowed amount in ascending order.
func Amounts() []int {
	return slices.Clone(amounts)
}

func formatAmounts() string {
	parts := make([]string, len(amounts))
	for i, a := range amounts {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ", ")
}
