package lotto

import (
	"errors"
	"fmt"
	"slices"
)

const (
	MinNumber          = 1
	MaxNumber          = 45
	NumbersPerTicket   = 6
	MaxTicketsPerBatch = 5
	// TicketPrice is in won.
	TicketPrice = 1000
)

var (
	ErrTicketCreation = errors.New("ticket creation failed")
	ErrInvalidNumber  = fmt.Errorf("%w: invalid number", ErrTicketCreation)
	ErrBatchSize      = errors.New("invalid ticket count")
)

// Ticket is a single purchasable set of numbers. It can only be created
// through NewTicket and cannot be modified afterwards.
type Ticket struct {
	numbers []int
	mode    Mode
}

func NewTicket(strategy Strategy) (Ticket, error) {
	numbers := strategy.GenerateNumbers()
	err := validateCount(strategy.Kind(), len(numbers))
	if err != nil {
		return Ticket{}, err
	}
	numbers, err = validateNumbers(numbers)
	if err != nil {
		return Ticket{}, err
	}
	return Ticket{
		numbers: numbers,
		mode:    strategy.Kind(),
	}, nil
}

// validateCount checks the amount of numbers against the mode, the mode
// itself always comes from the strategy.
func validateCount(mode Mode, count int) error {
	switch mode {
	case ModeSemiAuto:
		if count < 1 || count >= NumbersPerTicket {
			return fmt.Errorf(
				"%w: semi-auto tickets fix 1 to %d numbers (got %d)",
				ErrInvalidNumber, NumbersPerTicket-1, count,
			)
		}
	case ModeManual:
		if count != NumbersPerTicket {
			return fmt.Errorf(
				"%w: manual tickets fix exactly %d numbers (got %d)",
				ErrInvalidNumber, NumbersPerTicket, count,
			)
		}
	}
	return nil
}

func validateNumbers(numbers []int) ([]int, error) {
	if len(numbers) > NumbersPerTicket {
		return nil, fmt.Errorf(
			"%w: at most %d numbers may be chosen (got %d)",
			ErrInvalidNumber, NumbersPerTicket, len(numbers),
		)
	}

	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		if seen[n] {
			return nil, fmt.Errorf("%w: duplicate number %d", ErrInvalidNumber, n)
		}
		seen[n] = true
	}

	for _, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return nil, fmt.Errorf(
				"%w: numbers must be between %d and %d (got %d)",
				ErrInvalidNumber, MinNumber, MaxNumber, n,
			)
		}
	}

	sorted := slices.Clone(numbers)
	slices.Sort(sorted)
	return sorted, nil
}

// Numbers returns the chosen numbers in ascending order.
func (t Ticket) Numbers() []int {
	out := make([]int, len(t.numbers))
	copy(out, t.numbers)
	return out
}

func (t Ticket) Mode() Mode {
	return t.mode
}

func (t Ticket) String() string {
	return fmt.Sprintf("Ticket(mode=%s, numbers=%v)", t.mode.Label(), t.numbers)
}
