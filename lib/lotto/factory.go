package lotto

import (
	"fmt"
	"strconv"
	"strings"
)

// NewAutoTickets creates `count` auto tickets, count must be within 1 and 5.
func NewAutoTickets(count int) ([]Ticket, error) {
	if count < 1 || count > MaxTicketsPerBatch {
		return nil, fmt.Errorf(
			"%w: auto tickets must number between 1 and %d (got %d)",
			ErrBatchSize, MaxTicketsPerBatch, count,
		)
	}

	tickets := make([]Ticket, count)
	for i := range tickets {
		tickets[i] = Ticket{numbers: []int{}, mode: ModeAuto}
	}
	return tickets, nil
}

// ParseTicket creates a ticket out of its textual form.
//
// An empty spec is an auto ticket, 6 comma separated numbers are a manual
// ticket and 1 to 5 numbers are a semi-auto ticket. Whitespace around a
// number is ignored, a spec of only whitespace is not a number.
func ParseTicket(spec string) (Ticket, error) {
	if spec == "" {
		return NewTicket(Auto())
	}

	parts := strings.Split(spec, ",")
	numbers := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Ticket{}, fmt.Errorf("%w: '%s' is not an integer", ErrInvalidNumber, p)
		}
		numbers[i] = n
	}

	switch {
	case len(numbers) == NumbersPerTicket:
		return NewTicket(Manual(numbers...))
	case len(numbers) >= 1 && len(numbers) < NumbersPerTicket:
		return NewTicket(SemiAuto(numbers...))
	}
	return Ticket{}, fmt.Errorf("%w: invalid amount of numbers: %d", ErrInvalidNumber, len(numbers))
}

// ParseTickets creates one ticket per spec, see ParseTicket for the format.
func ParseTickets(specs []string) ([]Ticket, error) {
	if len(specs) > MaxTicketsPerBatch {
		return nil, fmt.Errorf(
			"%w: at most %d tickets can be created at once (got %d)",
			ErrBatchSize, MaxTicketsPerBatch, len(specs),
		)
	}

	tickets := make([]Ticket, 0, len(specs))
	for i, spec := range specs {
		t, err := ParseTicket(spec)
		if err != nil {
			return nil, fmt.Errorf("ticket %d: %w", i+1, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
