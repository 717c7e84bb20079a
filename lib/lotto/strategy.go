package lotto

import "slices"

// Mode is how the numbers of a ticket are chosen.
type Mode int

const (
	// ModeAuto lets the portal pick all 6 numbers.
	ModeAuto Mode = iota
	// ModeSemiAuto fixes some numbers, the portal fills in the rest.
	ModeSemiAuto
	// ModeManual fixes all 6 numbers.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeSemiAuto:
		return "semiauto"
	case ModeManual:
		return "manual"
	}
	return "unknown"
}

// Label returns the name the portal uses for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeAuto:
		return "자동"
	case ModeSemiAuto:
		return "반자동"
	case ModeManual:
		return "수동"
	}
	return "알 수 없음"
}

// Strategy produces the caller-chosen numbers of a single ticket. The zero
// value is an auto strategy.
type Strategy struct {
	kind  Mode
	fixed []int
}

func Auto() Strategy {
	return Strategy{kind: ModeAuto}
}

func SemiAuto(fixed ...int) Strategy {
	return Strategy{kind: ModeSemiAuto, fixed: slices.Clone(fixed)}
}

func Manual(numbers ...int) Strategy {
	return Strategy{kind: ModeManual, fixed: slices.Clone(numbers)}
}

func (s Strategy) Kind() Mode {
	return s.kind
}

// GenerateNumbers returns the numbers fixed by the caller, auto strategies
// always return an empty slice since the portal assigns them at purchase time.
func (s Strategy) GenerateNumbers() []int {
	if s.kind == ModeAuto {
		return []int{}
	}
	return slices.Clone(s.fixed)
}
