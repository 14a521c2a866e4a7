package types

import (
	"fmt"
	"strconv"
)

// Signal is a discrete trading event emitted at a timestep. It requests a change of the
// target position direction, not the position itself.
type Signal int

const (
	// SignalReverseShort flips a long position straight into a short one.
	SignalReverseShort Signal = -2
	// SignalSell asks to sell or flatten.
	SignalSell Signal = -1
	// SignalHold asks for no action.
	SignalHold Signal = 0
	// SignalBuy asks to buy.
	SignalBuy Signal = 1
	// SignalReverseLong flips a short position straight into a long one.
	SignalReverseLong Signal = 2
)

// Direction returns the sign of the signal: SignalSell, SignalHold or SignalBuy.
func (s Signal) Direction() Signal {
	switch {
	case s > 0:
		return SignalBuy
	case s < 0:
		return SignalSell
	default:
		return SignalHold
	}
}

// IsValid reports whether s is one of the declared signal values.
func (s Signal) IsValid() bool {
	return s >= SignalReverseShort && s <= SignalReverseLong
}

func (s Signal) String() string {
	switch s {
	case SignalReverseShort:
		return "reverse_short"
	case SignalSell:
		return "sell"
	case SignalHold:
		return "hold"
	case SignalBuy:
		return "buy"
	case SignalReverseLong:
		return "reverse_long"
	default:
		return fmt.Sprintf("signal(%d)", int(s))
	}
}

// MarshalCSV writes the signal as its integer value.
func (s Signal) MarshalCSV() (string, error) {
	return strconv.Itoa(int(s)), nil
}

// UnmarshalCSV parses an integer signal value.
func (s *Signal) UnmarshalCSV(value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid signal %q: %w", value, err)
	}

	*s = Signal(v)

	return nil
}
