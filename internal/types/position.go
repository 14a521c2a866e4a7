package types

import (
	"fmt"
	"strconv"
)

// Position is the directional exposure held between two timesteps.
//
// Signals are applied as a saturating fold: Position(t) = clamp(Position(t-1) + Signal(t), -1, 1).
// This is not the clamp of the raw cumulative signal sum. Signals +1, +1, -1 give positions
// 1, 1, 0, where clamping the running sum would give 1, 1, 1.
type Position int

const (
	PositionShort Position = -1
	PositionNone  Position = 0
	PositionLong  Position = 1
)

// PositionFromSum maps the sum of a position and a signal onto a Position. Sums beyond one
// unit of exposure saturate at PositionLong / PositionShort.
func PositionFromSum(sum int) Position {
	switch {
	case sum > 0:
		return PositionLong
	case sum < 0:
		return PositionShort
	default:
		return PositionNone
	}
}

// Apply is one step of the saturating fold: the previous position plus the signal, clamped
// to one unit of exposure.
func (p Position) Apply(signal Signal) Position {
	return PositionFromSum(int(p) + int(signal))
}

// Exposure returns the signed exposure multiplier applied to market returns.
func (p Position) Exposure() float64 {
	return float64(p)
}

func (p Position) String() string {
	switch p {
	case PositionLong:
		return "LONG"
	case PositionShort:
		return "SHORT"
	default:
		return "NONE"
	}
}

// MarshalCSV writes the position as -1, 0 or 1.
func (p Position) MarshalCSV() (string, error) {
	return strconv.Itoa(int(p)), nil
}

// UnmarshalCSV parses -1, 0 or 1.
func (p *Position) UnmarshalCSV(value string) error {
	v, err := strconv.Atoi(value)
	if err != nil || v < -1 || v > 1 {
		return fmt.Errorf("invalid position %q", value)
	}

	*p = Position(v)

	return nil
}
