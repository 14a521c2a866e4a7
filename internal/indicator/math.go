package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

func invalidTypeError(name, expected string) error {
	return errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected %s", name, expected)
}

func invalidPeriodError(name string, period int) error {
	return errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// SimpleMovingAverage returns the rolling mean over window values. The first window-1
// entries, and any window containing an undefined value, are NaN.
func SimpleMovingAverage(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}

	sum := 0.0
	undefined := 0

	for i, v := range values {
		if types.IsUndefined(v) {
			undefined++
		} else {
			sum += v
		}

		if i >= window {
			old := values[i-window]
			if types.IsUndefined(old) {
				undefined--
			} else {
				sum -= old
			}
		}

		if i >= window-1 && undefined == 0 {
			out[i] = sum / float64(window)
		}
	}

	return out
}

// RollingStdDev returns the rolling sample standard deviation (n-1 denominator).
func RollingStdDev(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 1 {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		out[i] = sampleStdDev(values[i-window+1 : i+1])
	}

	return out
}

func sampleStdDev(values []float64) float64 {
	mean := 0.0

	for _, v := range values {
		if types.IsUndefined(v) {
			return math.NaN()
		}

		mean += v
	}

	mean /= float64(len(values))

	sq := 0.0
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}

	return math.Sqrt(sq / float64(len(values)-1))
}

// ExponentialMovingAverage returns the recursive EMA with alpha = 2/(span+1), seeded with
// the first defined value. Leading undefined values stay NaN.
func ExponentialMovingAverage(values []float64, span int) []float64 {
	out := nanSlice(len(values))
	if span <= 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)
	seeded := false
	prev := 0.0

	for i, v := range values {
		if types.IsUndefined(v) {
			if seeded {
				out[i] = prev
			}

			continue
		}

		if !seeded {
			prev = v
			seeded = true
		} else {
			prev = alpha*v + (1-alpha)*prev
		}

		out[i] = prev
	}

	return out
}

// RelativeStrengthIndex computes the RSI from the rolling means of gains and losses.
// The first price change is taken as zero, so the first defined value sits at index window-1.
// A window without losses yields 100, a flat window yields NaN.
func RelativeStrengthIndex(closes []float64, window int) []float64 {
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))

	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]

		switch {
		case types.IsUndefined(delta):
			gains[i] = math.NaN()
			losses[i] = math.NaN()
		case delta > 0:
			gains[i] = delta
		case delta < 0:
			losses[i] = -delta
		}
	}

	avgGain := SimpleMovingAverage(gains, window)
	avgLoss := SimpleMovingAverage(losses, window)

	out := nanSlice(len(closes))

	for i := range closes {
		if types.IsUndefined(avgGain[i]) || types.IsUndefined(avgLoss[i]) {
			continue
		}

		if avgLoss[i] == 0 {
			if avgGain[i] > 0 {
				out[i] = 100
			}

			continue
		}

		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}

	return out
}
