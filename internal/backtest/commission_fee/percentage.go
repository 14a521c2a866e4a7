package commission_fee

import "math"

// PercentageCommissionFee charges rate on the traded notional.
type PercentageCommissionFee struct {
	rate float64
}

// NewPercentageCommissionFee creates a fee model charging quantity * price * rate.
func NewPercentageCommissionFee(rate float64) CommissionFee {
	return &PercentageCommissionFee{rate: rate}
}

// Rate returns the configured commission rate.
func (c *PercentageCommissionFee) Rate() float64 {
	return c.rate
}

func (c *PercentageCommissionFee) Calculate(quantity float64, price float64) float64 {
	return math.Abs(quantity) * price * c.rate
}
