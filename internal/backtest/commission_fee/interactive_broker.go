package commission_fee

import "math"

// InteractiveBrokerCommissionFee charges a flat ticket of 1.0 per signal unit, independent
// of price. Quantities are units of exposure change (a reversal is 2), not shares, so the
// broker's per-share tiers do not apply.
type InteractiveBrokerCommissionFee struct {
	minimumFee float64
}

func NewInteractiveBrokerCommissionFee() CommissionFee {
	return &InteractiveBrokerCommissionFee{
		minimumFee: 1.0,
	}
}

func (c *InteractiveBrokerCommissionFee) Calculate(quantity float64, price float64) float64 {
	return math.Abs(quantity) * c.minimumFee
}
