package commission_fee

type CommissionFee interface {
	// Calculate the commission charged for changing the position by quantity units at price.
	Calculate(quantity float64, price float64) float64
}

type Broker string

const (
	// BrokerPercentage charges a fraction of the traded notional (quantity * price * rate).
	BrokerPercentage        Broker = "percentage"
	BrokerInteractiveBroker Broker = "interactive_broker"
	BrokerZero              Broker = "zero_commission"
)

var AllBrokers = []any{
	BrokerPercentage,
	BrokerInteractiveBroker,
	BrokerZero,
}

// GetCommissionFeeHandler returns the fee model for broker. rate is only used by the
// percentage model; an unknown broker falls back to percentage when rate > 0, zero otherwise.
func GetCommissionFeeHandler(broker Broker, rate float64) CommissionFee {
	switch broker {
	case BrokerPercentage:
		return NewPercentageCommissionFee(rate)
	case BrokerInteractiveBroker:
		return NewInteractiveBrokerCommissionFee()
	case BrokerZero:
		return NewZeroCommissionFee()
	default:
		if rate > 0 {
			return NewPercentageCommissionFee(rate)
		}

		return NewZeroCommissionFee()
	}
}
