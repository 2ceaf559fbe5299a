package employees

import "github.com/shopspring/decimal"

// DefaultNetRate approximates withholding as a flat 23%.
const DefaultNetRate = 0.77

// SalaryPolicy derives net pay from gross pay.
type SalaryPolicy interface {
	Net(gross float64) float64
}

// FlatRate keeps a fixed share of gross, rounded to cents.
type FlatRate struct {
	Rate decimal.Decimal
}

func NewFlatRate(rate float64) FlatRate {
	if rate <= 0 || rate > 1 {
		rate = DefaultNetRate
	}
	return FlatRate{Rate: decimal.NewFromFloat(rate)}
}

func (p FlatRate) Net(gross float64) float64 {
	return decimal.NewFromFloat(gross).Mul(p.Rate).Round(2).InexactFloat64()
}

// Compensation fills the gross/net/deductions triple for gross under policy.
func Compensation(policy SalaryPolicy, gross float64) (net, deductions float64) {
	net = policy.Net(gross)
	deductions = decimal.NewFromFloat(gross).Sub(decimal.NewFromFloat(net)).Round(2).InexactFloat64()
	return net, deductions
}
