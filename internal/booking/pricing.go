package booking

import "math"

// Basis names the rate structure a quote was billed on.
type Basis string

const (
	BasisHourly Basis = "hourly"
	BasisDaily  Basis = "daily"
)

// RatePlan holds a space's two prices.  A zero rate means the space is
// not offered on that basis.
type RatePlan struct {
	PricePerHour float64
	PricePerDay  float64
}

// Validate rejects negative rates and plans offering neither basis.
func (p RatePlan) Validate() error {
	if p.PricePerHour < 0 || p.PricePerDay < 0 {
		return Validationf("rates must not be negative")
	}
	if p.PricePerHour == 0 && p.PricePerDay == 0 {
		return Validationf("at least one of price per hour or price per day must be set")
	}
	return nil
}

// Quote is the billing breakdown for a duration.  A total is zero when
// the plan does not offer that basis.
type Quote struct {
	Hours       float64
	HourlyTotal float64
	DailyTotal  float64
	FinalPrice  float64
	Basis       Basis
}

// Price bills hours at the cheaper of the hourly and daily rate.
// Partial days round up to a whole day and a tie goes to hourly.
// Totals are rounded to cents on the way out only.
func Price(hours float64, plan RatePlan) (Quote, error) {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return Quote{}, Validationf("duration must be positive, got %g hours", hours)
	}
	if err := plan.Validate(); err != nil {
		return Quote{}, err
	}

	hourly := hours * plan.PricePerHour
	daily := math.Ceil(hours/24) * plan.PricePerDay

	q := Quote{Hours: hours, HourlyTotal: RoundCents(hourly), DailyTotal: RoundCents(daily)}
	switch {
	case plan.PricePerDay == 0:
		q.FinalPrice, q.Basis = hourly, BasisHourly
	case plan.PricePerHour == 0:
		q.FinalPrice, q.Basis = daily, BasisDaily
	case daily < hourly:
		q.FinalPrice, q.Basis = daily, BasisDaily
	default:
		q.FinalPrice, q.Basis = hourly, BasisHourly
	}
	q.FinalPrice = RoundCents(q.FinalPrice)
	return q, nil
}

// RoundCents rounds half-up to two decimals.
func RoundCents(v float64) float64 {
	// The epsilon absorbs binary representation error such as 1.005*100.
	return math.Floor(v*100+0.5+1e-9) / 100
}
