package holdings

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// CashFlow is one dated amount of an irregular cash-flow series. Negative
// amounts are money paid in, positive amounts money received.
type CashFlow struct {
	Date   DateTime
	Amount float64
}

// ErrInvalidCashflows reports malformed solver input: fewer than two flows,
// or no sign change, so no root can exist. Callers get it synchronously and
// must not retry.
var ErrInvalidCashflows = errors.New("invalid cash flows")

// ErrNoConvergence reports that the solver could not bracket a root within
// its expansion and iteration budgets. It is distinct from
// ErrInvalidCashflows so callers can fall back to an "N/A" display.
var ErrNoConvergence = errors.New("no convergence")

const (
	xirrGuess      = 0.10
	newtonMaxIter  = 50
	xirrTolerance  = 1e-10
	minimumStep    = 1e-12
	bisectLow      = -0.9999
	bisectHigh     = 10.0
	bracketDoubles = 50
	bisectMaxIter  = 200
)

// yearFraction is the day-count convention of the solver: whole UTC
// calendar days from the series start, divided by 365.
func yearFraction(t0, d DateTime) float64 {
	return float64(DaysBetween(t0, d)) / 365.0
}

// XNPV computes the net present value of the flows at the given annual
// rate, discounting each flow by its exact day count from the earliest one.
// It is +Inf for rate <= -1, where the discount base turns non-positive.
func XNPV(rate float64, flows []CashFlow) float64 {
	if rate <= -1 {
		return math.Inf(1)
	}
	sorted := sortedFlows(flows)
	t0 := sorted[0].Date
	var sum float64
	for _, cf := range sorted {
		sum += cf.Amount / math.Pow(1+rate, yearFraction(t0, cf.Date))
	}
	return sum
}

// dXNPV is the analytic derivative of XNPV with respect to the rate.
func dXNPV(rate float64, flows []CashFlow) float64 {
	if rate <= -1 {
		return math.Inf(1)
	}
	sorted := sortedFlows(flows)
	t0 := sorted[0].Date
	var sum float64
	for _, cf := range sorted {
		t := yearFraction(t0, cf.Date)
		sum -= t * cf.Amount / math.Pow(1+rate, t+1)
	}
	return sum
}

func sortedFlows(flows []CashFlow) []CashFlow {
	sorted := make([]CashFlow, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}

// XIRR computes the annualized internal rate of return of irregularly dated
// cash flows, with the default guess of 10%.
func XIRR(flows []CashFlow) (float64, error) {
	return xirr(flows, xirrGuess, newtonMaxIter, xirrTolerance)
}

// xirr orchestrates the two stages: Newton-Raphson from the guess, then a
// bracketing bisection when Newton aborts or fails to converge.
func xirr(flows []CashFlow, guess float64, maxIter int, tol float64) (float64, error) {
	if len(flows) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 cash flows, got %d", ErrInvalidCashflows, len(flows))
	}
	hasPos, hasNeg := false, false
	for _, cf := range flows {
		if cf.Amount > 0 {
			hasPos = true
		}
		if cf.Amount < 0 {
			hasNeg = true
		}
	}
	if !hasPos || !hasNeg {
		return 0, fmt.Errorf("%w: need at least one positive and one negative cash flow", ErrInvalidCashflows)
	}

	if rate, ok := newton(flows, guess, maxIter, tol); ok {
		return rate, nil
	}
	return bisect(flows, tol)
}

// newton runs Newton-Raphson from the guess. It reports ok false when the
// stage aborts (zero or non-finite derivative, step out of the domain) or
// exhausts its iterations without converging.
func newton(flows []CashFlow, guess float64, maxIter int, tol float64) (rate float64, ok bool) {
	rate = guess
	for i := 0; i < maxIter; i++ {
		f := XNPV(rate, flows)
		if math.Abs(f) < tol {
			return rate, true
		}
		df := dXNPV(rate, flows)
		if df == 0 || math.IsInf(df, 0) || math.IsNaN(df) {
			return 0, false
		}
		next := rate - f/df
		// keep (1+rate) positive; a jump out of the domain means the
		// shape is too hostile for Newton, let bisection handle it
		if math.IsInf(next, 0) || math.IsNaN(next) || next <= -0.999999999 {
			return 0, false
		}
		if math.Abs(next-rate) < minimumStep {
			return next, true
		}
		rate = next
	}
	return 0, false
}

// bisect finds the root by bracketing: the high bound doubles until the
// interval shows a sign change, then the interval halves toward the root.
func bisect(flows []CashFlow, tol float64) (float64, error) {
	low, high := bisectLow, bisectHigh
	fLow := XNPV(low, flows)
	fHigh := XNPV(high, flows)

	for i := 0; i < bracketDoubles && isFinite(fLow) && isFinite(fHigh) && fLow*fHigh > 0; i++ {
		high *= 2
		fHigh = XNPV(high, flows)
	}
	if !isFinite(fLow) || !isFinite(fHigh) || fLow*fHigh > 0 {
		return 0, fmt.Errorf("%w: failed to bracket a root in [%g, %g]", ErrNoConvergence, low, high)
	}

	for i := 0; i < bisectMaxIter; i++ {
		mid := (low + high) / 2
		fMid := XNPV(mid, flows)
		if math.Abs(fMid) < tol {
			return mid, nil
		}
		if fLow*fMid < 0 {
			high = mid
		} else {
			low = mid
			fLow = fMid
		}
		if math.Abs(high-low) < minimumStep {
			return (low + high) / 2, nil
		}
	}
	return (low + high) / 2, nil
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
