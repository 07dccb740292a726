package booking

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/venuebook/backend/internal/domain/shared"
	"github.com/venuebook/backend/internal/domain/shared/valueobject"
)

// DefaultBalanceDueDays is the fallback due period for advance payments
const DefaultBalanceDueDays = 3

// ComputePenalty splits a paid amount into penalty and refund for the given
// penalty percent. The penalty is rounded half-up to two decimal places first;
// the refund is the remainder, so any rounding error is absorbed by the refund
// and penalty + refund always equals the paid amount.
func ComputePenalty(paid valueobject.Money, penaltyPercent decimal.Decimal) (penalty, refund valueobject.Money, err error) {
	if !paid.IsPositive() {
		return valueobject.Money{}, valueobject.Money{}, shared.ErrInvalidAmount
	}
	if penaltyPercent.IsNegative() || penaltyPercent.GreaterThan(decimal.NewFromInt(100)) {
		return valueobject.Money{}, valueobject.Money{}, shared.NewDomainError("INVALID_INPUT", "penalty percent must be between 0 and 100")
	}

	penalty = paid.CalculatePercentage(penaltyPercent).Round(2)
	if exceeds, _ := penalty.GreaterThan(paid); exceeds {
		penalty = paid
	}
	refund = paid.MustSubtract(penalty)
	return penalty, refund, nil
}

// DaysBeforeEvent computes the whole-day offset between now and the event
// date. Both sides are normalized to local midnight, so a same-day event
// yields 0 and a past event yields a negative offset.
func DaysBeforeEvent(eventDate, now time.Time) int {
	eventMidnight := atMidnight(eventDate)
	todayMidnight := atMidnight(now)
	diff := eventMidnight.Sub(todayMidnight)
	return int(math.Ceil(diff.Hours() / 24))
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
