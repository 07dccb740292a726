package booking

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/venuebook/backend/internal/domain/shared"
)

// CancellationRule maps a "days before event" range to a penalty percentage.
// MaxDaysBefore of nil means the range is open-ended upwards.
// Rules are read-only reference data.
type CancellationRule struct {
	shared.BaseEntity
	Name           string          `json:"name"`
	MinDaysBefore  int             `json:"min_days_before"`
	MaxDaysBefore  *int            `json:"max_days_before"`
	PenaltyPercent decimal.Decimal `json:"penalty_percent"`
}

// Matches returns true if the rule's range covers the given day offset
func (r *CancellationRule) Matches(daysBefore int) bool {
	if daysBefore < r.MinDaysBefore {
		return false
	}
	return r.MaxDaysBefore == nil || daysBefore <= *r.MaxDaysBefore
}

// width returns the size of the rule's day range, unbounded ranges being widest
func (r *CancellationRule) width() int {
	if r.MaxDaysBefore == nil {
		return math.MaxInt
	}
	return *r.MaxDaysBefore - r.MinDaysBefore
}

// HasValidPercent returns true if the penalty percent is within 0-100 inclusive
func (r *CancellationRule) HasValidPercent() bool {
	return !r.PenaltyPercent.IsNegative() && r.PenaltyPercent.LessThanOrEqual(decimal.NewFromInt(100))
}

// RuleSet resolves a day offset to the single applicable cancellation rule.
// Resolution is pure and deterministic: among all matching rules the
// narrowest range wins, and on equal width the higher minimum wins.
type RuleSet struct {
	rules []CancellationRule
}

// NewRuleSet creates a rule set over the given rules
func NewRuleSet(rules []CancellationRule) RuleSet {
	return RuleSet{rules: rules}
}

// Resolve picks the applicable rule for daysBefore. A matching rule carrying
// a penalty percent outside 0-100 is a data-integrity fault and is rejected
// rather than applied.
func (rs RuleSet) Resolve(daysBefore int) (*CancellationRule, error) {
	var best *CancellationRule
	for i := range rs.rules {
		rule := &rs.rules[i]
		if !rule.Matches(daysBefore) {
			continue
		}
		if !rule.HasValidPercent() {
			return nil, shared.NewDomainError("INVALID_INPUT", "cancellation rule penalty percent outside 0-100")
		}
		if best == nil {
			best = rule
			continue
		}
		if rule.width() < best.width() ||
			(rule.width() == best.width() && rule.MinDaysBefore > best.MinDaysBefore) {
			best = rule
		}
	}
	if best == nil {
		return nil, shared.ErrNoApplicableRule
	}
	return best, nil
}
