// Package auditor evaluates a fixed, ordered catalog of weighted checks
// against an extracted page analysis and produces a reproducible 0-100
// score. The catalog is declarative so individual rules can be unit-tested
// and the total weight stays constant across audits.
package auditor

import (
	"math"

	"github.com/pagelens/pagelens/internal/analyzer"
)

// Status is the verdict of one evaluated rule.
type Status string

// Rule verdicts. A pass earns the rule's full weight, a warning exactly
// half, a fail nothing.
const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// Check is one evaluated rule.
type Check struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Status   Status  `json:"status"`
	Message  string  `json:"message"`
	Weight   float64 `json:"weight"`
}

// Result is the outcome of one audit: the evaluated checks in catalog
// order and the aggregate score. Never mutated after creation.
type Result struct {
	Checks []Check `json:"checks"`
	Score  int     `json:"score"`
}

// Rule is one weighted, named predicate over an analysis.
type Rule struct {
	ID       string
	Category string
	Name     string
	Weight   float64
	Evaluate func(*analyzer.Analysis) (Status, string)
}

// Auditor evaluates the rule catalog.
type Auditor struct {
	catalog     []Rule
	totalWeight float64
}

// New creates an Auditor over the canonical catalog.
func New() *Auditor {
	return newWithCatalog(catalog)
}

func newWithCatalog(rules []Rule) *Auditor {
	total := 0.0
	for _, r := range rules {
		total += r.Weight
	}

	return &Auditor{catalog: rules, totalWeight: total}
}

// TotalWeight returns the constant sum of all rule weights. It does not
// vary per page, so scores are comparable across audits of the same
// catalog version.
func (a *Auditor) TotalWeight() float64 {
	return a.totalWeight
}

// Audit evaluates every rule in catalog order. Running it twice on the
// same analysis yields an identical result.
func (a *Auditor) Audit(analysis *analyzer.Analysis) *Result {
	checks := make([]Check, 0, len(a.catalog))
	earned := 0.0

	for _, rule := range a.catalog {
		status, message := rule.Evaluate(analysis)

		switch status {
		case StatusPass:
			earned += rule.Weight
		case StatusWarning:
			earned += rule.Weight / 2
		}

		checks = append(checks, Check{
			ID:       rule.ID,
			Category: rule.Category,
			Name:     rule.Name,
			Status:   status,
			Message:  message,
			Weight:   rule.Weight,
		})
	}

	score := 0
	if a.totalWeight > 0 {
		score = int(math.Round(earned / a.totalWeight * 100))
	}

	return &Result{Checks: checks, Score: score}
}
