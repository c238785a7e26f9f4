package domain

import "time"

// Subscription tiers. The plan gates nothing by itself; the per-tenant
// UsageLimit is the enforced cap.
const (
	PlanStarter = "starter"
	PlanPro     = "pro"
	PlanAgency  = "agency"
)

// ValidPlan reports whether plan is a known subscription tier.
func ValidPlan(plan string) bool {
	switch plan {
	case PlanStarter, PlanPro, PlanAgency:
		return true
	}
	return false
}

// Company is the tenant boundary. Every entity that is not globally owned
// references exactly one company, and every cross-entity query filters by it.
type Company struct {
	ID         int64     `json:"id" bson:"id"`
	Name       string    `json:"name" bson:"name"`
	Plan       string    `json:"plan" bson:"plan"`
	UsageLimit int       `json:"usage_limit" bson:"usage_limit"` // monthly check-in cap; 0 = unlimited
	IsActive   bool      `json:"is_active" bson:"is_active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
