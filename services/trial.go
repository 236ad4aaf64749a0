// services/trial.go
package services

import (
	"math"
	"time"

	"github.com/nirmaantech/portal_backend/models"
)

// TrialStatus values returned by State.
const (
	TrialPaid    = "paid"
	TrialActive  = "active"
	TrialExpired = "expired"
)

// TrialState describes where a plan-gated account stands in its trial
// window.
type TrialState struct {
	Status        string `json:"status"`
	DaysRemaining int    `json:"daysRemaining"`
}

// State computes the trial position for a franchise or vendor account.
// Paid plans never expire. A missing registration date deliberately
// defaults to the moment of the check, so legacy records without the
// field read as freshly started rather than expired.
func State(user *models.User, now time.Time) TrialState {
	if user.Plan == models.PlanPaid {
		return TrialState{Status: TrialPaid}
	}

	reg := now
	if user.RegistrationDate != "" {
		if parsed, err := time.Parse("2006-01-02", user.RegistrationDate); err == nil {
			reg = parsed
		}
	}

	elapsed := int(math.Ceil(math.Abs(now.Sub(reg).Hours()) / 24))
	remaining := TrialWindowDays - elapsed
	if remaining < 0 {
		remaining = 0
	}
	if elapsed > TrialWindowDays {
		return TrialState{Status: TrialExpired}
	}
	return TrialState{Status: TrialActive, DaysRemaining: remaining}
}

// LoginAllowed reports whether the account may start a session. Only
// basic-plan franchise users are time-gated; vendors keep logging in past
// the window since their limit is the product cap, not elapsed time.
func LoginAllowed(user *models.User, now time.Time) bool {
	if user.Role != models.RoleFranchise {
		return true
	}
	return State(user, now).Status != TrialExpired
}

// CanUploadProduct enforces the vendor listing cap: paid vendors are
// unlimited, basic vendors stop at the cap.
func CanUploadProduct(vendor *models.User, currentProductCount int) bool {
	if vendor.Plan == models.PlanPaid {
		return true
	}
	return currentProductCount < BasicPlanProductCap
}
