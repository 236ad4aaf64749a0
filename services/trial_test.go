package services

import (
	"testing"
	"time"

	"github.com/nirmaantech/portal_backend/models"
)

var trialNow = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

func franchiseUser(plan models.Plan, regDaysAgo int) *models.User {
	return &models.User{
		Username: "F2", Role: models.RoleFranchise, Plan: plan,
		RegistrationDate: trialNow.AddDate(0, 0, -regDaysAgo).Format("2006-01-02"),
	}
}

func TestState_PaidNeverExpires(t *testing.T) {
	st := State(franchiseUser(models.PlanPaid, 400), trialNow)
	if st.Status != TrialPaid {
		t.Errorf("status = %q, want paid", st.Status)
	}
}

func TestState_ExpiredAfterThirtyOneDays(t *testing.T) {
	st := State(franchiseUser(models.PlanBasic, 31), trialNow)
	if st.Status != TrialExpired {
		t.Errorf("status = %q, want expired", st.Status)
	}
	if st.DaysRemaining != 0 {
		t.Errorf("daysRemaining = %d, want 0", st.DaysRemaining)
	}
}

func TestState_ActiveAtDayThirtyBoundary(t *testing.T) {
	st := State(franchiseUser(models.PlanBasic, 30), trialNow)
	if st.Status != TrialActive {
		t.Errorf("status = %q, want active at exactly 30 days", st.Status)
	}
	if st.DaysRemaining != 0 {
		t.Errorf("daysRemaining = %d, want 0", st.DaysRemaining)
	}
}

func TestState_FreshRegistration(t *testing.T) {
	st := State(franchiseUser(models.PlanBasic, 5), trialNow)
	if st.Status != TrialActive {
		t.Errorf("status = %q, want active", st.Status)
	}
	if st.DaysRemaining != 25 {
		t.Errorf("daysRemaining = %d, want 25", st.DaysRemaining)
	}
}

func TestState_MissingRegistrationDateReadsFresh(t *testing.T) {
	// Legacy records without a registration date deliberately read as
	// freshly started, never expired.
	u := &models.User{Username: "F9", Role: models.RoleFranchise, Plan: models.PlanBasic}
	st := State(u, trialNow)
	if st.Status != TrialActive {
		t.Errorf("status = %q, want active", st.Status)
	}
	if st.DaysRemaining != TrialWindowDays {
		t.Errorf("daysRemaining = %d, want %d", st.DaysRemaining, TrialWindowDays)
	}
}

func TestLoginAllowed(t *testing.T) {
	if LoginAllowed(franchiseUser(models.PlanBasic, 45), trialNow) {
		t.Error("expired basic franchise must be refused at login")
	}
	if !LoginAllowed(franchiseUser(models.PlanPaid, 45), trialNow) {
		t.Error("paid franchise always logs in")
	}
	// Vendors are count-capped, not time-gated.
	vendor := &models.User{Username: "V1", Role: models.RoleVendor, Plan: models.PlanBasic,
		RegistrationDate: "2023-01-01"}
	if !LoginAllowed(vendor, trialNow) {
		t.Error("vendor login is never time-gated")
	}
}

func TestCanUploadProduct(t *testing.T) {
	basic := &models.User{Username: "V1", Role: models.RoleVendor, Plan: models.PlanBasic}
	paid := &models.User{Username: "V2", Role: models.RoleVendor, Plan: models.PlanPaid}

	if !CanUploadProduct(basic, 2) {
		t.Error("basic vendor below cap should upload")
	}
	if CanUploadProduct(basic, 3) {
		t.Error("basic vendor at cap must be refused")
	}
	if !CanUploadProduct(paid, 250) {
		t.Error("paid vendor is unlimited")
	}
}
