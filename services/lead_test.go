package services

import (
	"testing"
	"time"

	"github.com/nirmaantech/portal_backend/models"
)

var logTime = time.Date(2025, 11, 12, 9, 0, 0, 0, time.UTC)

func seededLead() *models.Lead {
	return &models.Lead{
		LeadID:        101,
		CustomerName:  "Sumanth B.",
		CustomerPhone: "9876543210",
		TelecallerID:  "T1",
		CurrentStatus: "Pending",
		ContactHistory: []models.ContactHistoryEntry{{
			Status: "Pending", Comments: "Initial lead entry.", CallDate: "2025-11-01", LoggedBy: "System",
		}},
	}
}

func TestLogCall_DeductsDialingOverhead(t *testing.T) {
	lead := seededLead()
	if err := LogCall(lead, "Contacted", "Requested details", "", 95, "T1", logTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := lead.ContactHistory[len(lead.ContactHistory)-1]
	if entry.CallTimeSeconds != 75 {
		t.Errorf("effective duration = %d, want 75", entry.CallTimeSeconds)
	}
	if lead.CurrentStatus != "Contacted" {
		t.Errorf("currentStatus = %q, want Contacted", lead.CurrentStatus)
	}
}

func TestLogCall_ClampsShortCallsToZero(t *testing.T) {
	lead := seededLead()
	if err := LogCall(lead, "Contacted", "No answer, rang out", "", 15, "T1", logTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := lead.ContactHistory[len(lead.ContactHistory)-1]
	if entry.CallTimeSeconds != 0 {
		t.Errorf("effective duration = %d, want 0", entry.CallTimeSeconds)
	}
}

func TestLogCall_RejectsShortComments(t *testing.T) {
	lead := seededLead()
	err := LogCall(lead, "Contacted", "ok", "", 60, "T1", logTime)
	if !IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
	if len(lead.ContactHistory) != 1 {
		t.Errorf("history length = %d, want 1 (unchanged)", len(lead.ContactHistory))
	}
	if lead.CurrentStatus != "Pending" {
		t.Errorf("currentStatus mutated to %q on rejected log", lead.CurrentStatus)
	}
}

func TestLogCall_AppendsFollowupAndActor(t *testing.T) {
	lead := seededLead()
	if err := LogCall(lead, "Follow-Up", "Call back after docs", "2025-11-15", 120, "T2", logTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := lead.ContactHistory[len(lead.ContactHistory)-1]
	if entry.NextFollowupDate != "2025-11-15" {
		t.Errorf("followup = %q, want 2025-11-15", entry.NextFollowupDate)
	}
	if entry.LoggedBy != "T2" {
		t.Errorf("loggedBy = %q, want T2", entry.LoggedBy)
	}
	if entry.CallDate != "2025-11-12" {
		t.Errorf("callDate = %q, want 2025-11-12", entry.CallDate)
	}
}

func TestNewLead_SynthesizesCreationEntry(t *testing.T) {
	req := &models.LeadRequest{
		CustomerName: "Deepa K.", CustomerPhone: "8765432109",
		ProductRequirement: "Digital Marketing",
	}
	lead := NewLead(req, models.RoleTelecaller, "T1", "Priya", logTime)

	if len(lead.ContactHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(lead.ContactHistory))
	}
	if lead.ContactHistory[0].Comments != creationComment {
		t.Errorf("creation comment = %q", lead.ContactHistory[0].Comments)
	}
	if lead.ContactHistory[0].CallTimeSeconds != 0 {
		t.Errorf("creation entry duration = %d, want 0", lead.ContactHistory[0].CallTimeSeconds)
	}
	if lead.CurrentStatus != "Pending" {
		t.Errorf("default status = %q, want Pending", lead.CurrentStatus)
	}
	if lead.Source != "Manual (Priya)" {
		t.Errorf("source = %q", lead.Source)
	}
}

func TestNewLead_AssignsExactlyOneOwner(t *testing.T) {
	req := &models.LeadRequest{CustomerName: "x", CustomerPhone: "1", ProductRequirement: "Loans"}

	tests := []struct {
		role                           models.Role
		telecaller, franchise, partner string
	}{
		{models.RoleTelecaller, "T1", "", ""},
		{models.RoleFranchise, "", "F1", ""},
		{models.RolePartner, "", "", "P1"},
		{models.RoleAdmin, "", "", ""},
	}
	for _, tt := range tests {
		actor := "T1"
		switch tt.role {
		case models.RoleFranchise:
			actor = "F1"
		case models.RolePartner:
			actor = "P1"
		case models.RoleAdmin:
			actor = "ADMIN"
		}
		lead := NewLead(req, tt.role, actor, "n", logTime)
		if lead.TelecallerID != tt.telecaller || lead.AssignedFranchiseID != tt.franchise || lead.AssignedPartnerID != tt.partner {
			t.Errorf("role %s: assignment = (%q,%q,%q), want (%q,%q,%q)", tt.role,
				lead.TelecallerID, lead.AssignedFranchiseID, lead.AssignedPartnerID,
				tt.telecaller, tt.franchise, tt.partner)
		}
	}
}

func TestCreateThenLog_HistoryLengthTwo(t *testing.T) {
	req := &models.LeadRequest{CustomerName: "x", CustomerPhone: "1", ProductRequirement: "Loans"}
	lead := NewLead(req, models.RoleTelecaller, "T1", "Priya", logTime)
	if err := LogCall(lead, "Contacted", "First touch", "", 40, "T1", logTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lead.ContactHistory) != 2 {
		t.Errorf("history length = %d, want 2", len(lead.ContactHistory))
	}
}

func TestMetrics_CountsOnlyActorEntries(t *testing.T) {
	lead := seededLead()
	_ = LogCall(lead, "Contacted", "Requested details", "", 95, "T1", logTime)  // 75s
	_ = LogCall(lead, "Interested", "Shared documents", "", 170, "T1", logTime) // 150s
	_ = LogCall(lead, "Follow-Up", "Handled by franchise", "", 120, "F1", logTime)

	m := Metrics([]models.Lead{*lead}, "T1")
	if m.TotalCalls != 2 {
		t.Errorf("totalCalls = %d, want 2", m.TotalCalls)
	}
	if m.TotalTalkTimeSeconds != 225 {
		t.Errorf("talkTime = %d, want 225", m.TotalTalkTimeSeconds)
	}
	if m.AssignedLeads != 1 {
		t.Errorf("assignedLeads = %d, want 1", m.AssignedLeads)
	}
	if m.StatusCounts["Follow-Up"] != 1 {
		t.Errorf("statusCounts = %v", m.StatusCounts)
	}
}

func TestOwnedBy(t *testing.T) {
	lead := seededLead()
	if !OwnedBy(lead, models.RoleTelecaller, "T1") {
		t.Error("T1 should own the lead")
	}
	if OwnedBy(lead, models.RoleTelecaller, "T2") {
		t.Error("T2 should not own the lead")
	}
	if !OwnedBy(lead, models.RoleAdmin, "ADMIN") {
		t.Error("admin sees every lead")
	}
	if OwnedBy(lead, models.RoleFranchise, "F1") {
		t.Error("unassigned franchise should not own the lead")
	}
}
