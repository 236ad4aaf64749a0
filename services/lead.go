// services/lead.go
package services

import (
	"fmt"
	"time"

	"github.com/nirmaantech/portal_backend/models"
)

const creationComment = "Lead added manually via dashboard."

// LogCall appends one contact-history entry to the lead and moves its
// current status. The raw duration loses a fixed dialing overhead before
// it counts as talk time, clamped at zero for calls that never connected.
// This is the only mutator of a lead's history; entries are never edited
// or removed after the fact.
func LogCall(lead *models.Lead, status, comments, followUpDate string, rawDurationSeconds int, actorID string, now time.Time) error {
	if len(comments) < 3 {
		return NewValidationError("comments must be at least 3 characters")
	}
	if status == "" {
		return NewValidationError("status is required")
	}

	effective := rawDurationSeconds - DialingOverheadSeconds
	if effective < 0 {
		effective = 0
	}

	lead.ContactHistory = append(lead.ContactHistory, models.ContactHistoryEntry{
		Status:           status,
		Comments:         comments,
		CallDate:         now.Format("2006-01-02"),
		CallTimeSeconds:  effective,
		NextFollowupDate: followUpDate,
		LoggedBy:         actorID,
	})
	lead.CurrentStatus = status
	return nil
}

// NewLead builds a lead with a synthetic creation entry so the history is
// never empty. Exactly one assignment field is set from the creator's
// role; an admin-created lead starts unassigned.
func NewLead(req *models.LeadRequest, role models.Role, actorID, actorName string, now time.Time) *models.Lead {
	status := req.CurrentStatus
	if status == "" {
		status = "Pending"
	}

	lead := &models.Lead{
		LeadID:             now.UnixMilli(),
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		ProductRequirement: req.ProductRequirement,
		Source:             fmt.Sprintf("Manual (%s)", actorName),
		CurrentStatus:      status,
		AssignedScriptID:   req.AssignedScriptID,
		ContactHistory: []models.ContactHistoryEntry{{
			Status:          status,
			Comments:        creationComment,
			CallDate:        now.Format("2006-01-02"),
			CallTimeSeconds: 0,
			LoggedBy:        actorID,
		}},
	}

	switch role {
	case models.RoleTelecaller:
		lead.TelecallerID = actorID
	case models.RoleFranchise:
		lead.AssignedFranchiseID = actorID
	case models.RolePartner:
		lead.AssignedPartnerID = actorID
	}
	return lead
}

// OwnedBy reports whether the lead belongs to the given actor for their
// role. Admin sees everything.
func OwnedBy(lead *models.Lead, role models.Role, actorID string) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleTelecaller:
		return lead.TelecallerID == actorID
	case models.RoleFranchise:
		return lead.AssignedFranchiseID == actorID
	case models.RolePartner:
		return lead.AssignedPartnerID == actorID
	}
	return false
}

// Metrics projects call statistics for one actor over their leads. Only
// history entries the actor logged are counted. The projection is
// recomputed on demand and never stored.
func Metrics(leads []models.Lead, actorID string) models.AgentMetrics {
	m := models.AgentMetrics{
		AssignedLeads:         len(leads),
		StatusCounts:          make(map[string]int),
		TargetDials:           AttendanceTarget.Dials,
		TargetTalkTimeMinutes: AttendanceTarget.TalkTimeMinutes,
	}
	for i := range leads {
		m.StatusCounts[leads[i].CurrentStatus]++
		for _, h := range leads[i].ContactHistory {
			if h.LoggedBy != actorID {
				continue
			}
			m.TotalCalls++
			m.TotalTalkTimeSeconds += h.CallTimeSeconds
		}
	}
	return m
}
