// models/lead.go
package models

// Lead statuses used by dashboards and call logging. The vocabulary is
// advisory: admins may enter custom values and no transition is forbidden.
var LeadStatusOptions = []string{
	"Pending", "Contacted", "Interested", "Not Interested", "Follow-Up",
	"Appointment Scheduled", "Appointment Conducted", "Cancelled",
}

// ContactHistoryEntry is one logged interaction on a lead. Entries are
// append-only; none is ever edited or removed.
type ContactHistoryEntry struct {
	Status           string `json:"status" bson:"status"`
	Comments         string `json:"comments" bson:"comments"`
	CallDate         string `json:"callDate" bson:"callDate"`
	CallTimeSeconds  int    `json:"callTimeSeconds" bson:"callTimeSeconds"`
	NextFollowupDate string `json:"nextFollowupDate,omitempty" bson:"nextFollowupDate,omitempty"`
	LoggedBy         string `json:"loggedBy" bson:"loggedBy"`
}

// Lead model. At most one of TelecallerID / AssignedFranchiseID /
// AssignedPartnerID is set, depending on who created or owns the lead.
// CurrentStatus always equals the status of the newest history entry.
type Lead struct {
	LeadID              int64                 `json:"leadId" bson:"_id"`
	TelecallerID        string                `json:"telecallerId,omitempty" bson:"telecallerId,omitempty"`
	AssignedFranchiseID string                `json:"assignedFranchiseId,omitempty" bson:"assignedFranchiseId,omitempty"`
	AssignedPartnerID   string                `json:"assignedPartnerId,omitempty" bson:"assignedPartnerId,omitempty"`
	CustomerName        string                `json:"customerName" bson:"customerName"`
	CustomerPhone       string                `json:"customerPhone" bson:"customerPhone"`
	ProductRequirement  string                `json:"productRequirement" bson:"productRequirement"`
	Source              string                `json:"source" bson:"source"`
	CurrentStatus       string                `json:"currentStatus" bson:"currentStatus"`
	AssignedScriptID    int64                 `json:"assignedScriptId,omitempty" bson:"assignedScriptId,omitempty"`
	ContactHistory      []ContactHistoryEntry `json:"contactHistory" bson:"contactHistory"`
}

// LeadRequest is the body for creating a lead from a dashboard.
type LeadRequest struct {
	CustomerName       string `json:"customerName" validate:"required"`
	CustomerPhone      string `json:"customerPhone" validate:"required"`
	ProductRequirement string `json:"productRequirement" validate:"required"`
	CurrentStatus      string `json:"currentStatus,omitempty"`
	AssignedScriptID   int64  `json:"assignedScriptId,omitempty"`
}

// LogCallRequest is the body for POST /api/leads/:id/calls.
type LogCallRequest struct {
	Status           string `json:"status" validate:"required"`
	Comments         string `json:"comments" validate:"required"`
	NextFollowupDate string `json:"nextFollowupDate,omitempty"`
	DurationSeconds  int    `json:"durationSeconds" validate:"gte=0"`
}

// AgentMetrics are derived per-actor call statistics, recomputed on demand.
type AgentMetrics struct {
	AssignedLeads         int            `json:"assignedLeads"`
	TotalCalls            int            `json:"totalCalls"`
	TotalTalkTimeSeconds  int            `json:"totalTalkTimeSeconds"`
	StatusCounts          map[string]int `json:"statusCounts"`
	TargetDials           int            `json:"targetDials"`
	TargetTalkTimeMinutes int            `json:"targetTalkTimeMinutes"`
}
