// models/script.go
package models

// SubScript is a titled follow-on snippet under a central script.
type SubScript struct {
	Title  string `json:"title" bson:"title"`
	Script string `json:"script" bson:"script"`
}

// CentralScript is a call script managed by admin and assigned to agents
// by username.
type CentralScript struct {
	ID            int64       `json:"id" bson:"_id"`
	Category      string      `json:"category" bson:"category"`
	MainScript    string      `json:"mainScript" bson:"mainScript"`
	SubScripts    []SubScript `json:"subScripts,omitempty" bson:"subScripts,omitempty"`
	AssignedRoles []string    `json:"assignedRoles,omitempty" bson:"assignedRoles,omitempty"`
}

// ScriptRequest is the admin body for script create/update.
type ScriptRequest struct {
	Category      string      `json:"category" validate:"required"`
	MainScript    string      `json:"mainScript" validate:"required"`
	SubScripts    []SubScript `json:"subScripts,omitempty"`
	AssignedRoles []string    `json:"assignedRoles,omitempty"`
}
