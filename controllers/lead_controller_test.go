// controllers/lead_controller_test.go
package controllers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestAssignmentUpdateClearsPreviousOwner(t *testing.T) {
	update, err := assignmentUpdate("", "F1", "")
	if err != nil {
		t.Fatalf("assignmentUpdate returned error: %v", err)
	}

	set := update["$set"].(bson.M)
	if set["assignedFranchiseId"] != "F1" {
		t.Errorf("$set = %v, want assignedFranchiseId F1", set)
	}
	if len(set) != 1 {
		t.Errorf("$set = %v, want exactly one assignment field", set)
	}

	// Moving a telecaller-owned lead to a franchise must drop the
	// telecaller field, or the lead shows up for both agents.
	unset := update["$unset"].(bson.M)
	for _, field := range []string{"telecallerId", "assignedPartnerId"} {
		if _, ok := unset[field]; !ok {
			t.Errorf("$unset = %v, missing %s", unset, field)
		}
	}
}

func TestAssignmentUpdateRejectsBadRequests(t *testing.T) {
	if _, err := assignmentUpdate("", "", ""); err == nil {
		t.Error("empty assignment should be rejected")
	}
	if _, err := assignmentUpdate("T1", "F1", ""); err == nil {
		t.Error("assigning two agents at once should be rejected")
	}
}
