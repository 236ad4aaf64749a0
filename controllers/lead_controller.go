// controllers/lead_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nirmaantech/portal_backend/config"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/models"
	"github.com/nirmaantech/portal_backend/services"
	"github.com/nirmaantech/portal_backend/utils"
	"github.com/nirmaantech/portal_backend/websocket"
)

// LeadController manages the lead lifecycle for all staff roles
type LeadController struct {
	DB  *mongo.Client
	Hub *websocket.Hub
}

func NewLeadController(db *mongo.Client, hub *websocket.Hub) *LeadController {
	return &LeadController{DB: db, Hub: hub}
}

func (lc *LeadController) leadCollection() *mongo.Collection {
	return config.GetCollection(lc.DB, "leads")
}

// ownershipFilter narrows a query to the leads the actor may see
func ownershipFilter(role models.Role, username string) bson.M {
	switch role {
	case models.RoleAdmin:
		return bson.M{}
	case models.RoleTelecaller:
		return bson.M{"telecallerId": username}
	case models.RoleFranchise:
		return bson.M{"assignedFranchiseId": username}
	case models.RolePartner:
		return bson.M{"assignedPartnerId": username}
	}
	return bson.M{"_id": nil}
}

func (lc *LeadController) findMyLeads(ctx context.Context, role models.Role, username string) ([]models.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := lc.leadCollection().Find(ctx, ownershipFilter(role, username), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetMyLeads lists the leads owned by the caller (all leads for admin)
func (lc *LeadController) GetMyLeads(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	leads, err := lc.findMyLeads(ctx, middleware.ExtractRole(c), middleware.ExtractUsername(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch leads",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Leads retrieved successfully",
		Data:    leads,
	})
}

// CreateLead adds a lead owned by the caller via their role's assignment
// field. Admin-created leads start unassigned.
func (lc *LeadController) CreateLead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	req.CustomerName = utils.SanitizeInput(req.CustomerName)
	req.ProductRequirement = utils.SanitizeInput(req.ProductRequirement)

	actor, err := utils.GetUserFromToken(c, lc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Failed to identify user",
		})
	}

	lead := services.NewLead(&req, actor.Role, actor.Username, actor.Name, time.Now())

	if _, err := lc.leadCollection().InsertOne(ctx, lead); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create lead",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Lead created successfully",
		Data:    lead,
	})
}

// getOwnedLead loads a lead and enforces ownership for the caller
func (lc *LeadController) getOwnedLead(ctx context.Context, c echo.Context, id int64) (*models.Lead, error) {
	var lead models.Lead
	if err := lc.leadCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&lead); err != nil {
		return nil, err
	}

	if !services.OwnedBy(&lead, middleware.ExtractRole(c), middleware.ExtractUsername(c)) {
		return nil, mongo.ErrNoDocuments
	}
	return &lead, nil
}

// GetLead returns one lead with its full contact history
func (lc *LeadController) GetLead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lead id",
		})
	}

	lead, err := lc.getOwnedLead(ctx, c, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Lead not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead retrieved successfully",
		Data:    lead,
	})
}

// LogCall appends a call outcome to a lead's history. Short comments
// are rejected before anything is written.
func (lc *LeadController) LogCall(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lead id",
		})
	}

	var req models.LogCallRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	lead, err := lc.getOwnedLead(ctx, c, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Lead not found",
		})
	}

	actorID := middleware.ExtractUsername(c)
	req.Comments = utils.SanitizeInput(req.Comments)

	if err := services.LogCall(lead, req.Status, req.Comments, req.NextFollowupDate, req.DurationSeconds, actorID, time.Now()); err != nil {
		if services.IsValidation(err) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to log call",
		})
	}

	newEntry := lead.ContactHistory[len(lead.ContactHistory)-1]
	_, err = lc.leadCollection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"contactHistory": newEntry},
			"$set":  bson.M{"currentStatus": lead.CurrentStatus},
		})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save call log",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Call logged successfully",
		Data:    lead,
	})
}

// GetMetrics recomputes the caller's dial and talk time stats on demand
func (lc *LeadController) GetMetrics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	username := middleware.ExtractUsername(c)
	leads, err := lc.findMyLeads(ctx, middleware.ExtractRole(c), username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch leads",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Metrics computed successfully",
		Data:    services.Metrics(leads, username),
	})
}

// GetActivityReport renders the printable HTML daily report
func (lc *LeadController) GetActivityReport(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	actor, err := utils.GetUserFromToken(c, lc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Failed to identify user",
		})
	}

	leads, err := lc.findMyLeads(ctx, actor.Role, actor.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch leads",
		})
	}

	metrics := services.Metrics(leads, actor.Username)

	html, err := utils.RenderActivityReport(actor.Name, actor.Username, leads,
		metrics.TotalCalls, metrics.TotalTalkTimeSeconds, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to render report",
		})
	}

	return c.HTML(http.StatusOK, html)
}

// AssignLead moves a lead to another agent (admin only). The previous
// assignment for that role is replaced; history is untouched.
// assignmentUpdate builds the update that moves a lead to one owner.
// A lead carries at most one assignment field, so the other two are
// cleared in the same write.
func assignmentUpdate(telecallerID, franchiseID, partnerID string) (bson.M, error) {
	set := bson.M{}
	unset := bson.M{}

	fields := []struct {
		name  string
		value string
	}{
		{"telecallerId", telecallerID},
		{"assignedFranchiseId", franchiseID},
		{"assignedPartnerId", partnerID},
	}
	for _, f := range fields {
		if f.value != "" {
			set[f.name] = f.value
		} else {
			unset[f.name] = ""
		}
	}

	if len(set) == 0 {
		return nil, errors.New("no assignment provided")
	}
	if len(set) > 1 {
		return nil, errors.New("a lead can only be assigned to one agent")
	}

	return bson.M{"$set": set, "$unset": unset}, nil
}

func (lc *LeadController) AssignLead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lead id",
		})
	}

	var req struct {
		TelecallerID string `json:"telecallerId,omitempty"`
		FranchiseID  string `json:"franchiseId,omitempty"`
		PartnerID    string `json:"partnerId,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	update, err := assignmentUpdate(req.TelecallerID, req.FranchiseID, req.PartnerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result := lc.leadCollection().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var lead models.Lead
	if err := result.Decode(&lead); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Lead not found",
		})
	}

	if lc.Hub != nil {
		for _, assignee := range []string{req.TelecallerID, req.FranchiseID, req.PartnerID} {
			if assignee != "" {
				lc.Hub.NotifyLeadAssigned(assignee, &lead)
			}
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead assigned successfully",
		Data:    lead,
	})
}

// DeleteLead removes a lead entirely (admin only)
func (lc *LeadController) DeleteLead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lead id",
		})
	}

	result, err := lc.leadCollection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete lead",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Lead not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead deleted successfully",
	})
}
