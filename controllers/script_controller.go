// controllers/script_controller.go
package controllers

import (
	"context"
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
	"github.com/nirmaantech/portal_backend/utils"
)

// ScriptController manages the central call-script library
type ScriptController struct {
	DB *mongo.Client
}

func NewScriptController(db *mongo.Client) *ScriptController {
	return &ScriptController{DB: db}
}

func (sc *ScriptController) scriptCollection() *mongo.Collection {
	return config.GetCollection(sc.DB, "scripts")
}

// GetMyScripts returns scripts assigned to the caller. Admin sees the
// whole library.
func (sc *ScriptController) GetMyScripts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	role := middleware.ExtractRole(c)
	username := middleware.ExtractUsername(c)

	filter := bson.M{}
	if role != models.RoleAdmin {
		filter["assignedRoles"] = username
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := sc.scriptCollection().Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch scripts",
		})
	}
	defer cursor.Close(ctx)

	var scripts []models.CentralScript
	if err := cursor.All(ctx, &scripts); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode scripts",
		})
	}
	if scripts == nil {
		scripts = []models.CentralScript{}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Scripts retrieved successfully",
		Data:    scripts,
	})
}

// CreateScript adds a script to the library (admin only)
func (sc *ScriptController) CreateScript(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ScriptRequest
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

	script := models.CentralScript{
		ID:            time.Now().UnixMilli(),
		Category:      utils.SanitizeInput(req.Category),
		MainScript:    req.MainScript,
		SubScripts:    req.SubScripts,
		AssignedRoles: req.AssignedRoles,
	}

	if _, err := sc.scriptCollection().InsertOne(ctx, script); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create script",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Script created successfully",
		Data:    script,
	})
}

// UpdateScript replaces a script's content and assignments (admin only)
func (sc *ScriptController) UpdateScript(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid script id",
		})
	}

	var req models.ScriptRequest
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

	update := bson.M{"$set": bson.M{
		"category":      utils.SanitizeInput(req.Category),
		"mainScript":    req.MainScript,
		"subScripts":    req.SubScripts,
		"assignedRoles": req.AssignedRoles,
	}}

	result := sc.scriptCollection().FindOneAndUpdate(ctx,
		bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var script models.CentralScript
	if err := result.Decode(&script); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Script not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Script updated successfully",
		Data:    script,
	})
}

// DeleteScript removes a script from the library (admin only)
func (sc *ScriptController) DeleteScript(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid script id",
		})
	}

	result, err := sc.scriptCollection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete script",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Script not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Script deleted successfully",
	})
}
