// controllers/admin_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nirmaantech/portal_backend/config"
	"github.com/nirmaantech/portal_backend/models"
	"github.com/nirmaantech/portal_backend/repositories"
	"github.com/nirmaantech/portal_backend/utils"
)

// AdminController handles user administration and catalog moderation
type AdminController struct {
	DB       *mongo.Client
	userRepo *repositories.UserRepository
	logger   *log.Logger
}

func NewAdminController(db *mongo.Client) *AdminController {
	return &AdminController{
		DB:       db,
		userRepo: repositories.NewUserRepository(db),
		logger:   log.New(os.Stdout, "[ADMIN] ", log.LstdFlags),
	}
}

func (ac *AdminController) userCollection() *mongo.Collection {
	return config.GetCollection(ac.DB, "users")
}

// GetUsers lists accounts, optionally filtered by ?role=
func (ac *AdminController) GetUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	role := models.Role(c.QueryParam("role"))
	if role != "" && !role.Valid() {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown role: " + string(role),
		})
	}

	users, err := ac.userRepo.ListByRole(ctx, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch users",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

// CreateUser adds an account with an admin-chosen username
func (ac *AdminController) CreateUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.AdminUserRequest
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
	if !req.Role.Valid() {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown role: " + string(req.Role),
		})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Password is required for new users",
		})
	}

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid phone number format",
		})
	}

	email := ""
	if req.Email != "" {
		email, err = utils.SanitizeEmail(req.Email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid email format",
			})
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	user := models.User{
		Username:         utils.SanitizeInput(req.Username),
		Name:             utils.SanitizeInput(req.Name),
		Password:         hashed,
		Role:             req.Role,
		City:             utils.SanitizeInput(req.City),
		Phone:            phone,
		Email:            email,
		Plan:             req.Plan,
		RegistrationDate: req.RegistrationDate,
	}

	if err := ac.userRepo.Insert(ctx, &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Username already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	ac.logger.Printf("Created %s account %s", user.Role, user.Username)
	user.Password = ""
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "User created successfully",
		Data:    user,
	})
}

// UpdateUser edits an account. Empty password leaves the current one.
func (ac *AdminController) UpdateUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	var req models.AdminUserRequest
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

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid phone number format",
		})
	}

	email := ""
	if req.Email != "" {
		email, err = utils.SanitizeEmail(req.Email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid email format",
			})
		}
	}

	set := bson.M{
		"username":  utils.SanitizeInput(req.Username),
		"name":      utils.SanitizeInput(req.Name),
		"role":      req.Role,
		"city":      utils.SanitizeInput(req.City),
		"phone":     phone,
		"email":     email,
		"updatedAt": time.Now(),
	}
	if req.Plan != "" {
		set["plan"] = req.Plan
	}
	if req.RegistrationDate != "" {
		set["registrationDate"] = req.RegistrationDate
	}
	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to hash password",
			})
		}
		set["password"] = hashed
	}

	result := ac.userCollection().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var user models.User
	if err := result.Decode(&user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Username already exists",
			})
		}
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User updated successfully",
		Data:    user,
	})
}

// DeleteUser removes an account. The last admin cannot be deleted.
func (ac *AdminController) DeleteUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	var target models.User
	if err := ac.userCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&target); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	if target.Role == models.RoleAdmin {
		count, err := ac.userCollection().CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
		if err == nil && count <= 1 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Cannot delete the last admin account",
			})
		}
	}

	if _, err := ac.userCollection().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete user",
		})
	}

	ac.logger.Printf("Deleted %s account %s", target.Role, target.Username)
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User deleted successfully",
	})
}

// SetProductVisibility toggles a product on or off the storefront
func (ac *AdminController) SetProductVisibility(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	var req struct {
		IsVisible bool `json:"isVisible"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	result := config.GetCollection(ac.DB, "products").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isVisible": req.IsVisible}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var product models.Product
	if err := result.Decode(&product); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product visibility updated",
		Data:    product,
	})
}

// GetOrderStatusOptions exposes the admin status vocabulary to the UI
func (ac *AdminController) GetOrderStatusOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Order status options",
		Data:    models.OrderStatusOptions,
	})
}
