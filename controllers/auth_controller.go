// controllers/auth_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nirmaantech/portal_backend/config"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/models"
	"github.com/nirmaantech/portal_backend/repositories"
	"github.com/nirmaantech/portal_backend/services"
	"github.com/nirmaantech/portal_backend/utils"
)

// AuthController contains authentication logic
type AuthController struct {
	DB            *mongo.Client
	userRepo      *repositories.UserRepository
	logger        *log.Logger
	loginAttempts map[string]struct {
		count       int
		lastAttempt time.Time
	}
	loginAttemptsMu sync.RWMutex
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client) *AuthController {
	ac := &AuthController{
		DB:       db,
		userRepo: repositories.NewUserRepository(db),
		logger:   log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
		loginAttempts: make(map[string]struct {
			count       int
			lastAttempt time.Time
		}),
	}

	go ac.startLoginAttemptCleanupRoutine()

	return ac
}

func (ac *AuthController) startLoginAttemptCleanupRoutine() {
	for {
		time.Sleep(1 * time.Hour)
		ac.loginAttemptsMu.Lock()
		now := time.Now()
		for identifier, attempts := range ac.loginAttempts {
			if now.Sub(attempts.lastAttempt) > 30*time.Minute {
				delete(ac.loginAttempts, identifier)
			}
		}
		ac.loginAttemptsMu.Unlock()
	}
}

func (ac *AuthController) recordFailedAttempt(identifier string) {
	ac.loginAttemptsMu.Lock()
	attempts := ac.loginAttempts[identifier]
	ac.loginAttempts[identifier] = struct {
		count       int
		lastAttempt time.Time
	}{count: attempts.count + 1, lastAttempt: time.Now()}
	ac.loginAttemptsMu.Unlock()
}

// Login handler. The dashboard sends the selected role along with the
// short username; a valid password under the wrong role tab still fails.
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var loginReq models.LoginRequest
	if err := c.Bind(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Username and password are required",
		})
	}
	if !loginReq.Role.Valid() {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown role",
		})
	}

	identifier := string(loginReq.Role) + ":" + loginReq.Username

	ac.loginAttemptsMu.RLock()
	attempts, exists := ac.loginAttempts[identifier]
	ac.loginAttemptsMu.RUnlock()

	if exists && attempts.count >= 5 && time.Since(attempts.lastAttempt) < 30*time.Minute {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Status:  http.StatusTooManyRequests,
			Message: "Too many failed login attempts. Please try again later.",
		})
	}

	user, err := ac.userRepo.FindByUsername(ctx, loginReq.Username, loginReq.Role)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ac.recordFailedAttempt(identifier)
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid credentials",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to find user",
		})
	}

	if err := utils.CheckPassword(loginReq.Password, user.Password); err != nil {
		ac.recordFailedAttempt(identifier)
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	ac.loginAttemptsMu.Lock()
	delete(ac.loginAttempts, identifier)
	ac.loginAttemptsMu.Unlock()

	// Basic franchise accounts are refused once the trial window lapses
	now := time.Now()
	if !services.LoginAllowed(user, now) {
		trial := services.State(user, now)
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Your trial period has expired. Please upgrade to continue.",
			Data:    trial,
		})
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	user.Password = ""

	var rememberMeToken string
	if loginReq.RememberMe {
		redisClient := config.GetRedisClient()
		if redisClient != nil {
			rememberMeToken, err = utils.GenerateRememberMeToken()
			if err == nil {
				credentials := utils.RememberedCredentials{
					Username:  user.Username,
					Role:      user.Role,
					UserID:    user.ID.Hex(),
					ExpiresAt: now.AddDate(0, 1, 0),
				}

				err = utils.StoreRememberedCredentials(redisClient, rememberMeToken, credentials, 30*24*time.Hour)
				if err != nil {
					ac.logger.Printf("Failed to store remember me credentials: %v", err)
					rememberMeToken = ""
				}
			}
		}
	}

	responseData := map[string]interface{}{
		"token":        token,
		"refreshToken": refreshToken,
		"user":         user,
		"trial":        services.State(user, now),
	}
	if rememberMeToken != "" {
		responseData["rememberMeToken"] = rememberMeToken
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data:    responseData,
	})
}

// LoginWithRememberToken exchanges a stored remember-me token for a session
func (ac *AuthController) LoginWithRememberToken(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Remember me token is required",
		})
	}

	redisClient := config.GetRedisClient()
	credentials, err := utils.RetrieveRememberedCredentials(redisClient, req.Token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid or expired remember me token",
		})
	}

	user, err := ac.userRepo.FindByUsername(ctx, credentials.Username, credentials.Role)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Account no longer exists",
		})
	}

	now := time.Now()
	if !services.LoginAllowed(user, now) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Your trial period has expired. Please upgrade to continue.",
			Data:    services.State(user, now),
		})
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	user.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":        token,
			"refreshToken": refreshToken,
			"user":         user,
			"trial":        services.State(user, now),
		},
	})
}

// Register handles self-registration for telecaller, franchise, partner
// and vendor accounts. Admin accounts are seeded, never registered.
func (ac *AuthController) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RegisterRequest
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

	if req.Role == models.RoleAdmin || !req.Role.Valid() {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Registration is not available for this role",
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

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	now := time.Now()
	user := models.User{
		Username: utils.GenerateUsername(req.Role, now),
		Name:     utils.SanitizeInput(req.Name),
		Password: hashedPassword,
		Role:     req.Role,
		Phone:    phone,
		Email:    email,
	}

	// Franchise and vendor accounts start on the basic plan with the
	// trial clock running from today
	if req.Role == models.RoleFranchise || req.Role == models.RoleVendor {
		user.City = utils.SanitizeInput(req.City)
		user.Plan = models.PlanBasic
		user.RegistrationDate = now.Format("2006-01-02")
	}

	if err := ac.userRepo.Insert(ctx, &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Username already exists, please try again",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	user.Password = ""

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Registration successful. Use your assigned ID to log in.",
		Data: map[string]interface{}{
			"user":     user,
			"username": user.Username,
		},
	})
}

// Logout invalidates the JWT and removes the remember-me token if sent
func (ac *AuthController) Logout(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	// Blacklist the raw token until its natural expiry
	if authHeader := c.Request().Header.Get("Authorization"); len(authHeader) > 7 {
		raw := authHeader[7:]
		expiry := time.Unix(claims.ExpiresAt, 0)
		if claims.ExpiresAt == 0 {
			expiry = time.Now().Add(24 * time.Hour)
		}
		middleware.BlacklistToken(raw, expiry)
	}

	var req struct {
		RememberMeToken string `json:"rememberMeToken,omitempty"`
	}
	if err := c.Bind(&req); err == nil && req.RememberMeToken != "" {
		if redisClient := config.GetRedisClient(); redisClient != nil {
			if err := utils.RemoveRememberedCredentials(redisClient, req.RememberMeToken); err != nil {
				ac.logger.Printf("Failed to remove remember me token: %v", err)
			}
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out successfully",
	})
}

// GetTrialStatus returns the caller's subscription countdown
func (ac *AuthController) GetTrialStatus(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, ac.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Trial status retrieved successfully",
		Data:    services.State(user, time.Now()),
	})
}
