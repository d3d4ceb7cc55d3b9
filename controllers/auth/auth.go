package auth

import (
	"errors"
	"fmt"
	"os"

	"campusstay/logger"
	userModel "campusstay/models/user"
	"campusstay/types"
	authTypes "campusstay/types/auth"
	"campusstay/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles registration, login and profile requests.
type AuthController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{DB: db, Logger: asyncLogger}
}

// Helper function to set secure cookies based on environment
func (ac *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Register creates a new student account.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	// Unique email / student number / id number / phone
	var count int64
	if err := ac.DB.Model(&userModel.User{}).
		Where("email = ? OR student_number = ? OR id_number = ? OR phone = ?",
			req.Email, req.StudentNumber, req.IDNumber, req.Phone).
		Count(&count).Error; err != nil {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "An account with these details already exists",
			Status:  fiber.StatusConflict,
		})
	}

	newUser := userModel.User{
		FullName:      req.FullName,
		Email:         req.Email,
		StudentNumber: req.StudentNumber,
		IDNumber:      req.IDNumber,
		Phone:         req.Phone,
	}
	if err := newUser.SetPassword(req.Password); err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Registration failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := ac.DB.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Registration failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("New user registered: " + newUser.Email)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Registration successful",
		Data:    newUser,
	})
}

// Login verifies credentials and issues an access token.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var u userModel.User
	err := ac.DB.Where("email = ?", req.Email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !u.CheckPassword(req.Password)) {
		logger.Warning("Failed login attempt for email: " + req.Email)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}
	if err != nil {
		logger.Error("Database error during login", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	token, err := utils.GenerateAccessToken(&u)
	if err != nil {
		logger.Error("Failed to generate access token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	ac.setSecureCookie(c, "access", token, 60*60*24)
	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User logged in: " + u.Email)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data:    u,
	})
}

// Profile returns the authenticated user's record.
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	userID, err := utils.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var u userModel.User
	if err := ac.DB.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error(fmt.Sprintf("Failed to load user %d", userID), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile loaded",
		Data:    u,
	})
}

// Logout clears the access cookie.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	ac.setSecureCookie(c, "access", "", -1)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out",
	})
}
