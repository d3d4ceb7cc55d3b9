package admin

import (
	"errors"
	"fmt"

	"campusstay/logger"
	userModel "campusstay/models/user"
	statsService "campusstay/services/stats"
	"campusstay/types"
	"campusstay/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminController serves the dashboard and user management endpoints. All of
// its routes sit behind the admin capability middleware.
type AdminController struct {
	DB     *gorm.DB
	Stats  *statsService.Service
	Logger *logger.AsyncLogger
}

func NewAdminController(db *gorm.DB, stats *statsService.Service, asyncLogger *logger.AsyncLogger) *AdminController {
	return &AdminController{DB: db, Stats: stats, Logger: asyncLogger}
}

// Dashboard returns the aggregate counters for the admin dashboard.
func (ad *AdminController) Dashboard(c *fiber.Ctx) error {
	stats, err := ad.Stats.Dashboard(c.UserContext())
	if err != nil {
		logger.Error("Failed to compute dashboard stats", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Error loading dashboard",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard loaded",
		Data:    stats,
	})
}

// Users lists every registered user.
func (ad *AdminController) Users(c *fiber.Ctx) error {
	var users []userModel.User
	if err := ad.DB.WithContext(c.UserContext()).Find(&users).Error; err != nil {
		logger.Error("Failed to load users", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Error loading users",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Users loaded",
		Data:    users,
	})
}

// Promote grants the admin flag to a user.
func (ad *AdminController) Promote(c *fiber.Ctx) error {
	return ad.setAdminFlag(c, true)
}

// Demote removes the admin flag from a user.
func (ad *AdminController) Demote(c *fiber.Ctx) error {
	return ad.setAdminFlag(c, false)
}

func (ad *AdminController) setAdminFlag(c *fiber.Ctx, isAdmin bool) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid user id",
			Status:  fiber.StatusBadRequest,
		})
	}

	callerID, err := utils.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}
	if uint(id) == callerID {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "You cannot modify your own admin status",
			Status:  fiber.StatusConflict,
		})
	}

	var u userModel.User
	err = ad.DB.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "User not found",
			Status:  fiber.StatusNotFound,
		})
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load user %d", id), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := ad.DB.Model(&u).Update("is_admin", isAdmin).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to update admin flag for user %d", id), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Error updating user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	ad.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("User %d admin flag set to %t by %d", id, isAdmin, callerID))

	message := u.FullName + " is no longer an admin"
	if isAdmin {
		message = u.FullName + " is now an admin"
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    u,
	})
}
