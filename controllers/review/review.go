package review

import (
	"errors"

	"campusstay/logger"
	reviewService "campusstay/services/review"
	"campusstay/types"
	reviewTypes "campusstay/types/review"
	"campusstay/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReviewController handles review submission and listing.
type ReviewController struct {
	DB      *gorm.DB
	Reviews *reviewService.Service
	Logger  *logger.AsyncLogger
}

func NewReviewController(db *gorm.DB, reviews *reviewService.Service, asyncLogger *logger.AsyncLogger) *ReviewController {
	return &ReviewController{DB: db, Reviews: reviews, Logger: asyncLogger}
}

// Store submits a review for an accommodation the caller has paid for.
func (rc *ReviewController) Store(c *fiber.Ctx) error {
	var req reviewTypes.ReviewCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
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

	userID, err := utils.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	r, err := rc.Reviews.Submit(c.UserContext(), userID, req.AccommodationID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviewService.ErrAccommodationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Accommodation not found",
				Status:  fiber.StatusNotFound,
			})
		case errors.Is(err, reviewService.ErrNotAllowed):
			return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
				Message: "You can only review accommodations you have booked and paid for",
				Status:  fiber.StatusForbidden,
			})
		case errors.Is(err, reviewService.ErrAlreadyReviewed):
			return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
				Message: "You have already reviewed this accommodation",
				Status:  fiber.StatusConflict,
			})
		default:
			logger.Error("Review submission failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Error submitting review",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Review submitted successfully",
		Data:    r,
	})
}

// Index lists the reviews of one accommodation.
func (rc *ReviewController) Index(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid accommodation id",
			Status:  fiber.StatusBadRequest,
		})
	}

	reviews, err := rc.Reviews.ListForAccommodation(c.UserContext(), uint(id))
	if err != nil {
		logger.Error("Failed to load reviews", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Error loading reviews",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reviews loaded",
		Data:    reviews,
	})
}
