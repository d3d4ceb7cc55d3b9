package booking

import (
	"errors"
	"fmt"

	"campusstay/logger"
	bookingModel "campusstay/models/booking"
	bookingService "campusstay/services/booking"
	"campusstay/types"
	bookingTypes "campusstay/types/booking"
	"campusstay/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB       *gorm.DB
	Bookings *bookingService.Service
	Logger   *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, bookings *bookingService.Service, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		DB:       db,
		Bookings: bookings,
		Logger:   asyncLogger,
	}
}

// Store books a room and returns the hosted checkout redirect.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
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

	b, session, err := bc.Bookings.Create(c.UserContext(), userID, req.AccommodationID, bookingModel.Duration(req.Duration))
	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrAccommodationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Accommodation not found",
				Status:  fiber.StatusNotFound,
			})
		case errors.Is(err, bookingService.ErrAccommodationFull):
			return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
				Message: "Sorry, this accommodation is fully booked",
				Status:  fiber.StatusConflict,
			})
		case errors.Is(err, bookingService.ErrAmountBelowMinimum):
			return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
				Message: "Total price must be at least R 0.50",
				Status:  fiber.StatusConflict,
			})
		case errors.Is(err, bookingService.ErrProvider):
			return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
				Message: "Payment setup failed. Please try again",
				Status:  fiber.StatusBadGateway,
			})
		default:
			logger.Error("Booking creation failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "An error occurred during booking. Please try again",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created, redirect to checkout",
		Data: bookingTypes.BookingCreateResponse{
			BookingID:   b.ID,
			TotalPrice:  b.TotalPrice,
			Months:      b.Months,
			SessionID:   session.ID,
			RedirectURL: session.RedirectURL,
		},
	})
}

// PaymentSuccess is the checkout success callback: it reconciles the session
// with the provider and marks the booking paid.
func (bc *BookingController) PaymentSuccess(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid payment session",
			Status:  fiber.StatusBadRequest,
		})
	}

	b, err := bc.Bookings.ConfirmPayment(c.UserContext(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Booking not found for payment session",
				Status:  fiber.StatusNotFound,
			})
		case errors.Is(err, bookingService.ErrPaymentNotCompleted):
			return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
				Message: "Payment has not been completed",
				Status:  fiber.StatusConflict,
			})
		case errors.Is(err, bookingService.ErrProvider):
			return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
				Message: "Payment verification failed",
				Status:  fiber.StatusBadGateway,
			})
		default:
			logger.Error("Payment confirmation failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Payment verification failed",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment successful! Please leave a review",
		Data:    b,
	})
}

// PaymentCancel is the checkout cancel callback.
func (bc *BookingController) PaymentCancel(c *fiber.Ctx) error {
	bookingID, err := c.ParamsInt("id")
	if err != nil || bookingID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid booking id",
			Status:  fiber.StatusBadRequest,
		})
	}

	b, err := bc.Bookings.Cancel(c.UserContext(), uint(bookingID))
	if err != nil {
		if errors.Is(err, bookingService.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Booking not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error(fmt.Sprintf("Payment cancel failed for booking %d", bookingID), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Error processing cancellation",
			Status:  fiber.StatusInternalServerError,
		})
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment cancelled",
		Data:    b,
	})
}

// MyBookings lists the caller's bookings, newest first.
func (bc *BookingController) MyBookings(c *fiber.Ctx) error {
	userID, err := utils.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var bookings []bookingModel.Booking
	if err := bc.DB.WithContext(c.UserContext()).
		Preload("Accommodation").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to load bookings for user %d", userID), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Error loading your bookings",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings loaded",
		Data:    bookings,
	})
}

// Index lists all bookings (admin only).
func (bc *BookingController) Index(c *fiber.Ctx) error {
	var bookings []bookingModel.Booking
	if err := bc.DB.WithContext(c.UserContext()).
		Preload("User").
		Preload("Accommodation").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		logger.Error("Failed to load bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Error loading bookings",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings loaded",
		Data:    bookings,
	})
}
