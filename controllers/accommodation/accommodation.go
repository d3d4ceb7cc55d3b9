package accommodation

import (
	"errors"
	"fmt"

	"campusstay/logger"
	accommodationModel "campusstay/models/accommodation"
	bookingModel "campusstay/models/booking"
	reviewModel "campusstay/models/review"
	favoriteService "campusstay/services/favorite"
	reviewService "campusstay/services/review"
	"campusstay/types"
	accommodationTypes "campusstay/types/accommodation"
	"campusstay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AccommodationController serves the public catalog and the admin CRUD.
type AccommodationController struct {
	DB        *gorm.DB
	Reviews   *reviewService.Service
	Favorites *favoriteService.Service
	Logger    *logger.AsyncLogger
}

func NewAccommodationController(db *gorm.DB, reviews *reviewService.Service, favorites *favoriteService.Service, asyncLogger *logger.AsyncLogger) *AccommodationController {
	return &AccommodationController{
		DB:        db,
		Reviews:   reviews,
		Favorites: favorites,
		Logger:    asyncLogger,
	}
}

// List returns the active listings, optionally filtered by location and
// price range.
func (ac *AccommodationController) List(c *fiber.Ctx) error {
	var q accommodationTypes.SearchQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid search filters",
			Status:  fiber.StatusBadRequest,
		})
	}

	query := ac.DB.WithContext(c.UserContext()).Where("is_active = ?", true)
	if q.Location != "" {
		query = query.Where("location ILIKE ?", "%"+q.Location+"%")
	}
	if q.MinPrice > 0 {
		query = query.Where("price_per_month >= ?", q.MinPrice)
	}
	if q.MaxPrice > 0 {
		query = query.Where("price_per_month <= ?", q.MaxPrice)
	}

	var accommodations []accommodationModel.Accommodation
	if err := query.Find(&accommodations).Error; err != nil {
		logger.Error("Failed to load accommodations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Accommodations loaded",
		Data:    accommodations,
	})
}

// Featured returns three random active listings for the landing page.
func (ac *AccommodationController) Featured(c *fiber.Ctx) error {
	var accommodations []accommodationModel.Accommodation
	if err := ac.DB.WithContext(c.UserContext()).
		Where("is_active = ?", true).
		Order("RANDOM()").
		Limit(3).
		Find(&accommodations).Error; err != nil {
		logger.Error("Failed to load featured accommodations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Featured accommodations loaded",
		Data:    accommodations,
	})
}

type detailResponse struct {
	Accommodation accommodationModel.Accommodation `json:"accommodation"`
	AverageRating float64                          `json:"average_rating"`
	Reviews       []reviewModel.Review             `json:"reviews"`
	HasBooked     bool                             `json:"has_booked"`
	CanReview     bool                             `json:"can_review"`
	IsFavorite    bool                             `json:"is_favorite"`
}

// Detail returns one listing with its reviews and, for authenticated
// callers, their booking/review/favorite state.
func (ac *AccommodationController) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid accommodation id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var acc accommodationModel.Accommodation
	err = ac.DB.WithContext(c.UserContext()).First(&acc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Accommodation not found",
			Status:  fiber.StatusNotFound,
		})
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load accommodation %d", id), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if !acc.IsActive {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "This accommodation is no longer available",
			Status:  fiber.StatusNotFound,
		})
	}

	resp := detailResponse{Accommodation: acc}

	resp.AverageRating, err = ac.Reviews.AverageRating(c.UserContext(), acc.ID)
	if err != nil {
		logger.Error("Failed to compute average rating", err)
	}
	resp.Reviews, err = ac.Reviews.ListForAccommodation(c.UserContext(), acc.ID)
	if err != nil {
		logger.Error("Failed to load reviews", err)
	}

	// Caller-specific state only when a token was presented.
	if _, ok := c.Locals("user").(jwt.MapClaims); ok {
		userID, err := utils.GetUserID(c)
		if err == nil {
			var paid int64
			ac.DB.Model(&bookingModel.Booking{}).
				Where("user_id = ? AND accommodation_id = ? AND status = ?",
					userID, acc.ID, bookingModel.BookingStatusPaid).
				Count(&paid)
			resp.HasBooked = paid > 0

			var reviewed int64
			ac.DB.Model(&reviewModel.Review{}).
				Where("user_id = ? AND accommodation_id = ?", userID, acc.ID).
				Count(&reviewed)
			resp.CanReview = resp.HasBooked && reviewed == 0

			resp.IsFavorite, _ = ac.Favorites.IsFavorite(c.UserContext(), userID, acc.ID)
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Accommodation loaded",
		Data:    resp,
	})
}

// Store creates a new listing (admin only).
func (ac *AccommodationController) Store(c *fiber.Ctx) error {
	var req accommodationTypes.AccommodationRequest
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

	adminID, err := utils.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	acc := accommodationModel.Accommodation{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		RoomType:         req.RoomType,
		PricePerMonth:    req.PricePerMonth,
		Capacity:         req.Capacity,
		CurrentOccupancy: req.CurrentOccupancy,
		Amenities:        accommodationModel.StringSlice(req.Amenities),
		IsActive:         req.CurrentOccupancy < req.Capacity,
		AdminID:          &adminID,
	}
	if req.ImageFilename != "" {
		acc.ImageFilename = &req.ImageFilename
	}

	if err := ac.DB.Create(&acc).Error; err != nil {
		logger.Error("Failed to create accommodation", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to save accommodation",
			Status:  fiber.StatusInternalServerError,
		})
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("New accommodation created by admin %d: %s", adminID, acc.Title))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Accommodation added successfully",
		Data:    acc,
	})
}

// Update edits an existing listing (admin only).
func (ac *AccommodationController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid accommodation id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req accommodationTypes.AccommodationRequest
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

	var acc accommodationModel.Accommodation
	err = ac.DB.First(&acc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Accommodation not found",
			Status:  fiber.StatusNotFound,
		})
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load accommodation %d", id), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	acc.Title = req.Title
	acc.Description = req.Description
	acc.Location = req.Location
	acc.RoomType = req.RoomType
	acc.PricePerMonth = req.PricePerMonth
	acc.Capacity = req.Capacity
	acc.CurrentOccupancy = req.CurrentOccupancy
	acc.Amenities = accommodationModel.StringSlice(req.Amenities)
	acc.IsActive = req.CurrentOccupancy < req.Capacity
	if req.ImageFilename != "" {
		acc.ImageFilename = &req.ImageFilename
	}

	if err := ac.DB.Save(&acc).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to update accommodation %d", id), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to save accommodation",
			Status:  fiber.StatusInternalServerError,
		})
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Accommodation %d updated", acc.ID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Accommodation updated successfully",
		Data:    acc,
	})
}

// Delete removes a listing (admin only).
func (ac *AccommodationController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid accommodation id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var acc accommodationModel.Accommodation
	err = ac.DB.First(&acc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Accommodation not found",
			Status:  fiber.StatusNotFound,
		})
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load accommodation %d", id), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := ac.DB.Delete(&acc).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to delete accommodation %d", id), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to delete accommodation",
			Status:  fiber.StatusInternalServerError,
		})
	}

	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Accommodation %d deleted", acc.ID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Accommodation deleted successfully",
	})
}
