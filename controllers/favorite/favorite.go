package favorite

import (
	"errors"

	"campusstay/logger"
	favoriteService "campusstay/services/favorite"
	"campusstay/types"
	"campusstay/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FavoriteController handles the favorites toggle and listing.
type FavoriteController struct {
	DB        *gorm.DB
	Favorites *favoriteService.Service
	Logger    *logger.AsyncLogger
}

func NewFavoriteController(db *gorm.DB, favorites *favoriteService.Service, asyncLogger *logger.AsyncLogger) *FavoriteController {
	return &FavoriteController{DB: db, Favorites: favorites, Logger: asyncLogger}
}

type toggleResponse struct {
	AccommodationID uint   `json:"accommodation_id"`
	State           string `json:"state"`
}

// Toggle adds or removes an accommodation from the caller's favorites.
func (fc *FavoriteController) Toggle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid accommodation id",
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

	isFavorite, err := fc.Favorites.Toggle(c.UserContext(), userID, uint(id))
	if err != nil {
		if errors.Is(err, favoriteService.ErrAccommodationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Accommodation not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to toggle favorite", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Error toggling favorite",
			Status:  fiber.StatusInternalServerError,
		})
	}

	state := "removed"
	if isFavorite {
		state = "added"
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Favorite " + state,
		Data:    toggleResponse{AccommodationID: uint(id), State: state},
	})
}

// Index lists the caller's favorited active accommodations.
func (fc *FavoriteController) Index(c *fiber.Ctx) error {
	userID, err := utils.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	accommodations, err := fc.Favorites.ListAccommodations(c.UserContext(), userID)
	if err != nil {
		logger.Error("Failed to load favorites", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Error loading favorites",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Favorites loaded",
		Data:    accommodations,
	})
}
