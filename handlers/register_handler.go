package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/seobrain/hosting_affiliate/models"
	"github.com/seobrain/hosting_affiliate/notifications"
	"github.com/seobrain/hosting_affiliate/services"
	"gorm.io/gorm"
)

var validate = validator.New()

var (
	errUserExists     = errors.New("user already exists")
	errPackageUnknown = errors.New("package not found")
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3"`
	FirstName string `json:"first_name" validate:"required"`
	RefCode   string `json:"ref_code"`
	PackageID string `json:"package_id" validate:"required,uuid"`
}

type RegistrationHandler struct {
	DB               *gorm.DB
	Mailer           *notifications.EmailService
	PlatformUsername string
}

// Register creates a user, records the settled activation fee owed to the
// platform account, assigns the chosen package and appends the referral
// edge when the ref code resolves. The whole workflow runs in one
// transaction: a failure at any step leaves no partial rows behind.
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	var newUser models.User
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ? OR username = ?", req.Email, req.Username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errUserExists
		}

		var pkg models.Package
		if err := tx.First(&pkg, "id = ?", req.PackageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPackageUnknown
			}
			return err
		}

		referrer, err := services.ResolveReferrer(tx, req.RefCode)
		if err != nil {
			return err
		}

		newUser = models.User{
			Email:     req.Email,
			Username:  req.Username,
			FirstName: req.FirstName,
			Role:      models.RoleMember,
		}
		if referrer != nil {
			newUser.ReferrerID = &referrer.ID
		}
		if err := tx.Create(&newUser).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errUserExists
			}
			return err
		}

		// The admission fee is collected out-of-band, so it is recorded
		// as already settled, with no gateway round-trip.
		var platform models.User
		err = tx.Where("username = ?", h.PlatformUsername).First(&platform).Error
		if err == nil {
			now := time.Now().UTC()
			fee := models.Payment{
				PayerID:     newUser.ID,
				PayeeID:     platform.ID,
				PackageID:   pkg.ID,
				Amount:      pkg.Price,
				PaymentType: models.PaymentTypeActivation,
				PaymentDate: &now,
			}
			if err := tx.Create(&fee).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		assignment := models.UserPackage{
			UserID:    newUser.ID,
			PackageID: pkg.ID,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		if newUser.ReferrerID != nil {
			edge := models.Referral{
				ReferrerID: *newUser.ReferrerID,
				ReferredID: newUser.ID,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, errUserExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
		case errors.Is(err, errPackageUnknown):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Package not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
		}
	}

	go h.Mailer.SendEmail(
		newUser.FirstName,
		newUser.Email,
		"Welcome to your hosting package!",
		fmt.Sprintf("<h1>Welcome, %s!</h1><p>Your account is ready. Refer three friends to unlock daily payouts.</p>", newUser.FirstName),
	)

	return c.JSON(fiber.Map{
		"message": "User registered",
		"user_id": newUser.ID,
	})
}
