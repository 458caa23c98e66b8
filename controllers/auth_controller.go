package controllers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"po-backend/config"
	"po-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(DB *gorm.DB) *AuthController {
	return &AuthController{DB: DB}
}

type registerRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Register creates an unverified account and emails an invite token. The
// account cannot log in until the token is claimed with a password.
func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var payload registerRequest
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	var existing models.User
	err := c.DB.Where("email = ?", email).First(&existing).Error
	if err == nil && existing.IsVerified {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Email already registered",
		})
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to check account",
			"error":   err.Error(),
		})
	}

	token := uuid.NewString()
	expires := time.Now().Add(time.Duration(config.InviteTokenTTL) * time.Second)

	user := models.User{
		Email:         email,
		InviteToken:   token,
		InviteExpires: &expires,
	}
	if existing.ID != 0 {
		// Re-registering an unclaimed account just rotates the token.
		existing.InviteToken = token
		existing.InviteExpires = &expires
		err = c.DB.Save(&existing).Error
	} else {
		err = c.DB.Create(&user).Error
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create account",
			"error":   err.Error(),
		})
	}

	if err := sendInviteMail(email, token); err != nil {
		log.Println("Failed to send invite mail:", err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Invite sent",
	})
}

type claimRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// Claim exchanges an invite token for a password and activates the
// account. Tokens are single-use and expire after the configured TTL.
func (c *AuthController) Claim(ctx *fiber.Ctx) error {
	var payload claimRequest
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	var user models.User
	if err := c.DB.Where("invite_token = ?", payload.Token).First(&user).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid invite token",
		})
	}
	if user.InviteExpires == nil || time.Now().After(*user.InviteExpires) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invite token expired",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to hash password",
		})
	}

	user.PasswordHash = string(hash)
	user.IsVerified = true
	user.InviteToken = ""
	user.InviteExpires = nil
	if err := c.DB.Save(&user).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to activate account",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Account activated",
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies the password and issues a signed JWT.
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var payload loginRequest
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	var user models.User
	if err := c.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}
	if !user.IsVerified {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Account not activated",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"exp":   time.Now().Add(time.Duration(config.JWTExpiration) * time.Second).Unix(),
		"jti":   uuid.NewString(),
	})
	signed, err := accessToken.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to sign token",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"token": signed,
			"email": user.Email,
		},
	})
}

func sendInviteMail(email, token string) error {
	if config.SMTPSender == "" {
		return fmt.Errorf("smtp sender not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.SMTPSender)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your purchase order tracker invite")
	m.SetBody("text/plain", fmt.Sprintf(
		"Use this token to set your password and activate your account: %s", token))

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	return d.DialAndSend(m)
}
