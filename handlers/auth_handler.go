package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bala-Chandrudu/project/database"
	"github.com/Bala-Chandrudu/project/models"
)

/* ====================== Config & Helpers ====================== */

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler() *AuthHandler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret" // set a real one in .env outside dev
	}
	return &AuthHandler{JWTSecret: secret}
}

// loginEmail builds the synthetic login handle the identity boundary keys
// accounts by. Opaque construction rule, not a deliverable address.
func loginEmail(registrationNumber string) string {
	return strings.ToLower(strings.TrimSpace(registrationNumber)) + "@temp.com"
}

func (h *AuthHandler) signJWT(u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"name":  u.Name,
		"reg":   u.RegistrationNumber,
		"admin": u.Admin,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

// shellView maps session state to the view the client should render.
// Signed-out is never produced here: without a valid token the request
// does not reach a session handler at all.
func shellView(admin bool) string {
	if admin {
		return "admin"
	}
	return "applicant"
}

/* ====================== DTOs ====================== */

type SignUpReq struct {
	Name               string `json:"name" validate:"required"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Password           string `json:"password" validate:"required,min=6"`
	ParentPhone        string `json:"parent_phone" validate:"required"`
	Section            string `json:"section"`
	Year               string `json:"year"`
	Department         string `json:"department"`
}

type SignInReq struct {
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Password           string `json:"password" validate:"required"`
}

/* ====================== Handlers ====================== */

// POST /auth/signup
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	email := loginEmail(req.RegistrationNumber)

	var dup models.User
	if err := database.DB.Where("email = ?", email).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "ACCOUNT_EXISTS"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}
	rec := models.User{
		Email:              email,
		PasswordHash:       string(hash),
		Name:               strings.TrimSpace(req.Name),
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		ParentPhone:        strings.TrimSpace(req.ParentPhone),
		Section:            req.Section,
		Year:               req.Year,
		Department:         req.Department,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		// identity-service rejections are surfaced verbatim
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": rec.ID})
}

// POST /auth/signin
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var u models.User
	if err := database.DB.Where("email = ?", loginEmail(req.RegistrationNumber)).First(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	now := time.Now()
	if err := database.DB.Model(&u).Update("last_sign_in_at", &now).Error; err == nil {
		u.LastSignInAt = &now
	}

	token, err := h.signJWT(&u, 7*24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  u,
	})
}

// POST /auth/signout
// Tokens are stateless; the client discards its copy. Always succeeds.
func (h *AuthHandler) SignOut(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// GET /auth/session
func (h *AuthHandler) Session(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}
	var u models.User
	if err := database.DB.First(&u, uid).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "SESSION_NOT_FOUND"})
	}
	// admin read from the stored row, fail-closed: any lookup failure above
	// has already denied without claiming admin.
	return c.JSON(http.StatusOK, map[string]any{
		"view": shellView(u.Admin),
		"user": u,
	})
}
