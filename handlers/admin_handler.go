package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Bala-Chandrudu/project/database"
	"github.com/Bala-Chandrudu/project/models"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler { return &AdminHandler{} }

// GET /admin/users?page=&size=
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 50)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	var total int64
	if err := database.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "STORE_FAILED", "message": err.Error()})
	}

	var users []models.User
	offset := (page - 1) * size
	if err := database.DB.
		Order("created_at DESC").
		Offset(offset).Limit(size).
		Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "STORE_FAILED", "message": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"users": users,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

type validateKeyReq struct {
	Key string `json:"key" validate:"required"`
}

// POST /admin/access-keys/validate
// An unknown, inactive, or otherwise failing key answers valid=false;
// lookup errors are swallowed, never surfaced.
func (h *AdminHandler) ValidateAccessKey(c echo.Context) error {
	var req validateKeyReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var k models.AccessKey
	if err := database.DB.
		Where("key = ? AND active = ?", strings.TrimSpace(req.Key), true).
		First(&k).Error; err != nil {
		return c.JSON(http.StatusOK, map[string]any{"valid": false})
	}

	now := time.Now()
	if err := database.DB.Model(&k).Update("last_used", &now).Error; err != nil {
		return c.JSON(http.StatusOK, map[string]any{"valid": false})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"valid":   true,
		"user_id": k.UserID,
	})
}
