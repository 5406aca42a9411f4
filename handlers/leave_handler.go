package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Bala-Chandrudu/project/database"
	"github.com/Bala-Chandrudu/project/models"
	"github.com/Bala-Chandrudu/project/relay"
)

type LeaveHandler struct {
	Relay *relay.Client
}

func NewLeaveHandler(rc *relay.Client) *LeaveHandler {
	return &LeaveHandler{Relay: rc}
}

type LeaveReq struct {
	Phone     string `json:"phone" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Section   string `json:"section"`
	Year      string `json:"year"`
}

// leaveRow is a LeaveApplication plus its computed inclusive day-count.
type leaveRow struct {
	models.LeaveApplication
	Days int `json:"days"`
}

// POST /portal/leave
// Relay first, persist second. A store failure after relay success leaves
// the notification already delivered; no compensation is attempted.
func (h *LeaveHandler) Create(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}

	var req LeaveReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var u models.User
	if err := database.DB.First(&u, uid).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "SESSION_NOT_FOUND"})
	}

	// section/year default to the profile, the form may override
	section := req.Section
	if section == "" {
		section = u.Section
	}
	year := req.Year
	if year == "" {
		year = u.Year
	}

	res, err := h.Relay.Send(c.Request().Context(), relay.Submission{
		Name:               u.Name,
		Phone:              strings.TrimSpace(req.Phone),
		Message:            req.Reason,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		RegistrationNumber: u.RegistrationNumber,
		ParentPhone:        u.ParentPhone,
		Section:            section,
		Year:               year,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, map[string]any{
			"error":   "RELAY_FAILED",
			"message": err.Error(),
		})
	}

	rec := models.LeaveApplication{
		UserID:             u.ID,
		UserName:           u.Name,
		RegistrationNumber: u.RegistrationNumber,
		Phone:              strings.TrimSpace(req.Phone),
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Reason:             req.Reason,
		Section:            section,
		Year:               year,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{
			"error":   "STORE_FAILED",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"application": leaveRow{rec, rec.Days()},
		"relay_key":   res.Key,
	})
}

// GET /portal/leave
func (h *LeaveHandler) History(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}

	var apps []models.LeaveApplication
	if err := database.DB.
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{
			"error":   "STORE_FAILED",
			"message": err.Error(),
		})
	}

	rows := make([]leaveRow, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, leaveRow{a, a.Days()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"applications": rows,
		"total_days":   models.TotalDays(apps),
		"empty":        len(apps) == 0,
	})
}
