package handlers

import (
	"net/http"
	"regexp"
	"strconv"

	"bookable/services"
	"bookable/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultSlotMinutes = 30

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AvailabilityHandler exposes the slot computation over HTTP.
type AvailabilityHandler struct {
	Service services.AvailabilityService
}

func NewAvailabilityHandler(svc services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailabilityHandler returns the free slot start times for a date.
// Query params: date (required, YYYY-MM-DD) and slot_minutes (optional,
// positive integer, default 30). Malformed params are the only client
// errors; calendar trouble never surfaces here.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	if !datePattern.MatchString(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD form"})
		return
	}

	slotMinutes := defaultSlotMinutes
	if raw := c.Query("slot_minutes"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slot_minutes must be a positive integer"})
			return
		}
		slotMinutes = v
	}

	res, err := h.Service.GetAvailability(c.Request.Context(), date, slotMinutes)
	if err != nil {
		// The pattern check catches most bad dates; this rejects the rest,
		// e.g. 2026-02-31.
		utils.GetLogger().Warn("Rejected availability request", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}
