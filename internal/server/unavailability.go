package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	unavailabilitydomain "github.com/wardworks/roster/internal/unavailability/domain"
)

type setUnavailabilityRequest struct {
	MemberID    string `json:"member_id"`
	WeekKey     string `json:"week_key"`
	Unavailable *bool  `json:"unavailable"`
}

// GetUnavailability returns the full member→weeks map, or the list of
// unavailable member ids when ?week_key= is given.
func (s *Server) GetUnavailability(c *gin.Context) {
	weekKey := strings.TrimSpace(c.Query("week_key"))
	if weekKey != "" {
		ids, err := s.unavailabilitySvc.MembersForWeek(c.Request.Context(), weekKey)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": ids})
		return
	}

	grouped, err := s.unavailabilitySvc.Map(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": grouped})
}

func (s *Server) SetUnavailability(c *gin.Context) {
	var req setUnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Unavailable == nil {
		AbortWithError(c, newValidationError("unavailable", "invalid_unavailable", "unavailable flag is required"))
		return
	}

	grouped, err := s.unavailabilitySvc.Set(c.Request.Context(), unavailabilitydomain.SetRequest{
		MemberID:    strings.TrimSpace(req.MemberID),
		WeekKey:     strings.TrimSpace(req.WeekKey),
		Unavailable: *req.Unavailable,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": grouped})
}
