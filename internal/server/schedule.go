package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	scheduledomain "github.com/wardworks/roster/internal/schedule/domain"
)

type assignRequest struct {
	WeekKey  string `json:"week_key"`
	Role     string `json:"role"`
	MemberID string `json:"member_id"`
}

type unassignRequest struct {
	WeekKey      string `json:"week_key"`
	Role         string `json:"role"`
	AssignmentID string `json:"assignment_id"`
}

// GetSchedule serves both the single-week view (?week_key=, optional)
// and the month view (?from=&to=).
func (s *Server) GetSchedule(c *gin.Context) {
	var query struct {
		WeekKey string `form:"week_key"`
		From    string `form:"from"`
		To      string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if query.From != "" || query.To != "" {
		weeks, err := s.scheduleSvc.GetRange(c.Request.Context(), scheduledomain.GetRangeRequest{
			From: strings.TrimSpace(query.From),
			To:   strings.TrimSpace(query.To),
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": weeks})
		return
	}

	week, err := s.scheduleSvc.GetWeek(c.Request.Context(), scheduledomain.GetWeekRequest{
		WeekKey: strings.TrimSpace(query.WeekKey),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": week})
}

func (s *Server) GetCandidates(c *gin.Context) {
	var query struct {
		WeekKey string `form:"week_key"`
		Role    string `form:"role"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(query.Role) == "" {
		AbortWithError(c, newValidationError("role", "invalid_role", "role is required"))
		return
	}

	candidates, err := s.scheduleSvc.Candidates(c.Request.Context(), scheduledomain.CandidatesRequest{
		WeekKey: strings.TrimSpace(query.WeekKey),
		Role:    strings.TrimSpace(query.Role),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": candidates})
}

func (s *Server) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	week, err := s.scheduleSvc.Assign(c.Request.Context(), scheduledomain.AssignRequest{
		WeekKey:  strings.TrimSpace(req.WeekKey),
		Role:     strings.TrimSpace(req.Role),
		MemberID: strings.TrimSpace(req.MemberID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": week})
}

func (s *Server) Unassign(c *gin.Context) {
	var req unassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	week, err := s.scheduleSvc.Unassign(c.Request.Context(), scheduledomain.UnassignRequest{
		WeekKey:      strings.TrimSpace(req.WeekKey),
		Role:         strings.TrimSpace(req.Role),
		AssignmentID: strings.TrimSpace(req.AssignmentID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": week})
}
