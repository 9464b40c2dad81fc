package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	roledomain "github.com/wardworks/roster/internal/role/domain"
)

type replaceRolesRequest struct {
	Roles []roleInput `json:"roles"`
}

type roleInput struct {
	Name       string `json:"name"`
	Privileged bool   `json:"privileged"`
}

func (s *Server) ListRoles(c *gin.Context) {
	roles, err := s.roleSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": roles})
}

func (s *Server) ReplaceRoles(c *gin.Context) {
	var req replaceRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	inputs := make([]roledomain.RoleInput, 0, len(req.Roles))
	for _, role := range req.Roles {
		inputs = append(inputs, roledomain.RoleInput{
			Name:       role.Name,
			Privileged: role.Privileged,
		})
	}

	roles, err := s.roleSvc.Replace(c.Request.Context(), roledomain.ReplaceRolesRequest{Roles: inputs})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": roles})
}
