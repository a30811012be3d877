package controllers

import (
	"sabores/pkg/resp"
	"sabores/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Auth *services.AuthService
}

func NewAdminController(auth *services.AuthService) *AdminController {
	return &AdminController{Auth: auth}
}

// GET /admin/users?role=&page=&limit=
func (ac *AdminController) ListUsers(c *gin.Context) {
	page, err := ac.Auth.ListUsers(c.Query("role"), queryInt(c, "page", 1), queryInt(c, "limit", 50))
	if err != nil {
		resp.Error(c, err)
		return
	}
	items := make([]gin.H, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, userJSON(&page.Items[i]))
	}
	resp.OK(c, gin.H{"items": items, "total": page.Total, "page": page.Page, "limit": page.Limit})
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// PATCH /admin/users/:id/role
func (ac *AdminController) ChangeRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	user, err := ac.Auth.ChangeRole(id, req.Role)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, userJSON(user))
}
