package controllers

import (
	"net/http"

	"sabores/entity"
	"sabores/pkg/resp"
	"sabores/services"
	"sabores/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Password2 string `json:"password2" binding:"required"`
	Name      string `json:"name" binding:"required,max=100"`
	Phone     string `json:"phone" binding:"omitempty,max=15"`
	Address   string `json:"address"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
type UpdateMeRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Phone   *string `json:"phone" binding:"omitempty,max=15"`
	Address *string `json:"address"`
}

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id": u.ID, "email": u.Email, "name": u.Name,
		"phone": u.Phone, "address": u.Address, "role": u.Role,
		"is_active": u.IsActive, "created_at": u.CreatedAt,
	}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	user, err := a.Svc.Register(services.RegisterInput{
		Email: req.Email, Password: req.Password, Password2: req.Password2,
		Name: req.Name, Phone: req.Phone, Address: req.Address,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, userJSON(user))
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	a.login(c, a.Svc.Login)
}

// POST /auth/admin/login
func (a *AuthController) AdminLogin(c *gin.Context) {
	a.login(c, a.Svc.AdminLogin)
}

func (a *AuthController) login(c *gin.Context, fn func(email, password string) (string, *entity.User, error)) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	token, user, err := fn(req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user":  userJSON(user),
	})
}

// GET /auth/me (ต้อง login)
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Svc.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, userJSON(user))
}

// PATCH /auth/me
func (a *AuthController) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	user, err := a.Svc.UpdateProfile(utils.CurrentUserID(c), services.ProfileUpdate{
		Name: req.Name, Phone: req.Phone, Address: req.Address,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, userJSON(user))
}
