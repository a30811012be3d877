package controllers

import (
	"net/http"

	"sabores/entity"
	"sabores/pkg/resp"
	"sabores/services"
	"sabores/utils"

	"github.com/gin-gonic/gin"
)

type PaymentMethodController struct {
	Svc *services.PaymentMethodService
}

func NewPaymentMethodController(s *services.PaymentMethodService) *PaymentMethodController {
	return &PaymentMethodController{Svc: s}
}

type PaymentMethodReq struct {
	Type       string `json:"type" binding:"required,payment_method"`
	CardLast4  string `json:"card_last4" binding:"omitempty,len=4,numeric"`
	HolderName string `json:"holder_name" binding:"max=100"`
	Expiry     string `json:"expiry" binding:"omitempty,card_expiry"`
	IsDefault  bool   `json:"is_default"`
}

func (r *PaymentMethodReq) input() services.PaymentMethodInput {
	return services.PaymentMethodInput{
		Type:       entity.PaymentType(r.Type),
		CardLast4:  r.CardLast4,
		HolderName: r.HolderName,
		Expiry:     r.Expiry,
		IsDefault:  r.IsDefault,
	}
}

// GET /payment-methods
func (h *PaymentMethodController) List(c *gin.Context) {
	list, err := h.Svc.List(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// POST /payment-methods
func (h *PaymentMethodController) Create(c *gin.Context) {
	var req PaymentMethodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	pm, err := h.Svc.Create(utils.CurrentUserID(c), req.input())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, pm)
}

// GET /payment-methods/:id
func (h *PaymentMethodController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pm, err := h.Svc.Get(utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, pm)
}

// PUT /payment-methods/:id
func (h *PaymentMethodController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req PaymentMethodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	pm, err := h.Svc.Update(utils.CurrentUserID(c), id, req.input())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, pm)
}

// DELETE /payment-methods/:id
func (h *PaymentMethodController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
