package controllers

import (
	"sabores/pkg/resp"
	"sabores/services"
	"sabores/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

type AddToCartRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Note       string `json:"note" binding:"max=255"`
}

type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity" binding:"required,min=0"`
	Note     *string `json:"note" binding:"omitempty,max=255"`
}

// GET /orders/cart
func (h *CartController) Get(c *gin.Context) {
	cart, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /orders/cart/add
func (h *CartController) Add(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	cart, err := h.Svc.Add(utils.CurrentUserID(c), services.AddToCartIn{
		MenuItemID: req.MenuItemID, Quantity: req.Quantity, Note: req.Note,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// PUT /orders/cart/items/:id (quantity 0 = ลบ)
func (h *CartController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	cart, err := h.Svc.UpdateItem(utils.CurrentUserID(c), id, *req.Quantity, req.Note)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /orders/cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cart, err := h.Svc.RemoveItem(utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /orders/cart
func (h *CartController) Clear(c *gin.Context) {
	cart, err := h.Svc.Clear(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}
