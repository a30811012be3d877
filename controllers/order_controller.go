package controllers

import (
	"net/http"

	"sabores/entity"
	"sabores/pkg/resp"
	"sabores/services"
	"sabores/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// ===== Create Order =====

type OrderItemIn struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Note       string `json:"note" binding:"max=255"`
}
type CreateOrderReq struct {
	DeliveryAddress string        `json:"delivery_address" binding:"required"`
	PaymentMethod   string        `json:"payment_method" binding:"required,payment_method"`
	Notes           string        `json:"notes"`
	Items           []OrderItemIn `json:"items" binding:"dive"`
}
type CheckoutReq struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required,payment_method"`
	Notes           string `json:"notes"`
}

// POST /orders/create
func (oc *OrderController) Create(c *gin.Context) {
	var req CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	in := services.CreateOrderIn{
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   entity.PaymentType(req.PaymentMethod),
		Notes:           req.Notes,
		Items:           make([]services.OrderLineIn, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, services.OrderLineIn{MenuItemID: it.MenuItemID, Quantity: it.Quantity, Note: it.Note})
	}
	order, err := oc.Svc.Create(utils.CurrentUserID(c), in, requestID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// POST /orders/checkout (สั่งจากตะกร้า)
func (oc *OrderController) Checkout(c *gin.Context) {
	var req CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	order, err := oc.Svc.Checkout(utils.CurrentUserID(c), services.CheckoutIn{
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   entity.PaymentType(req.PaymentMethod),
		Notes:           req.Notes,
	}, requestID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// ===== Read =====

// GET /orders?status=&page=&limit=
func (oc *OrderController) List(c *gin.Context) {
	page, err := oc.Svc.List(utils.CurrentPolicy(c), utils.CurrentUserID(c),
		entity.OrderStatus(c.Query("status")), queryInt(c, "page", 1), queryInt(c, "limit", 50))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /orders/:code
func (oc *OrderController) Detail(c *gin.Context) {
	order, err := oc.Svc.Detail(utils.CurrentPolicy(c), utils.CurrentUserID(c), c.Param("code"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /orders/:code/status
func (oc *OrderController) Status(c *gin.Context) {
	st, err := oc.Svc.Status(utils.CurrentPolicy(c), utils.CurrentUserID(c), c.Param("code"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, st)
}

// GET /orders/:code/qrcode
func (oc *OrderController) QRCode(c *gin.Context) {
	png, err := oc.Svc.QRCode(utils.CurrentPolicy(c), utils.CurrentUserID(c), c.Param("code"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
