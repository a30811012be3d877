package controllers

import (
	"time"

	"sabores/entity"
	"sabores/pkg/resp"
	"sabores/services"

	"github.com/gin-gonic/gin"
)

// AdminOrderController is mounted behind Require(CanManageOrders).
type AdminOrderController struct {
	Svc       *services.OrderAdminService
	Dashboard *services.DashboardService
}

func NewAdminOrderController(s *services.OrderAdminService, d *services.DashboardService) *AdminOrderController {
	return &AdminOrderController{Svc: s, Dashboard: d}
}

type UpdateStatusReq struct {
	Status                *string    `json:"status" binding:"omitempty,order_status"`
	PaymentStatus         *string    `json:"payment_status" binding:"omitempty,payment_status"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`
}

// GET /orders/admin
func (h *AdminOrderController) List(c *gin.Context) {
	page, err := h.Svc.List(services.AdminOrderQuery{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		PaymentMethod: c.Query("payment_method"),
		Search:        c.Query("search"),
		StartDate:     c.Query("start_date"),
		EndDate:       c.Query("end_date"),
		Today:         queryBool(c, "today"),
		Ordering:      c.Query("ordering"),
		Page:          queryInt(c, "page", 1),
		Limit:         queryInt(c, "limit", 50),
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /orders/admin/:id
func (h *AdminOrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.Svc.Detail(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/admin/:id/update_status
func (h *AdminOrderController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	in := services.StatusUpdateIn{EstimatedDeliveryTime: req.EstimatedDeliveryTime}
	if req.Status != nil {
		st := entity.OrderStatus(*req.Status)
		in.Status = &st
	}
	if req.PaymentStatus != nil {
		ps := entity.PaymentStatus(*req.PaymentStatus)
		in.PaymentStatus = &ps
	}
	order, err := h.Svc.UpdateStatus(id, in, requestID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /orders/admin/dashboard_stats?start_date=&end_date=
func (h *AdminOrderController) DashboardStats(c *gin.Context) {
	stats, err := h.Dashboard.Stats(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, stats)
}
