package controllers

import (
	"sabores/entity"
	"sabores/pkg/resp"
	"sabores/services"
	"sabores/utils"

	"github.com/gin-gonic/gin"
)

type SupportController struct{ Svc *services.SupportService }

func NewSupportController(s *services.SupportService) *SupportController {
	return &SupportController{Svc: s}
}

type CreateTicketReq struct {
	OrderCode string `json:"order_code"`
	Subject   string `json:"subject" binding:"required,max=200"`
	Message   string `json:"message" binding:"required"`
	Priority  string `json:"priority" binding:"omitempty,ticket_priority"`
}

type UpdateTicketReq struct {
	Status   *string `json:"status" binding:"omitempty,ticket_status"`
	Priority *string `json:"priority" binding:"omitempty,ticket_priority"`
}

type PostMessageReq struct {
	Body string `json:"body" binding:"required"`
}

// GET /support/tickets?status=
func (h *SupportController) List(c *gin.Context) {
	list, err := h.Svc.ListTickets(utils.CurrentPolicy(c), utils.CurrentUserID(c), c.Query("status"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// POST /support/tickets
func (h *SupportController) Create(c *gin.Context) {
	var req CreateTicketReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	t, err := h.Svc.CreateTicket(utils.CurrentUserID(c), services.TicketInput{
		OrderCode: req.OrderCode,
		Subject:   req.Subject,
		Message:   req.Message,
		Priority:  entity.TicketPriority(req.Priority),
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, t)
}

// GET /support/tickets/:id
func (h *SupportController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	t, err := h.Svc.GetTicket(utils.CurrentPolicy(c), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, t)
}

// PATCH /support/tickets/:id (staff)
func (h *SupportController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateTicketReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	var in services.TicketUpdate
	if req.Status != nil {
		st := entity.TicketStatus(*req.Status)
		in.Status = &st
	}
	if req.Priority != nil {
		pr := entity.TicketPriority(*req.Priority)
		in.Priority = &pr
	}
	t, err := h.Svc.UpdateTicket(utils.CurrentPolicy(c), utils.CurrentUserID(c), id, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, t)
}

// GET /support/tickets/:id/messages
func (h *SupportController) Messages(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	msgs, err := h.Svc.ListMessages(utils.CurrentPolicy(c), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, msgs)
}

// POST /support/tickets/:id/messages
func (h *SupportController) PostMessage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req PostMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, resp.BindError(err))
		return
	}
	msg, err := h.Svc.PostMessage(utils.CurrentPolicy(c), utils.CurrentUserID(c), id, req.Body)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, msg)
}
