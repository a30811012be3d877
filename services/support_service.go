package services

import (
	"errors"
	"strings"

	"sabores/access"
	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/repository"

	"gorm.io/gorm"
)

type SupportService struct {
	Repo      *repository.SupportRepository
	OrderRepo *repository.OrderRepository
}

func NewSupportService(repo *repository.SupportRepository, orderRepo *repository.OrderRepository) *SupportService {
	return &SupportService{Repo: repo, OrderRepo: orderRepo}
}

type TicketInput struct {
	OrderCode string
	Subject   string
	Message   string
	Priority  entity.TicketPriority
}

// CreateTicket อ้างถึง order ได้เฉพาะ order ของตัวเองเท่านั้น
func (s *SupportService) CreateTicket(userID uint, in TicketInput) (*entity.SupportTicket, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Subject) == "" {
		fields["subject"] = "this field is required"
	}
	if strings.TrimSpace(in.Message) == "" {
		fields["message"] = "this field is required"
	}
	if in.Priority == "" {
		in.Priority = entity.PriorityMedium
	} else if !in.Priority.Valid() {
		fields["priority"] = "is not a valid choice"
	}
	t := &entity.SupportTicket{
		UserID:   userID,
		Subject:  strings.TrimSpace(in.Subject),
		Message:  strings.TrimSpace(in.Message),
		Status:   entity.TicketOpen,
		Priority: in.Priority,
	}
	if code := strings.TrimSpace(in.OrderCode); code != "" {
		o, err := s.OrderRepo.FindByCode(code)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fields["order_code"] = "order not found"
		case err != nil:
			return nil, err
		case o.UserID != userID:
			fields["order_code"] = "order not found"
		default:
			t.OrderID = &o.ID
		}
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationFields("invalid request", fields)
	}
	if err := s.Repo.CreateTicket(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTickets: ลูกค้าเห็นเฉพาะของตัวเอง, staff เห็นทั้งหมด
func (s *SupportService) ListTickets(p access.Policy, userID uint, status string) ([]entity.SupportTicket, error) {
	st := entity.TicketStatus(status)
	if status != "" && !st.Valid() {
		return nil, apperr.ValidationFields("invalid request", map[string]string{"status": "is not a valid choice"})
	}
	var owner *uint
	if !p.CanManageTickets() {
		owner = &userID
	}
	return s.Repo.ListTickets(owner, st)
}

func (s *SupportService) GetTicket(p access.Policy, userID, id uint) (*entity.SupportTicket, error) {
	t, err := s.Repo.FindTicket(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ticket not found")
		}
		return nil, err
	}
	if !p.CanViewTicket(t, userID) {
		return nil, apperr.NotFound("ticket not found")
	}
	return t, nil
}

type TicketUpdate struct {
	Status   *entity.TicketStatus
	Priority *entity.TicketPriority
}

func (s *SupportService) UpdateTicket(p access.Policy, userID, id uint, in TicketUpdate) (*entity.SupportTicket, error) {
	if !p.CanManageTickets() {
		return nil, apperr.Permission("only staff can update tickets")
	}
	updates := map[string]any{}
	fields := map[string]string{}
	if in.Status != nil {
		if in.Status.Valid() {
			updates["status"] = *in.Status
		} else {
			fields["status"] = "is not a valid choice"
		}
	}
	if in.Priority != nil {
		if in.Priority.Valid() {
			updates["priority"] = *in.Priority
		} else {
			fields["priority"] = "is not a valid choice"
		}
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationFields("invalid request", fields)
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("at least one of status or priority is required")
	}
	if _, err := s.GetTicket(p, userID, id); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateTicket(id, updates); err != nil {
		return nil, err
	}
	return s.GetTicket(p, userID, id)
}

func (s *SupportService) ListMessages(p access.Policy, userID, ticketID uint) ([]entity.SupportMessage, error) {
	if _, err := s.GetTicket(p, userID, ticketID); err != nil {
		return nil, err
	}
	return s.Repo.FindMessagesByTicket(ticketID)
}

// PostMessage flags the message as staff when the author can manage tickets.
func (s *SupportService) PostMessage(p access.Policy, userID, ticketID uint, body string) (*entity.SupportMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.ValidationFields("invalid request", map[string]string{"body": "this field is required"})
	}
	if _, err := s.GetTicket(p, userID, ticketID); err != nil {
		return nil, err
	}
	msg := &entity.SupportMessage{
		TicketID: ticketID,
		UserID:   userID,
		Body:     body,
		IsStaff:  p.CanManageTickets(),
	}
	if err := s.Repo.CreateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
