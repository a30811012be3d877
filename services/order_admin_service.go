package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/pkg/logger"
	"sabores/repository"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// OrderAdminService is the staff side of the order engine: listing, detail and
// status updates. Status changes are not restricted to any transition graph.
type OrderAdminService struct {
	Repo *repository.OrderRepository
	Log  *logger.Logger
	Now  func() time.Time
}

func NewOrderAdminService(repo *repository.OrderRepository, l *logger.Logger) *OrderAdminService {
	return &OrderAdminService{Repo: repo, Log: l, Now: func() time.Time { return time.Now().UTC() }}
}

type AdminOrderQuery struct {
	Status        string
	PaymentStatus string
	PaymentMethod string
	Search        string
	StartDate     string
	EndDate       string
	Today         bool
	Ordering      string
	Page          int
	Limit         int
}

func (s *OrderAdminService) List(q AdminOrderQuery) (*OrderPage, error) {
	f := repository.OrderFilter{
		Status:        entity.OrderStatus(q.Status),
		PaymentStatus: entity.PaymentStatus(q.PaymentStatus),
		PaymentMethod: entity.PaymentType(q.PaymentMethod),
		Search:        q.Search,
		Ordering:      q.Ordering,
		Page:          q.Page,
		Limit:         q.Limit,
	}
	fields := map[string]string{}
	if q.Status != "" && !f.Status.Valid() {
		fields["status"] = "is not a valid choice"
	}
	if q.PaymentStatus != "" && !f.PaymentStatus.Valid() {
		fields["payment_status"] = "is not a valid choice"
	}
	if q.PaymentMethod != "" && !f.PaymentMethod.Valid() {
		fields["payment_method"] = "is not a valid choice"
	}
	f.From = parseDay("start_date", q.StartDate, fields)
	if end := parseDay("end_date", q.EndDate, fields); end != nil {
		// รวมทั้งวันของ end_date
		t := end.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationFields("invalid request", fields)
	}
	if q.Today {
		start := startOfDay(s.Now())
		if f.From == nil || f.From.Before(start) {
			f.From = &start
		}
	}
	return listOrders(s.Repo, f)
}

func (s *OrderAdminService) Detail(id uint) (*OrderView, error) {
	o, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	return NewOrderView(o), nil
}

type StatusUpdateIn struct {
	Status                *entity.OrderStatus
	PaymentStatus         *entity.PaymentStatus
	EstimatedDeliveryTime *time.Time
}

// UpdateStatus overwrites whichever fields are present. At least one is required.
func (s *OrderAdminService) UpdateStatus(id uint, in StatusUpdateIn, requestID string) (*OrderView, error) {
	updates := map[string]any{}
	fields := map[string]string{}
	if in.Status != nil {
		if in.Status.Valid() {
			updates["status"] = *in.Status
		} else {
			fields["status"] = "is not a valid choice"
		}
	}
	if in.PaymentStatus != nil {
		if in.PaymentStatus.Valid() {
			updates["payment_status"] = *in.PaymentStatus
		} else {
			fields["payment_status"] = "is not a valid choice"
		}
	}
	if in.EstimatedDeliveryTime != nil {
		updates["estimated_delivery_time"] = in.EstimatedDeliveryTime.UTC()
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationFields("invalid request", fields)
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("at least one of status, payment_status or estimated_delivery_time is required")
	}

	if _, err := s.Detail(id); err != nil {
		return nil, err
	}
	if _, err := s.Repo.UpdateFields(id, updates); err != nil {
		return nil, err
	}
	v, err := s.Detail(id)
	if err != nil {
		return nil, err
	}
	if s.Log != nil {
		s.Log.Info("order_update_status", requestID, "order updated",
			slog.String("order_code", v.OrderCode),
			slog.String("status", string(v.Status)),
			slog.String("payment_status", string(v.PaymentStatus)),
		)
	}
	return v, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseDay(field, value string, fields map[string]string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		fields[field] = "must be in YYYY-MM-DD format"
		return nil
	}
	return &d
}
