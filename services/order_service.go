package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sabores/access"
	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/pkg/logger"
	"sabores/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCodeAttempts = 5

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	MenuRepo *repository.MenuRepository
	CartRepo *repository.CartRepository
	QR       QRGenerator
	Log      *logger.Logger

	NewCode func() string
	Now     func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	menuRepo *repository.MenuRepository,
	cartRepo *repository.CartRepository,
	l *logger.Logger,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, MenuRepo: menuRepo, CartRepo: cartRepo,
		QR:      DefaultQRGenerator{},
		Log:     l,
		NewCode: GenerateOrderCode,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// GenerateOrderCode returns "SC" + the first 8 hex digits of a random UUID.
func GenerateOrderCode() string {
	return "SC" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// ----- DTOs from Controller -----

type OrderLineIn struct {
	MenuItemID uint
	Quantity   int
	Note       string
}

type CreateOrderIn struct {
	DeliveryAddress string
	PaymentMethod   entity.PaymentType
	Notes           string
	Items           []OrderLineIn
}

// CheckoutIn สั่งจากตะกร้า จึงไม่มี items
type CheckoutIn struct {
	DeliveryAddress string
	PaymentMethod   entity.PaymentType
	Notes           string
}

// ----- Create -----

func (s *OrderService) Create(userID uint, in CreateOrderIn, requestID string) (*OrderView, error) {
	if len(in.Items) == 0 {
		return nil, apperr.ValidationFields("items required", map[string]string{"items": "this field is required"})
	}
	if err := validateHeader(in.DeliveryAddress, in.PaymentMethod); err != nil {
		return nil, err
	}
	fields := map[string]string{}
	for i, l := range in.Items {
		if l.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "must be at least 1"
		}
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationFields("invalid request", fields)
	}

	o, err := s.place(userID, in, nil)
	if err != nil {
		return nil, err
	}
	s.logCreated(o, requestID, "create")
	return s.viewByCode(o.OrderCode)
}

// Checkout สร้างออเดอร์จากตะกร้า แล้วล้างตะกร้าใน transaction เดียวกัน
func (s *OrderService) Checkout(userID uint, in CheckoutIn, requestID string) (*OrderView, error) {
	if err := validateHeader(in.DeliveryAddress, in.PaymentMethod); err != nil {
		return nil, err
	}
	header := CreateOrderIn{DeliveryAddress: in.DeliveryAddress, PaymentMethod: in.PaymentMethod, Notes: in.Notes}

	o, err := s.place(userID, header, func(tx *gorm.DB) (func() error, []OrderLineIn, error) {
		cart, err := s.CartRepo.GetOrCreateCart(tx, userID)
		if err != nil {
			return nil, nil, err
		}
		if err := s.CartRepo.LoadItems(tx, cart); err != nil {
			return nil, nil, err
		}
		if len(cart.Items) == 0 {
			return nil, nil, apperr.Validation("cart is empty")
		}
		lines := make([]OrderLineIn, 0, len(cart.Items))
		for _, it := range cart.Items {
			lines = append(lines, OrderLineIn{MenuItemID: it.MenuItemID, Quantity: it.Quantity, Note: it.Note})
		}
		clearCart := func() error {
			if err := s.CartRepo.ClearItems(tx, cart.ID); err != nil {
				return err
			}
			return s.CartRepo.Touch(tx, cart.ID, s.Now())
		}
		return clearCart, lines, nil
	})
	if err != nil {
		return nil, err
	}
	s.logCreated(o, requestID, "checkout")
	return s.viewByCode(o.OrderCode)
}

func validateHeader(address string, pm entity.PaymentType) error {
	fields := map[string]string{}
	if strings.TrimSpace(address) == "" {
		fields["delivery_address"] = "this field is required"
	}
	if !pm.Valid() {
		fields["payment_method"] = "is not a valid choice"
	}
	if len(fields) > 0 {
		return apperr.ValidationFields("invalid request", fields)
	}
	return nil
}

// cartSource ดึง lines จากตะกร้าภายใน tx และคืน callback สำหรับล้างตะกร้า
type cartSource func(tx *gorm.DB) (func() error, []OrderLineIn, error)

// place runs the whole creation in one transaction. A unique-index collision on
// the order code rolls everything back and the transaction is retried with a new code.
func (s *OrderService) place(userID uint, in CreateOrderIn, fromCart cartSource) (*entity.Order, error) {
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		var order *entity.Order
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			lines := in.Items
			var after func() error
			if fromCart != nil {
				var err error
				after, lines, err = fromCart(tx)
				if err != nil {
					return err
				}
			}
			o, err := s.createTx(tx, userID, in, lines)
			if err != nil {
				return err
			}
			if after != nil {
				if err := after(); err != nil {
					return err
				}
			}
			order = o
			return nil
		})
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("could not allocate a unique order code: %w", lastErr)
}

func (s *OrderService) createTx(tx *gorm.DB, userID uint, in CreateOrderIn, lines []OrderLineIn) (*entity.Order, error) {
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.MenuItemID)
	}
	menu, err := s.MenuRepo.FindByIDsTx(tx, ids)
	if err != nil {
		return nil, err
	}

	// ราคา ณ ตอนนี้ถูก freeze ลง order item
	total := entity.ZeroMoney()
	items := make([]entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		m, ok := menu[l.MenuItemID]
		if !ok {
			return nil, apperr.NotFound(fmt.Sprintf("menu item %d not found", l.MenuItemID))
		}
		if !m.IsAvailable {
			return nil, apperr.Unavailable(m.Name + " is not available")
		}
		total = total.Add(m.Price.Times(l.Quantity))
		items = append(items, entity.OrderItem{
			MenuItemID: m.ID,
			Quantity:   l.Quantity,
			Price:      m.Price,
			Note:       l.Note,
		})
	}

	code, err := s.freshCode(tx)
	if err != nil {
		return nil, err
	}
	o := &entity.Order{
		OrderCode:       code,
		UserID:          userID,
		Status:          entity.OrderPending,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   entity.PaymentPending,
		TotalAmount:     total,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		Notes:           in.Notes,
	}
	if err := s.Repo.CreateWithItems(tx, o, items); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) freshCode(tx *gorm.DB) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := s.NewCode()
		exists, err := s.Repo.CodeExists(tx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique order code")
}

func (s *OrderService) logCreated(o *entity.Order, requestID, action string) {
	if s.Log == nil {
		return
	}
	s.Log.Info("order_"+action, requestID, "order created",
		slog.String("order_code", o.OrderCode),
		slog.Uint64("user_id", uint64(o.UserID)),
		slog.String("total", o.TotalAmount.String()),
		slog.Int("items", len(o.Items)),
	)
}

// ----- List & Detail -----

func (s *OrderService) viewByCode(code string) (*OrderView, error) {
	o, err := s.Repo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	return NewOrderView(o), nil
}

// List คืนออเดอร์ของผู้ใช้เอง; staff/admin เห็นทั้งหมด
func (s *OrderService) List(p access.Policy, userID uint, status entity.OrderStatus, page, limit int) (*OrderPage, error) {
	f := repository.OrderFilter{Status: status, Page: page, Limit: limit}
	if !p.CanViewAllOrders() {
		f.UserID = &userID
	}
	return listOrders(s.Repo, f)
}

func listOrders(repo *repository.OrderRepository, f repository.OrderFilter) (*OrderPage, error) {
	orders, total, err := repo.List(f)
	if err != nil {
		return nil, err
	}
	page := &OrderPage{Items: make([]OrderView, 0, len(orders)), Total: total, Page: f.Page, Limit: f.Limit}
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.Limit <= 0 || page.Limit > 200 {
		page.Limit = 50
	}
	for i := range orders {
		page.Items = append(page.Items, *NewOrderView(&orders[i]))
	}
	return page, nil
}

// Get returns NotFound for orders the caller may not see, so codes of other
// users' orders are not confirmed.
func (s *OrderService) Get(p access.Policy, userID uint, code string) (*entity.Order, error) {
	o, err := s.Repo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	if !p.CanViewOrder(o, userID) {
		return nil, apperr.NotFound("order not found")
	}
	return o, nil
}

func (s *OrderService) Detail(p access.Policy, userID uint, code string) (*OrderView, error) {
	o, err := s.Get(p, userID, code)
	if err != nil {
		return nil, err
	}
	return NewOrderView(o), nil
}

type OrderStatusView struct {
	OrderCode             string               `json:"order_code"`
	Status                entity.OrderStatus   `json:"status"`
	StatusDisplay         string               `json:"status_display"`
	PaymentStatus         entity.PaymentStatus `json:"payment_status"`
	PaymentStatusDisplay  string               `json:"payment_status_display"`
	EstimatedDeliveryTime *time.Time           `json:"estimated_delivery_time"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

func (s *OrderService) Status(p access.Policy, userID uint, code string) (*OrderStatusView, error) {
	o, err := s.Get(p, userID, code)
	if err != nil {
		return nil, err
	}
	return &OrderStatusView{
		OrderCode:             o.OrderCode,
		Status:                o.Status,
		StatusDisplay:         o.Status.Display(),
		PaymentStatus:         o.PaymentStatus,
		PaymentStatusDisplay:  o.PaymentStatus.Display(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		UpdatedAt:             o.UpdatedAt,
	}, nil
}

// QRCode renders the order code as a PNG.
func (s *OrderService) QRCode(p access.Policy, userID uint, code string) ([]byte, error) {
	o, err := s.Get(p, userID, code)
	if err != nil {
		return nil, err
	}
	return s.QR.Generate(o.OrderCode)
}
