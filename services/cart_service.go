package services

import (
	"errors"
	"time"

	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
	Now      func() time.Time
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr, Now: func() time.Time { return time.Now().UTC() }}
}

// ----- Views -----

type MenuItemBrief struct {
	ID              uint         `json:"id"`
	Name            string       `json:"name"`
	Price           entity.Money `json:"price"`
	IsAvailable     bool         `json:"is_available"`
	PreparationTime int          `json:"preparation_time"`
	CategoryName    string       `json:"category_name,omitempty"`
}

type CartItemView struct {
	ID       uint          `json:"id"`
	MenuItem MenuItemBrief `json:"menu_item"`
	Quantity int           `json:"quantity"`
	Note     string        `json:"note"`
	Subtotal entity.Money  `json:"subtotal"`
	AddedAt  time.Time     `json:"added_at"`
}

type CartView struct {
	ID          uint           `json:"id"`
	Items       []CartItemView `json:"items"`
	TotalItems  int            `json:"total_items"`
	TotalAmount entity.Money   `json:"total_amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func briefOf(m entity.MenuItem) MenuItemBrief {
	b := MenuItemBrief{
		ID:              m.ID,
		Name:            m.Name,
		Price:           m.Price,
		IsAvailable:     m.IsAvailable && !m.DeletedAt.Valid,
		PreparationTime: m.PreparationTime,
	}
	if m.Category != nil {
		b.CategoryName = m.Category.Name
	}
	return b
}

// NewCartView คำนวณ subtotal และยอดรวมจากราคาเมนูปัจจุบัน
func NewCartView(c *entity.Cart) *CartView {
	v := &CartView{
		ID:          c.ID,
		Items:       make([]CartItemView, 0, len(c.Items)),
		TotalItems:  c.TotalItems(),
		TotalAmount: c.TotalAmount(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for i := range c.Items {
		it := &c.Items[i]
		v.Items = append(v.Items, CartItemView{
			ID:       it.ID,
			MenuItem: briefOf(it.MenuItem),
			Quantity: it.Quantity,
			Note:     it.Note,
			Subtotal: it.Subtotal(),
			AddedAt:  it.AddedAt,
		})
	}
	return v
}

func (s *CartService) view(tx *gorm.DB, userID uint) (*CartView, error) {
	c, err := s.CartRepo.GetOrCreateCart(tx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.CartRepo.LoadItems(tx, c); err != nil {
		return nil, err
	}
	return NewCartView(c), nil
}

// ----- Operations -----

func (s *CartService) Get(userID uint) (*CartView, error) {
	return s.view(s.DB, userID)
}

type AddToCartIn struct {
	MenuItemID uint
	Quantity   int
	Note       string
}

// Add เพิ่มเมนูลงตะกร้า; ถ้ามี line เดิมอยู่แล้วจะบวก quantity เข้าไป
func (s *CartService) Add(userID uint, in AddToCartIn) (*CartView, error) {
	if in.Quantity < 1 {
		return nil, apperr.ValidationFields("invalid request", map[string]string{"quantity": "must be at least 1"})
	}
	var out *CartView
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		found, err := s.MenuRepo.FindByIDsTx(tx, []uint{in.MenuItemID})
		if err != nil {
			return err
		}
		m, ok := found[in.MenuItemID]
		if !ok {
			return apperr.NotFound("menu item not found")
		}
		if !m.IsAvailable {
			return apperr.Unavailable(m.Name + " is not available")
		}

		c, err := s.CartRepo.GetOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		now := s.Now()
		if err := s.CartRepo.UpsertItem(tx, c.ID, m.ID, in.Quantity, in.Note, now); err != nil {
			return err
		}
		if err := s.CartRepo.Touch(tx, c.ID, now); err != nil {
			return err
		}
		out, err = s.view(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItem: quantity 0 ลบ line ออก; note เปลี่ยนเฉพาะเมื่อส่งมา
func (s *CartService) UpdateItem(userID, itemID uint, quantity int, note *string) (*CartView, error) {
	if quantity < 0 {
		return nil, apperr.ValidationFields("invalid request", map[string]string{"quantity": "must be at least 0"})
	}
	var out *CartView
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		it, err := s.findItem(tx, userID, itemID)
		if err != nil {
			return err
		}
		now := s.Now()
		if quantity == 0 {
			err = s.CartRepo.DeleteItem(tx, it.ID)
		} else {
			err = s.CartRepo.UpdateItem(tx, it.ID, quantity, note, now)
		}
		if err != nil {
			return err
		}
		if err := s.CartRepo.Touch(tx, it.CartID, now); err != nil {
			return err
		}
		out, err = s.view(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	return s.UpdateItem(userID, itemID, 0, nil)
}

// Clear removes every line but keeps the cart row.
func (s *CartService) Clear(userID uint) (*CartView, error) {
	var out *CartView
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.GetOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		if err := s.CartRepo.ClearItems(tx, c.ID); err != nil {
			return err
		}
		if err := s.CartRepo.Touch(tx, c.ID, s.Now()); err != nil {
			return err
		}
		out, err = s.view(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CartService) findItem(tx *gorm.DB, userID, itemID uint) (*entity.CartItem, error) {
	it, err := s.CartRepo.FindItemForUser(tx, userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("cart item not found")
	}
	return it, err
}
