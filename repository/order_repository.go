package repository

import (
	"strings"
	"time"

	"sabores/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders (create) ----------------

func (r *OrderRepository) CodeExists(tx *gorm.DB, code string) (bool, error) {
	var cnt int64
	if err := tx.Model(&entity.Order{}).Unscoped().Where("order_code = ?", code).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// CreateWithItems เขียน order และทุก item ภายใน tx เดียวกัน; caller เป็นคนเปิด transaction
// ถ้า item ใด insert ไม่ผ่าน caller ต้อง rollback ทั้งหมด
func (r *OrderRepository) CreateWithItems(tx *gorm.DB, o *entity.Order, items []entity.OrderItem) error {
	o.Items = nil
	if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = o.ID
		if err := tx.Omit(clause.Associations).Create(&items[i]).Error; err != nil {
			return err
		}
	}
	o.Items = items
	return nil
}

// ---------------- Orders (read) ----------------

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Items.MenuItem", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

func (r *OrderRepository) FindByCode(code string) (*entity.Order, error) {
	var o entity.Order
	if err := withItems(r.DB).Where("order_code = ?", code).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := withItems(r.DB).Preload("User").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderFilter ใช้ทั้งหน้า "ออเดอร์ของฉัน" และหน้า admin
type OrderFilter struct {
	UserID        *uint
	Status        entity.OrderStatus
	PaymentStatus entity.PaymentStatus
	PaymentMethod entity.PaymentType
	Search        string
	From          *time.Time
	To            *time.Time
	Ordering      string
	Page          int
	Limit         int
}

var orderOrdering = map[string]string{
	"created_at":    "orders.created_at ASC",
	"-created_at":   "orders.created_at DESC",
	"updated_at":    "orders.updated_at ASC",
	"-updated_at":   "orders.updated_at DESC",
	"total_amount":  "orders.total_amount ASC",
	"-total_amount": "orders.total_amount DESC",
}

func (r *OrderRepository) List(f OrderFilter) ([]entity.Order, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	filter := func(q *gorm.DB) *gorm.DB {
		if f.UserID != nil {
			q = q.Where("orders.user_id = ?", *f.UserID)
		}
		if f.Status != "" {
			q = q.Where("orders.status = ?", f.Status)
		}
		if f.PaymentStatus != "" {
			q = q.Where("orders.payment_status = ?", f.PaymentStatus)
		}
		if f.PaymentMethod != "" {
			q = q.Where("orders.payment_method = ?", f.PaymentMethod)
		}
		if f.From != nil {
			q = q.Where("orders.created_at >= ?", *f.From)
		}
		if f.To != nil {
			q = q.Where("orders.created_at <= ?", *f.To)
		}
		if s := strings.TrimSpace(f.Search); s != "" {
			like := "%" + strings.ToLower(s) + "%"
			q = q.Joins("LEFT JOIN users ON users.id = orders.user_id").
				Where("LOWER(orders.order_code) LIKE ? OR LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(orders.delivery_address) LIKE ?",
					like, like, like, like)
		}
		return q
	}

	var total int64
	if err := r.DB.Model(&entity.Order{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ord, ok := orderOrdering[f.Ordering]
	if !ok {
		ord = orderOrdering["-created_at"]
	}
	var out []entity.Order
	err := withItems(r.DB.Model(&entity.Order{}).Scopes(filter)).Preload("User").
		Select("orders.*").
		Order(ord).Order("orders.id DESC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&out).Error
	return out, total, err
}

// ---------------- Orders (update) ----------------

// UpdateFields overwrites only the given columns; no transition rules are applied here.
func (r *OrderRepository) UpdateFields(id uint, updates map[string]any) (int64, error) {
	res := r.DB.Model(&entity.Order{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

// ---------------- Dashboard ----------------

func (r *OrderRepository) CountCreatedBetween(from, to time.Time) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&cnt).Error
	return cnt, err
}

// TotalsCreatedBetween returns the frozen totals so the caller can sum them in decimal.
func (r *OrderRepository) TotalsCreatedBetween(from, to time.Time) ([]entity.Money, error) {
	var totals []entity.Money
	err := r.DB.Model(&entity.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Pluck("total_amount", &totals).Error
	return totals, err
}

func (r *OrderRepository) CountInStatuses(statuses []entity.OrderStatus) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Order{}).Where("status IN ?", statuses).Count(&cnt).Error
	return cnt, err
}

type StatusCount struct {
	Status entity.OrderStatus
	Count  int64
}

func (r *OrderRepository) CountByStatus() ([]StatusCount, error) {
	var rows []StatusCount
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}
