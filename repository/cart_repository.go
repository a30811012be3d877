package repository

import (
	"time"

	"sabores/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetOrCreateCart สร้างหรืออ่าน Cart ของ user; unique(user_id) กันการสร้างซ้ำเมื่อยิงพร้อมกัน
func (r *CartRepository) GetOrCreateCart(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	c := entity.Cart{UserID: userID}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&c).Error
	if err != nil {
		return nil, err
	}
	var out entity.Cart
	if err := tx.Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadItems โหลด items พร้อมเมนู (ราคาปัจจุบัน) เรียงตามเวลาที่เพิ่ม
func (r *CartRepository) LoadItems(tx *gorm.DB, cart *entity.Cart) error {
	var items []entity.CartItem
	err := tx.Where("cart_id = ?", cart.ID).
		Preload("MenuItem", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("MenuItem.Category").
		Order("added_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return err
	}
	cart.Items = items
	return nil
}

// UpsertItem เพิ่ม line ใหม่ หรือบวก quantity ให้ line เดิม (note แทนที่เฉพาะเมื่อส่งมา)
// ทั้งหมดเป็น statement เดียว จึงไม่เกิด row ซ้ำแม้ยิงพร้อมกัน
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID, menuItemID uint, qty int, note string, now time.Time) error {
	row := entity.CartItem{
		CartID:     cartID,
		MenuItemID: menuItemID,
		Quantity:   qty,
		Note:       note,
		AddedAt:    now,
		UpdatedAt:  now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "menu_item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"note":       gorm.Expr("CASE WHEN excluded.note <> '' THEN excluded.note ELSE cart_items.note END"),
			"updated_at": now,
		}),
	}).Create(&row).Error
}

// FindItemForUser ensures the line belongs to the user's cart.
func (r *CartRepository) FindItemForUser(tx *gorm.DB, userID, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := tx.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) UpdateItem(tx *gorm.DB, itemID uint, qty int, note *string, now time.Time) error {
	updates := map[string]any{"quantity": qty, "updated_at": now}
	if note != nil {
		updates["note"] = *note
	}
	return tx.Model(&entity.CartItem{}).Where("id = ?", itemID).Updates(updates).Error
}

func (r *CartRepository) DeleteItem(tx *gorm.DB, itemID uint) error {
	return tx.Where("id = ?", itemID).Delete(&entity.CartItem{}).Error
}

// DeleteLinesForMenuItems ลบเมนูที่ถูกลบออกจากทุกตะกร้า
func (r *CartRepository) DeleteLinesForMenuItems(tx *gorm.DB, menuItemIDs []uint) error {
	if len(menuItemIDs) == 0 {
		return nil
	}
	return tx.Where("menu_item_id IN ?", menuItemIDs).Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) ClearItems(tx *gorm.DB, cartID uint) error {
	return tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) Touch(tx *gorm.DB, cartID uint, now time.Time) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).Update("updated_at", now).Error
}
