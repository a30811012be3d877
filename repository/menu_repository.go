// repository/menu_repository.go
package repository

import (
	"strings"

	"sabores/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ---------------- Categories ----------------

func (r *MenuRepository) ListCategories(activeOnly bool) ([]entity.Category, error) {
	var cats []entity.Category
	q := r.DB.Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) FindCategory(id uint) (*entity.Category, error) {
	var cat entity.Category
	if err := r.DB.First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *MenuRepository) CreateCategory(cat *entity.Category) error {
	return r.DB.Create(cat).Error
}

func (r *MenuRepository) SaveCategory(cat *entity.Category) error {
	return r.DB.Save(cat).Error
}

func (r *MenuRepository) DeleteCategory(tx *gorm.DB, id uint) (int64, error) {
	res := tx.Delete(&entity.Category{}, id)
	return res.RowsAffected, res.Error
}

// ItemIDsInCategory คืน id ของเมนูที่ยังไม่ถูกลบในหมวดนี้
func (r *MenuRepository) ItemIDsInCategory(tx *gorm.DB, categoryID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&entity.MenuItem{}).Where("category_id = ?", categoryID).Pluck("id", &ids).Error
	return ids, err
}

// ---------------- Menu items ----------------

// MenuFilter ตรงกับ query string ของ GET /menu/items
type MenuFilter struct {
	CategoryID    uint
	AvailableOnly bool
	FeaturedOnly  bool
	Search        string
	MinPrice      *entity.Money
	MaxPrice      *entity.Money
	Ordering      string
}

var menuOrdering = map[string]string{
	"price":             "menu_items.price ASC",
	"-price":            "menu_items.price DESC",
	"name":              "menu_items.name ASC",
	"-name":             "menu_items.name DESC",
	"preparation_time":  "menu_items.preparation_time ASC",
	"-preparation_time": "menu_items.preparation_time DESC",
}

func (r *MenuRepository) ListItems(f MenuFilter) ([]entity.MenuItem, error) {
	q := r.DB.Model(&entity.MenuItem{}).Preload("Category")
	if f.CategoryID != 0 {
		q = q.Where("menu_items.category_id = ?", f.CategoryID)
	}
	if f.AvailableOnly {
		q = q.Where("menu_items.is_available = ?", true)
	}
	if f.FeaturedOnly {
		q = q.Where("menu_items.is_featured = ?", true)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(menu_items.name) LIKE ? OR LOWER(menu_items.description) LIKE ?", like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("menu_items.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("menu_items.price <= ?", *f.MaxPrice)
	}
	if ord, ok := menuOrdering[f.Ordering]; ok {
		q = q.Order(ord)
	} else {
		q = q.Order("menu_items.category_id ASC").Order("menu_items.name ASC")
	}

	var items []entity.MenuItem
	err := q.Find(&items).Error
	return items, err
}

// ดึงเมนูเดียว
func (r *MenuRepository) FindByID(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.Preload("Category").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDsTx returns the items keyed by id; missing ids are simply absent.
func (r *MenuRepository) FindByIDsTx(tx *gorm.DB, ids []uint) (map[uint]entity.MenuItem, error) {
	out := make(map[uint]entity.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []entity.MenuItem
	if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *MenuRepository) Create(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

// Save ใช้ Select("*") เพื่อให้ค่า false/0 ถูกเขียนลง DB ด้วย
func (r *MenuRepository) Save(item *entity.MenuItem) error {
	return r.DB.Model(item).Select("*").Omit("Category", "CreatedAt").Updates(item).Error
}

// DeleteItems เป็น soft delete; order item ที่อ้างถึงยังอ่านได้ผ่าน Unscoped
func (r *MenuRepository) DeleteItems(tx *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := tx.Where("id IN ?", ids).Delete(&entity.MenuItem{})
	return res.RowsAffected, res.Error
}

// BulkSetFlag sets is_available or is_featured on every id in ids.
func (r *MenuRepository) BulkSetFlag(ids []uint, column string, value bool) (int64, error) {
	res := r.DB.Model(&entity.MenuItem{}).Where("id IN ?", ids).Update(column, value)
	return res.RowsAffected, res.Error
}
