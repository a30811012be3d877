// services/menu_service.go
package services

import (
	"errors"
	"strings"

	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/repository"

	"gorm.io/gorm"
)

type MenuService struct {
	DB       *gorm.DB
	Repo     *repository.MenuRepository
	CartRepo *repository.CartRepository
}

func NewMenuService(db *gorm.DB, repo *repository.MenuRepository, cartRepo *repository.CartRepository) *MenuService {
	return &MenuService{DB: db, Repo: repo, CartRepo: cartRepo}
}

// ---------------- Categories ----------------

type CategoryInput struct {
	Name        string
	Description string
	IsActive    *bool
}

func (s *MenuService) ListCategories(activeOnly bool) ([]entity.Category, error) {
	return s.Repo.ListCategories(activeOnly)
}

func (s *MenuService) GetCategory(id uint) (*entity.Category, error) {
	cat, err := s.Repo.FindCategory(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("category not found")
	}
	return cat, err
}

func (s *MenuService) CreateCategory(in CategoryInput) (*entity.Category, error) {
	cat := &entity.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    true,
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}
	if err := s.Repo.CreateCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *MenuService) UpdateCategory(id uint, in CategoryInput) (*entity.Category, error) {
	cat, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	cat.Name = strings.TrimSpace(in.Name)
	cat.Description = in.Description
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}
	if err := s.Repo.SaveCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory ลบหมวดพร้อมเมนูทั้งหมดในหมวด และเอาเมนูเหล่านั้นออกจากตะกร้า ใน tx เดียว
func (s *MenuService) DeleteCategory(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.DeleteCategory(tx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("category not found")
		}
		ids, err := s.Repo.ItemIDsInCategory(tx, id)
		if err != nil {
			return err
		}
		return s.deleteItems(tx, ids)
	})
}

// ---------------- Menu items ----------------

type MenuItemInput struct {
	Name            string
	Description     string
	Price           entity.Money
	IsAvailable     *bool
	IsFeatured      *bool
	PreparationTime *int
	CategoryID      uint
}

func (s *MenuService) ListItems(f repository.MenuFilter) ([]entity.MenuItem, error) {
	return s.Repo.ListItems(f)
}

// Featured คือเมนูแนะนำที่ยังสั่งได้
func (s *MenuService) Featured() ([]entity.MenuItem, error) {
	return s.Repo.ListItems(repository.MenuFilter{FeaturedOnly: true, AvailableOnly: true})
}

func (s *MenuService) GetItem(id uint) (*entity.MenuItem, error) {
	item, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("menu item not found")
	}
	return item, err
}

func (s *MenuService) validateItem(in MenuItemInput) error {
	fields := map[string]string{}
	if in.Price.IsNegative() {
		fields["price"] = "must be greater than or equal to 0"
	}
	if in.PreparationTime != nil && *in.PreparationTime < 0 {
		fields["preparation_time"] = "must be greater than or equal to 0"
	}
	if in.CategoryID != 0 {
		if _, err := s.Repo.FindCategory(in.CategoryID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			fields["category_id"] = "category not found"
		}
	}
	if len(fields) > 0 {
		return apperr.ValidationFields("invalid request", fields)
	}
	return nil
}

func (s *MenuService) CreateItem(in MenuItemInput) (*entity.MenuItem, error) {
	if err := s.validateItem(in); err != nil {
		return nil, err
	}
	item := &entity.MenuItem{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Price:           in.Price,
		IsAvailable:     true,
		PreparationTime: 15,
		CategoryID:      in.CategoryID,
	}
	applyItemFlags(item, in)
	if err := s.Repo.Create(item); err != nil {
		return nil, err
	}
	return s.GetItem(item.ID)
}

func (s *MenuService) UpdateItem(id uint, in MenuItemInput) (*entity.MenuItem, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateItem(in); err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.Price = in.Price
	item.CategoryID = in.CategoryID
	applyItemFlags(item, in)
	if err := s.Repo.Save(item); err != nil {
		return nil, err
	}
	return s.GetItem(id)
}

func applyItemFlags(item *entity.MenuItem, in MenuItemInput) {
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.IsFeatured != nil {
		item.IsFeatured = *in.IsFeatured
	}
	if in.PreparationTime != nil {
		item.PreparationTime = *in.PreparationTime
	}
}

// DeleteItem เป็น soft delete; order เก่ายังอ้างถึงเมนูนี้ได้ แต่ตะกร้าจะไม่มีเมนูนี้อีก
func (s *MenuService) DeleteItem(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		found, err := s.Repo.FindByIDsTx(tx, []uint{id})
		if err != nil {
			return err
		}
		if _, ok := found[id]; !ok {
			return apperr.NotFound("menu item not found")
		}
		return s.deleteItems(tx, []uint{id})
	})
}

func (s *MenuService) deleteItems(tx *gorm.DB, ids []uint) error {
	if _, err := s.Repo.DeleteItems(tx, ids); err != nil {
		return err
	}
	return s.CartRepo.DeleteLinesForMenuItems(tx, ids)
}

const (
	BulkSetAvailable = "set_available"
	BulkSetFeatured  = "set_featured"
)

// BulkUpdate returns the number of updated rows.
func (s *MenuService) BulkUpdate(action string, ids []uint, value bool) (int64, error) {
	var column string
	switch action {
	case BulkSetAvailable:
		column = "is_available"
	case BulkSetFeatured:
		column = "is_featured"
	default:
		return 0, apperr.ValidationFields("invalid request", map[string]string{
			"action": "must be one of: set_available set_featured",
		})
	}
	if len(ids) == 0 {
		return 0, apperr.ValidationFields("invalid request", map[string]string{"ids": "this field is required"})
	}
	return s.Repo.BulkSetFlag(ids, column, value)
}
