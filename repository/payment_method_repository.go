package repository

import (
	"sabores/entity"

	"gorm.io/gorm"
)

type PaymentMethodRepository struct {
	DB *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{DB: db}
}

// ค่า default ขึ้นก่อน แล้วเรียงใหม่ไปเก่า
func (r *PaymentMethodRepository) ListForUser(userID uint) ([]entity.PaymentMethod, error) {
	var out []entity.PaymentMethod
	err := r.DB.Where("user_id = ?", userID).
		Order("is_default DESC").Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	return out, err
}

func (r *PaymentMethodRepository) FindForUser(userID, id uint) (*entity.PaymentMethod, error) {
	var pm entity.PaymentMethod
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&pm).Error; err != nil {
		return nil, err
	}
	return &pm, nil
}

func (r *PaymentMethodRepository) Create(tx *gorm.DB, pm *entity.PaymentMethod) error {
	return tx.Create(pm).Error
}

func (r *PaymentMethodRepository) Save(tx *gorm.DB, pm *entity.PaymentMethod) error {
	return tx.Save(pm).Error
}

// ClearDefault unsets the default flag on every other method of the user.
func (r *PaymentMethodRepository) ClearDefault(tx *gorm.DB, userID, exceptID uint) error {
	return tx.Model(&entity.PaymentMethod{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, exceptID, true).
		Update("is_default", false).Error
}

func (r *PaymentMethodRepository) DeleteForUser(userID, id uint) (int64, error) {
	res := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.PaymentMethod{})
	return res.RowsAffected, res.Error
}
