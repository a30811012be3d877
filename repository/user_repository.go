package repository

import (
	"sabores/entity"

	"gorm.io/gorm"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// หาผู้ใช้จาก email
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// นับจำนวน user ที่มี email ซ้ำ
func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) Update(userID uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(role string, page, limit int) ([]entity.User, int64, error) {
	byRole := func(q *gorm.DB) *gorm.DB {
		if role != "" {
			q = q.Where("role = ?", role)
		}
		return q
	}
	var total int64
	if err := r.DB.Model(&entity.User{}).Scopes(byRole).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []entity.User
	err := r.DB.Scopes(byRole).Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) UpdateRole(userID uint, role string) (int64, error) {
	res := r.DB.Model(&entity.User{}).Where("id = ?", userID).Update("role", role)
	return res.RowsAffected, res.Error
}
