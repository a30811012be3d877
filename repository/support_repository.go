// repository/support_repository.go
package repository

import (
	"sabores/entity"

	"gorm.io/gorm"
)

type SupportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{db}
}

func (r *SupportRepository) CreateTicket(t *entity.SupportTicket) error {
	return r.db.Create(t).Error
}

// FindTicket โหลด ticket พร้อมข้อความ (เก่า -> ใหม่)
func (r *SupportRepository) FindTicket(id uint) (*entity.SupportTicket, error) {
	var t entity.SupportTicket
	err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTickets returns every ticket when userID is nil.
func (r *SupportRepository) ListTickets(userID *uint, status entity.TicketStatus) ([]entity.SupportTicket, error) {
	var out []entity.SupportTicket
	q := r.db.Model(&entity.SupportTicket{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *SupportRepository) UpdateTicket(id uint, updates map[string]any) error {
	return r.db.Model(&entity.SupportTicket{}).Where("id = ?", id).Updates(updates).Error
}

func (r *SupportRepository) CreateMessage(msg *entity.SupportMessage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		// ticket ขยับ updated_at ทุกครั้งที่มีข้อความใหม่
		return tx.Model(&entity.SupportTicket{}).Where("id = ?", msg.TicketID).
			Update("updated_at", msg.CreatedAt).Error
	})
}

func (r *SupportRepository) FindMessagesByTicket(ticketID uint) ([]entity.SupportMessage, error) {
	var msgs []entity.SupportMessage
	err := r.db.Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}
