package services

import (
	"errors"
	"strings"

	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/pkg/resp"
	"sabores/repository"
	"sabores/utils"

	"gorm.io/gorm"
)

type PaymentMethodService struct {
	DB   *gorm.DB
	Repo *repository.PaymentMethodRepository
}

func NewPaymentMethodService(db *gorm.DB, repo *repository.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{DB: db, Repo: repo}
}

type PaymentMethodInput struct {
	Type       entity.PaymentType `json:"type" validate:"payment_method"`
	CardLast4  string             `json:"card_last4"`
	HolderName string             `json:"holder_name"`
	Expiry     string             `json:"expiry"`
	IsDefault  bool               `json:"is_default"`
}

// กฎเดียวกับ PaymentMethodReq ฝั่ง controller
type cardDetails struct {
	CardLast4 string `json:"card_last4" validate:"required,len=4,numeric"`
	Expiry    string `json:"expiry" validate:"required,card_expiry"`
}

// validate: บัตรต้องมีเลข 4 ตัวท้ายและวันหมดอายุ; แบบอื่นจะล้างข้อมูลบัตรทิ้ง
func (in *PaymentMethodInput) validate() error {
	v := utils.Validator()
	if err := v.Struct(in); err != nil {
		return resp.BindError(err)
	}
	if in.Type == entity.PayCard {
		if err := v.Struct(cardDetails{CardLast4: in.CardLast4, Expiry: in.Expiry}); err != nil {
			return resp.BindError(err)
		}
	} else {
		in.CardLast4, in.Expiry = "", ""
	}
	in.HolderName = strings.TrimSpace(in.HolderName)
	return nil
}

func (s *PaymentMethodService) List(userID uint) ([]entity.PaymentMethod, error) {
	return s.Repo.ListForUser(userID)
}

func (s *PaymentMethodService) Get(userID, id uint) (*entity.PaymentMethod, error) {
	pm, err := s.Repo.FindForUser(userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("payment method not found")
	}
	return pm, err
}

func (s *PaymentMethodService) Create(userID uint, in PaymentMethodInput) (*entity.PaymentMethod, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	pm := &entity.PaymentMethod{UserID: userID}
	apply(pm, in)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, pm); err != nil {
			return err
		}
		if pm.IsDefault {
			return s.Repo.ClearDefault(tx, userID, pm.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *PaymentMethodService) Update(userID, id uint, in PaymentMethodInput) (*entity.PaymentMethod, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	pm, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	apply(pm, in)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Save(tx, pm); err != nil {
			return err
		}
		if pm.IsDefault {
			return s.Repo.ClearDefault(tx, userID, pm.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *PaymentMethodService) Delete(userID, id uint) error {
	n, err := s.Repo.DeleteForUser(userID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("payment method not found")
	}
	return nil
}

func apply(pm *entity.PaymentMethod, in PaymentMethodInput) {
	pm.Type = in.Type
	pm.CardLast4 = in.CardLast4
	pm.HolderName = in.HolderName
	pm.Expiry = in.Expiry
	pm.IsDefault = in.IsDefault
}
