package services

import (
	"errors"
	"strings"
	"time"

	"sabores/entity"
	"sabores/pkg/apperr"
	"sabores/repository"
	"sabores/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService จัดการ business logic ของการ login/register
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	Password2 string
	Name      string
	Phone     string
	Address   string
}

func errEmailTaken() error {
	return apperr.ValidationFields("invalid request", map[string]string{
		"email": "email already registered",
	})
}

// Register สร้าง user ใหม่ (role customer เสมอ)
func (s *AuthService) Register(in RegisterInput) (*entity.User, error) {
	if in.Password != in.Password2 {
		return nil, apperr.ValidationFields("invalid request", map[string]string{
			"password2": "passwords do not match",
		})
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailTaken()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(in.Name),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Role:     entity.RoleCustomer,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		// สมัครพร้อมกันด้วย email เดียวกัน
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailTaken()
		}
		return nil, err
	}
	return user, nil
}

// Login ตรวจสอบ user + สร้าง JWT
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Authentication("invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Authentication("invalid credentials")
	}
	if !user.IsActive {
		return "", nil, apperr.Authentication("account is disabled")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AdminLogin is Login restricted to the admin role.
func (s *AuthService) AdminLogin(email, password string) (string, *entity.User, error) {
	token, user, err := s.Login(email, password)
	if err != nil {
		return "", nil, err
	}
	if user.Role != entity.RoleAdmin {
		return "", nil, apperr.Permission("this user does not have admin permissions")
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}

type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *string
}

// UpdateProfile อัปเดตเฉพาะ field ที่ส่งมา; email และ role แก้ที่นี่ไม่ได้
func (s *AuthService) UpdateProfile(userID uint, in ProfileUpdate) (*entity.User, error) {
	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.ValidationFields("invalid request", map[string]string{"name": "this field may not be blank"})
		}
		updates["name"] = name
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		updates["address"] = strings.TrimSpace(*in.Address)
	}
	if len(updates) > 0 {
		if err := s.userRepo.Update(userID, updates); err != nil {
			return nil, err
		}
	}
	return s.userRepo.FindByID(userID)
}

type UserPage struct {
	Items []entity.User `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (s *AuthService) ListUsers(role string, page, limit int) (*UserPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if role != "" && !entity.IsValidRole(role) {
		return nil, apperr.ValidationFields("invalid request", map[string]string{"role": "is not a valid choice"})
	}
	users, total, err := s.userRepo.List(role, page, limit)
	if err != nil {
		return nil, err
	}
	return &UserPage{Items: users, Total: total, Page: page, Limit: limit}, nil
}

// ChangeRole takes effect on the user's next login; issued tokens keep the old role.
func (s *AuthService) ChangeRole(userID uint, role string) (*entity.User, error) {
	if !entity.IsValidRole(role) {
		return nil, apperr.ValidationFields("invalid request", map[string]string{"role": "is not a valid choice"})
	}
	n, err := s.userRepo.UpdateRole(userID, role)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperr.NotFound("user not found")
	}
	return s.userRepo.FindByID(userID)
}
