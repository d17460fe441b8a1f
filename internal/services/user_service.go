package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openjobs/openjobs/internal/dtos"
	"github.com/openjobs/openjobs/internal/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates a normal (non-admin, active) account.
func (s *UserService) Register(form *dtos.RegisterForm) (*models.User, error) {
	return s.create(form, false)
}

// RegisterAdmin is Register plus the admin flag. Used by the one-time
// setup page and the bootstrap CLI; both refuse to run once an admin
// exists, checked here as well so the invariant has a single home.
func (s *UserService) RegisterAdmin(form *dtos.RegisterForm) (*models.User, error) {
	exists, err := s.HasAdmin()
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrForbidden
	}
	return s.create(form, true)
}

// create checks uniqueness up front so the handler can highlight the
// exact field, then inserts the row in a single write.
func (s *UserService) create(form *dtos.RegisterForm, admin bool) (*models.User, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", form.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}
	if err := s.DB.Model(&models.User{}).Where("email = ?", form.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &models.User{
		Name:     form.Name,
		Username: form.Username,
		Email:    form.Email,
		Password: string(hashed),
		IsActive: true,
		IsAdmin:  admin,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// HasAdmin reports whether any admin account exists yet.
func (s *UserService) HasAdmin() (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return false, fmt.Errorf("has admin: %w", err)
	}
	return count > 0, nil
}

// Authenticate verifies a username/password pair for the normal login
// flow. The caller gets ErrBadCredentials whether the user is unknown
// or the password is wrong.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return &user, nil
}

// AuthenticateAdmin is the admin login lookup: email AND the admin
// flag. A non-admin's email never matches, no matter the password.
func (s *UserService) AuthenticateAdmin(email, password string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ? AND is_admin = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate admin: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return &user, nil
}

func (s *UserService) ByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user by id: %w", err)
	}
	return &user, nil
}

// List pages through every account for the admin panel, id ascending
// so the listing is stable across requests.
func (s *UserService) List(page int) (Page[models.User], error) {
	return paginate[models.User](s.DB.Model(&models.User{}), page, "id ASC")
}

// Recent returns the n newest accounts for the admin dashboard.
func (s *UserService) Recent(n int) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at DESC").Limit(n).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	return users, nil
}

// ToggleActive flips the active flag on a non-admin account. Admin
// accounts are refused outright; nothing else on the row changes.
func (s *UserService) ToggleActive(id uint) (*models.User, error) {
	user, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, ErrAdminImmutable
	}
	next := !user.IsActive
	if err := s.DB.Model(user).Update("is_active", next).Error; err != nil {
		return nil, fmt.Errorf("toggle user status: %w", err)
	}
	user.IsActive = next
	return user, nil
}
