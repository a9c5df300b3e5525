package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindRoleByName(name string) (*UserRole, error)

	// ListUsers returns every user, optionally narrowed to one role.
	ListUsers(roleName string) ([]User, error)

	Update(user *User) error

	// SeedRoles inserts the built-in roles if missing.
	SeedRoles(names []string) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return &u, err
}

// Find user by ID (with role preload)
func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	return user, err
}

// Find user role by name
func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	return &role, err
}

func (r *repository) ListUsers(roleName string) ([]User, error) {
	q := r.db.Preload("Role").Order("created_at DESC")
	if roleName != "" {
		q = q.Joins("JOIN user_roles ON user_roles.id = users.role_id").
			Where("user_roles.role_name = ?", roleName)
	}
	var users []User
	err := q.Find(&users).Error
	return users, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

func (r *repository) SeedRoles(names []string) error {
	for _, name := range names {
		var role UserRole
		err := r.db.Where("role_name = ?", name).First(&role).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := r.db.Create(&UserRole{RoleName: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
