package repository

import (
	"context"

	"gorm.io/gorm"

	"meetbook/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// ListWithActiveSlots returns all users except excludeID that have at
	// least one active slot, with only their active slots preloaded.
	ListWithActiveSlots(ctx context.Context, excludeID uint) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListWithActiveSlots(ctx context.Context, excludeID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Where("EXISTS (SELECT 1 FROM slots WHERE slots.user_id = users.id AND slots.active = ?)", true).
		Preload("Slots", "active = ?", true).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
