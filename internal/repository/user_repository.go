package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"choreboard/internal/model"
)

// UserRepository handles CRUD for accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetTelegramChat links (or unlinks, with 0) a user's Telegram chat.
func (r *UserRepository) SetTelegramChat(ctx context.Context, userID uint, chatID int64) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("telegram_chat_id", chatID).Error; err != nil {
		return fmt.Errorf("set telegram chat: %w", err)
	}
	return nil
}

// ListWithTelegram returns every user with a linked Telegram chat.
func (r *UserRepository) ListWithTelegram(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("telegram_chat_id <> 0").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
