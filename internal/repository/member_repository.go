package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"choreboard/internal/model"
)

// MemberRepository manages household members.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

func (r *MemberRepository) ListByUser(ctx context.Context, userID uint) ([]model.Member, error) {
	var members []model.Member
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, userID, memberID uint) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, memberID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) Update(ctx context.Context, member *model.Member) error {
	if err := r.db.WithContext(ctx).Save(member).Error; err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	return nil
}

// Delete removes a member and clears references from tasks and completion
// records in one transaction. Completion rows themselves survive: the audit
// trail keeps the event, just without the completer.
func (r *MemberRepository) Delete(ctx context.Context, userID, memberID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("user_id = ? AND member_id = ?", userID, memberID).
			Update("member_id", nil).Error; err != nil {
			return fmt.Errorf("detach tasks: %w", err)
		}
		if err := tx.Model(&model.Completion{}).
			Where("user_id = ? AND member_id = ?", userID, memberID).
			Update("member_id", nil).Error; err != nil {
			return fmt.Errorf("detach completions: %w", err)
		}
		result := tx.Where("user_id = ? AND id = ?", userID, memberID).Delete(&model.Member{})
		if result.Error != nil {
			return fmt.Errorf("delete member: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
