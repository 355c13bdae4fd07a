package service

import (
	"context"
	"fmt"
	"strings"

	"choreboard/internal/model"
	"choreboard/internal/repository"
)

// MemberService provides owner-scoped household member CRUD.
type MemberService struct {
	repo *repository.MemberRepository
}

func NewMemberService(repo *repository.MemberRepository) *MemberService {
	return &MemberService{repo: repo}
}

func (s *MemberService) Create(ctx context.Context, userID uint, name string) (*model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	member := model.Member{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) List(ctx context.Context, userID uint) ([]model.Member, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *MemberService) Update(ctx context.Context, userID, memberID uint, name string) (*model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	member, err := s.repo.FindByID(ctx, userID, memberID)
	if err != nil {
		return nil, orNotFound(err)
	}
	member.Name = name
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member; assignments and audit rows are detached, the
// completion history itself stays.
func (s *MemberService) Delete(ctx context.Context, userID, memberID uint) error {
	return orNotFound(s.repo.Delete(ctx, userID, memberID))
}
