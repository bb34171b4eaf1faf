package service

import (
	"context"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/security"
)

// MemberService defines the interface for member profile operations
type MemberService interface {
	CheckLoginIDDuplicated(ctx context.Context, loginID string) error
	GetMember(ctx context.Context, loginID string) (*dto.MemberResponse, error)
	UpdateMember(ctx context.Context, loginID string, req *dto.MemberUpdateRequest) error
	UpdatePassword(ctx context.Context, loginID string, req *dto.PasswordUpdateRequest) error
}

type memberService struct {
	memberRepo repository.MemberRepository
	guard      *OwnershipGuard
	passwords  *security.PasswordEncoder
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo repository.MemberRepository, guard *OwnershipGuard, passwords *security.PasswordEncoder) MemberService {
	return &memberService{memberRepo: memberRepo, guard: guard, passwords: passwords}
}

// CheckLoginIDDuplicated fails when loginID is taken
func (s *memberService) CheckLoginIDDuplicated(ctx context.Context, loginID string) error {
	exists, err := s.memberRepo.ExistsByLoginID(ctx, loginID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrLoginIDAlreadyExists
	}
	return nil
}

func (s *memberService) GetMember(ctx context.Context, loginID string) (*dto.MemberResponse, error) {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return nil, err
	}
	return dto.NewMemberResponse(member), nil
}

func (s *memberService) UpdateMember(ctx context.Context, loginID string, req *dto.MemberUpdateRequest) error {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return err
	}
	member.UpdateProfile(req.ToProfileUpdate())
	return s.memberRepo.Update(ctx, member)
}

// UpdatePassword requires the current password and a matching confirmation
func (s *memberService) UpdatePassword(ctx context.Context, loginID string, req *dto.PasswordUpdateRequest) error {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return err
	}

	ok, err := s.passwords.ComparePassword(member.Password, req.ExistsPassword)
	if err != nil {
		return err
	}
	if !ok || req.NewPassword != req.ConfirmNewPassword {
		return domain.ErrPasswordNotMatched
	}

	hash, err := s.passwords.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	member.ChangePassword(hash)
	return s.memberRepo.Update(ctx, member)
}
