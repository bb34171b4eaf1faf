package service

import (
	"context"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
)

// LicenseService defines the interface for member licenses
type LicenseService interface {
	EnrollLicense(ctx context.Context, loginID string, req *dto.LicenseRequest) error
	UpdateLicense(ctx context.Context, loginID string, req *dto.LicenseRequest) error
	GetLicenseList(ctx context.Context, loginID string) (*dto.LicenseListResponse, error)
}

type licenseService struct {
	licenseRepo repository.LicenseRepository
	guard       *OwnershipGuard
}

// NewLicenseService creates a new LicenseService
func NewLicenseService(licenseRepo repository.LicenseRepository, guard *OwnershipGuard) LicenseService {
	return &licenseService{licenseRepo: licenseRepo, guard: guard}
}

// EnrollLicense adds a license; a member holds each license name once
func (s *licenseService) EnrollLicense(ctx context.Context, loginID string, req *dto.LicenseRequest) error {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return err
	}

	issueDate, err := req.ParseIssueDate()
	if err != nil {
		return err
	}
	license, err := domain.NewLicense(member.ID, req.Name, req.IssueInstitution, issueDate)
	if err != nil {
		return err
	}

	existing, err := s.licenseRepo.GetByOwnerAndName(ctx, member.ID, license.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrLicenseAlreadyEnrolled
	}
	return s.licenseRepo.Create(ctx, license)
}

// UpdateLicense changes the issuing details of the license named in req
func (s *licenseService) UpdateLicense(ctx context.Context, loginID string, req *dto.LicenseRequest) error {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return err
	}

	issueDate, err := req.ParseIssueDate()
	if err != nil {
		return err
	}

	license, err := s.licenseRepo.GetByOwnerAndName(ctx, member.ID, req.Name)
	if err != nil {
		return err
	}
	if license == nil {
		return domain.ErrLicenseNotFound
	}
	if err := s.guard.AssertLicenseOwner(member, license); err != nil {
		return err
	}

	license.Update(req.IssueInstitution, issueDate)
	return s.licenseRepo.Update(ctx, license)
}

func (s *licenseService) GetLicenseList(ctx context.Context, loginID string) (*dto.LicenseListResponse, error) {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return nil, err
	}
	licenses, err := s.licenseRepo.ListByOwner(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewLicenseListResponse(licenses), nil
}
