package dto

import (
	"fmt"
	"time"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
)

// IssueDateLayout is the wire format of license issue dates
const IssueDateLayout = "2006-01-02"

// LicenseRequest represents license enroll/update request
type LicenseRequest struct {
	Name             string `json:"name" binding:"required,max=100"`
	IssueInstitution string `json:"issueInstitution"`
	IssueDate        string `json:"issueDate"`
}

// ParseIssueDate parses IssueDate; an empty value is nil
func (r *LicenseRequest) ParseIssueDate() (*time.Time, error) {
	if r.IssueDate == "" {
		return nil, nil
	}
	t, err := time.Parse(IssueDateLayout, r.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: issueDate must be YYYY-MM-DD", domain.ErrBadRequest)
	}
	return &t, nil
}

// LicenseResponse represents one license
type LicenseResponse struct {
	Name             string `json:"name"`
	IssueInstitution string `json:"issueInstitution"`
	IssueDate        string `json:"issueDate,omitempty"`
}

// LicenseListResponse represents a member's licenses
type LicenseListResponse struct {
	LicenseRespList []LicenseResponse `json:"licenseRespList"`
}

// NewLicenseListResponse builds LicenseListResponse
func NewLicenseListResponse(licenses []*domain.License) *LicenseListResponse {
	resp := &LicenseListResponse{LicenseRespList: make([]LicenseResponse, 0, len(licenses))}
	for _, l := range licenses {
		item := LicenseResponse{Name: l.Name, IssueInstitution: l.IssueInstitution}
		if l.IssueDate != nil {
			item.IssueDate = l.IssueDate.Format(IssueDateLayout)
		}
		resp.LicenseRespList = append(resp.LicenseRespList, item)
	}
	return resp
}
