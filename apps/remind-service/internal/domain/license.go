package domain

import (
	"fmt"
	"strings"
	"time"
)

// License is a certificate owned by a member. Name is unique per owner.
type License struct {
	ID               int64      `json:"id" db:"license_id"`
	OwnerID          int64      `json:"owner_id" db:"member_id"`
	Name             string     `json:"name" db:"name"`
	IssueInstitution string     `json:"issue_institution" db:"issue_institution"`
	IssueDate        *time.Time `json:"issue_date" db:"issue_date"`
	Timestamps
}

// NewLicense validates and builds a License
func NewLicense(ownerID int64, name, institution string, issueDate *time.Time) (*License, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: license owner is required", ErrInvalidArgument)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: license name is required", ErrInvalidArgument)
	}
	return &License{
		OwnerID:          ownerID,
		Name:             name,
		IssueInstitution: institution,
		IssueDate:        issueDate,
	}, nil
}

// Update changes the issuing details
func (l *License) Update(institution string, issueDate *time.Time) {
	l.IssueInstitution = institution
	l.IssueDate = issueDate
}

// OwnedBy reports whether the member owns the license
func (l *License) OwnedBy(memberID int64) bool {
	return l.OwnerID == memberID
}
