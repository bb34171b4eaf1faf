package domain

import (
	"fmt"
	"strings"
)

// Role represents member role
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// DefaultProfileImg is stored until the member uploads a picture
const DefaultProfileImg = "DEFAULT_PROFILE_IMG"

// Member represents a registered user
type Member struct {
	ID         int64  `json:"id" db:"member_id"`
	LoginID    string `json:"login_id" db:"login_id"`
	Password   string `json:"-" db:"password"` // bcrypt hash
	NickName   string `json:"nick_name" db:"nick_name"`
	Email      string `json:"email" db:"email"`
	PhoneNum   string `json:"phone_num" db:"phone_num"`
	Gender     string `json:"gender" db:"gender"`
	Birth      string `json:"birth" db:"birth"`
	ProfileImg string `json:"profile_img" db:"profile_img"`
	Academic   string `json:"academic" db:"academic"`
	Dept       string `json:"dept" db:"dept"`
	GitHubLink string `json:"github_link" db:"github_link"`
	BlogLink   string `json:"blog_link" db:"blog_link"`
	Role       Role   `json:"role" db:"role"`
	Timestamps
}

// NewMemberParams holds the fields collected at sign-up
type NewMemberParams struct {
	LoginID      string
	PasswordHash string
	NickName     string
	Email        string
	PhoneNum     string
	Gender       string
	Birth        string
}

// NewMember builds a USER member with the default profile image
func NewMember(p NewMemberParams) (*Member, error) {
	if strings.TrimSpace(p.LoginID) == "" {
		return nil, fmt.Errorf("%w: login id is required", ErrInvalidArgument)
	}
	if p.PasswordHash == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(p.NickName) == "" {
		return nil, fmt.Errorf("%w: nickname is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}

	return &Member{
		LoginID:    p.LoginID,
		Password:   p.PasswordHash,
		NickName:   p.NickName,
		Email:      p.Email,
		PhoneNum:   p.PhoneNum,
		Gender:     p.Gender,
		Birth:      p.Birth,
		ProfileImg: DefaultProfileImg,
		Role:       RoleUser,
	}, nil
}

// ProfileUpdate is the set of fields a member may change on their own profile
type ProfileUpdate struct {
	NickName   string
	Email      string
	PhoneNum   string
	Gender     string
	Birth      string
	ProfileImg string
	Academic   string
	Dept       string
	GitHubLink string
	BlogLink   string
}

// UpdateProfile overwrites profile fields. An empty ProfileImg keeps the current one.
func (m *Member) UpdateProfile(u ProfileUpdate) {
	m.NickName = u.NickName
	m.Email = u.Email
	m.PhoneNum = u.PhoneNum
	m.Gender = u.Gender
	m.Birth = u.Birth
	m.Academic = u.Academic
	m.Dept = u.Dept
	m.GitHubLink = u.GitHubLink
	m.BlogLink = u.BlogLink
	if u.ProfileImg != "" {
		m.ProfileImg = u.ProfileImg
	}
}

// ChangePassword replaces the stored hash
func (m *Member) ChangePassword(hash string) {
	m.Password = hash
}

// Authorities returns the granted authorities carried in access tokens
func (m *Member) Authorities() []string {
	return []string{string(m.Role)}
}

// SameAs compares members by identity
func (m *Member) SameAs(other *Member) bool {
	return m != nil && other != nil && m.ID != 0 && m.ID == other.ID
}
