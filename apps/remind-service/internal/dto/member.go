package dto

import "github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"

// MemberUpdateRequest represents profile update request
type MemberUpdateRequest struct {
	NickName   string `json:"nickName" binding:"required,max=50"`
	Email      string `json:"email" binding:"required,email"`
	PhoneNum   string `json:"phoneNum"`
	Gender     string `json:"gender"`
	Birth      string `json:"birth"`
	Academic   string `json:"academic"`
	Dept       string `json:"dept"`
	GitHubLink string `json:"gitHubLink"`
	BlogLink   string `json:"blogLink"`
	ProfileImg string `json:"profileImg"`
}

// ToProfileUpdate converts the request to the domain update
func (r *MemberUpdateRequest) ToProfileUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		NickName:   r.NickName,
		Email:      r.Email,
		PhoneNum:   r.PhoneNum,
		Gender:     r.Gender,
		Birth:      r.Birth,
		ProfileImg: r.ProfileImg,
		Academic:   r.Academic,
		Dept:       r.Dept,
		GitHubLink: r.GitHubLink,
		BlogLink:   r.BlogLink,
	}
}

// PasswordUpdateRequest represents password change request
type PasswordUpdateRequest struct {
	ExistsPassword     string `json:"existsPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,max=72"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

// MemberResponse is a member's own profile. The portfolio about-me view uses the same shape.
type MemberResponse struct {
	NickName   string `json:"nickName"`
	Email      string `json:"email"`
	PhoneNum   string `json:"phoneNum"`
	Gender     string `json:"gender"`
	Birth      string `json:"birth"`
	ProfileImg string `json:"profileImg"`
	Academic   string `json:"academic"`
	Dept       string `json:"dept"`
	GitHubLink string `json:"gitHubLink"`
	BlogLink   string `json:"blogLink"`
}

// NewMemberResponse builds MemberResponse from a member
func NewMemberResponse(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		NickName:   m.NickName,
		Email:      m.Email,
		PhoneNum:   m.PhoneNum,
		Gender:     m.Gender,
		Birth:      m.Birth,
		ProfileImg: m.ProfileImg,
		Academic:   m.Academic,
		Dept:       m.Dept,
		GitHubLink: m.GitHubLink,
		BlogLink:   m.BlogLink,
	}
}
