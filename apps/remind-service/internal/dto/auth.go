package dto

// JoinRequest represents sign-up request
type JoinRequest struct {
	LoginID         string `json:"loginId" binding:"required,max=50"`
	Password        string `json:"password" binding:"required,max=72"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
	NickName        string `json:"nickName" binding:"required,max=50"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNum        string `json:"phoneNum"`
	Gender          string `json:"gender"`
	Birth           string `json:"birth"`
}

// PasswordsMatch reports whether the confirmation repeats the password
func (r *JoinRequest) PasswordsMatch() bool {
	return r.Password == r.PasswordConfirm
}

// LoginRequest represents login request
type LoginRequest struct {
	LoginID  string `json:"loginId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the body of a login or reissue
type TokenResponse struct {
	GrantType            string `json:"grantType"`
	AccessToken          string `json:"accessToken"`
	AccessTokenExpiresIn int64  `json:"accessTokenExpiresIn"`
}
