package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/middleware"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/service"
	"github.com/Ms-You/poje-remind/pkg/response"
)

// MemberHandler handles the member profile and licenses
type MemberHandler struct {
	memberService  service.MemberService
	licenseService service.LicenseService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService service.MemberService, licenseService service.LicenseService) *MemberHandler {
	return &MemberHandler{memberService: memberService, licenseService: licenseService}
}

// CheckLoginID reports whether a login id is free
// GET /check-loginId?loginId=
func (h *MemberHandler) CheckLoginID(c *gin.Context) {
	loginID := c.Query("loginId")
	if loginID == "" {
		response.BadRequest(c, badRequestMessage)
		return
	}

	if err := h.memberService.CheckLoginIDDuplicated(c.Request.Context(), loginID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "사용 가능한 아이디 입니다.", nil)
}

// GetMember returns the caller's profile
// GET /member
func (h *MemberHandler) GetMember(c *gin.Context) {
	resp, err := h.memberService.GetMember(c.Request.Context(), middleware.LoginID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "사용자 정보 반환", resp)
}

// UpdateMember changes the caller's profile and returns it
// PUT /member
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req dto.MemberUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	loginID := middleware.LoginID(c)
	if err := h.memberService.UpdateMember(ctx, loginID, &req); err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.memberService.GetMember(ctx, loginID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "회원 정보가 수정되었습니다.", resp)
}

// UpdatePassword changes the caller's password
// PUT /member/password
func (h *MemberHandler) UpdatePassword(c *gin.Context) {
	var req dto.PasswordUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.memberService.UpdatePassword(c.Request.Context(), middleware.LoginID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "비밀번호가 변경되었습니다.", nil)
}

// EnrollLicense POST /member/license
func (h *MemberHandler) EnrollLicense(c *gin.Context) {
	var req dto.LicenseRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.licenseService.EnrollLicense(c.Request.Context(), middleware.LoginID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, "자격증 정보가 등록되었습니다.", nil)
}

// UpdateLicense PUT /member/license
func (h *MemberHandler) UpdateLicense(c *gin.Context) {
	var req dto.LicenseRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.licenseService.UpdateLicense(c.Request.Context(), middleware.LoginID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "자격증 정보가 수정되었습니다.", nil)
}

// GetLicenseList GET /member/license
func (h *MemberHandler) GetLicenseList(c *gin.Context) {
	resp, err := h.licenseService.GetLicenseList(c.Request.Context(), middleware.LoginID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "자격증 목록 반환", resp)
}
