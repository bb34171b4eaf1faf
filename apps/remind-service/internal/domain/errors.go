package domain

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	// Generic
	ErrBadRequest      = errors.New("bad request")
	ErrInvalidArgument = errors.New("invalid argument")

	// Token errors
	ErrTokenNotValid           = errors.New("token not valid")
	ErrTokenLoggedOut          = errors.New("token has been logged out")
	ErrMissingAuthoritiesClaim = errors.New("token has no authorities claim")
	ErrRefreshTokenNotMatched  = errors.New("refresh token not matched")

	// Member errors
	ErrLoginIDAlreadyExists = errors.New("login id already exists")
	ErrPasswordNotMatched   = errors.New("password not matched")
	ErrMemberNotFound       = errors.New("member not found")
	ErrIDOrPasswordWrong    = errors.New("id or password wrong")
	ErrMemberNotMatch       = errors.New("member not match")

	// Job errors
	ErrJobNotFound      = errors.New("job not found")
	ErrJobAlreadyExists = errors.New("job already exists")

	// License errors
	ErrLicenseNotFound        = errors.New("license not found")
	ErrLicenseAlreadyEnrolled = errors.New("license already enrolled")

	// Portfolio errors
	ErrPortfolioNotFound         = errors.New("portfolio not found")
	ErrWriterNotMatchedPortfolio = errors.New("writer not matched portfolio")
	ErrPortfolioAwardNotFound    = errors.New("portfolio award not found")

	// Project errors
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectNotMatch = errors.New("project not match")
)

// ErrorCode is the client-facing rendering of a domain error
type ErrorCode struct {
	Status  int
	Code    string
	Message string
}

// InternalServerError is rendered for anything not in the table
var InternalServerError = ErrorCode{http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "내부 서버 오류입니다."}

// MethodNotAllowed is rendered by the router for a known path with the wrong verb
var MethodNotAllowed = ErrorCode{http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "허용되지 않은 요청입니다."}

var errorCodes = []struct {
	err  error
	code ErrorCode
}{
	{ErrBadRequest, ErrorCode{http.StatusBadRequest, "BAD_REQUEST", "잘못된 요청입니다."}},
	{ErrInvalidArgument, ErrorCode{http.StatusBadRequest, "BAD_REQUEST", "잘못된 요청입니다."}},

	{ErrTokenNotValid, ErrorCode{http.StatusBadRequest, "TOKEN_NOT_VALIDATE", "올바르지 않은 토큰입니다."}},
	{ErrTokenLoggedOut, ErrorCode{http.StatusBadRequest, "TOKEN_NOT_VALIDATE", "올바르지 않은 토큰입니다."}},
	{ErrMissingAuthoritiesClaim, ErrorCode{http.StatusBadRequest, "TOKEN_NOT_VALIDATE", "권한 정보가 없는 토큰입니다."}},
	{ErrRefreshTokenNotMatched, ErrorCode{http.StatusBadRequest, "REFRESH_TOKEN_NOT_MATCHED", "리프레시 토큰이 일치하지 않습니다."}},

	{ErrLoginIDAlreadyExists, ErrorCode{http.StatusBadRequest, "LOGIN_ID_ALREADY_EXISTS", "이미 존재하는 아이디입니다."}},
	{ErrPasswordNotMatched, ErrorCode{http.StatusBadRequest, "PASSWORD_NOT_MATCHED", "비밀번호가 일치하지 않습니다."}},
	{ErrMemberNotFound, ErrorCode{http.StatusBadRequest, "MEMBER_NOT_FOUND", "사용자를 찾을 수 없습니다."}},
	{ErrIDOrPasswordWrong, ErrorCode{http.StatusBadRequest, "ID_OR_PASSWORD_WRONG", "아이디 또는 비밀번호를 잘못 입력했습니다. 입력하신 내용을 다시 확인해주세요."}},
	{ErrMemberNotMatch, ErrorCode{http.StatusBadRequest, "MEMBER_NOT_MATCH", "사용자 정보가 일치하지 않습니다."}},

	{ErrJobNotFound, ErrorCode{http.StatusBadRequest, "JOB_NOT_FOUND", "해당 직무를 찾을 수 없습니다."}},
	{ErrJobAlreadyExists, ErrorCode{http.StatusBadRequest, "JOB_ALREADY_EXISTS", "이미 존재하는 직무입니다."}},

	{ErrLicenseNotFound, ErrorCode{http.StatusBadRequest, "LICENSE_NOT_FOUND", "해당 자격증 정보를 찾을 수 없습니다."}},
	{ErrLicenseAlreadyEnrolled, ErrorCode{http.StatusBadRequest, "LICENCE_ALREADY_ENROLLED", "이미 등록된 자격증입니다."}},

	{ErrPortfolioNotFound, ErrorCode{http.StatusBadRequest, "PORTFOLIO_NOT_FOUND", "포트폴리오를 찾을 수 없습니다."}},
	{ErrWriterNotMatchedPortfolio, ErrorCode{http.StatusBadRequest, "WRITER_NOT_MATCHED_PORTFOLIO", "작성자 정보가 일치하지 않습니다."}},
	{ErrPortfolioAwardNotFound, ErrorCode{http.StatusBadRequest, "PORTFOLIO_AWARD_NOT_FOUND", "포트폴리오 수상정보를 찾을 수 없습니다."}},

	{ErrProjectNotFound, ErrorCode{http.StatusBadRequest, "PROJECT_NOT_FOUND", "프로젝트를 찾을 수 없습니다."}},
	{ErrProjectNotMatch, ErrorCode{http.StatusBadRequest, "PROJECT_NOT_MATCH", "프로젝트 정보가 일치하지 않습니다."}},
}

// CodeOf resolves err against the domain error table
func CodeOf(err error) (ErrorCode, bool) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code, true
		}
	}
	return InternalServerError, false
}

// IsOwnershipError reports whether err was raised by an ownership check
func IsOwnershipError(err error) bool {
	return errors.Is(err, ErrMemberNotMatch) ||
		errors.Is(err, ErrWriterNotMatchedPortfolio) ||
		errors.Is(err, ErrProjectNotMatch)
}
