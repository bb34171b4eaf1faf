package dto

import "time"

// PresignRequest asks for an upload URL
type PresignRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=profile background project"`
	ContentType string `json:"contentType" binding:"required"`
}

// PresignResponse carries a presigned PUT URL and the URL the object will be served from
type PresignResponse struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectURL string    `json:"objectUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
