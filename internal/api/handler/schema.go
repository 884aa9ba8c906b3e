package handler

import "github.com/activity-platform/moderation-api/internal/core/ports"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

// --- Request types ---

type createReportRequest struct {
	TargetType  string `json:"target_type" validate:"required,oneof=user post comment activity community"`
	TargetID    string `json:"target_id"   validate:"required,uuid4"`
	ReportType  string `json:"report_type" validate:"required,oneof=spam harassment inappropriate fake no_show other"`
	Description string `json:"description" validate:"max=2000"`
}

type updateReportStatusRequest struct {
	Status          string `json:"status"           validate:"required,oneof=reviewing resolved dismissed"`
	ResolutionNotes string `json:"resolution_notes" validate:"max=2000"`
}

type moderatePhotoRequest struct {
	UserID           string `json:"user_id"           validate:"required,uuid4"`
	ModerationStatus string `json:"moderation_status" validate:"required,oneof=approved rejected"`
	RejectionReason  string `json:"rejection_reason"  validate:"max=500"`
}

type banUserRequest struct {
	BanType          string `json:"ban_type"           validate:"required,oneof=permanent temporary"`
	BanDurationHours *int   `json:"ban_duration_hours" validate:"omitempty,gt=0"`
	BanReason        string `json:"ban_reason"         validate:"required,max=1000"`
}

type unbanUserRequest struct {
	UnbanReason string `json:"unban_reason" validate:"required,max=1000"`
}

type removeContentRequest struct {
	ContentType   string `json:"content_type"   validate:"required,oneof=post comment"`
	ContentID     string `json:"content_id"     validate:"required,uuid4"`
	RemovalReason string `json:"removal_reason" validate:"required,max=1000"`
}

// --- Response types ---

// List responses carry an explicit success flag plus a pagination block;
// single-result responses pass the executor payload through as-is, since the
// gateway treats it as opaque.

type paginationResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type listReportsResponse struct {
	Success    bool               `json:"success"`
	Reports    []ports.Payload    `json:"reports"`
	Pagination paginationResponse `json:"pagination"`
}

type listPendingPhotosResponse struct {
	Success       bool               `json:"success"`
	PendingPhotos []ports.Payload    `json:"pending_photos"`
	Pagination    paginationResponse `json:"pagination"`
}
