package ports

import (
	"context"
	"time"
)

// --- Inputs ---

type CreateReportInput struct {
	TargetType  string
	TargetID    string
	ReportType  string
	Description string
}

type ReportFilters struct {
	Status     string
	TargetType string
	ReportType string
	Limit      int
	Offset     int
}

type UpdateReportStatusInput struct {
	Status          string
	ResolutionNotes string
}

type PageInput struct {
	Limit  int
	Offset int
}

type ModeratePhotoInput struct {
	UserID           string
	ModerationStatus string
	RejectionReason  string
}

type BanUserInput struct {
	UserID        string
	BanType       string
	DurationHours *int
	Reason        string
}

type UnbanUserInput struct {
	UserID string
	Reason string
}

type RemoveContentInput struct {
	ContentType string
	ContentID   string
	Reason      string
}

type StatisticsInput struct {
	DateFrom *time.Time
	DateTo   *time.Time
}

// ModerationService dispatches validated moderation commands to the executor
// and fires the follow-up notification where one applies. Each method maps to
// exactly one command invocation; actorID is always the authenticated caller.
type ModerationService interface {
	CreateReport(ctx context.Context, actorID string, in CreateReportInput) (Payload, error)
	ListReports(ctx context.Context, actorID string, f ReportFilters) ([]Payload, error)
	GetReport(ctx context.Context, actorID, reportID string) (Payload, error)
	UpdateReportStatus(ctx context.Context, actorID, reportID string, in UpdateReportStatusInput) (Payload, error)

	ListPendingPhotos(ctx context.Context, actorID string, page PageInput) ([]Payload, error)
	ModeratePhoto(ctx context.Context, actorID string, in ModeratePhotoInput) (Payload, error)

	BanUser(ctx context.Context, actorID string, in BanUserInput) (Payload, error)
	UnbanUser(ctx context.Context, actorID string, in UnbanUserInput) (Payload, error)
	UserHistory(ctx context.Context, actorID, userID string) (Payload, error)

	RemoveContent(ctx context.Context, actorID string, in RemoveContentInput) (Payload, error)
	Statistics(ctx context.Context, actorID string, in StatisticsInput) (Payload, error)
}
