package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/activity-platform/moderation-api/internal/core/ports"
)

// Command names understood by the backing store.
const (
	cmdCreateReport       = "mod_create_report"
	cmdGetReports         = "mod_get_reports"
	cmdGetReportByID      = "mod_get_report_by_id"
	cmdUpdateReportStatus = "mod_update_report_status"
	cmdGetPendingPhotos   = "mod_get_pending_photos"
	cmdModeratePhoto      = "mod_moderate_main_photo"
	cmdBanUser            = "mod_ban_user"
	cmdUnbanUser          = "mod_unban_user"
	cmdRemoveContent      = "mod_remove_content"
	cmdGetStatistics      = "mod_get_statistics"
	cmdGetUserHistory     = "mod_get_user_moderation_history"
)

type moderationService struct {
	executor ports.CommandExecutor
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewModerationService returns a ModerationService that dispatches commands
// through executor and sends follow-up notifications through notifier.
func NewModerationService(executor ports.CommandExecutor, notifier ports.Notifier, log zerolog.Logger) ports.ModerationService {
	return &moderationService{executor: executor, notifier: notifier, log: log}
}

func (s *moderationService) CreateReport(ctx context.Context, actorID string, in ports.CreateReportInput) (ports.Payload, error) {
	result, err := s.executor.Execute(ctx, cmdCreateReport, actorID, map[string]any{
		"target_type": in.TargetType,
		"target_id":   in.TargetID,
		"report_type": in.ReportType,
		"description": in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.log.Info().
		Str("report_id", result.Str("report_id")).
		Str("user_id", actorID).
		Msg("report created")
	return result, nil
}

func (s *moderationService) ListReports(ctx context.Context, actorID string, f ports.ReportFilters) ([]ports.Payload, error) {
	reports, err := s.executor.ExecuteList(ctx, cmdGetReports, actorID, map[string]any{
		"status":      f.Status,
		"target_type": f.TargetType,
		"report_type": f.ReportType,
		"limit":       f.Limit,
		"offset":      f.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (s *moderationService) GetReport(ctx context.Context, actorID, reportID string) (ports.Payload, error) {
	result, err := s.executor.Execute(ctx, cmdGetReportByID, actorID, map[string]any{
		"report_id": reportID,
	})
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	s.log.Info().Str("report_id", reportID).Str("admin_id", actorID).Msg("report fetched")
	return result, nil
}

func (s *moderationService) UpdateReportStatus(ctx context.Context, actorID, reportID string, in ports.UpdateReportStatusInput) (ports.Payload, error) {
	result, err := s.executor.Execute(ctx, cmdUpdateReportStatus, actorID, map[string]any{
		"report_id":        reportID,
		"status":           in.Status,
		"resolution_notes": in.ResolutionNotes,
	})
	if err != nil {
		return nil, fmt.Errorf("update report status: %w", err)
	}

	s.log.Info().
		Str("report_id", reportID).
		Str("new_status", in.Status).
		Str("admin_id", actorID).
		Msg("report status updated")
	return result, nil
}

func (s *moderationService) ListPendingPhotos(ctx context.Context, actorID string, page ports.PageInput) ([]ports.Payload, error) {
	photos, err := s.executor.ExecuteList(ctx, cmdGetPendingPhotos, actorID, map[string]any{
		"limit":  page.Limit,
		"offset": page.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list pending photos: %w", err)
	}
	return photos, nil
}

func (s *moderationService) ModeratePhoto(ctx context.Context, actorID string, in ports.ModeratePhotoInput) (ports.Payload, error) {
	result, err := s.executor.Execute(ctx, cmdModeratePhoto, actorID, map[string]any{
		"user_id":           in.UserID,
		"moderation_status": in.ModerationStatus,
		"rejection_reason":  in.RejectionReason,
	})
	if err != nil {
		return nil, fmt.Errorf("moderate photo: %w", err)
	}

	if in.ModerationStatus == "rejected" && in.RejectionReason != "" {
		s.notify(ctx, result.Str("email"), ports.TemplatePhotoRejected, map[string]string{
			"username":         usernameOrDefault(result),
			"rejection_reason": in.RejectionReason,
		})
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("status", in.ModerationStatus).
		Str("admin_id", actorID).
		Msg("photo moderated")
	return result, nil
}

func (s *moderationService) BanUser(ctx context.Context, actorID string, in ports.BanUserInput) (ports.Payload, error) {
	args := map[string]any{
		"user_id":    in.UserID,
		"ban_type":   in.BanType,
		"ban_reason": in.Reason,
	}
	if in.DurationHours != nil {
		args["ban_duration_hours"] = *in.DurationHours
	}

	result, err := s.executor.Execute(ctx, cmdBanUser, actorID, args)
	if err != nil {
		return nil, fmt.Errorf("ban user: %w", err)
	}

	s.notify(ctx, result.Str("email"), ports.TemplateUserBanned, map[string]string{
		"username":       usernameOrDefault(result),
		"ban_type":       in.BanType,
		"ban_expires_at": result.Str("ban_expires_at"),
		"ban_reason":     in.Reason,
	})

	s.log.Info().
		Str("user_id", in.UserID).
		Str("ban_type", in.BanType).
		Str("admin_id", actorID).
		Msg("user banned")
	return result, nil
}

func (s *moderationService) UnbanUser(ctx context.Context, actorID string, in ports.UnbanUserInput) (ports.Payload, error) {
	result, err := s.executor.Execute(ctx, cmdUnbanUser, actorID, map[string]any{
		"user_id":      in.UserID,
		"unban_reason": in.Reason,
	})
	if err != nil {
		return nil, fmt.Errorf("unban user: %w", err)
	}

	s.notify(ctx, result.Str("email"), ports.TemplateUserUnbanned, map[string]string{
		"username":     usernameOrDefault(result),
		"unban_reason": in.Reason,
	})

	s.log.Info().Str("user_id", in.UserID).Str("admin_id", actorID).Msg("user unbanned")
	return result, nil
}

func (s *moderationService) UserHistory(ctx context.Context, actorID, userID string) (ports.Payload, error) {
	result, err := s.executor.Execute(ctx, cmdGetUserHistory, actorID, map[string]any{
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("user history: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("admin_id", actorID).Msg("user history fetched")
	return result, nil
}

func (s *moderationService) RemoveContent(ctx context.Context, actorID string, in ports.RemoveContentInput) (ports.Payload, error) {
	result, err := s.executor.Execute(ctx, cmdRemoveContent, actorID, map[string]any{
		"content_type":   in.ContentType,
		"content_id":     in.ContentID,
		"removal_reason": in.Reason,
	})
	if err != nil {
		return nil, fmt.Errorf("remove content: %w", err)
	}

	if to := result.Str("author_email"); to != "" {
		username := result.Str("author_username")
		if username == "" {
			username = "User"
		}
		s.notify(ctx, to, ports.TemplateContentRemoved, map[string]string{
			"username":       username,
			"content_type":   in.ContentType,
			"removal_reason": in.Reason,
		})
	}

	s.log.Info().
		Str("content_type", in.ContentType).
		Str("content_id", in.ContentID).
		Str("admin_id", actorID).
		Msg("content removed")
	return result, nil
}

func (s *moderationService) Statistics(ctx context.Context, actorID string, in ports.StatisticsInput) (ports.Payload, error) {
	args := map[string]any{}
	if in.DateFrom != nil {
		args["date_from"] = *in.DateFrom
	}
	if in.DateTo != nil {
		args["date_to"] = *in.DateTo
	}

	result, err := s.executor.Execute(ctx, cmdGetStatistics, actorID, args)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	s.log.Info().Str("admin_id", actorID).Msg("statistics fetched")
	return result, nil
}

// notify attempts a best-effort notification after a successful command. The
// command has already committed, so delivery runs on a context detached from
// the client connection and its outcome never reaches the caller.
func (s *moderationService) notify(ctx context.Context, to, template string, tmplCtx map[string]string) {
	if to == "" {
		return
	}
	s.notifier.Send(context.WithoutCancel(ctx), to, template, tmplCtx)
}

func usernameOrDefault(p ports.Payload) string {
	if u := p.Str("username"); u != "" {
		return u
	}
	return "User"
}
