package export

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
	fileStampLayout = "20060102_150405"
)

// Headers are the column titles of every export, in order.
var Headers = []string{
	"ID",
	"Email Event ID",
	"From Email",
	"Subject",
	"Contact ID",
	"Contact Name",
	"Phone Number",
	"Call SID",
	"Status",
	"Duration (s)",
	"Attempt Number",
	"Error Message",
	"Created At",
	"Updated At",
}

// File is a generated export ready to be sent as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

type ExportServicer interface {
	ExportCallLogs(ctx context.Context, req model.ExportRequest, format string) (*File, error)
}

type Service struct {
	repo    repository.CallLogRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.CallLogRepository, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
		now:     time.Now,
	}
}

// ExportCallLogs renders the call logs created within the requested day range.
// An empty result is reported as not found rather than as an empty file.
func (s *Service) ExportCallLogs(ctx context.Context, req model.ExportRequest, format string) (*File, error) {
	file, err := s.export(ctx, req, format)
	rows := 0
	if file != nil {
		rows = file.Rows
	}
	s.metrics.ObserveExport(format, rows, err)
	return file, err
}

func (s *Service) export(ctx context.Context, req model.ExportRequest, format string) (*File, error) {
	from, to, err := ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListForExport(ctx, from, to)
	if err != nil {
		return nil, apperrors.Internal("failed to load call logs for export", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound("Call logs for export")
	}

	records := Records(rows)

	var (
		data        []byte
		contentType string
	)
	switch format {
	case FormatCSV:
		data, err = WriteCSV(records)
		contentType = "text/csv"
	case FormatXLSX:
		data, err = WriteXLSX(records)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, apperrors.Validation(fmt.Sprintf("unsupported export format %q", format), nil)
	}
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("failed to render export")
		return nil, apperrors.Internal(fmt.Sprintf("failed to generate %s export", format), err)
	}

	return &File{
		Name:        fmt.Sprintf("call_logs_export_%s.%s", s.now().Format(fileStampLayout), format),
		ContentType: contentType,
		Data:        data,
		Rows:        len(rows),
	}, nil
}

// ParseRange turns optional YYYY-MM-DD bounds into the half-open interval
// [start 00:00, end+1 00:00). Missing bounds are returned as zero times.
func ParseRange(startDate, endDate string) (time.Time, time.Time, error) {
	var from, to time.Time

	if startDate != "" {
		t, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return from, to, apperrors.Validation("invalid start_date, expected YYYY-MM-DD", err)
		}
		from = t
	}
	if endDate != "" {
		t, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return from, to, apperrors.Validation("invalid end_date, expected YYYY-MM-DD", err)
		}
		to = t.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && !to.After(from) {
		return time.Time{}, time.Time{}, apperrors.Validation("end_date must not be before start_date", nil)
	}

	return from, to, nil
}

// Records flattens export rows into cell text. Missing joined values become
// empty cells.
func Records(rows []model.CallLogExportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fmt.Sprint(r.ID),
			r.EmailEventID,
			deref(r.FromEmail),
			deref(r.Subject),
			r.ContactID,
			deref(r.ContactName),
			r.PhoneNumber,
			deref(r.CallSID),
			r.Status,
			derefInt(r.Duration),
			fmt.Sprint(r.AttemptNumber),
			deref(r.ErrorMessage),
			r.CreatedAt.Format(timestampLayout),
			r.UpdatedAt.Format(timestampLayout),
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprint(*n)
}
