package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"strconv"
	"time"

	"github.com/reservapp/reservapp/internal/repository"
)

// utf8BOM is prepended so spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type ExportService interface {
	UsersCSV(ctx context.Context, emailFilter string) ([]byte, error)
	SubscriptionsCSV(ctx context.Context, status string) ([]byte, error)
}

type exportService struct {
	u repository.UserRepository
	s repository.SubscriptionRepository
}

func NewExportService(u repository.UserRepository, s repository.SubscriptionRepository) ExportService {
	return &exportService{
		u: u,
		s: s,
	}
}

// UsersCSV returns the user list as CSV. When no row matches the filter the
// result is the BOM plus the header line only.
func (s *exportService) UsersCSV(ctx context.Context, emailFilter string) ([]byte, error) {
	users, err := s.u.List(ctx, emailFilter)
	if err != nil {
		return nil, err
	}

	records := [][]string{
		{"id", "name", "email", "is_admin", "created_at"},
	}
	for _, user := range users {
		records = append(records, []string{
			strconv.FormatInt(user.ID, 10),
			user.Name,
			user.Email,
			strconv.FormatBool(user.IsAdmin),
			user.CreatedAt.Format(time.RFC3339),
		})
	}

	return writeCSV(records)
}

func (s *exportService) SubscriptionsCSV(ctx context.Context, status string) ([]byte, error) {
	rows, err := s.s.ListForExport(ctx, status)
	if err != nil {
		return nil, err
	}

	records := [][]string{
		{"id", "user_email", "plan", "status", "current_period_end", "next_billing_date"},
	}
	for _, row := range rows {
		records = append(records, []string{
			strconv.FormatInt(row.ID, 10),
			row.UserEmail,
			row.PlanName,
			row.Status,
			row.CurrentPeriodEnd.Format(time.RFC3339),
			row.NextBillingDate.Format(time.RFC3339),
		})
	}

	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return buf.Bytes(), nil
}
