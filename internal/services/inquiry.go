package services

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"aisolutions/internal/database"
	"aisolutions/internal/domain"
	"aisolutions/internal/metrics"
	apperrors "aisolutions/pkg/errors"
)

// ExportHeader is the header row of the inquiry CSV export
var ExportHeader = []string{"ID", "Name", "Email", "Phone", "Company", "Country", "Job Title", "Job Details", "Timestamp"}

// InquiryService manages business inquiries
type InquiryService struct {
	resource[domain.Inquiry, *domain.InquiryFields]
	email   *EmailService
	pending sync.WaitGroup
}

// NewInquiryService creates a new inquiry service. email may be nil.
func NewInquiryService(store *database.Store[domain.Inquiry], email *EmailService, log *zap.Logger) *InquiryService {
	return &InquiryService{
		resource: resource[domain.Inquiry, *domain.InquiryFields]{
			name:   "inquiry",
			plural: "inquiries",
			title:  "Inquiry",
			store:  store,
			log:    log,
		},
		email: email,
	}
}

// Submit stores a new inquiry and notifies the sales inbox in the
// background. A failed notification never fails the submission.
func (s *InquiryService) Submit(ctx context.Context, f *domain.InquiryFields) (*domain.Inquiry, error) {
	inq, err := s.Create(ctx, f)
	if err != nil {
		return nil, err
	}

	s.log.Info("inquiry submitted", zap.Uint("id", inq.ID))
	if s.email != nil {
		notify := *inq
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			if err := s.email.NotifyInquiry(&notify); err != nil {
				s.log.Warn("failed to send notification email", zap.Uint("id", notify.ID), zap.Error(err))
			}
		}()
	}
	return inq, nil
}

// WaitNotifications blocks until every notification started by Submit has
// finished or ctx is done.
func (s *InquiryService) WaitNotifications(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ExportCSV writes every inquiry, most recent first, as CSV to w.
func (s *InquiryService) ExportCSV(ctx context.Context, w io.Writer) error {
	recs, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("export failed", zap.Error(err), zap.Stack("stack"))
		return apperrors.Internal("Failed to export inquiries", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return apperrors.Internal("Failed to export inquiries", err)
	}
	for i := range recs {
		if err := cw.Write(exportRow(&recs[i])); err != nil {
			return apperrors.Internal("Failed to export inquiries", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Internal("Failed to export inquiries", err)
	}

	metrics.RecordExport()
	s.log.Info("inquiries exported", zap.Int("count", len(recs)))
	return nil
}

// ExportFilename names an export taken at t
func ExportFilename(t time.Time) string {
	return "inquiries_" + t.UTC().Format("20060102_150405") + ".csv"
}

func exportRow(inq *domain.Inquiry) []string {
	return []string{
		strconv.FormatUint(uint64(inq.ID), 10),
		inq.Name,
		inq.Email,
		deref(inq.Phone),
		deref(inq.Company),
		deref(inq.Country),
		deref(inq.JobTitle),
		deref(inq.JobDetails),
		inq.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
