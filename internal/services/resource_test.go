package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aisolutions/internal/config"
	"aisolutions/internal/database"
	"aisolutions/internal/domain"
	apperrors "aisolutions/pkg/errors"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{URL: "sqlite://"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func decode[F any](t *testing.T, body string) *F {
	t.Helper()
	f := new(F)
	require.NoError(t, domain.DecodeFields([]byte(body), f))
	return f
}

func newReviews(t *testing.T) *ReviewService {
	return NewReviewService(database.NewStore[domain.Review](openDB(t), "reviews"), zap.NewNop())
}

func TestCreateReview(t *testing.T) {
	svc := newReviews(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, decode[domain.ReviewFields](t, `{"name":"Ada","company":"Acme","review":"Great","rating":5,"extra":"x"}`))
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, 5, rec.Rating)
	assert.WithinDuration(t, time.Now(), rec.Timestamp, 5*time.Second)
	assert.Equal(t, "Review submitted successfully", svc.CreatedMessage())

	recs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
}

func TestCreateReviewRejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing fields", `{"name":"Ada"}`, "Missing required fields: company, review, rating"},
		{"rating too high", `{"name":"Ada","company":"Acme","review":"Great","rating":6}`, "Rating must be between 1 and 5"},
		{"rating too low", `{"name":"Ada","company":"Acme","review":"Great","rating":0}`, "Rating must be between 1 and 5"},
		{"too long", `{"name":"` + strings.Repeat("a", 101) + `","company":"Acme","review":"Great","rating":3}`, "name must not exceed 100 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newReviews(t)
			_, err := svc.Create(context.Background(), decode[domain.ReviewFields](t, tt.body))
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Message)

			recs, err := svc.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, recs)
		})
	}
}

func TestCreateWithoutData(t *testing.T) {
	svc := newReviews(t)
	_, err := svc.Create(context.Background(), &domain.ReviewFields{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "No data provided")
}

func TestUpdateReview(t *testing.T) {
	svc := newReviews(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, decode[domain.ReviewFields](t, `{"name":"Ada","company":"Acme","review":"Good","rating":3}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, rec.ID, decode[domain.ReviewFields](t, `{"rating":4,"unknown":true}`))
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Good", updated.Review)
	assert.True(t, rec.Timestamp.Equal(updated.Timestamp))
}

func TestUpdateReviewInvalidRatingLeavesRecord(t *testing.T) {
	svc := newReviews(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, decode[domain.ReviewFields](t, `{"name":"Ada","company":"Acme","review":"Good","rating":3}`))
	require.NoError(t, err)

	_, err = svc.Update(ctx, rec.ID, decode[domain.ReviewFields](t, `{"review":"Changed","rating":9}`))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	recs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Good", recs[0].Review)
	assert.Equal(t, 3, recs[0].Rating)
}

func TestUpdateValidatesBeforeLookup(t *testing.T) {
	svc := newReviews(t)
	_, err := svc.Update(context.Background(), 99, decode[domain.ReviewFields](t, `{"rating":7}`))
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Update(context.Background(), 99, &domain.ReviewFields{})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Update(context.Background(), 99, decode[domain.ReviewFields](t, `{"rating":2}`))
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Review 99 not found")
}

func TestDeleteNewsletter(t *testing.T) {
	svc := NewNewsletterService(database.NewStore[domain.Newsletter](openDB(t), "newsletters"), zap.NewNop())
	ctx := context.Background()

	rec, err := svc.Create(ctx, decode[domain.NewsletterFields](t, `{"name":"Ada","email":"ada@example.com"}`))
	require.NoError(t, err)

	msg, err := svc.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Newsletter subscription 1 deleted successfully", msg)

	_, err = svc.Delete(ctx, rec.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStorageFailureIsInternal(t *testing.T) {
	db := openDB(t)
	svc := NewNewsletterService(database.NewStore[domain.Newsletter](db, "newsletters"), zap.NewNop())
	require.NoError(t, database.Close(db))

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternalError, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Failed to retrieve newsletters")

	_, err = svc.Create(context.Background(), decode[domain.NewsletterFields](t, `{"name":"Ada","email":"ada@example.com"}`))
	assert.Equal(t, apperrors.ErrCodeInternalError, apperrors.CodeOf(err))
}

func TestExportCSV(t *testing.T) {
	svc := NewInquiryService(database.NewStore[domain.Inquiry](openDB(t), "inquiries"), nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, decode[domain.InquiryFields](t, `{"name":"Ada","email":"ada@example.com","company":"Acme"}`))
	require.NoError(t, err)
	second, err := svc.Create(ctx, decode[domain.InquiryFields](t, `{"name":"Grace","email":"grace@example.com","job_details":"Needs a, quoted \"field\""}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Email", "Phone", "Company", "Country", "Job Title", "Job Details", "Timestamp"}, rows[0])
	assert.Equal(t, "Grace", rows[1][1])
	assert.Equal(t, `Needs a, quoted "field"`, rows[1][7])
	assert.Equal(t, "", rows[1][3])
	assert.Equal(t, "Ada", rows[2][1])
	assert.Equal(t, "Acme", rows[2][4])

	ts, err := time.Parse(time.RFC3339Nano, rows[1][8])
	require.NoError(t, err)
	assert.True(t, second.Timestamp.Equal(ts))
}

func TestExportCSVEmpty(t *testing.T) {
	svc := NewInquiryService(database.NewStore[domain.Inquiry](openDB(t), "inquiries"), nil, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))
	assert.Equal(t, "ID,Name,Email,Phone,Company,Country,Job Title,Job Details,Timestamp\n", buf.String())
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "inquiries_20260301_090507.csv", ExportFilename(ts))
}

func TestSubmitInquiryNotifies(t *testing.T) {
	sent := make(chan []byte, 1)
	email := NewEmailService(config.EmailConfig{
		Enabled:     true,
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		Username:    "mailer",
		Password:    "secret",
		FromEmail:   "noreply@example.com",
		FromName:    "AI Solutions",
		NotifyEmail: "sales@example.com",
	}, zap.NewNop())
	email.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.example.com:587", addr)
		assert.Equal(t, "noreply@example.com", from)
		assert.Equal(t, []string{"sales@example.com"}, to)
		sent <- msg
		return nil
	}

	svc := NewInquiryService(database.NewStore[domain.Inquiry](openDB(t), "inquiries"), email, zap.NewNop())
	_, err := svc.Submit(context.Background(), decode[domain.InquiryFields](t, `{"name":"<Ada>","email":"ada@example.com"}`))
	require.NoError(t, err)

	select {
	case msg := <-sent:
		body := string(msg)
		assert.Contains(t, body, "Subject: New Inquiry from <Ada>")
		assert.Contains(t, body, "&lt;Ada&gt;")
		assert.Contains(t, body, "From: AI Solutions <noreply@example.com>")
	case <-time.After(5 * time.Second):
		t.Fatal("notification was not sent")
	}
}

func TestEmailNotConfigured(t *testing.T) {
	email := NewEmailService(config.EmailConfig{Enabled: true, NotifyEmail: "sales@example.com"}, zap.NewNop())
	err := email.NotifyInquiry(&domain.Inquiry{Name: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrEmailNotConfigured)

	disabled := NewEmailService(config.EmailConfig{}, zap.NewNop())
	assert.NoError(t, disabled.NotifyInquiry(&domain.Inquiry{Name: "Ada", Email: "ada@example.com"}))
}

func TestHealthCheck(t *testing.T) {
	db := openDB(t)
	svc := NewHealthService(db, "AI Solutions Backend API", zap.NewNop())

	res, ok := svc.Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "AI Solutions Backend API", res.Service)

	require.NoError(t, database.Close(db))
	res, ok = svc.Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "unhealthy", res.Status)
}
