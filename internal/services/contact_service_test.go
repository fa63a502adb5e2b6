package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"portfolio_backend/internal/email"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/testutil"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const ownerEmail = "owner@example.com"

func newContactService(m email.Provider, timeout time.Duration) ContactService {
	return NewContactService(
		repositories.NewContactRepository(),
		validator.New(),
		m,
		email.NewTemplateManager(),
		ContactConfig{OwnerName: "Jane Doe", OwnerEmail: ownerEmail, SendTimeout: timeout},
	)
}

func validRequest() *dto.ContactRequest {
	return &dto.ContactRequest{
		Name:    "  Ada Lovelace ",
		Email:   "ada@example.com",
		Subject: "Engines",
		Message: "Hello there",
	}
}

func storedMessages(t *testing.T, db *gorm.DB) []models.ContactMessage {
	t.Helper()
	var msgs []models.ContactMessage
	require.NoError(t, db.Order("id").Find(&msgs).Error)
	return msgs
}

func TestContactService_Submit_PersistsAndNotifiesBoth(t *testing.T) {
	db := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	svc := newContactService(mailer, time.Second)

	require.NoError(t, svc.Submit(context.Background(), db, validRequest()))
	svc.Wait()

	msgs := storedMessages(t, db)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Ada Lovelace", msgs[0].Name)
	assert.Equal(t, "Engines", msgs[0].Subject)

	sent := mailer.Sent()
	require.Len(t, sent, 2)

	confirmation := sent["ada@example.com"]
	require.NotNil(t, confirmation)
	assert.Equal(t, "I received your message – Jane Doe", confirmation.Subject)
	assert.True(t, strings.HasPrefix(confirmation.Body, "Dear Ada Lovelace,"))

	owner := sent[ownerEmail]
	require.NotNil(t, owner)
	assert.Equal(t, "Portfolio contact: Engines", owner.Subject)
	assert.Equal(t, "ada@example.com", owner.ReplyTo)
	assert.Contains(t, owner.Body, "From: Ada Lovelace <ada@example.com>")
}

func TestContactService_Submit_SucceedsWhenAllMailFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	mailer := &fakeMailer{failFor: map[string]bool{"*": true}}
	svc := newContactService(mailer, time.Second)

	require.NoError(t, svc.Submit(context.Background(), db, validRequest()))
	svc.Wait()

	assert.Len(t, storedMessages(t, db), 1)
	assert.Empty(t, mailer.Sent())
}

func TestContactService_Submit_OneFailureDoesNotSuppressTheOther(t *testing.T) {
	db := testutil.NewTestDB(t)
	mailer := &fakeMailer{failFor: map[string]bool{"ada@example.com": true}}
	svc := newContactService(mailer, time.Second)

	require.NoError(t, svc.Submit(context.Background(), db, validRequest()))
	svc.Wait()

	sent := mailer.Sent()
	assert.Len(t, sent, 1)
	assert.NotNil(t, sent[ownerEmail])
}

func TestContactService_Submit_ValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		req     dto.ContactRequest
		wantMsg string
	}{
		{"blank name", dto.ContactRequest{Name: "   ", Email: "a@b.c", Message: "hi"}, "Name, email and message are required"},
		{"missing email", dto.ContactRequest{Name: "Ada", Message: "hi"}, "Name, email and message are required"},
		{"whitespace message", dto.ContactRequest{Name: "Ada", Email: "a@b.c", Message: "\n\t "}, "Name, email and message are required"},
		{"long name", dto.ContactRequest{Name: strings.Repeat("n", 201), Email: "a@b.c", Message: "hi"}, "name is too long"},
		{"long subject", dto.ContactRequest{Name: "Ada", Email: "a@b.c", Subject: strings.Repeat("s", 301), Message: "hi"}, "subject is too long"},
		{"long email", dto.ContactRequest{Name: "Ada", Email: strings.Repeat("e", 255), Message: "hi"}, "email is too long"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewTestDB(t)
			mailer := &fakeMailer{}
			svc := newContactService(mailer, time.Second)

			req := tc.req
			err := svc.Submit(context.Background(), db, &req)
			require.Error(t, err)
			svc.Wait()

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.HTTPCode)
			assert.Equal(t, tc.wantMsg, appErr.Message)

			assert.Empty(t, storedMessages(t, db))
			assert.Empty(t, mailer.Sent())
		})
	}
}

func TestContactService_Submit_NoEmailFormatCheck(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContactService(&fakeMailer{}, time.Second)

	req := validRequest()
	req.Email = "not-an-address"
	require.NoError(t, svc.Submit(context.Background(), db, req))
	svc.Wait()
	assert.Len(t, storedMessages(t, db), 1)
}

func TestContactService_Submit_StoreFailure(t *testing.T) {
	db := testutil.NewTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.ContactMessage{}))
	mailer := &fakeMailer{}
	svc := newContactService(mailer, time.Second)

	err := svc.Submit(context.Background(), db, validRequest())
	require.Error(t, err)
	svc.Wait()

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.HTTPCode)
	assert.Empty(t, mailer.Sent())
}

func TestContactService_NotificationsAreBoundedByTimeout(t *testing.T) {
	db := testutil.NewTestDB(t)
	mailer := &fakeMailer{release: make(chan struct{})}
	svc := newContactService(mailer, 50*time.Millisecond)

	start := time.Now()
	require.NoError(t, svc.Submit(context.Background(), db, validRequest()))
	assert.Less(t, time.Since(start), time.Second, "submit must not wait for mail")

	svc.Wait()
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Empty(t, mailer.Sent())
	for _, err := range mailer.CtxErrs() {
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.Len(t, storedMessages(t, db), 1)
}

func TestContactService_NotificationsOutliveTheRequest(t *testing.T) {
	db := testutil.NewTestDB(t)
	mailer := &fakeMailer{release: make(chan struct{})}
	svc := newContactService(mailer, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Submit(ctx, db, validRequest()))
	cancel()
	close(mailer.release)
	svc.Wait()

	assert.Len(t, mailer.Sent(), 2)
	for _, err := range mailer.CtxErrs() {
		assert.NoError(t, err)
	}
}
