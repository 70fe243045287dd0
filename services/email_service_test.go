package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aurumascend/raisesignal-backend/config"
	"github.com/aurumascend/raisesignal-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Resend client
type mockEmailsService struct {
	mock.Mock
	sent []*resend.SendEmailRequest
}

func (m *mockEmailsService) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.SendEmailResponse), args.Error(1)
}

func (m *mockEmailsService) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	m.sent = append(m.sent, params)
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.SendEmailResponse), args.Error(1)
}

func (m *mockEmailsService) Update(params *resend.UpdateEmailRequest) (*resend.UpdateEmailResponse, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.UpdateEmailResponse), args.Error(1)
}

func (m *mockEmailsService) UpdateWithContext(ctx context.Context, params *resend.UpdateEmailRequest) (*resend.UpdateEmailResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.UpdateEmailResponse), args.Error(1)
}

func (m *mockEmailsService) Cancel(id string) (*resend.CancelScheduledEmailResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.CancelScheduledEmailResponse), args.Error(1)
}

func (m *mockEmailsService) CancelWithContext(ctx context.Context, id string) (*resend.CancelScheduledEmailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.CancelScheduledEmailResponse), args.Error(1)
}

func (m *mockEmailsService) Get(id string) (*resend.Email, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.Email), args.Error(1)
}

func (m *mockEmailsService) GetWithContext(ctx context.Context, id string) (*resend.Email, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.Email), args.Error(1)
}

// Mock registry that doesn't actually register metrics
type mockRegistry struct{}

func (m *mockRegistry) Register(c prometheus.Collector) error   { return nil }
func (m *mockRegistry) MustRegister(cs ...prometheus.Collector) {}
func (m *mockRegistry) Unregister(c prometheus.Collector) bool  { return true }

func testEmailConfig() *config.EmailConfig {
	return &config.EmailConfig{
		FromName:     "Aurum Ascend Capital",
		FromAddress:  "noreply@raisesignal.com",
		OpsAddress:   "deals@aurumascend.com",
		ResendAPIKey: "re_test_key",
	}
}

func newTestEmailService() (*EmailService, *mockEmailsService) {
	service := NewEmailServiceWithRegistry(testEmailConfig(), "https://raisesignal.com", &mockRegistry{})
	mockEmails := &mockEmailsService{}
	service.client.Emails = mockEmails
	return service, mockEmails
}

func sampleApplication() *types.ApplicationSubmission {
	return &types.ApplicationSubmission{
		FullName:           "Jane Doe",
		Email:              "jane@co.com",
		CompanyName:        "Acme",
		Phone:              "+44123",
		Country:            "United Kingdom",
		ProjectType:        "Fintech",
		FundingStage:       "Series A",
		FundingAmount:      2500000,
		TargetClosingDate:  "90 days",
		ProjectDescription: "A payments platform raising a growth round.",
	}
}

func sampleContact() *types.ContactSubmission {
	return &types.ContactSubmission{
		Name:    "Sam Smith",
		Email:   "sam@example.com",
		Message: "I would like to learn more about your process.",
	}
}

func TestNewEmailService(t *testing.T) {
	service := NewEmailServiceWithRegistry(testEmailConfig(), "https://raisesignal.com", &mockRegistry{})

	assert.NotNil(t, service)
	assert.NotNil(t, service.client)
	assert.NotNil(t, service.metrics)
	assert.Equal(t, "https://raisesignal.com", service.siteBaseURL)
}

func TestSendApplicationEmailsSuccess(t *testing.T) {
	service, mockEmails := newTestEmailService()
	mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
		Return(&resend.SendEmailResponse{Id: "msg-1"}, nil).Once()
	mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
		Return(&resend.SendEmailResponse{Id: "msg-2"}, nil).Once()

	result := service.SendApplicationEmails(context.Background(), sampleApplication(), nil)

	assert.True(t, result.Success)
	assert.Equal(t, "msg-1", result.AdminID)
	assert.Equal(t, "msg-2", result.UserID)
	assert.NoError(t, result.AdminError)
	assert.NoError(t, result.UserError)

	require.Len(t, mockEmails.sent, 2)
	admin, user := mockEmails.sent[0], mockEmails.sent[1]
	assert.Equal(t, []string{"deals@aurumascend.com"}, admin.To)
	assert.Equal(t, "jane@co.com", admin.ReplyTo)
	assert.Empty(t, admin.Attachments)
	assert.Equal(t, []string{"jane@co.com"}, user.To)
	assert.Empty(t, user.ReplyTo)
	assert.Empty(t, user.Attachments)

	mockEmails.AssertExpectations(t)
}

func TestSendApplicationEmailsAttachmentOnInternalOnly(t *testing.T) {
	service, mockEmails := newTestEmailService()
	mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
		Return(&resend.SendEmailResponse{Id: "ok"}, nil).Twice()

	attachment := &types.Attachment{
		Filename:    "deck.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4 fake"),
	}
	result := service.SendApplicationEmails(context.Background(), sampleApplication(), attachment)

	assert.True(t, result.Success)
	require.Len(t, mockEmails.sent, 2)

	admin, user := mockEmails.sent[0], mockEmails.sent[1]
	require.Len(t, admin.Attachments, 1)
	assert.Equal(t, "deck.pdf", admin.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", admin.Attachments[0].ContentType)
	assert.Empty(t, user.Attachments)
	// The internal HTML notes the attachment without inlining it.
	assert.Contains(t, admin.Html, "deck.pdf")
	assert.NotContains(t, user.Html, "deck.pdf")
}

func TestSendApplicationEmailsPartialFailure(t *testing.T) {
	tests := []struct {
		name      string
		adminErr  error
		userErr   error
		wantAdmin bool
		wantUser  bool
	}{
		{name: "admin leg fails", adminErr: errors.New("provider down"), wantUser: true},
		{name: "user leg fails", userErr: errors.New("provider down"), wantAdmin: true},
		{name: "both legs fail", adminErr: errors.New("boom"), userErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockEmails := newTestEmailService()

			if tt.adminErr != nil {
				mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
					Return(nil, tt.adminErr).Once()
			} else {
				mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
					Return(&resend.SendEmailResponse{Id: "admin-id"}, nil).Once()
			}
			if tt.userErr != nil {
				mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
					Return(nil, tt.userErr).Once()
			} else {
				mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
					Return(&resend.SendEmailResponse{Id: "user-id"}, nil).Once()
			}

			result := service.SendApplicationEmails(context.Background(), sampleApplication(), nil)

			// A failed leg never suppresses the other: both are attempted.
			assert.Len(t, mockEmails.sent, 2)
			assert.False(t, result.Success)
			assert.Equal(t, tt.adminErr == nil, result.AdminError == nil)
			assert.Equal(t, tt.userErr == nil, result.UserError == nil)
			if tt.wantAdmin {
				assert.Equal(t, "admin-id", result.AdminID)
			}
			if tt.wantUser {
				assert.Equal(t, "user-id", result.UserID)
			}

			mockEmails.AssertExpectations(t)
		})
	}
}

func TestSendContactEmails(t *testing.T) {
	service, mockEmails := newTestEmailService()
	mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
		Return(&resend.SendEmailResponse{Id: "c-1"}, nil).Once()
	mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
		Return(&resend.SendEmailResponse{Id: "c-2"}, nil).Once()

	result := service.SendContactEmails(context.Background(), sampleContact())

	assert.True(t, result.Success)
	assert.Equal(t, types.EmailIDs{Admin: "c-1", User: "c-2"}, result.IDs())

	require.Len(t, mockEmails.sent, 2)
	assert.Equal(t, []string{"deals@aurumascend.com"}, mockEmails.sent[0].To)
	assert.Equal(t, "sam@example.com", mockEmails.sent[0].ReplyTo)
	assert.Equal(t, []string{"sam@example.com"}, mockEmails.sent[1].To)
	assert.Empty(t, mockEmails.sent[0].Attachments)
	assert.Empty(t, mockEmails.sent[1].Attachments)
}

func TestRenderApplicationInternalIncludesAllFields(t *testing.T) {
	service, _ := newTestEmailService()
	sub := sampleApplication()

	html, err := service.RenderApplicationInternal(sub, nil)
	require.NoError(t, err)

	for _, want := range []string{
		sub.FullName, sub.Email, sub.CompanyName, sub.Phone, sub.Country,
		sub.ProjectType, sub.FundingStage, "2500000", sub.TargetClosingDate,
		sub.ProjectDescription,
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "attached")
}

func TestRenderApplicationInternalAttachmentNote(t *testing.T) {
	service, _ := newTestEmailService()

	html, err := service.RenderApplicationInternal(sampleApplication(), &types.Attachment{
		Filename:    "deck.pdf",
		ContentType: "application/pdf",
		Content:     make([]byte, 2048),
	})
	require.NoError(t, err)

	assert.Contains(t, html, "deck.pdf")
	assert.Contains(t, html, "2048 bytes")
}

func TestRenderDeterminism(t *testing.T) {
	service, _ := newTestEmailService()
	sub := sampleApplication()

	first, err := service.RenderApplicationInternal(sub, nil)
	require.NoError(t, err)
	second, err := service.RenderApplicationInternal(sub, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	firstExt, err := service.RenderApplicationExternal(sub)
	require.NoError(t, err)
	secondExt, err := service.RenderApplicationExternal(sub)
	require.NoError(t, err)
	assert.Equal(t, firstExt, secondExt)
}

func TestRenderExternalOmitsInternalDetail(t *testing.T) {
	service, _ := newTestEmailService()
	sub := sampleApplication()

	html, err := service.RenderApplicationExternal(sub)
	require.NoError(t, err)

	assert.Contains(t, html, sub.FullName)
	assert.Contains(t, html, sub.CompanyName)
	assert.Contains(t, html, "https://raisesignal.com")
	// No submission internals in the confirmation.
	assert.NotContains(t, html, sub.Phone)
	assert.NotContains(t, html, "2500000")
	assert.NotContains(t, html, sub.ProjectDescription)
}

func TestEmailMetrics(t *testing.T) {
	service, mockEmails := newTestEmailService()

	mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
		Return(&resend.SendEmailResponse{Id: "ok"}, nil).Twice()

	initialSent := testGetCounterValue(service.metrics.sentCount)
	initialErrors := testGetCounterValue(service.metrics.errorCount)

	result := service.SendContactEmails(context.Background(), sampleContact())
	assert.True(t, result.Success)

	assert.Equal(t, initialSent+2, testGetCounterValue(service.metrics.sentCount))
	assert.Equal(t, initialErrors, testGetCounterValue(service.metrics.errorCount))

	mockEmails.On("SendWithContext", mock.Anything, mock.AnythingOfType("*resend.SendEmailRequest")).
		Return(nil, errors.New("provider down")).Twice()

	result = service.SendContactEmails(context.Background(), sampleContact())
	assert.False(t, result.Success)

	assert.Equal(t, initialSent+2, testGetCounterValue(service.metrics.sentCount))
	assert.Equal(t, initialErrors+2, testGetCounterValue(service.metrics.errorCount))

	mockEmails.AssertExpectations(t)
}

// Helper function to get counter value
func testGetCounterValue(counter prometheus.Counter) float64 {
	var m dto.Metric
	counter.Write(&m)
	return *m.Counter.Value
}
