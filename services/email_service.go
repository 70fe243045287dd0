package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aurumascend/raisesignal-backend/config"
	"github.com/aurumascend/raisesignal-backend/logger"
	"github.com/aurumascend/raisesignal-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"
)

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailService renders and dispatches the internal/external email pair for
// each submission through the Resend API. The client is built once and
// injected wherever sending is needed; it holds no per-request state.
type EmailService struct {
	config      *config.EmailConfig
	siteBaseURL string
	client      *resend.Client
	metrics     *EmailMetrics
}

func NewEmailService(cfg *config.EmailConfig, siteBaseURL string) *EmailService {
	return NewEmailServiceWithRegistry(cfg, siteBaseURL, prometheus.DefaultRegisterer)
}

func NewEmailServiceWithRegistry(cfg *config.EmailConfig, siteBaseURL string, reg prometheus.Registerer) *EmailService {
	logger.GetLogger().Infow("Initializing email service",
		"from", cfg.FromAddress,
		"ops", cfg.OpsAddress,
		"apikey", logger.MaskSensitiveString(cfg.ResendAPIKey, 3, 2))
	client := resend.NewClient(cfg.ResendAPIKey)
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "raisesignal_email_send_duration_seconds",
			Help:    "Time taken to send emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "raisesignal_email_errors_total",
			Help: "Total number of email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "raisesignal_emails_sent_total",
			Help: "Total number of emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return &EmailService{
		config:      cfg,
		siteBaseURL: siteBaseURL,
		client:      client,
		metrics:     metrics,
	}
}

// SendApplicationEmails dispatches the admin notification (with the optional
// PDF attachment) and the applicant confirmation for one validated funding
// application. Both legs are always attempted; the result records each
// outcome individually and is successful only if both legs succeeded.
func (s *EmailService) SendApplicationEmails(ctx context.Context, sub *types.ApplicationSubmission, attachment *types.Attachment) *types.EmailDispatchResult {
	internalHTML, err := s.RenderApplicationInternal(sub, attachment)
	if err != nil {
		return &types.EmailDispatchResult{AdminError: err, UserError: err}
	}
	externalHTML, err := s.RenderApplicationExternal(sub)
	if err != nil {
		return &types.EmailDispatchResult{AdminError: err, UserError: err}
	}

	subject := fmt.Sprintf("New Funding Application: %s (%s)", sub.CompanyName, sub.FundingStage)

	return s.dispatchPair(ctx, dispatchPair{
		submitter:       sub.Email,
		adminSubject:    subject,
		adminHTML:       internalHTML,
		userSubject:     "We received your funding application",
		userHTML:        externalHTML,
		adminAttachment: attachment,
	})
}

// SendContactEmails dispatches the admin notification and submitter
// confirmation for one validated inquiry. Contact messages never carry an
// attachment.
func (s *EmailService) SendContactEmails(ctx context.Context, sub *types.ContactSubmission) *types.EmailDispatchResult {
	internalHTML, err := s.RenderContactInternal(sub)
	if err != nil {
		return &types.EmailDispatchResult{AdminError: err, UserError: err}
	}
	externalHTML, err := s.RenderContactExternal(sub)
	if err != nil {
		return &types.EmailDispatchResult{AdminError: err, UserError: err}
	}

	return s.dispatchPair(ctx, dispatchPair{
		submitter:    sub.Email,
		adminSubject: fmt.Sprintf("New Contact Inquiry from %s", sub.Name),
		adminHTML:    internalHTML,
		userSubject:  "We received your message",
		userHTML:     externalHTML,
	})
}

type dispatchPair struct {
	submitter       string
	adminSubject    string
	adminHTML       string
	userSubject     string
	userHTML        string
	adminAttachment *types.Attachment
}

// dispatchPair sends the internal notification then the external
// confirmation. A failed leg never short-circuits the other: partial
// failures must stay diagnosable per leg.
func (s *EmailService) dispatchPair(ctx context.Context, p dispatchPair) *types.EmailDispatchResult {
	log := logger.GetLogger()
	result := &types.EmailDispatchResult{}

	result.AdminID, result.AdminError = s.send(ctx, sendParams{
		to:         s.config.OpsAddress,
		replyTo:    p.submitter,
		subject:    p.adminSubject,
		html:       p.adminHTML,
		attachment: p.adminAttachment,
	})
	if result.AdminError != nil {
		log.Errorw("Admin notification failed",
			"error", result.AdminError,
			"submitter", logger.MaskEmail(p.submitter))
	}

	result.UserID, result.UserError = s.send(ctx, sendParams{
		to:      p.submitter,
		subject: p.userSubject,
		html:    p.userHTML,
	})
	if result.UserError != nil {
		log.Errorw("Submitter confirmation failed",
			"error", result.UserError,
			"submitter", logger.MaskEmail(p.submitter))
	}

	result.Success = result.AdminError == nil && result.UserError == nil
	if result.Success {
		log.Infow("Submission emails sent",
			"admin_email_id", result.AdminID,
			"user_email_id", result.UserID,
			"submitter", logger.MaskEmail(p.submitter))
	}
	return result
}

type sendParams struct {
	to         string
	replyTo    string
	subject    string
	html       string
	attachment *types.Attachment
}

// send delivers one message through Resend. Each call is independent and
// best-effort: no retry, no timeout beyond the provider client's own.
func (s *EmailService) send(ctx context.Context, p sendParams) (string, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{p.to},
		Subject: p.subject,
		Html:    p.html,
	}
	if p.replyTo != "" {
		params.ReplyTo = p.replyTo
	}
	if p.attachment != nil {
		params.Attachments = []*resend.Attachment{{
			Filename:    p.attachment.Filename,
			Content:     p.attachment.Content,
			ContentType: p.attachment.ContentType,
		}}
	}

	resp, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.metrics.errorCount.Inc()
		return "", fmt.Errorf("email send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	return resp.Id, nil
}

// renderTemplate executes a parsed template; rendering is deterministic for
// a given submission so the same input always produces identical HTML.
func renderTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
