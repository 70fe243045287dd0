package handlers

import (
	"context"

	"github.com/aurumascend/raisesignal-backend/types"
)

// EmailDispatcher is the slice of the email service the submission handlers
// depend on.
type EmailDispatcher interface {
	SendApplicationEmails(ctx context.Context, sub *types.ApplicationSubmission, attachment *types.Attachment) *types.EmailDispatchResult
	SendContactEmails(ctx context.Context, sub *types.ContactSubmission) *types.EmailDispatchResult
}

// HealthChecker reports the service's component health.
type HealthChecker interface {
	CheckHealth(ctx context.Context) types.HealthCheck
}
