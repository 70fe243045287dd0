// Package validation enforces the accepted shape of form submissions before
// any email is rendered or sent. Validators are pure: they trim and normalize
// on success and report every violated field at once on failure, so the
// client can show the complete list in a single round trip.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/aurumascend/raisesignal-backend/errors"
	"github.com/aurumascend/raisesignal-backend/types"
)

// fieldErrors accumulates violations as "field: problem" entries.
type fieldErrors []string

func (fe *fieldErrors) add(field, problem string) {
	*fe = append(*fe, field+": "+problem)
}

func (fe fieldErrors) toAppError() *errors.AppError {
	if len(fe) == 0 {
		return nil
	}
	return errors.ValidationFailed("validation_failed", strings.Join(fe, "; "))
}

// ValidateApplication checks a raw funding application and returns the typed,
// trimmed submission, or a validation error listing all violated fields.
func ValidateApplication(req *types.ApplicationRequest) (*types.ApplicationSubmission, *errors.AppError) {
	var violations fieldErrors

	fullName := requireBoundedString(&violations, "fullName", req.FullName, types.MaxNameLength)
	email := requireEmail(&violations, "email", req.Email)
	companyName := requireBoundedString(&violations, "companyName", req.CompanyName, types.MaxNameLength)
	phone := requireBoundedString(&violations, "phone", req.Phone, 40)
	country := requireBoundedString(&violations, "country", req.Country, types.MaxNameLength)
	projectType := requireBoundedString(&violations, "projectType", req.ProjectType, types.MaxNameLength)

	fundingStage := strings.TrimSpace(req.FundingStage)
	if fundingStage == "" {
		violations.add("fundingStage", "is required")
	} else if !isOneOf(fundingStage, types.FundingStages) {
		violations.add("fundingStage", "must be one of: "+strings.Join(types.FundingStages, ", "))
	}

	targetClosingDate := strings.TrimSpace(req.TargetClosingDate)
	if targetClosingDate == "" {
		violations.add("targetClosingDate", "is required")
	} else if !isOneOf(targetClosingDate, types.ClosingTimeframes) {
		violations.add("targetClosingDate", "must be one of: "+strings.Join(types.ClosingTimeframes, ", "))
	}

	var fundingAmount int64
	if strings.TrimSpace(req.FundingAmount.String()) == "" {
		violations.add("fundingAmount", "is required")
	} else if n, err := req.FundingAmount.Int64(); err != nil {
		violations.add("fundingAmount", "must be a whole number")
	} else if n < types.MinFundingAmount {
		violations.add("fundingAmount", fmt.Sprintf("minimum funding amount is %d", int64(types.MinFundingAmount)))
	} else {
		fundingAmount = n
	}

	description := strings.TrimSpace(req.ProjectDescription)
	if description == "" {
		violations.add("projectDescription", "is required")
	} else if len(description) > types.MaxDescriptionLength {
		violations.add("projectDescription", fmt.Sprintf("must be at most %d characters", types.MaxDescriptionLength))
	}

	if err := violations.toAppError(); err != nil {
		return nil, err
	}

	return &types.ApplicationSubmission{
		FullName:           fullName,
		Email:              email,
		CompanyName:        companyName,
		Phone:              phone,
		Country:            country,
		ProjectType:        projectType,
		FundingStage:       fundingStage,
		FundingAmount:      fundingAmount,
		TargetClosingDate:  targetClosingDate,
		ProjectDescription: description,
	}, nil
}

// ValidateContact checks a raw inquiry and returns the typed, trimmed
// submission, or a validation error listing all violated fields.
func ValidateContact(req *types.ContactRequest) (*types.ContactSubmission, *errors.AppError) {
	var violations fieldErrors

	name := requireBoundedString(&violations, "name", req.Name, types.MaxNameLength)
	email := requireEmail(&violations, "email", req.Email)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		violations.add("message", "is required")
	} else if len(message) < types.MinMessageLength {
		violations.add("message", fmt.Sprintf("must be at least %d characters", types.MinMessageLength))
	} else if len(message) > types.MaxMessageLength {
		violations.add("message", fmt.Sprintf("must be at most %d characters", types.MaxMessageLength))
	}

	if err := violations.toAppError(); err != nil {
		return nil, err
	}

	return &types.ContactSubmission{
		Name:    name,
		Email:   email,
		Message: message,
	}, nil
}

// ValidateAttachment checks the optional uploaded file against the PDF and
// size constraints. detectedMIME must come from server-side content sniffing,
// not the client-declared content type.
func ValidateAttachment(detectedMIME string, size int64) *errors.AppError {
	var violations fieldErrors

	if detectedMIME != "application/pdf" {
		violations.add("file", fmt.Sprintf("must be a PDF document, got %s", detectedMIME))
	}
	if size > types.MaxAttachmentSize {
		violations.add("file", fmt.Sprintf("size %d exceeds maximum of %d bytes", size, int64(types.MaxAttachmentSize)))
	}

	return violations.toAppError()
}

func requireBoundedString(violations *fieldErrors, field, value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		violations.add(field, "is required")
		return ""
	}
	if len(trimmed) > maxLen {
		violations.add(field, fmt.Sprintf("must be at most %d characters", maxLen))
		return ""
	}
	return trimmed
}

func requireEmail(violations *fieldErrors, field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		violations.add(field, "is required")
		return ""
	}
	if len(trimmed) > types.MaxEmailLength {
		violations.add(field, fmt.Sprintf("must be at most %d characters", types.MaxEmailLength))
		return ""
	}
	if addr, err := mail.ParseAddress(trimmed); err != nil || addr.Address != trimmed {
		violations.add(field, "must be a valid email address")
		return ""
	}
	return trimmed
}

func isOneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}
