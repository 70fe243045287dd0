package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/aurumascend/raisesignal-backend/errors"
	"github.com/aurumascend/raisesignal-backend/logger"
	"github.com/aurumascend/raisesignal-backend/types"
	"github.com/aurumascend/raisesignal-backend/validation"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// Multipart bodies get a small allowance above the attachment cap for the
// scalar form fields and part boundaries.
const multipartOverhead = 1024 * 1024

// SubmissionHandler handles the public application and contact form endpoints.
type SubmissionHandler struct {
	emailService EmailDispatcher
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(emailService EmailDispatcher) *SubmissionHandler {
	return &SubmissionHandler{emailService: emailService}
}

// SubmitApplicationHandler godoc
// @Summary      Submit a funding application
// @Description  Accepts a funding application as JSON or multipart form data with an optional PDF pitch deck
// @Tags         submissions
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        body  body      types.ApplicationRequest  true  "Application payload"
// @Success      200   {object}  types.SubmissionResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      502   {object}  types.ErrorResponse
// @Router       /api/apply [post]
func (h *SubmissionHandler) SubmitApplicationHandler(c *gin.Context) {
	var (
		req        types.ApplicationRequest
		attachment *types.Attachment
	)

	if isMultipart(c) {
		var ok bool
		req, attachment, ok = h.parseMultipartApplication(c)
		if !ok {
			return
		}
	} else {
		if !bindJSONOrError(c, &req) {
			return
		}
	}

	// Validation is a hard precondition for dispatch: invalid data must
	// never reach the email provider.
	sub, appErr := validation.ValidateApplication(&req)
	if appErr != nil {
		_ = c.Error(appErr)
		return
	}

	result := h.emailService.SendApplicationEmails(c.Request.Context(), sub, attachment)
	if !result.Success {
		err := result.AdminError
		if err == nil {
			err = result.UserError
		}
		_ = c.Error(apperrors.NewEmailDeliveryError(err))
		return
	}

	ids := result.IDs()
	response := types.SubmissionResponse{
		Success:  true,
		Message:  "Your application has been submitted successfully. Our team will review it and get back to you shortly.",
		EmailIDs: &ids,
	}
	if attachment != nil {
		response.Attachment = &types.AttachmentInfo{
			Name: attachment.Filename,
			Size: attachment.Size(),
		}
	}

	c.JSON(http.StatusOK, response)
}

// SubmitContactHandler godoc
// @Summary      Submit a contact message
// @Description  Accepts a contact form message and routes it to the operations inbox
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        body  body      types.ContactRequest  true  "Contact payload"
// @Success      200   {object}  types.SubmissionResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      502   {object}  types.ErrorResponse
// @Router       /api/contact [post]
func (h *SubmissionHandler) SubmitContactHandler(c *gin.Context) {
	var req types.ContactRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	sub, appErr := validation.ValidateContact(&req)
	if appErr != nil {
		_ = c.Error(appErr)
		return
	}

	result := h.emailService.SendContactEmails(c.Request.Context(), sub)
	if !result.Success {
		err := result.AdminError
		if err == nil {
			err = result.UserError
		}
		_ = c.Error(apperrors.NewEmailDeliveryError(err))
		return
	}

	ids := result.IDs()
	c.JSON(http.StatusOK, types.SubmissionResponse{
		Success:  true,
		Message:  "Your message has been sent successfully. We will get back to you shortly.",
		EmailIDs: &ids,
	})
}

// parseMultipartApplication extracts the scalar form fields and the optional
// "file" part from a multipart request. The file is read fully into memory,
// MIME-sniffed server side, and size-checked before any further work. Errors
// are reported on the context; the bool return signals whether parsing
// succeeded.
func (h *SubmissionHandler) parseMultipartApplication(c *gin.Context) (types.ApplicationRequest, *types.Attachment, bool) {
	var req types.ApplicationRequest

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, types.MaxAttachmentSize+multipartOverhead)

	if err := c.Request.ParseMultipartForm(types.MaxAttachmentSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			_ = c.Error(apperrors.InvalidPayload("payload_too_large", "request body exceeds the maximum attachment size"))
		} else {
			_ = c.Error(apperrors.InvalidPayload("invalid_multipart_form", "failed to parse multipart form"))
		}
		return req, nil, false
	}

	req = types.ApplicationRequest{
		FullName:           c.PostForm("fullName"),
		Email:              c.PostForm("email"),
		CompanyName:        c.PostForm("companyName"),
		Phone:              c.PostForm("phone"),
		Country:            c.PostForm("country"),
		ProjectType:        c.PostForm("projectType"),
		FundingStage:       c.PostForm("fundingStage"),
		FundingAmount:      json.Number(strings.TrimSpace(c.PostForm("fundingAmount"))),
		TargetClosingDate:  c.PostForm("targetClosingDate"),
		ProjectDescription: c.PostForm("projectDescription"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, nil, true
		}
		_ = c.Error(apperrors.InvalidPayload("invalid_file", "failed to read uploaded file"))
		return req, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(apperrors.InvalidPayload("invalid_file", "failed to open uploaded file"))
		return req, nil, false
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.GetLogger().Warnw("Failed to close uploaded file", "error", cerr)
		}
	}()

	content, err := io.ReadAll(io.LimitReader(file, types.MaxAttachmentSize+1))
	if err != nil {
		_ = c.Error(apperrors.InvalidPayload("invalid_file", "failed to read uploaded file"))
		return req, nil, false
	}

	// The declared content-type is client-controlled; sniff the actual bytes.
	detectedMIME := mimetype.Detect(content).String()

	if appErr := validation.ValidateAttachment(detectedMIME, int64(len(content))); appErr != nil {
		_ = c.Error(appErr)
		return req, nil, false
	}

	return req, &types.Attachment{
		Filename:    fileHeader.Filename,
		ContentType: detectedMIME,
		Content:     content,
	}, true
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.InvalidPayload("invalid_request_payload", err.Error()))
		return false
	}
	return true
}
