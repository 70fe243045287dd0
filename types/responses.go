package types

// SubmissionResponse is the JSON body returned by the apply and contact
// endpoints on success, and (without IDs) on failure.
type SubmissionResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	EmailIDs   *EmailIDs       `json:"emailIds,omitempty"`
	Attachment *AttachmentInfo `json:"attachment,omitempty"`
}

// AttachmentInfo echoes back the accepted upload so the client can confirm it.
type AttachmentInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// StatusResponse is a minimal acknowledgement body.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse documents the error body shape produced by the error-handler
// middleware.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}
