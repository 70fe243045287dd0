package types

// Attachment is an uploaded file carried on the internal notification email
// only. Content is held fully in memory; size is bounded at parse time.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Size returns the attachment size in bytes.
func (a *Attachment) Size() int64 {
	return int64(len(a.Content))
}

// EmailIDs carries the provider message identifiers for the two dispatch legs.
type EmailIDs struct {
	Admin string `json:"admin"`
	User  string `json:"user"`
}

// EmailDispatchResult is the outcome of attempting the admin+user email pair
// for one submission. Success is true only when both legs succeeded; per-leg
// errors stay server-side for diagnosis.
type EmailDispatchResult struct {
	Success    bool
	AdminID    string
	UserID     string
	AdminError error
	UserError  error
}

// IDs returns the provider identifiers in response shape.
func (r *EmailDispatchResult) IDs() EmailIDs {
	return EmailIDs{Admin: r.AdminID, User: r.UserID}
}
