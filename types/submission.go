package types

import "encoding/json"

// Submission limits. FundingAmount is in whole currency units.
const (
	MinFundingAmount     = 500000
	MaxDescriptionLength = 5000
	MaxNameLength        = 100
	MaxEmailLength       = 255
	MaxMessageLength     = 5000
	MinMessageLength     = 10
	// MaxAttachmentSize is the upper bound for the optional pitch deck PDF.
	MaxAttachmentSize = 25 * 1024 * 1024
)

// FundingStages enumerates the accepted values for an application's funding stage.
var FundingStages = []string{"Pre-Seed", "Seed", "Series A", "Series B", "Series C+", "Growth"}

// ClosingTimeframes enumerates the accepted target closing windows.
var ClosingTimeframes = []string{"30 days", "60 days", "90 days", "6 months", "Flexible"}

// ApplicationRequest is the raw inbound shape of a funding application before
// validation. Both transports converge here: the JSON body decodes into it
// directly, and the multipart handler copies scalar form fields into it, with
// FundingAmount kept as a json.Number so the string form parses identically.
type ApplicationRequest struct {
	FullName           string      `json:"fullName"`
	Email              string      `json:"email"`
	CompanyName        string      `json:"companyName"`
	Phone              string      `json:"phone"`
	Country            string      `json:"country"`
	ProjectType        string      `json:"projectType"`
	FundingStage       string      `json:"fundingStage"`
	FundingAmount      json.Number `json:"fundingAmount"`
	TargetClosingDate  string      `json:"targetClosingDate"`
	ProjectDescription string      `json:"projectDescription"`
}

// ApplicationSubmission is a validated, trimmed funding application. It lives
// for a single request: rendered into two emails, then discarded.
type ApplicationSubmission struct {
	FullName           string
	Email              string
	CompanyName        string
	Phone              string
	Country            string
	ProjectType        string
	FundingStage       string
	FundingAmount      int64
	TargetClosingDate  string
	ProjectDescription string
}

// ContactRequest is the raw inbound shape of a general inquiry.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactSubmission is a validated, trimmed general inquiry.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}
