package services

import (
	"html/template"

	"github.com/aurumascend/raisesignal-backend/types"
)

var (
	applicationInternalTmpl = template.Must(template.New("application_internal").Parse(applicationInternalTemplate))
	applicationExternalTmpl = template.Must(template.New("application_external").Parse(applicationExternalTemplate))
	contactInternalTmpl     = template.Must(template.New("contact_internal").Parse(contactInternalTemplate))
	contactExternalTmpl     = template.Must(template.New("contact_external").Parse(contactExternalTemplate))
)

type applicationInternalData struct {
	*types.ApplicationSubmission
	HasAttachment  bool
	AttachmentName string
	AttachmentSize int64
}

type applicationExternalData struct {
	FullName    string
	CompanyName string
	SiteBaseURL string
}

type contactExternalData struct {
	Name        string
	SiteBaseURL string
}

// RenderApplicationInternal produces the operations-facing notification with
// every submitted field rendered verbatim. The attachment itself travels as a
// transport-level part; the HTML only notes its presence.
func (s *EmailService) RenderApplicationInternal(sub *types.ApplicationSubmission, attachment *types.Attachment) (string, error) {
	data := applicationInternalData{ApplicationSubmission: sub}
	if attachment != nil {
		data.HasAttachment = true
		data.AttachmentName = attachment.Filename
		data.AttachmentSize = attachment.Size()
	}
	return renderTemplate(applicationInternalTmpl, data)
}

// RenderApplicationExternal produces the applicant-facing confirmation. It
// never includes internal detail.
func (s *EmailService) RenderApplicationExternal(sub *types.ApplicationSubmission) (string, error) {
	return renderTemplate(applicationExternalTmpl, applicationExternalData{
		FullName:    sub.FullName,
		CompanyName: sub.CompanyName,
		SiteBaseURL: s.siteBaseURL,
	})
}

// RenderContactInternal produces the operations-facing notification for an
// inquiry.
func (s *EmailService) RenderContactInternal(sub *types.ContactSubmission) (string, error) {
	return renderTemplate(contactInternalTmpl, sub)
}

// RenderContactExternal produces the submitter-facing confirmation for an
// inquiry.
func (s *EmailService) RenderContactExternal(sub *types.ContactSubmission) (string, error) {
	return renderTemplate(contactExternalTmpl, contactExternalData{
		Name:        sub.Name,
		SiteBaseURL: s.siteBaseURL,
	})
}

// Template constants

const applicationInternalTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Funding Application</title>
    <style>
        body {
            font-family: 'sans-serif';
            background-color: #f7f7f7;
            color: #333333;
            margin: 0;
            padding: 20px;
        }
        .container {
            max-width: 640px;
            margin: 20px auto;
            background-color: #ffffff;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 4px 8px rgba(0, 0, 0, 0.05);
        }
        h1 {
            color: #B8860B;
            font-size: 24px;
            margin-bottom: 20px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        td {
            padding: 8px 6px;
            border-bottom: 1px solid #eeeeee;
            font-size: 14px;
            vertical-align: top;
        }
        td.label {
            width: 180px;
            color: #777777;
            font-weight: bold;
        }
        .description {
            white-space: pre-wrap;
        }
        .attachment {
            margin-top: 20px;
            padding: 12px;
            background-color: #faf6ec;
            border-radius: 8px;
            font-size: 14px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>New Funding Application</h1>
        <table>
            <tr><td class="label">Full Name</td><td>{{.FullName}}</td></tr>
            <tr><td class="label">Email</td><td>{{.Email}}</td></tr>
            <tr><td class="label">Company</td><td>{{.CompanyName}}</td></tr>
            <tr><td class="label">Phone</td><td>{{.Phone}}</td></tr>
            <tr><td class="label">Country</td><td>{{.Country}}</td></tr>
            <tr><td class="label">Project Type</td><td>{{.ProjectType}}</td></tr>
            <tr><td class="label">Funding Stage</td><td>{{.FundingStage}}</td></tr>
            <tr><td class="label">Funding Amount</td><td>{{.FundingAmount}}</td></tr>
            <tr><td class="label">Target Closing</td><td>{{.TargetClosingDate}}</td></tr>
            <tr><td class="label">Project Description</td><td class="description">{{.ProjectDescription}}</td></tr>
        </table>
        {{if .HasAttachment}}
        <div class="attachment">
            Pitch deck attached: {{.AttachmentName}} ({{.AttachmentSize}} bytes)
        </div>
        {{end}}
    </div>
</body>
</html>`

const applicationExternalTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Application Received</title>
    <style>
        body {
            font-family: 'sans-serif';
            background-color: #f7f7f7;
            color: #333333;
            margin: 0;
            padding: 20px;
            text-align: center;
        }
        .container {
            max-width: 600px;
            margin: 20px auto;
            background-color: #ffffff;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 4px 8px rgba(0, 0, 0, 0.05);
        }
        h1 {
            color: #B8860B;
            font-size: 28px;
            margin-bottom: 20px;
        }
        p {
            font-size: 16px;
            line-height: 1.6;
            margin-bottom: 25px;
            text-align: left;
        }
        ol {
            text-align: left;
            font-size: 15px;
            line-height: 1.8;
        }
        .link {
            margin-top: 20px;
            font-size: 14px;
            color: #777777;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>We received your application</h1>
        <p>Hi {{.FullName}},</p>
        <p>Thank you for submitting a funding application for {{.CompanyName}}. Our team reviews every application carefully. Here is what happens next:</p>
        <ol>
            <li>An analyst reviews your application and materials.</li>
            <li>If there is a potential fit, we reach out to schedule an introductory call.</li>
            <li>We match you with investors from our network aligned with your stage and sector.</li>
        </ol>
        <p>Most applicants hear back from us within five business days.</p>
        <p class="link">
            The Aurum Ascend Capital Team<br/>
            <a href="{{.SiteBaseURL}}">{{.SiteBaseURL}}</a>
        </p>
    </div>
</body>
</html>`

const contactInternalTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Inquiry</title>
    <style>
        body {
            font-family: 'sans-serif';
            background-color: #f7f7f7;
            color: #333333;
            margin: 0;
            padding: 20px;
        }
        .container {
            max-width: 640px;
            margin: 20px auto;
            background-color: #ffffff;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 4px 8px rgba(0, 0, 0, 0.05);
        }
        h1 {
            color: #B8860B;
            font-size: 24px;
            margin-bottom: 20px;
        }
        .field {
            margin-bottom: 12px;
            font-size: 14px;
        }
        .label {
            color: #777777;
            font-weight: bold;
        }
        .message {
            white-space: pre-wrap;
            padding: 12px;
            background-color: #fafafa;
            border-radius: 8px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>New Contact Inquiry</h1>
        <div class="field"><span class="label">Name:</span> {{.Name}}</div>
        <div class="field"><span class="label">Email:</span> {{.Email}}</div>
        <div class="field"><span class="label">Message:</span></div>
        <div class="message">{{.Message}}</div>
    </div>
</body>
</html>`

const contactExternalTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Message Received</title>
    <style>
        body {
            font-family: 'sans-serif';
            background-color: #f7f7f7;
            color: #333333;
            margin: 0;
            padding: 20px;
            text-align: center;
        }
        .container {
            max-width: 600px;
            margin: 20px auto;
            background-color: #ffffff;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 4px 8px rgba(0, 0, 0, 0.05);
        }
        h1 {
            color: #B8860B;
            font-size: 28px;
            margin-bottom: 20px;
        }
        p {
            font-size: 16px;
            line-height: 1.6;
            margin-bottom: 25px;
        }
        .link {
            margin-top: 20px;
            font-size: 14px;
            color: #777777;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Thanks for reaching out</h1>
        <p>Hi {{.Name}},</p>
        <p>We received your message and a member of our team will get back to you shortly.</p>
        <p class="link">
            The Aurum Ascend Capital Team<br/>
            <a href="{{.SiteBaseURL}}">{{.SiteBaseURL}}</a>
        </p>
    </div>
</body>
</html>`
