package contact

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

var htmlBody = htmltemplate.Must(htmltemplate.New("contact.html").Parse(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
`))

var textBody = texttemplate.Must(texttemplate.New("contact.txt").Parse(`New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
Phone: {{.Phone}}

Message:
{{.Message}}
`))

// Subject is the mail subject line for a submission.
func Subject(s Submission) string {
	return "New Contact Form Submission from " + s.Name
}

// render produces the text and HTML bodies. User input is escaped in HTML.
func render(s Submission) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := textBody.Execute(&tb, s); err != nil {
		return "", "", fmt.Errorf("render text body: %w", err)
	}
	if err := htmlBody.Execute(&hb, s); err != nil {
		return "", "", fmt.Errorf("render html body: %w", err)
	}
	return tb.String(), hb.String(), nil
}
