package contentgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mteja/jobscout/internal/contacts"
)

// TemplateWriter renders deterministic outreach emails without any external
// provider. It is the default Writer when no AI backend is configured.
type TemplateWriter struct{}

func NewTemplateWriter() *TemplateWriter { return &TemplateWriter{} }

func (w *TemplateWriter) Write(_ context.Context, req *Request) (*Email, error) {
	if req == nil || req.Job == nil || req.Sender == nil {
		return nil, errors.New("job and sender are required")
	}

	title := req.Job.Title
	if title == "" {
		title = "QA Engineer"
	}
	company := req.Job.Company
	if company == "" {
		company = "your organization"
	}

	// Addresses found in the posting get a direct application; generated
	// HR guesses get a softer inquiry.
	direct := req.Contact != nil && req.Contact.Source == contacts.SourceJobDescription

	var subject string
	if direct {
		subject = fmt.Sprintf("Application for %s Role - %s", title, req.Sender.Name)
	} else {
		subject = fmt.Sprintf("%s Opportunity Inquiry - %s", title, req.Sender.Name)
	}

	var b strings.Builder
	greeting := "Dear Hiring Manager,"
	if req.Contact != nil && req.Contact.Name != "" && !direct {
		greeting = "Hello " + req.Contact.Name + ","
	}
	b.WriteString(greeting + "\n\n")

	if direct {
		fmt.Fprintf(&b, "I am writing to express my strong interest in the %s position at %s.\n\n", title, company)
	} else {
		fmt.Fprintf(&b, "I am reaching out regarding %s opportunities at %s.\n\n", title, company)
	}

	if len(req.Skills) > 0 {
		fmt.Fprintf(&b, "Key skills: %s.\n\n", strings.Join(req.Skills, ", "))
	}
	if req.Resume != "" {
		b.WriteString("My resume is attached for your review.\n\n")
	}

	b.WriteString("Thank you for your time and consideration.\n\n")
	fmt.Fprintf(&b, "Best regards,\n%s\n%s", req.Sender.Name, req.Sender.Email)
	if req.Sender.Phone != "" {
		b.WriteString(" | " + req.Sender.Phone)
	}
	if req.Sender.LinkedIn != "" {
		b.WriteString("\n" + req.Sender.LinkedIn)
	}

	return &Email{Subject: subject, Body: b.String()}, nil
}
