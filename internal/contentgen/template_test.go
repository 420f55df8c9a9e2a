package contentgen

import (
	"context"
	"strings"
	"testing"

	"github.com/mteja/jobscout/internal/contacts"
	"github.com/mteja/jobscout/internal/jobs"
	"github.com/mteja/jobscout/internal/profile"
)

func TestTemplateWriterDirectApplication(t *testing.T) {
	writer := NewTemplateWriter()

	email, err := writer.Write(context.Background(), &Request{
		Job:     &jobs.Record{Title: "QA Engineer", Company: "Acme"},
		Contact: &contacts.Contact{Email: "careers@acme.com", Source: contacts.SourceJobDescription},
		Resume:  "qa_general.pdf",
		Sender:  &profile.Sender{Name: "Test Candidate", Email: "candidate@example.com", Phone: "+91 99999 99999"},
		Skills:  []string{"selenium", "pytest"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if email.Subject != "Application for QA Engineer Role - Test Candidate" {
		t.Fatalf("unexpected subject: %q", email.Subject)
	}
	for _, needle := range []string{"QA Engineer", "Acme", "selenium, pytest", "resume is attached", "Test Candidate"} {
		if !strings.Contains(email.Body, needle) {
			t.Fatalf("body missing %q:\n%s", needle, email.Body)
		}
	}
}

func TestTemplateWriterInquiryForGuessedContact(t *testing.T) {
	writer := NewTemplateWriter()

	email, err := writer.Write(context.Background(), &Request{
		Job:     &jobs.Record{Title: "SDET", Company: "Globex"},
		Contact: &contacts.Contact{Email: "hr@globex.com", Name: "HR Team", Source: contacts.SourceDomainPattern},
		Sender:  &profile.Sender{Name: "Test Candidate", Email: "candidate@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(email.Subject, "Inquiry") {
		t.Fatalf("expected inquiry subject, got %q", email.Subject)
	}
	if !strings.HasPrefix(email.Body, "Hello HR Team,") {
		t.Fatalf("expected contact greeting, got:\n%s", email.Body)
	}
}

func TestTemplateWriterDeterministic(t *testing.T) {
	writer := NewTemplateWriter()
	req := &Request{
		Job:    &jobs.Record{Title: "QA Engineer", Company: "Acme"},
		Sender: &profile.Sender{Name: "Test Candidate", Email: "candidate@example.com"},
	}

	first, err := writer.Write(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := writer.Write(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if first.Subject != second.Subject || first.Body != second.Body {
		t.Fatal("template output must be deterministic")
	}
}

func TestTemplateWriterRequiresJobAndSender(t *testing.T) {
	writer := NewTemplateWriter()

	if _, err := writer.Write(context.Background(), &Request{}); err == nil {
		t.Fatal("expected error for missing job and sender")
	}
}
