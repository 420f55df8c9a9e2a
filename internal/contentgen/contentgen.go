// Package contentgen produces outreach email content from structured job
// data. The routing core treats it as an opaque collaborator: backends may
// call an AI provider or render static templates, but the request/response
// contract is the same.
package contentgen

import (
	"context"

	"github.com/mteja/jobscout/internal/contacts"
	"github.com/mteja/jobscout/internal/jobs"
	"github.com/mteja/jobscout/internal/profile"
)

// Request carries everything a backend needs to write one email.
type Request struct {
	Job     *jobs.Record
	Contact *contacts.Contact
	Resume  string
	Sender  *profile.Sender
	Skills  []string
}

// Email is a prepared outreach payload.
type Email struct {
	Subject string
	Body    string
}

// Writer renders an outreach email for one job/contact pair.
type Writer interface {
	Write(ctx context.Context, req *Request) (*Email, error)
}
