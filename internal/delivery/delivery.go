package delivery

import (
	"context"
	"sync"

	"github.com/mteja/jobscout/internal/contacts"
	"github.com/mteja/jobscout/internal/contentgen"
	"github.com/mteja/jobscout/internal/jobs"
)

// Application is a filled Easy-Apply submission handed to the delivery layer.
type Application struct {
	Job    *jobs.Record
	Resume string
	Steps  int
}

// Message is an outreach email addressed to a derived contact.
type Message struct {
	Job     *jobs.Record
	Contact *contacts.Contact
	Email   *contentgen.Email
	Resume  string
}

// Delivery performs the externally visible side effects of a run. The real
// implementation lives outside this repository (browser automation, SMTP);
// in-tree callers get a Recorder.
type Delivery interface {
	SubmitApplication(ctx context.Context, app *Application) error
	SendEmail(ctx context.Context, msg *Message) error
}

// Recorder is the dry-run Delivery: it accepts everything and keeps an
// ordered record of what would have been sent. Safe for concurrent use.
type Recorder struct {
	mu           sync.Mutex
	applications []*Application
	messages     []*Message
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) SubmitApplication(_ context.Context, app *Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.applications = append(r.applications, app)

	return nil
}

func (r *Recorder) SendEmail(_ context.Context, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, msg)

	return nil
}

// Applications returns the recorded submissions in delivery order.
func (r *Recorder) Applications() []*Application {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Application, len(r.applications))
	copy(out, r.applications)

	return out
}

// Messages returns the recorded emails in delivery order.
func (r *Recorder) Messages() []*Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Message, len(r.messages))
	copy(out, r.messages)

	return out
}
