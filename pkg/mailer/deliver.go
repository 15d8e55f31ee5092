package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/blogicum/pkg/mailer/templates"
)

const sendTimeout = 15 * time.Second

// ErrBadJob marks a queued job that can never be delivered; it should be
// dropped instead of requeued.
var ErrBadJob = errors.New("undeliverable email job")

// Sender is satisfied by *Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Deliver decodes a queued EmailJob, renders its template if any, and sends it.
func Deliver(ctx context.Context, s Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrBadJob, err)
	}
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
		}
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return s.Send(c, job.To, subject, text, html)
}
