package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	tpl "github.com/oksasatya/superstar-bot/pkg/mailer/templates"
)

// ErrBadJob marks a message that can never be delivered and must not be requeued.
var ErrBadJob = errors.New("bad email job")

const sendTimeout = 15 * time.Second

// Deliver decodes one queued EmailJob, renders its template if any and sends it.
// Errors wrapping ErrBadJob are permanent; any other error is worth a retry.
func Deliver(ctx context.Context, s Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrBadJob, err)
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return fmt.Errorf("%w: empty recipient", ErrBadJob)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = tpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
		}
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrBadJob)
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := s.Send(c, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}
