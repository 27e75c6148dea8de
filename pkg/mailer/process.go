package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/mesto-api/pkg/mailer/templates"
)

// ErrBadJob marks payloads that will never succeed; the worker drops them
// instead of requeueing.
var ErrBadJob = errors.New("bad email job")

// Process decodes a queued job, renders its template when set and sends it.
func Process(ctx context.Context, s Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		ensureRecipient(&job)
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadJob, err)
		}
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrBadJob)
	}
	return s.Send(ctx, job.To, strings.TrimSpace(subject), text, html)
}

// ensureRecipient fills Data["Email"] from the recipient when the producer left it out.
func ensureRecipient(job *EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}
