package email

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"contact-page-backend/internal/domain"
)

// Dispatcher hands contact messages to the remote mail-sending function.
// The endpoint takes the four form fields as query parameters on a GET.
type Dispatcher struct {
	endpoint string
	client   *http.Client
}

// NewDispatcher creates a dispatcher for endpoint. A zero timeout means the
// request may wait indefinitely for the endpoint to answer.
func NewDispatcher(endpoint string, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// IsConfigured checks if the dispatcher has an endpoint to talk to
func (d *Dispatcher) IsConfigured() bool {
	return d.endpoint != ""
}

// Dispatch sends msg. Transport errors and non-2xx answers are both failures.
func (d *Dispatcher) Dispatch(ctx context.Context, msg domain.ContactMessage) error {
	if !d.IsConfigured() {
		return fmt.Errorf("mail dispatch endpoint is not configured")
	}

	u, err := url.Parse(d.endpoint)
	if err != nil {
		return fmt.Errorf("invalid mail dispatch endpoint: %w", err)
	}
	q := u.Query()
	q.Set("name", msg.Name)
	q.Set("email", msg.Email)
	q.Set("phone", msg.Phone)
	q.Set("message", msg.Message)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build mail dispatch request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail dispatch request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail dispatch returned status %d", resp.StatusCode)
	}
	return nil
}
