package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("contact session not found")
	ErrUnknownField    = errors.New("unknown contact form field")
	ErrUnknownLink     = errors.New("unknown contact page link")
	ErrIncompleteForm  = errors.New("contact form is incomplete")
	// ErrSubmissionAbandoned resolves a send whose outcome was never stored
	ErrSubmissionAbandoned = errors.New("pending submission never resolved")
)

// ContactMessage is the payload handed to the mail-dispatch collaborator
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactRequest represents a one-shot contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,contact_email"`
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SetFieldRequest carries a single field update from the page
type SetFieldRequest struct {
	Value string `json:"value"`
}

// NavigationRequest is pushed by the header/footer shell
type NavigationRequest struct {
	Value         *int `json:"value" binding:"required"`
	SelectedIndex *int `json:"selected_index" binding:"required,min=0"`
}

// SubmissionAttempt is one resolved send, kept for the operator's audit trail
type SubmissionAttempt struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	MaskedEmail string    `json:"masked_email"`
	Succeeded   bool      `json:"succeeded"`
	ErrorText   string    `json:"error_text,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MailDispatcher sends a contact message to the remote mail endpoint.
// Any returned error is treated as a failed submission.
type MailDispatcher interface {
	Dispatch(ctx context.Context, msg ContactMessage) error
}

// AnalyticsRecorder is informed of page events. It has no return value;
// implementations must absorb their own failures.
type AnalyticsRecorder interface {
	Record(ctx context.Context, event AnalyticsEvent)
}

// Navigator updates the shell-level navigation highlight
type Navigator interface {
	SetValue(tab int)
	SetSelectedIndex(index int)
}

// SessionRepository stores form sessions for their page lifetime
type SessionRepository interface {
	Create(ctx context.Context, session *FormSession) error
	Get(ctx context.Context, id string) (*FormSession, error)
	Save(ctx context.Context, session *FormSession) error
}

// SubmissionAttemptRepository records resolved submission attempts
type SubmissionAttemptRepository interface {
	Record(ctx context.Context, attempt *SubmissionAttempt) error
}

// ContactUsecase defines the contact page operations
type ContactUsecase interface {
	CreateSession(ctx context.Context) (*FormSession, error)
	GetSession(ctx context.Context, id string) (*FormSession, error)
	SetField(ctx context.Context, id string, field Field, value string) (*FormSession, error)
	// OpenConfirmation returns ErrIncompleteForm while CanSubmit is false
	OpenConfirmation(ctx context.Context, id string) (*FormSession, error)
	CloseConfirmation(ctx context.Context, id string) (*FormSession, error)
	// ConfirmAndSend blocks until the outbound request resolves. A call made
	// while another is in flight, or while the form is incomplete, returns
	// the current state without sending anything.
	ConfirmAndSend(ctx context.Context, id string) (*FormSession, error)
	DismissNotification(ctx context.Context, id string) (*FormSession, error)
	FollowLink(ctx context.Context, id string, link Link) (*FormSession, string, error)
	UpdateNavigation(ctx context.Context, id string, value, selectedIndex int) (*FormSession, error)
	// SendContactMessage runs a complete submission through a throwaway session
	SendContactMessage(ctx context.Context, req *ContactRequest) (*FormSession, error)
}
