package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Field names a contact form input
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldMessage Field = "message"
)

// ParseField validates a field name coming from the transport layer
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldName, FieldEmail, FieldPhone, FieldMessage:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

type SubmissionStatus string

const (
	SubmissionIdle      SubmissionStatus = "idle"
	SubmissionInFlight  SubmissionStatus = "in_flight"
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

const (
	EmailErrorInvalid = "Invalid email"

	NotificationSent   = "Message sent successfully."
	NotificationFailed = "Something went wrong, please try again."

	// NotificationAutoHide is how long the page keeps the snackbar up
	NotificationAutoHide = 4 * time.Second
)

// EmailPattern is the structural check applied to the email field
var EmailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Notification is the snackbar reporting the last submission attempt
type Notification struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
	Tone    Tone   `json:"tone,omitempty"`
}

// FormSession is one visitor's contact form interaction.
// It is not safe for concurrent use; callers serialize access per session.
type FormSession struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Message       string           `json:"message"`
	EmailError    string           `json:"email_error"`
	DialogOpen    bool             `json:"dialog_open"`
	Submission    SubmissionStatus `json:"submission"`
	// InFlightSince is stamped by the caller when a send begins
	InFlightSince time.Time        `json:"in_flight_since"`
	Notification  Notification     `json:"notification"`
	Navigation    Navigation       `json:"navigation"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewFormSession returns an empty, idle session
func NewFormSession(id string, now time.Time) *FormSession {
	return &FormSession{
		ID:         id,
		Submission: SubmissionIdle,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SetField stores value for field. An email value that fails EmailPattern is
// kept as typed and reported through EmailError.
func (s *FormSession) SetField(field Field, value string) error {
	switch field {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
		if EmailPattern.MatchString(value) {
			s.EmailError = ""
		} else {
			s.EmailError = EmailErrorInvalid
		}
	case FieldPhone:
		s.Phone = value
	case FieldMessage:
		s.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Field returns the current value of field
func (s *FormSession) Field(field Field) (string, error) {
	switch field {
	case FieldName:
		return s.Name, nil
	case FieldEmail:
		return s.Email, nil
	case FieldPhone:
		return s.Phone, nil
	case FieldMessage:
		return s.Message, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

func (s *FormSession) CanSubmit() bool {
	return s.Name != "" &&
		s.Email != "" &&
		s.Phone != "" &&
		s.Message != "" &&
		s.EmailError == ""
}

// Loading reports whether a request is pending. It is derived from
// Submission so it can never disagree with it.
func (s *FormSession) Loading() bool {
	return s.Submission == SubmissionInFlight
}

func (s *FormSession) OpenConfirmation() {
	s.DialogOpen = true
}

// CloseConfirmation hides the dialog. When a request is in flight it keeps
// running and its resolution still updates Submission and Notification.
func (s *FormSession) CloseConfirmation() {
	s.DialogOpen = false
}

// BeginSubmission moves the session to InFlight and returns the message to
// dispatch. It refuses (ok=false) while a request is pending, when the form
// is incomplete or when the confirmation dialog is not open.
func (s *FormSession) BeginSubmission() (msg ContactMessage, ok bool) {
	if s.Submission == SubmissionInFlight || !s.DialogOpen || !s.CanSubmit() {
		return ContactMessage{}, false
	}
	s.Submission = SubmissionInFlight
	return ContactMessage{
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Message: s.Message,
	}, true
}

// CompleteSubmission applies the outcome of the pending request in a single
// step. It is ignored unless a request is in flight.
func (s *FormSession) CompleteSubmission(dispatchErr error) {
	if s.Submission != SubmissionInFlight {
		return
	}
	s.InFlightSince = time.Time{}
	if dispatchErr != nil {
		s.Submission = SubmissionFailed
		s.Notification = Notification{Visible: true, Text: NotificationFailed, Tone: ToneError}
		return
	}
	s.Submission = SubmissionSucceeded
	s.DialogOpen = false
	s.Name, s.Email, s.Phone, s.Message = "", "", "", ""
	s.EmailError = ""
	s.Notification = Notification{Visible: true, Text: NotificationSent, Tone: ToneSuccess}
}

// RecoverStaleSubmission fails a send that has been in flight for maxAge or
// longer, so a lost outcome cannot block the form forever. Sessions without
// an InFlightSince stamp are left alone.
func (s *FormSession) RecoverStaleSubmission(now time.Time, maxAge time.Duration) bool {
	if s.Submission != SubmissionInFlight || s.InFlightSince.IsZero() || maxAge <= 0 {
		return false
	}
	if now.Sub(s.InFlightSince) < maxAge {
		return false
	}
	s.CompleteSubmission(ErrSubmissionAbandoned)
	return true
}

func (s *FormSession) DismissNotification() {
	s.Notification.Visible = false
}

// Touch records a mutation time
func (s *FormSession) Touch(now time.Time) {
	s.UpdatedAt = now
}
