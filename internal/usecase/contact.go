package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contact-page-backend/internal/domain"
	"contact-page-backend/pkg/logger"
	"contact-page-backend/pkg/security"

	"github.com/google/uuid"
)

// ContactDeps wires the contact usecase to its collaborators
type ContactDeps struct {
	Sessions   domain.SessionRepository
	Dispatcher domain.MailDispatcher
	Analytics  domain.AnalyticsRecorder
	// Attempts is optional; nil disables the audit trail
	Attempts domain.SubmissionAttemptRepository
	// DispatchTimeout bounds the outbound request. Zero waits indefinitely.
	DispatchTimeout time.Duration
	// StaleSubmissionAfter fails a send whose outcome was never stored.
	// Zero picks a default that outlasts DispatchTimeout.
	StaleSubmissionAfter time.Duration
	// Now overrides the clock
	Now func() time.Time
}

const (
	defaultStaleSubmissionAfter = 10 * time.Minute
	staleSubmissionMargin       = time.Minute

	completionAttempts = 3
	completionBackoff  = 50 * time.Millisecond
)

type contactUsecase struct {
	sessions        domain.SessionRepository
	dispatcher      domain.MailDispatcher
	analytics       domain.AnalyticsRecorder
	attempts        domain.SubmissionAttemptRepository
	dispatchTimeout time.Duration
	staleAfter      time.Duration
	locks           *sessionLocks
	newID           func() string
	now             func() time.Time
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(deps ContactDeps) domain.ContactUsecase {
	staleAfter := deps.StaleSubmissionAfter
	if staleAfter <= 0 {
		staleAfter = defaultStaleSubmissionAfter
		if deps.DispatchTimeout > 0 {
			staleAfter = deps.DispatchTimeout + staleSubmissionMargin
		}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &contactUsecase{
		sessions:        deps.Sessions,
		dispatcher:      deps.Dispatcher,
		analytics:       deps.Analytics,
		attempts:        deps.Attempts,
		dispatchTimeout: deps.DispatchTimeout,
		staleAfter:      staleAfter,
		locks:           newSessionLocks(),
		newID:           uuid.NewString,
		now:             now,
	}
}

func (uc *contactUsecase) CreateSession(ctx context.Context) (*domain.FormSession, error) {
	session := domain.NewFormSession(uc.newID(), uc.now())
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create contact session: %w", err)
	}
	logger.Log.DebugContext(ctx, "Contact session created", "session_id", session.ID)
	return session, nil
}

func (uc *contactUsecase) GetSession(ctx context.Context, id string) (*domain.FormSession, error) {
	session, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact session: %w", err)
	}
	if session.Loading() && uc.isStale(session) {
		// Store the recovered state rather than report a send nobody will resolve
		return uc.mutate(ctx, id, func(*domain.FormSession) (bool, error) {
			return false, nil
		})
	}
	return session, nil
}

func (uc *contactUsecase) isStale(s *domain.FormSession) bool {
	return !s.InFlightSince.IsZero() && uc.now().Sub(s.InFlightSince) >= uc.staleAfter
}

// mutate loads the session under its lock, fails a stale pending send,
// applies fn and saves the result when anything changed.
func (uc *contactUsecase) mutate(ctx context.Context, id string, fn func(s *domain.FormSession) (bool, error)) (*domain.FormSession, error) {
	return uc.apply(ctx, id, true, fn)
}

func (uc *contactUsecase) apply(ctx context.Context, id string, recoverStale bool, fn func(s *domain.FormSession) (bool, error)) (*domain.FormSession, error) {
	unlock := uc.locks.Lock(id)
	defer unlock()

	session, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact session: %w", err)
	}

	recovered := recoverStale && session.RecoverStaleSubmission(uc.now(), uc.staleAfter)
	if recovered {
		logger.Log.WarnContext(ctx, "Abandoned send marked as failed", "session_id", id)
	}

	changed, err := fn(session)
	if err != nil {
		return nil, err
	}
	changed = changed || recovered
	if !changed {
		return session, nil
	}

	session.Touch(uc.now())
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save contact session: %w", err)
	}
	return session, nil
}

func (uc *contactUsecase) SetField(ctx context.Context, id string, field domain.Field, value string) (*domain.FormSession, error) {
	return uc.mutate(ctx, id, func(s *domain.FormSession) (bool, error) {
		return true, s.SetField(field, value)
	})
}

// OpenConfirmation refuses with ErrIncompleteForm while the form cannot be
// submitted, checked under the session lock.
func (uc *contactUsecase) OpenConfirmation(ctx context.Context, id string) (*domain.FormSession, error) {
	return uc.mutate(ctx, id, func(s *domain.FormSession) (bool, error) {
		if !s.CanSubmit() {
			return false, domain.ErrIncompleteForm
		}
		s.OpenConfirmation()
		return true, nil
	})
}

func (uc *contactUsecase) CloseConfirmation(ctx context.Context, id string) (*domain.FormSession, error) {
	return uc.mutate(ctx, id, func(s *domain.FormSession) (bool, error) {
		if s.Loading() {
			logger.Log.InfoContext(ctx, "Confirmation closed while send is pending", "session_id", id)
		}
		s.CloseConfirmation()
		return true, nil
	})
}

func (uc *contactUsecase) DismissNotification(ctx context.Context, id string) (*domain.FormSession, error) {
	return uc.mutate(ctx, id, func(s *domain.FormSession) (bool, error) {
		s.DismissNotification()
		return true, nil
	})
}

// ConfirmAndSend marks the session in flight, performs the outbound request
// without holding the session lock and then applies the outcome in one save.
func (uc *contactUsecase) ConfirmAndSend(ctx context.Context, id string) (*domain.FormSession, error) {
	var (
		msg     domain.ContactMessage
		started bool
	)
	session, err := uc.mutate(ctx, id, func(s *domain.FormSession) (bool, error) {
		msg, started = s.BeginSubmission()
		if started {
			s.InFlightSince = uc.now()
		}
		return started, nil
	})
	if err != nil {
		return nil, err
	}
	if !started {
		logger.Log.DebugContext(ctx, "Send ignored", "session_id", id, "submission", session.Submission, "can_submit", session.CanSubmit())
		return session, nil
	}

	uc.analytics.Record(ctx, domain.EventMessageSent)

	// The request and its resolution outlive the caller; nothing cancels a
	// pending send once it has started.
	detached := context.WithoutCancel(ctx)
	dispatchErr := uc.dispatch(detached, msg)

	session, err = uc.complete(detached, id, dispatchErr)
	uc.recordAttempt(detached, id, msg.Email, dispatchErr)
	if err != nil {
		logger.Log.ErrorContext(ctx, "Failed to store send outcome", "session_id", id, "dispatch_error", dispatchErr, "error", err)
		return nil, err
	}
	return session, nil
}

// complete stores the outcome of a send, retrying transient store failures.
// When every attempt fails the session stays in flight until it goes stale.
func (uc *contactUsecase) complete(ctx context.Context, id string, dispatchErr error) (*domain.FormSession, error) {
	var err error
	for attempt := 1; attempt <= completionAttempts; attempt++ {
		var session *domain.FormSession
		session, err = uc.apply(ctx, id, false, func(s *domain.FormSession) (bool, error) {
			s.CompleteSubmission(dispatchErr)
			return true, nil
		})
		if err == nil {
			return session, nil
		}
		if errors.Is(err, domain.ErrSessionNotFound) || attempt == completionAttempts {
			break
		}
		logger.Log.WarnContext(ctx, "Retrying send outcome write", "session_id", id, "attempt", attempt, "error", err)
		time.Sleep(completionBackoff * time.Duration(attempt))
	}
	return nil, err
}

// SendContactMessage runs the whole flow on a session that is never stored
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) (*domain.FormSession, error) {
	session := domain.NewFormSession(uc.newID(), uc.now())
	fields := []struct {
		field domain.Field
		value string
	}{
		{domain.FieldName, req.Name},
		{domain.FieldEmail, req.Email},
		{domain.FieldPhone, req.Phone},
		{domain.FieldMessage, req.Message},
	}
	for _, f := range fields {
		if err := session.SetField(f.field, f.value); err != nil {
			return nil, err
		}
	}

	session.OpenConfirmation()
	msg, ok := session.BeginSubmission()
	if !ok {
		return session, domain.ErrIncompleteForm
	}

	uc.analytics.Record(ctx, domain.EventMessageSent)

	detached := context.WithoutCancel(ctx)
	dispatchErr := uc.dispatch(detached, msg)
	session.CompleteSubmission(dispatchErr)
	session.Touch(uc.now())

	uc.recordAttempt(detached, session.ID, msg.Email, dispatchErr)
	return session, nil
}

func (uc *contactUsecase) FollowLink(ctx context.Context, id string, link domain.Link) (*domain.FormSession, string, error) {
	_, target, err := domain.ResolveLink(string(link))
	if err != nil {
		return nil, "", err
	}

	session, err := uc.mutate(ctx, id, func(s *domain.FormSession) (bool, error) {
		var nav domain.Navigator = &s.Navigation
		nav.SetValue(target.Tab)
		return true, nil
	})
	if err != nil {
		return nil, "", err
	}

	if target.Event != nil {
		uc.analytics.Record(ctx, *target.Event)
	}
	return session, target.Href, nil
}

func (uc *contactUsecase) UpdateNavigation(ctx context.Context, id string, value, selectedIndex int) (*domain.FormSession, error) {
	return uc.mutate(ctx, id, func(s *domain.FormSession) (bool, error) {
		var nav domain.Navigator = &s.Navigation
		nav.SetValue(value)
		nav.SetSelectedIndex(selectedIndex)
		return true, nil
	})
}

func (uc *contactUsecase) dispatch(ctx context.Context, msg domain.ContactMessage) error {
	if uc.dispatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.dispatchTimeout)
		defer cancel()
	}

	start := uc.now()
	err := uc.dispatcher.Dispatch(ctx, msg)
	elapsed := uc.now().Sub(start)

	if err != nil {
		logger.Log.WarnContext(ctx, "Mail dispatch failed",
			"email", security.MaskEmail(msg.Email),
			"duration_ms", elapsed.Milliseconds(),
			"timeout", errors.Is(err, context.DeadlineExceeded),
			"error", err,
		)
		return err
	}
	logger.Log.InfoContext(ctx, "Mail dispatched", "email", security.MaskEmail(msg.Email), "duration_ms", elapsed.Milliseconds())
	return nil
}

func (uc *contactUsecase) recordAttempt(ctx context.Context, sessionID, email string, dispatchErr error) {
	if uc.attempts == nil {
		return
	}
	attempt := &domain.SubmissionAttempt{
		SessionID:   sessionID,
		MaskedEmail: security.MaskEmail(email),
		Succeeded:   dispatchErr == nil,
		CreatedAt:   uc.now(),
	}
	if dispatchErr != nil {
		attempt.ErrorText = dispatchErr.Error()
	}
	if err := uc.attempts.Record(ctx, attempt); err != nil {
		logger.Log.ErrorContext(ctx, "Failed to record submission attempt", "session_id", sessionID, "error", err)
	}
}
