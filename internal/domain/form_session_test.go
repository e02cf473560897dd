package domain_test

import (
	"errors"
	"testing"
	"time"

	"contact-page-backend/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func filledSession(t *testing.T) *domain.FormSession {
	t.Helper()
	s := domain.NewFormSession("s1", epoch)
	require.NoError(t, s.SetField(domain.FieldName, "Ada"))
	require.NoError(t, s.SetField(domain.FieldEmail, "ada@example.com"))
	require.NoError(t, s.SetField(domain.FieldPhone, "123"))
	require.NoError(t, s.SetField(domain.FieldMessage, "Hi"))
	return s
}

func TestNewFormSession(t *testing.T) {
	s := domain.NewFormSession("s1", epoch)

	want := &domain.FormSession{
		ID:         "s1",
		Submission: domain.SubmissionIdle,
		CreatedAt:  epoch,
		UpdatedAt:  epoch,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("new session mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, s.Loading())
	assert.False(t, s.CanSubmit())
}

func TestSetFieldEmailValidation(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"ada@example.com", true},
		{"first.last@sub.example.org", true},
		{"a-b@c-d.se", true},
		{"user_1@example.co.uk", true},
		{"not-an-email", false},
		{"missing-at.example.com", false},
		{"ada@example", false},
		{".ada@example.com", false},
		{"ada.@example.com", false},
		{"ada@example.com.", false},
		{"ada@example.abcd", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			s := domain.NewFormSession("s1", epoch)
			require.NoError(t, s.SetField(domain.FieldEmail, tc.email))
			assert.Equal(t, tc.email, s.Email)
			if tc.valid {
				assert.Empty(t, s.EmailError)
			} else {
				assert.Equal(t, domain.EmailErrorInvalid, s.EmailError)
			}
		})
	}
}

func TestSetFieldRoundTrip(t *testing.T) {
	fields := []domain.Field{domain.FieldName, domain.FieldEmail, domain.FieldPhone, domain.FieldMessage}
	for _, f := range fields {
		for _, v := range []string{"value", ""} {
			s := domain.NewFormSession("s1", epoch)
			require.NoError(t, s.SetField(f, v))
			got, err := s.Field(f)
			require.NoError(t, err)
			assert.Equal(t, v, got, "field %s", f)
		}
	}
}

func TestSetFieldUnknown(t *testing.T) {
	s := domain.NewFormSession("s1", epoch)
	err := s.SetField("subject", "x")
	assert.True(t, errors.Is(err, domain.ErrUnknownField))

	_, err = domain.ParseField("subject")
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	f, err := domain.ParseField("phone")
	require.NoError(t, err)
	assert.Equal(t, domain.FieldPhone, f)
}

func TestCanSubmit(t *testing.T) {
	t.Run("All fields filled", func(t *testing.T) {
		assert.True(t, filledSession(t).CanSubmit())
	})

	for _, f := range []domain.Field{domain.FieldName, domain.FieldEmail, domain.FieldPhone, domain.FieldMessage} {
		t.Run("Empty "+string(f), func(t *testing.T) {
			s := filledSession(t)
			require.NoError(t, s.SetField(f, ""))
			assert.False(t, s.CanSubmit())
		})
	}

	t.Run("Invalid email blocks submission", func(t *testing.T) {
		s := filledSession(t)
		require.NoError(t, s.SetField(domain.FieldEmail, "not-an-email"))
		assert.NotEmpty(t, s.EmailError)
		assert.False(t, s.CanSubmit())

		require.NoError(t, s.SetField(domain.FieldEmail, "ada@example.com"))
		assert.True(t, s.CanSubmit())
	})
}

func TestConfirmationDialog(t *testing.T) {
	s := filledSession(t)
	s.OpenConfirmation()
	s.OpenConfirmation()
	assert.True(t, s.DialogOpen)

	s.CloseConfirmation()
	assert.False(t, s.DialogOpen)
	assert.Equal(t, "Ada", s.Name)
	assert.Equal(t, domain.SubmissionIdle, s.Submission)
}

func TestSubmissionSuccess(t *testing.T) {
	s := filledSession(t)
	s.OpenConfirmation()

	msg, ok := s.BeginSubmission()
	require.True(t, ok)
	assert.Equal(t, domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Phone: "123", Message: "Hi"}, msg)
	assert.Equal(t, domain.SubmissionInFlight, s.Submission)
	assert.True(t, s.DialogOpen)
	assert.True(t, s.Loading())

	s.CompleteSubmission(nil)

	want := &domain.FormSession{
		ID:         "s1",
		Submission: domain.SubmissionSucceeded,
		Notification: domain.Notification{
			Visible: true,
			Text:    "Message sent successfully.",
			Tone:    domain.ToneSuccess,
		},
	}
	if diff := cmp.Diff(want, s, cmpopts.IgnoreFields(domain.FormSession{}, "CreatedAt", "UpdatedAt")); diff != "" {
		t.Errorf("session after success mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, s.Loading())
}

func TestSubmissionFailureAndRetry(t *testing.T) {
	s := filledSession(t)
	s.OpenConfirmation()

	_, ok := s.BeginSubmission()
	require.True(t, ok)
	s.CompleteSubmission(errors.New("boom"))

	assert.Equal(t, domain.SubmissionFailed, s.Submission)
	assert.True(t, s.DialogOpen)
	assert.Equal(t, "Ada", s.Name)
	assert.Equal(t, "ada@example.com", s.Email)
	assert.Equal(t, "123", s.Phone)
	assert.Equal(t, "Hi", s.Message)
	assert.Equal(t, domain.Notification{Visible: true, Text: "Something went wrong, please try again.", Tone: domain.ToneError}, s.Notification)

	msg, ok := s.BeginSubmission()
	require.True(t, ok, "retry from failed must be allowed")
	assert.Equal(t, "Hi", msg.Message)
	assert.Equal(t, domain.SubmissionInFlight, s.Submission)
}

func TestBeginSubmissionRefusals(t *testing.T) {
	t.Run("While in flight", func(t *testing.T) {
		s := filledSession(t)
		s.OpenConfirmation()
		_, ok := s.BeginSubmission()
		require.True(t, ok)

		before := *s
		_, ok = s.BeginSubmission()
		assert.False(t, ok)
		assert.Equal(t, before, *s)
	})

	t.Run("Form incomplete", func(t *testing.T) {
		s := filledSession(t)
		require.NoError(t, s.SetField(domain.FieldPhone, ""))
		s.OpenConfirmation()
		_, ok := s.BeginSubmission()
		assert.False(t, ok)
		assert.Equal(t, domain.SubmissionIdle, s.Submission)
	})

	t.Run("Dialog closed", func(t *testing.T) {
		s := filledSession(t)
		_, ok := s.BeginSubmission()
		assert.False(t, ok)
		assert.Equal(t, domain.SubmissionIdle, s.Submission)
	})
}

func TestCloseWhileInFlight(t *testing.T) {
	s := filledSession(t)
	s.OpenConfirmation()
	_, ok := s.BeginSubmission()
	require.True(t, ok)

	s.CloseConfirmation()
	s.CompleteSubmission(errors.New("timeout"))

	assert.Equal(t, domain.SubmissionFailed, s.Submission)
	assert.False(t, s.DialogOpen)
	assert.True(t, s.Notification.Visible)
}

func TestCompleteSubmissionIgnoredWhenIdle(t *testing.T) {
	s := filledSession(t)
	s.CompleteSubmission(nil)
	assert.Equal(t, domain.SubmissionIdle, s.Submission)
	assert.Equal(t, "Ada", s.Name)
	assert.False(t, s.Notification.Visible)
}

func TestDismissNotification(t *testing.T) {
	s := filledSession(t)
	s.OpenConfirmation()
	_, _ = s.BeginSubmission()
	s.CompleteSubmission(nil)
	require.True(t, s.Notification.Visible)

	s.DismissNotification()
	once := *s
	s.DismissNotification()

	assert.False(t, s.Notification.Visible)
	assert.Equal(t, once, *s)
	assert.Equal(t, domain.SubmissionSucceeded, s.Submission)
}

func TestResolveLink(t *testing.T) {
	l, target, err := domain.ResolveLink("learn-more")
	require.NoError(t, err)
	assert.Equal(t, domain.LinkLearnMore, l)
	assert.Equal(t, "/revolution", target.Href)
	assert.Equal(t, domain.TabRevolution, target.Tab)
	assert.Nil(t, target.Event)

	_, target, err = domain.ResolveLink("free-estimate")
	require.NoError(t, err)
	assert.Equal(t, domain.NoTab, target.Tab)
	require.NotNil(t, target.Event)
	assert.Equal(t, domain.EventEstimatePressed, *target.Event)

	_, _, err = domain.ResolveLink("careers")
	assert.ErrorIs(t, err, domain.ErrUnknownLink)
}

func TestRecoverStaleSubmission(t *testing.T) {
	s := filledSession(t)
	s.OpenConfirmation()
	_, ok := s.BeginSubmission()
	require.True(t, ok)

	assert.False(t, s.RecoverStaleSubmission(epoch.Add(time.Hour), time.Minute), "unstamped sends are never recovered")

	s.InFlightSince = epoch
	assert.False(t, s.RecoverStaleSubmission(epoch.Add(59*time.Second), time.Minute))
	assert.Equal(t, domain.SubmissionInFlight, s.Submission)

	assert.True(t, s.RecoverStaleSubmission(epoch.Add(time.Minute), time.Minute))
	assert.Equal(t, domain.SubmissionFailed, s.Submission)
	assert.True(t, s.InFlightSince.IsZero())
	assert.Equal(t, domain.Notification{Visible: true, Text: domain.NotificationFailed, Tone: domain.ToneError}, s.Notification)
	assert.Equal(t, "Ada", s.Name)

	// A recovered session accepts a new send
	_, ok = s.BeginSubmission()
	assert.True(t, ok)

	idle := filledSession(t)
	assert.False(t, idle.RecoverStaleSubmission(epoch.Add(time.Hour), time.Minute))
}
