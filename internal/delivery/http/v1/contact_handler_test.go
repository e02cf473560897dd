package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"contact-page-backend/config"
	v1 "contact-page-backend/internal/delivery/http/v1"
	"contact-page-backend/internal/domain"
	"contact-page-backend/internal/repository/memory"
	"contact-page-backend/internal/usecase"
	"contact-page-backend/pkg/analytics"
	"contact-page-backend/pkg/auth"
	"contact-page-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	security.SetDefaultLogger(security.NewSecurityLogger(zap.NewNop(), "test", "test"))
	os.Exit(m.Run())
}

type dispatchFunc func(ctx context.Context, msg domain.ContactMessage) error

func (f dispatchFunc) Dispatch(ctx context.Context, msg domain.ContactMessage) error {
	return f(ctx, msg)
}

var okDispatch = dispatchFunc(func(context.Context, domain.ContactMessage) error { return nil })

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type testServer struct {
	router *gin.Engine
	tokens *auth.SessionTokens
}

func newTestServer(t *testing.T, dispatcher domain.MailDispatcher, sendLimit int) *testServer {
	t.Helper()
	cfg := &config.Config{
		Environment:              "test",
		FrontendURL:              "http://localhost:3000",
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 10000,
		RateLimitSendThreshold:   sendLimit,
	}
	tokens := auth.NewSessionTokens("test-secret", time.Hour)
	uc := usecase.NewContactUsecase(usecase.ContactDeps{
		Sessions:   memory.NewSessionRepository(time.Hour),
		Dispatcher: dispatcher,
		Analytics:  analytics.Noop{},
	})
	router, err := v1.NewRouter(v1.RouterDeps{
		ContactUC:     uc,
		HealthUC:      usecase.NewHealthUsecase(nil),
		SessionTokens: tokens,
		Config:        cfg,
	})
	require.NoError(t, err)
	return &testServer{router: router, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) createSession(t *testing.T) (string, v1.SessionView) {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/v1/contact/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created v1.CreateSessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.Token)
	return created.Token, created.Session
}

func (s *testServer) fill(t *testing.T, token string) {
	t.Helper()
	for field, value := range map[string]string{"name": "Ada", "email": "ada@example.com", "phone": "123", "message": "Hi"} {
		w, _ := s.do(t, http.MethodPut, "/v1/contact/session/fields/"+field, token, domain.SetFieldRequest{Value: value})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func decodeView(t *testing.T, env envelope) v1.SessionView {
	t.Helper()
	var view v1.SessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	return view
}

func TestCreateSession(t *testing.T) {
	s := newTestServer(t, okDispatch, 100)
	w, env := s.do(t, http.MethodPost, "/v1/contact/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created v1.CreateSessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))

	id, err := s.tokens.Parse(created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.Session.ID, id)
	assert.Equal(t, domain.SubmissionIdle, created.Session.Submission)
	assert.False(t, created.Session.Loading)
	assert.False(t, created.Session.CanSubmit)
	assert.Equal(t, int64(4000), created.Session.Notification.AutoHideMs)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "contact_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, created.Token, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestSessionTokenRequired(t *testing.T) {
	s := newTestServer(t, okDispatch, 100)

	w, _ := s.do(t, http.MethodGet, "/v1/contact/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/v1/contact/session", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Well-signed token for a session that does not exist
	token, err := s.tokens.Issue("missing")
	require.NoError(t, err)
	w, _ = s.do(t, http.MethodGet, "/v1/contact/session", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetFieldHandler(t *testing.T) {
	s := newTestServer(t, okDispatch, 100)
	token, _ := s.createSession(t)

	w, env := s.do(t, http.MethodPut, "/v1/contact/session/fields/email", token, domain.SetFieldRequest{Value: "not-an-email"})
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeView(t, env)
	assert.Equal(t, "not-an-email", view.Email)
	assert.Equal(t, "Invalid email", view.EmailError)

	w, _ = s.do(t, http.MethodPut, "/v1/contact/session/fields/subject", token, domain.SetFieldRequest{Value: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpenConfirmationRequiresCompleteForm(t *testing.T) {
	s := newTestServer(t, okDispatch, 100)
	token, _ := s.createSession(t)

	w, _ := s.do(t, http.MethodPost, "/v1/contact/session/confirmation", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	s.fill(t, token)
	w, env := s.do(t, http.MethodPost, "/v1/contact/session/confirmation", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeView(t, env).DialogOpen)

	w, env = s.do(t, http.MethodDelete, "/v1/contact/session/confirmation", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeView(t, env)
	assert.False(t, view.DialogOpen)
	assert.Equal(t, "Ada", view.Name)
}

func TestSendSuccess(t *testing.T) {
	var got domain.ContactMessage
	s := newTestServer(t, dispatchFunc(func(_ context.Context, msg domain.ContactMessage) error {
		got = msg
		return nil
	}), 100)
	token, _ := s.createSession(t)
	s.fill(t, token)
	s.do(t, http.MethodPost, "/v1/contact/session/confirmation", token, nil)

	w, env := s.do(t, http.MethodPost, "/v1/contact/session/send", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	view := decodeView(t, env)
	assert.Equal(t, domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Phone: "123", Message: "Hi"}, got)
	assert.Equal(t, domain.SubmissionSucceeded, view.Submission)
	assert.False(t, view.DialogOpen)
	assert.Empty(t, view.Name)
	assert.True(t, view.Notification.Visible)
	assert.Equal(t, "Message sent successfully.", view.Notification.Text)
	assert.Equal(t, domain.ToneSuccess, view.Notification.Tone)

	w, env = s.do(t, http.MethodDelete, "/v1/contact/session/notification", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeView(t, env).Notification.Visible)
}

func TestSendFailureKeepsFields(t *testing.T) {
	s := newTestServer(t, dispatchFunc(func(context.Context, domain.ContactMessage) error {
		return errors.New("503 from mail endpoint")
	}), 100)
	token, _ := s.createSession(t)
	s.fill(t, token)
	s.do(t, http.MethodPost, "/v1/contact/session/confirmation", token, nil)

	w, env := s.do(t, http.MethodPost, "/v1/contact/session/send", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	view := decodeView(t, env)
	assert.Equal(t, domain.SubmissionFailed, view.Submission)
	assert.True(t, view.DialogOpen)
	assert.Equal(t, "Ada", view.Name)
	assert.Equal(t, "Something went wrong, please try again.", view.Notification.Text)
	assert.Equal(t, domain.ToneError, view.Notification.Tone)
}

func TestSendIncompleteIsNoop(t *testing.T) {
	calls := 0
	s := newTestServer(t, dispatchFunc(func(context.Context, domain.ContactMessage) error {
		calls++
		return nil
	}), 100)
	token, _ := s.createSession(t)

	w, env := s.do(t, http.MethodPost, "/v1/contact/session/send", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.SubmissionIdle, decodeView(t, env).Submission)
	assert.Zero(t, calls)
}

func TestFollowLink(t *testing.T) {
	s := newTestServer(t, okDispatch, 100)
	token, _ := s.createSession(t)

	w, env := s.do(t, http.MethodPost, "/v1/contact/session/links/learn-more", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var followed v1.FollowLinkResponse
	require.NoError(t, json.Unmarshal(env.Data, &followed))
	assert.Equal(t, "/revolution", followed.Href)
	assert.Equal(t, domain.TabRevolution, followed.Session.Navigation.Value)

	w, env = s.do(t, http.MethodPost, "/v1/contact/session/links/free-estimate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &followed))
	assert.Equal(t, "/estimate", followed.Href)
	assert.Equal(t, domain.NoTab, followed.Session.Navigation.Value)

	w, _ = s.do(t, http.MethodPost, "/v1/contact/session/links/careers", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateNavigation(t *testing.T) {
	s := newTestServer(t, okDispatch, 100)
	token, _ := s.createSession(t)

	w, env := s.do(t, http.MethodPut, "/v1/contact/session/navigation", token, map[string]int{"value": 4, "selected_index": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.Navigation{Value: 4, SelectedIndex: 1}, decodeView(t, env).Navigation)

	w, env = s.do(t, http.MethodPut, "/v1/contact/session/navigation", token, map[string]int{"value": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(env.Error), "Selected index: is required")
}

func TestSubmitContact(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := newTestServer(t, okDispatch, 100)
		w, env := s.do(t, http.MethodPost, "/v1/contact", "", domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Phone: "123", Message: "Hi"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, env.Success)
		assert.Equal(t, "Message sent successfully.", env.Message)
	})

	t.Run("Dispatch failure", func(t *testing.T) {
		s := newTestServer(t, dispatchFunc(func(context.Context, domain.ContactMessage) error {
			return errors.New("boom")
		}), 100)
		w, env := s.do(t, http.MethodPost, "/v1/contact", "", domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Phone: "123", Message: "Hi"})
		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.False(t, env.Success)
		view := decodeView(t, env)
		assert.Equal(t, "Ada", view.Name)
		assert.Equal(t, domain.SubmissionFailed, view.Submission)
	})

	t.Run("Validation errors", func(t *testing.T) {
		s := newTestServer(t, okDispatch, 100)
		w, env := s.do(t, http.MethodPost, "/v1/contact", "", domain.ContactRequest{Name: "Ada", Email: "nope", Phone: "123"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		var problems []string
		require.NoError(t, json.Unmarshal(env.Error, &problems))
		assert.ElementsMatch(t, []string{"Email: Invalid email", "Message: is required"}, problems)
	})
}

func TestCookieSessionRequiresCSRFToken(t *testing.T) {
	s := newTestServer(t, okDispatch, 100)

	w, _ := s.do(t, http.MethodPost, "/v1/contact/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()

	var csrf string
	for _, c := range cookies {
		if c.Name == "csrf_token" {
			csrf = c.Value
		}
	}
	require.NotEmpty(t, csrf)

	put := func(header string) int {
		req := httptest.NewRequest(http.MethodPut, "/v1/contact/session/fields/name", bytes.NewBufferString(`{"value":"Ada"}`))
		req.Header.Set("Content-Type", "application/json")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		if header != "" {
			req.Header.Set("X-CSRF-Token", header)
		}
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusForbidden, put(""))
	assert.Equal(t, http.StatusForbidden, put("wrong"))
	assert.Equal(t, http.StatusOK, put(csrf))
}

func TestSendRateLimit(t *testing.T) {
	s := newTestServer(t, okDispatch, 2)
	token, _ := s.createSession(t)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact/session/send", nil)
		req.RemoteAddr = "198.51.100.7:4242"
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, okDispatch, 100)
	w, env := s.do(t, http.MethodGet, "/v1/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}
