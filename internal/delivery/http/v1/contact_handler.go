package v1

import (
	"errors"
	"net/http"

	"contact-page-backend/internal/delivery/http/middleware"
	"contact-page-backend/internal/delivery/http/response"
	"contact-page-backend/internal/domain"
	"contact-page-backend/pkg/apperror"
	"contact-page-backend/pkg/auth"
	"contact-page-backend/pkg/security"
	"contact-page-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC    domain.ContactUsecase
	tokens       *auth.SessionTokens
	secureCookie bool
}

// NotificationView is the snackbar as the page renders it
type NotificationView struct {
	Visible    bool        `json:"visible"`
	Text       string      `json:"text"`
	Tone       domain.Tone `json:"tone,omitempty"`
	AutoHideMs int64       `json:"auto_hide_ms"`
}

// SessionView is the JSON rendering of a form session
type SessionView struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Phone        string                  `json:"phone"`
	Message      string                  `json:"message"`
	EmailError   string                  `json:"email_error"`
	DialogOpen   bool                    `json:"dialog_open"`
	Submission   domain.SubmissionStatus `json:"submission"`
	Loading      bool                    `json:"loading"`
	CanSubmit    bool                    `json:"can_submit"`
	Notification NotificationView        `json:"notification"`
	Navigation   domain.Navigation       `json:"navigation"`
}

// CreateSessionResponse carries the token the page presents on later calls
type CreateSessionResponse struct {
	Token   string      `json:"token"`
	Session SessionView `json:"session"`
}

// FollowLinkResponse tells the page where to go
type FollowLinkResponse struct {
	Href    string      `json:"href"`
	Session SessionView `json:"session"`
}

func NewSessionView(s *domain.FormSession) SessionView {
	return SessionView{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Message:    s.Message,
		EmailError: s.EmailError,
		DialogOpen: s.DialogOpen,
		Submission: s.Submission,
		Loading:    s.Loading(),
		CanSubmit:  s.CanSubmit(),
		Notification: NotificationView{
			Visible:    s.Notification.Visible,
			Text:       s.Notification.Text,
			Tone:       s.Notification.Tone,
			AutoHideMs: domain.NotificationAutoHide.Milliseconds(),
		},
		Navigation: s.Navigation,
	}
}

// NewContactHandler registers the contact routes. Session routes require a
// session token; creating a session and the one-shot endpoint do not.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, tokens *auth.SessionTokens, secureCookie bool, sendLimit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC:    contactUC,
		tokens:       tokens,
		secureCookie: secureCookie,
	}

	public.POST("/contact", sendLimit, handler.SubmitContact)
	public.POST("/contact/sessions", handler.CreateSession)

	session := public.Group("/contact/session")
	session.Use(middleware.SessionMiddleware(tokens))
	{
		session.GET("", handler.GetSession)
		session.PUT("/fields/:field", handler.SetField)
		session.POST("/confirmation", handler.OpenConfirmation)
		session.DELETE("/confirmation", handler.CloseConfirmation)
		session.POST("/send", sendLimit, handler.Send)
		session.DELETE("/notification", handler.DismissNotification)
		session.POST("/links/:link", handler.FollowLink)
		session.PUT("/navigation", handler.UpdateNavigation)
	}
}

// CreateSession godoc
// @Summary      Start a contact form session
// @Description  Creates an empty form session and returns its token. The token is also set as the contact_session cookie.
// @Tags         contact
// @Produce      json
// @Success      201  {object}  response.Response{data=CreateSessionResponse}
// @Failure      500  {object}  response.Response
// @Router       /contact/sessions [post]
func (h *ContactHandler) CreateSession(c *gin.Context) {
	session, err := h.contactUC.CreateSession(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	token, err := h.tokens.Issue(session.ID)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int(h.tokens.TTL().Seconds()), "/", "", h.secureCookie, true)

	response.Success(c, http.StatusCreated, "Session created", CreateSessionResponse{
		Token:   token,
		Session: NewSessionView(session),
	})
}

// GetSession godoc
// @Summary      Get the contact form session
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=SessionView}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /contact/session [get]
func (h *ContactHandler) GetSession(c *gin.Context) {
	session, err := h.contactUC.GetSession(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, session, err, "Session retrieved")
}

// SetField godoc
// @Summary      Update a form field
// @Description  Stores the value as typed. An email that does not look valid is kept and reported in email_error.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        field  path      string                  true  "name, email, phone or message"
// @Param        body   body      domain.SetFieldRequest  true  "Field value"
// @Success      200    {object}  response.Response{data=SessionView}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /contact/session/fields/{field} [put]
func (h *ContactHandler) SetField(c *gin.Context) {
	field, err := domain.ParseField(c.Param("field"))
	if err != nil {
		c.Error(apperror.BadRequest("Unknown field"))
		return
	}

	var req domain.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	session, err := h.contactUC.SetField(c.Request.Context(), middleware.GetSessionID(c), field, req.Value)
	h.respond(c, session, err, "Field updated")
}

// OpenConfirmation godoc
// @Summary      Open the confirmation dialog
// @Description  Fails with 409 while the form cannot be submitted.
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=SessionView}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /contact/session/confirmation [post]
func (h *ContactHandler) OpenConfirmation(c *gin.Context) {
	session, err := h.contactUC.OpenConfirmation(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, session, err, "Confirmation opened")
}

// CloseConfirmation godoc
// @Summary      Close the confirmation dialog
// @Description  Allowed while a send is pending; its outcome is still applied.
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=SessionView}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /contact/session/confirmation [delete]
func (h *ContactHandler) CloseConfirmation(c *gin.Context) {
	session, err := h.contactUC.CloseConfirmation(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, session, err, "Confirmation closed")
}

// Send godoc
// @Summary      Confirm and send the message
// @Description  Blocks until the mail endpoint answers. A call while a send is pending or while the form is incomplete changes nothing.
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=SessionView}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /contact/session/send [post]
func (h *ContactHandler) Send(c *gin.Context) {
	session, err := h.contactUC.ConfirmAndSend(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, session, err, "Send processed")
}

// DismissNotification godoc
// @Summary      Hide the notification
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=SessionView}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /contact/session/notification [delete]
func (h *ContactHandler) DismissNotification(c *gin.Context) {
	session, err := h.contactUC.DismissNotification(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, session, err, "Notification dismissed")
}

// FollowLink godoc
// @Summary      Follow an outbound link
// @Description  Updates the header highlight and returns the destination.
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        link  path      string  true  "learn-more or free-estimate"
// @Success      200   {object}  response.Response{data=FollowLinkResponse}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /contact/session/links/{link} [post]
func (h *ContactHandler) FollowLink(c *gin.Context) {
	session, href, err := h.contactUC.FollowLink(c.Request.Context(), middleware.GetSessionID(c), domain.Link(c.Param("link")))
	if err != nil {
		h.respond(c, nil, err, "")
		return
	}
	response.Success(c, http.StatusOK, "Link followed", FollowLinkResponse{
		Href:    href,
		Session: NewSessionView(session),
	})
}

// UpdateNavigation godoc
// @Summary      Update the header highlight
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.NavigationRequest  true  "Navigation state"
// @Success      200   {object}  response.Response{data=SessionView}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /contact/session/navigation [put]
func (h *ContactHandler) UpdateNavigation(c *gin.Context) {
	var req domain.NavigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
		return
	}

	session, err := h.contactUC.UpdateNavigation(c.Request.Context(), middleware.GetSessionID(c), *req.Value, *req.SelectedIndex)
	h.respond(c, session, err, "Navigation updated")
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Sends a complete message in one call. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response{data=SessionView}
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      502      {object}  response.Response{data=SessionView}
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		problems := validation.FormatValidationErrors(err)
		security.DefaultLogger().LogValidationFailed(c.Request.Context(), req.Email, c.ClientIP(), middleware.GetRequestID(c), problems)
		response.Error(c, http.StatusBadRequest, "Validation failed", problems)
		return
	}

	session, err := h.contactUC.SendContactMessage(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrIncompleteForm) {
			c.Error(apperror.BadRequest("Form is incomplete"))
			return
		}
		c.Error(err)
		return
	}

	view := NewSessionView(session)
	if session.Submission == domain.SubmissionFailed {
		c.JSON(http.StatusBadGateway, response.Response{
			Success:   false,
			Message:   session.Notification.Text,
			Data:      view,
			RequestID: middleware.GetRequestID(c),
		})
		return
	}
	response.Success(c, http.StatusOK, session.Notification.Text, view)
}

func (h *ContactHandler) respond(c *gin.Context, session *domain.FormSession, err error, message string) {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			c.Error(apperror.NotFound("Session not found"))
		case errors.Is(err, domain.ErrUnknownField):
			c.Error(apperror.BadRequest("Unknown field"))
		case errors.Is(err, domain.ErrUnknownLink):
			c.Error(apperror.BadRequest("Unknown link"))
		case errors.Is(err, domain.ErrIncompleteForm):
			c.Error(apperror.Conflict("Form is incomplete"))
		default:
			c.Error(err)
		}
		return
	}
	response.Success(c, http.StatusOK, message, NewSessionView(session))
}
