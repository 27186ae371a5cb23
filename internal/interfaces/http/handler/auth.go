package handler

import (
	identityapp "github.com/bizify/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles sign-up, token issue and the current user
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates an account together with its default company settings
//
//	@ID			register
//	@Summary		Register an account
//	@Tags			auth
//	@Accept		json
//	@Produce		json
//	@Param			request	body		identityapp.RegisterRequest	true	"Account details"
//	@Success		201		{object}	dto.Response{data=identityapp.UserResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Token exchanges credentials for a bearer token. It accepts a JSON body or
// an OAuth2 password form where the email travels as "username".
//
//	@ID			issueToken
//	@Summary		Issue an access token
//	@Tags			auth
//	@Accept		json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		identityapp.TokenRequest	true	"Credentials"
//	@Success		200		{object}	dto.Response{data=identityapp.TokenResponse}
//	@Failure		401		{object}	dto.Response
//	@Router			/auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req identityapp.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	token, err := h.authService.Token(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, token)
}

// Me returns the authenticated user
//
//	@ID			currentUser
//	@Summary		Get the authenticated user
//	@Tags			auth
//	@Produce		json
//	@Success		200		{object}	dto.Response{data=identityapp.UserResponse}
//	@Failure		401		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// CheckSetup reports whether no account exists yet
//
//	@ID			checkSetup
//	@Summary		Check first-time setup
//	@Tags			auth
//	@Produce		json
//	@Success		200		{object}	dto.Response{data=identityapp.SetupStatus}
//	@Router			/auth/check-setup [get]
func (h *AuthHandler) CheckSetup(c *gin.Context) {
	status, err := h.authService.CheckSetup(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}
