package handlers

import (
	"errors"
	"net/http"

	"studenthub/internal/models"
	"studenthub/internal/service"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

const (
	errDuplicateEmailMsg     = "User already exists with this email."
	errInvalidCredentialsMsg = "Invalid credentials."
	errSignupServerMsg       = "Server error during signup."
	errLoginServerMsg        = "Server error during login."
)

// authPayload is the body returned by signup and login.
func authPayload(u *models.User, token string) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
		"token": token,
	}
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Sign up a student account
// @Description  Public signup always creates role=student
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   signUpRequest  true  "Signup payload"
// @Success      201   {object}  map[string]interface{}  "id, name, email, role, token"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var in signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}

	user, token, err := h.services.SignUp(in.Name, in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": errDuplicateEmailMsg})
		case errors.Is(err, service.ErrPasswordTooShort), errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errSignupServerMsg, "auth_sign_up_failed", err, "email", in.Email)
		}
		return
	}

	c.JSON(http.StatusCreated, authPayload(user, token))
}

// @Summary      Log in
// @Description  Identical error for unknown email and wrong password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   loginRequest  true  "Login payload"
// @Success      200   {object}  map[string]interface{}  "id, name, email, role, token"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var in loginRequest
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}

	user, token, err := h.services.Login(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCredentialsMsg})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoginServerMsg, "auth_login_failed", err, "email", in.Email)
		return
	}

	c.JSON(http.StatusOK, authPayload(user, token))
}

// @Summary      Seed the default admin account
// @Description  Idempotent bootstrap: 201 when the admin is created, 200 when one already exists
// @Tags         auth
// @Produce      json
// @Success      200   {object}  map[string]string
// @Success      201   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/admin-signup [post]
func (h *Handler) adminSignUp(c *gin.Context) {
	created, err := h.services.EnsureAdmin()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "Error creating admin", "admin_seed_failed", err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "Admin created successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin already exists"})
}
