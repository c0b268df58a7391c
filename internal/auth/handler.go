package auth

import (
	"errors"
	"net/http"

	"github.com/avelichko/study-backend/internal/password"
	"github.com/avelichko/study-backend/internal/store"
	"github.com/avelichko/study-backend/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	store  store.Store
	issuer *token.Issuer
	log    *zap.Logger
}

func NewHandler(s store.Store, issuer *token.Issuer, log *zap.Logger) *Handler {
	return &Handler{store: s, issuer: issuer, log: log}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if creds.Username == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	hashed, err := password.Hash(creds.Password)
	if err != nil {
		h.internalError(c, "hash password", err)
		return
	}

	// No duplicate-username check here or in the store. Registering the
	// same username twice creates two records and login resolves to
	// whichever the store returns first.
	if _, err := h.store.CreateUser(c.Request.Context(), creds.Username, hashed); err != nil {
		h.internalError(c, "create user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered"})
}

func (h *Handler) Login(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.store.FindUserByUsername(c.Request.Context(), creds.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.internalError(c, "find user", err)
		return
	}
	// Unknown username and wrong password produce the same response so
	// the caller cannot tell which failed.
	if err != nil || !password.Verify(creds.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	accessToken, err := h.issuer.IssueAccess(user.ID)
	if err != nil {
		h.internalError(c, "issue access token", err)
		return
	}
	refreshToken, err := h.issuer.IssueRefresh(user.ID)
	if err != nil {
		h.internalError(c, "issue refresh token", err)
		return
	}

	// Overwrites any previously stored refresh token, ending the prior
	// session. Concurrent logins race here, last write wins.
	if err := h.store.SetRefreshToken(c.Request.Context(), user.ID, refreshToken); err != nil {
		h.internalError(c, "store refresh token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No refresh token provided"})
		return
	}

	// The stored copy is authoritative: a cryptographically valid token
	// superseded by a newer login no longer matches and is rejected.
	user, err := h.store.FindUserByRefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid refresh token"})
			return
		}
		h.internalError(c, "find refresh token", err)
		return
	}

	if _, err := h.issuer.VerifyRefresh(req.RefreshToken); err != nil {
		h.log.Info("refresh token rejected",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid refresh token"})
		return
	}

	// Reissue the access token only. The refresh token is not rotated,
	// the stored value stays valid until the next login.
	accessToken, err := h.issuer.IssueAccess(user.ID)
	if err != nil {
		h.internalError(c, "issue access token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.log.Error("auth: "+op, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
}
