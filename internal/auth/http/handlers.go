package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/triptale-app/triptale-backend/internal/auth"
)

type Handler struct {
	tokens *auth.TokenService
}

func New(tokens *auth.TokenService) *Handler {
	return &Handler{tokens: tokens}
}

type issueReq struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IssueToken mints a self-issued credential for {email, role}.
// The role claim is advisory only; authorization re-reads the stored role.
func (h *Handler) IssueToken(c *gin.Context) {
	var req issueReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	token, err := h.tokens.Issue(strings.TrimSpace(req.Email), req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Register wires the token mint behind the given rate limit.
func (h *Handler) Register(r gin.IRoutes, limit gin.HandlerFunc) {
	r.POST("/jwt", limit, h.IssueToken)
}
