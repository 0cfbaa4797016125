package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/triptale-app/triptale-backend/internal/auth"
	"github.com/triptale-app/triptale-backend/internal/users/domain"
)

type upsertReq struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
	Role  string `json:"role"`
}

// Upsert records a sign-in. First sign-in inserts the user (role defaults to
// tourist unless the caller asked to join as a guide); repeat sign-ins only
// refresh name/photo/lastLogin. The email comes from the verified credential,
// never from the payload.
func (h *Handler) Upsert(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req upsertReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
	}

	user, err := h.store.Upsert(c.Request.Context(), id.Email, req.Name, req.Photo, req.Role)
	if err != nil {
		log.Printf("upsert user %s: %v", id.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// GetByEmail fetches one user.
func (h *Handler) GetByEmail(c *gin.Context) {
	email := c.Param("email")

	user, err := h.store.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("get user %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// List returns all users, optionally filtered by role.
func (h *Handler) List(c *gin.Context) {
	users, err := h.store.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		log.Printf("list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type updateProfileReq struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// UpdateProfile updates name/photo for the owner of the profile. Any role
// key in the payload is dropped by the request schema.
func (h *Handler) UpdateProfile(c *gin.Context) {
	email := c.Param("email")

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	user, err := h.store.UpdateProfile(c.Request.Context(), email, req.Name, req.Photo)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("update profile %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Profile returns the public subset of a user's record.
func (h *Handler) Profile(c *gin.Context) {
	email := c.Param("email")

	user, err := h.store.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("profile %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":      user.Name,
		"email":     user.Email,
		"photo":     user.Photo,
		"createdAt": user.CreatedAt,
	})
}

// AdminList returns a paginated, filterable user listing.
func (h *Handler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, total, err := h.store.AdminList(c.Request.Context(), c.Query("role"), c.Query("search"), page, limit)
	if err != nil {
		log.Printf("admin list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

type roleReq struct {
	Role string `json:"role"`
}

// UpdateRoleByID changes a user's role, addressed by user id.
func (h *Handler) UpdateRoleByID(c *gin.Context) {
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil || !domain.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	user, err := h.store.UpdateRoleByID(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		h.writeRoleUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateRoleByEmail changes a user's role, addressed by email.
func (h *Handler) UpdateRoleByEmail(c *gin.Context) {
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil || !domain.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	user, err := h.store.UpdateRole(c.Request.Context(), c.Param("email"), req.Role)
	if err != nil {
		h.writeRoleUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *Handler) writeRoleUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
	default:
		log.Printf("update role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
	}
}

// UsersByRole returns guides and tourists for the admin dashboard.
func (h *Handler) UsersByRole(c *gin.Context) {
	guides, err := h.store.List(c.Request.Context(), domain.RoleGuide)
	if err != nil {
		log.Printf("users by role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	tourists, err := h.store.List(c.Request.Context(), domain.RoleTourist)
	if err != nil {
		log.Printf("users by role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"guides": guides, "tourists": tourists})
}

// RandomGuides samples guides for the landing page.
func (h *Handler) RandomGuides(c *gin.Context) {
	limit, err := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("limit", "6")))
	if err != nil || limit < 1 {
		limit = 6
	}

	guides, err := h.store.RandomGuides(c.Request.Context(), limit)
	if err != nil {
		log.Printf("random guides: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, guides)
}
