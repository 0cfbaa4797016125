package applications

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// Register wires guide-application routes; review is admin-only.
func (h *Handler) Register(r gin.IRoutes, authn, admin gin.HandlerFunc) {
	r.POST("/guide-applications", authn, h.Submit)
	r.GET("/admin/guide-candidates", authn, admin, h.List)
	r.DELETE("/admin/guide-candidates/:id", authn, admin, h.Delete)
}

type submitReq struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
	CVLink string `json:"cvLink"`
}

func (h *Handler) Submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and reason are required"})
		return
	}

	a, err := h.repo.Create(c.Request.Context(), &Application{
		Name:   req.Name,
		Email:  req.Email,
		Title:  req.Title,
		Reason: req.Reason,
		CVLink: req.CVLink,
	})
	if err != nil {
		log.Printf("submit application: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": a.ID})
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		log.Printf("list applications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID."})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete application %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}
