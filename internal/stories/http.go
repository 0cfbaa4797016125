package stories

import (
	"errors"
	"log"
	"net/http"
	"strconv"
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

// Register wires the story routes; reads are public, writes authenticated.
func (h *Handler) Register(r gin.IRoutes, authn gin.HandlerFunc) {
	r.POST("/stories", authn, h.Create)
	r.GET("/stories", h.List)
	r.GET("/stories/feed", h.Feed)
	r.GET("/story", authn, h.ByAuthor)
	r.PUT("/stories/:id", authn, h.Update)
	r.DELETE("/stories/:id", authn, h.Delete)
}

type createReq struct {
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Images    []string `json:"images"`
	UserEmail string   `json:"userEmail"`
	UserName  string   `json:"userName"`
	UserPhoto string   `json:"userPhoto"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Text) == "" ||
		len(req.Images) == 0 ||
		strings.TrimSpace(req.UserEmail) == "" ||
		strings.TrimSpace(req.UserName) == "" ||
		strings.TrimSpace(req.UserPhoto) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	s, err := h.repo.Create(c.Request.Context(), &Story{
		Title:     req.Title,
		Text:      req.Text,
		Images:    req.Images,
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		UserPhoto: req.UserPhoto,
	})
	if err != nil {
		log.Printf("create story: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": s.ID, "message": "Story added successfully"})
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		log.Printf("list stories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stories"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Feed returns the newest stories, or a random sample with ?random=true.
func (h *Handler) Feed(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "4"))
	if err != nil || limit < 1 {
		limit = 4
	}

	var items []Story
	if c.Query("random") == "true" {
		items, err = h.repo.Random(c.Request.Context(), limit)
	} else {
		items, err = h.repo.Latest(c.Request.Context(), limit)
	}
	if err != nil {
		log.Printf("story feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ByAuthor returns the caller-selected author's stories (?email=), or all.
func (h *Handler) ByAuthor(c *gin.Context) {
	items, err := h.repo.ByAuthor(c.Request.Context(), c.Query("email"))
	if err != nil {
		log.Printf("stories by author: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stories"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type updateReq struct {
	Title         string   `json:"title"`
	Text          string   `json:"text"`
	RemovedImages []string `json:"removedImages"`
	NewImageURLs  []string `json:"newImageURLs"`
	UserName      string   `json:"userName"`
	UserPhoto     string   `json:"userPhoto"`
}

// Update edits a story; the image gallery is merged, not replaced.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story ID."})
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	ctx := c.Request.Context()

	stored, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		log.Printf("get story %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	updated, err := h.repo.Update(ctx, &Story{
		ID:        id,
		Title:     req.Title,
		Text:      req.Text,
		Images:    mergeImages(stored.Images, req.RemovedImages, req.NewImageURLs),
		UserName:  req.UserName,
		UserPhoto: req.UserPhoto,
	})
	if err != nil {
		log.Printf("update story %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "story": updated})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid story ID."})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete story %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Story not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": 1})
}
