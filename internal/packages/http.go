package packages

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	repo  *Repo
	cache *Cache
}

func NewHandler(repo *Repo, cache *Cache) *Handler {
	return &Handler{repo: repo, cache: cache}
}

// Register wires the package routes. Writes require the staff guard
// (stored role admin or guide); reads are public.
func (h *Handler) Register(r gin.IRoutes, authn, staff gin.HandlerFunc) {
	r.POST("/packages", authn, staff, h.Create)
	r.PUT("/packages/:id", authn, staff, h.Update)
	r.DELETE("/packages/:id", authn, staff, h.Delete)
	r.GET("/packages", h.List)
	r.GET("/packages/random", h.Random)
	r.GET("/packages/:id", h.GetByID)
}

type packageReq struct {
	Title       string   `json:"title"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	TourType    string   `json:"tourType"`
	Duration    string   `json:"duration"`
	Price       float64  `json:"price"`
	TourPlan    []string `json:"tourPlan"`
}

func (r *packageReq) validate() bool {
	return strings.TrimSpace(r.Title) != "" &&
		strings.TrimSpace(r.Description) != "" &&
		strings.TrimSpace(r.TourType) != "" &&
		strings.TrimSpace(r.Duration) != "" &&
		r.Price > 0 &&
		len(r.Images) > 0 &&
		len(r.TourPlan) > 0
}

func (r *packageReq) toModel() *TourPackage {
	return &TourPackage{
		Title:       r.Title,
		Images:      r.Images,
		Description: r.Description,
		TourType:    r.TourType,
		Duration:    r.Duration,
		Price:       r.Price,
		TourPlan:    r.TourPlan,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req packageReq
	if err := c.ShouldBindJSON(&req); err != nil || !req.validate() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid fields."})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), req.toModel())
	if err != nil {
		log.Printf("create package: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Package created successfully.", "insertedId": p.ID})
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if pkgs, err := h.cache.GetList(ctx); err == nil {
		c.JSON(http.StatusOK, pkgs)
		return
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Printf("package list cache: %v", err)
	}

	pkgs, err := h.repo.List(ctx)
	if err != nil {
		log.Printf("list packages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch packages"})
		return
	}

	if err := h.cache.SetList(ctx, pkgs); err != nil {
		log.Printf("package list cache: %v", err)
	}
	c.JSON(http.StatusOK, pkgs)
}

func (h *Handler) Random(c *gin.Context) {
	ctx := c.Request.Context()

	if pkgs, err := h.cache.GetFeatured(ctx); err == nil && len(pkgs) > 0 {
		c.JSON(http.StatusOK, pkgs)
		return
	}

	pkgs, err := h.repo.Random(ctx, 3)
	if err != nil {
		log.Printf("random packages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch random packages"})
		return
	}

	if err := h.cache.SetFeatured(ctx, pkgs); err != nil {
		log.Printf("featured cache: %v", err)
	}
	c.JSON(http.StatusOK, pkgs)
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package ID."})
		return
	}

	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found."})
			return
		}
		log.Printf("get package %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package ID."})
		return
	}

	var req packageReq
	if err := c.ShouldBindJSON(&req); err != nil || !req.validate() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid fields."})
		return
	}

	if _, err := h.repo.Update(c.Request.Context(), id, req.toModel()); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found."})
			return
		}
		log.Printf("update package %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Package updated"})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package ID."})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete package %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found."})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Package deleted"})
}

func (h *Handler) invalidate(c *gin.Context) {
	if err := h.cache.Invalidate(c.Request.Context()); err != nil {
		log.Printf("invalidate package cache: %v", err)
	}
}
