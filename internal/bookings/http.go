package bookings

import (
	"errors"
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

// Register wires booking and assigned-tour routes; all require authentication.
func (h *Handler) Register(r gin.IRoutes, authn gin.HandlerFunc) {
	r.POST("/bookings", authn, h.Create)
	r.GET("/bookings", authn, h.ListByTourist)
	r.GET("/bookings/:id", authn, h.GetByID)
	r.PATCH("/bookings/:id", authn, h.Update)
	r.DELETE("/bookings/:id", authn, h.Delete)

	r.GET("/assigned-tours", authn, h.AssignedTours)
	r.PATCH("/assigned-tours/:id", authn, h.UpdateAssignedStatus)
}

type createReq struct {
	PackageID    string  `json:"packageId"`
	PackageTitle string  `json:"packageTitle"`
	TouristEmail string  `json:"touristEmail"`
	TouristName  string  `json:"touristName"`
	TourGuide    string  `json:"tourGuide"`
	TourDate     string  `json:"tourDate"`
	Price        float64 `json:"price"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if strings.TrimSpace(req.TouristEmail) == "" ||
		strings.TrimSpace(req.TourGuide) == "" ||
		strings.TrimSpace(req.TourDate) == "" ||
		req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid fields."})
		return
	}
	if _, err := uuid.Parse(req.PackageID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package ID."})
		return
	}

	b, err := h.repo.Create(c.Request.Context(), &Booking{
		PackageID:    req.PackageID,
		PackageTitle: req.PackageTitle,
		TouristEmail: req.TouristEmail,
		TouristName:  req.TouristName,
		TourGuide:    req.TourGuide,
		TourDate:     req.TourDate,
		Price:        req.Price,
	})
	if err != nil {
		log.Printf("create booking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book tour"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": b.ID, "booking": b})
}

// ListByTourist returns bookings for ?email=.
func (h *Handler) ListByTourist(c *gin.Context) {
	email := c.Query("email")

	items, err := h.repo.ByTourist(c.Request.Context(), email)
	if err != nil {
		log.Printf("list bookings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID."})
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found."})
			return
		}
		log.Printf("get booking %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, b)
}

type updateReq struct {
	Status    string `json:"status"`
	TourDate  string `json:"tourDate"`
	TourGuide string `json:"tourGuide"`
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID."})
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	if _, err := h.repo.UpdateFields(c.Request.Context(), id, req.Status, req.TourDate, req.TourGuide); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		log.Printf("update booking %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully"})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID."})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete booking %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}

// AssignedTours lists bookings assigned to ?guideEmail=.
func (h *Handler) AssignedTours(c *gin.Context) {
	guideEmail := c.Query("guideEmail")
	if guideEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guideEmail is required"})
		return
	}

	items, err := h.repo.ByGuide(c.Request.Context(), guideEmail)
	if err != nil {
		log.Printf("assigned tours: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assigned tours"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateAssignedStatus moves an assigned tour through its status flow.
func (h *Handler) UpdateAssignedStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID."})
		return
	}

	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || !ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	if _, err := h.repo.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assigned tour not found"})
			return
		}
		log.Printf("update assigned tour %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated successfully"})
}
