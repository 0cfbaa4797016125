package payments

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo    *Repo
	intents IntentCreator
}

func NewHandler(repo *Repo, intents IntentCreator) *Handler {
	return &Handler{repo: repo, intents: intents}
}

// Register wires payment routes; stats are admin-gated.
func (h *Handler) Register(r gin.IRoutes, authn, admin gin.HandlerFunc) {
	r.POST("/create-payment-intent", authn, h.CreateIntent)
	r.POST("/payment-history", authn, h.RecordPayment)
	r.GET("/payment-history", authn, h.History)
	r.GET("/admin/stats/payments", authn, admin, h.Stats)
}

type intentReq struct {
	Amount int64 `json:"amount"` // cents
}

// CreateIntent asks Stripe for a payment intent. Provider failures are
// logged; the caller only sees a generic error.
func (h *Handler) CreateIntent(c *gin.Context) {
	var req intentReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer of cents"})
		return
	}

	clientSecret, err := h.intents.CreateIntent(c.Request.Context(), req.Amount)
	if err != nil {
		log.Printf("payment intent: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

type recordReq struct {
	BookingID     string `json:"bookingId"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transactionId"`
	Email         string `json:"email"`
	PackageTitle  string `json:"packageTitle"`
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req recordReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.BookingID) == "" ||
		req.Amount <= 0 ||
		strings.TrimSpace(req.TransactionID) == "" ||
		strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required payment data"})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), &Payment{
		BookingID:     req.BookingID,
		Email:         req.Email,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		PackageTitle:  req.PackageTitle,
	})
	if err != nil {
		log.Printf("record payment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save payment history"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Payment history saved successfully", "id": p.ID})
}

func (h *Handler) History(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email required"})
		return
	}

	history, err := h.repo.HistoryByEmail(c.Request.Context(), email)
	if err != nil {
		log.Printf("payment history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *Handler) Stats(c *gin.Context) {
	total, err := h.repo.Total(c.Request.Context())
	if err != nil {
		log.Printf("payment stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalPayments": total})
}
