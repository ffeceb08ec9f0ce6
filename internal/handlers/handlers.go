package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"macdee-orders/internal/config"
	"macdee-orders/internal/intake"
	"macdee-orders/internal/interfaces"
	"macdee-orders/internal/validation"
)

// IntakeHandler exposes the order and receipt workflows over HTTP. Failure
// bodies are plain text, matching what the order form shows the customer.
type IntakeHandler struct {
	service   *intake.Service
	validator *validation.Validator
	config    *config.ParsedConfig
}

// NewIntakeHandler creates a new handler instance.
func NewIntakeHandler(service *intake.Service, validator *validation.Validator, cfg *config.ParsedConfig) *IntakeHandler {
	return &IntakeHandler{
		service:   service,
		validator: validator,
		config:    cfg,
	}
}

// Register attaches all routes to the router.
func (h *IntakeHandler) Register(router *gin.Engine) {
	// Uploads are capped well below this by the validator; the limit only
	// bounds gin's multipart buffering.
	router.MaxMultipartMemory = h.config.Uploads.MaxSizeBytes + 1<<20

	router.GET("/", h.OrderForm)
	router.POST("/create-checkout-session", h.CreateCheckoutSession)
	router.GET("/thank-you", h.ThankYou)
	router.GET("/upload-receipt", h.UploadForm)
	router.POST("/upload-receipt", h.UploadReceipt)
	router.GET("/health", h.HealthCheck)
}

// GET / - order form
func (h *IntakeHandler) OrderForm(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", gin.H{
		"UnitPrice": fmt.Sprintf("%.2f", float64(h.config.Order.UnitPriceKobo)/100),
	})
}

// POST /create-checkout-session - place an order
func (h *IntakeHandler) CreateCheckoutSession(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	quantity := c.PostForm("quantity")

	order, err := h.service.PlaceOrder(name, email, quantity)
	if err != nil {
		h.writeFailure(c, err, "Something went wrong while sending your order. Please try again later.")
		return
	}

	target := fmt.Sprintf("/thank-you?name=%s&amount=%s",
		url.QueryEscape(order.CustomerName), order.FormattedTotal())
	c.Redirect(http.StatusFound, target)
}

// GET /thank-you - bank transfer instructions
func (h *IntakeHandler) ThankYou(c *gin.Context) {
	name := c.DefaultQuery("name", "Customer")
	amount := c.DefaultQuery("amount", "0.00")

	c.HTML(http.StatusOK, "thank_you.html", gin.H{
		"Name":          name,
		"Amount":        amount,
		"AccountName":   h.config.Bank.AccountName,
		"AccountNumber": h.config.Bank.AccountNumber,
		"BankName":      h.config.Bank.BankName,
	})
}

// GET /upload-receipt - receipt upload form
func (h *IntakeHandler) UploadForm(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", nil)
}

// POST /upload-receipt - submit a payment receipt
func (h *IntakeHandler) UploadReceipt(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if email == "" {
		c.String(http.StatusBadRequest, "Email is required.")
		return
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		c.String(http.StatusBadRequest, "No receipt file was uploaded.")
		return
	}

	// Check name and size before buffering the upload; the intake service
	// validates again before any side effect.
	if verr := h.validator.ValidateReceipt(file.Filename, file.Size); verr != nil {
		c.String(http.StatusBadRequest, verr.Message)
		return
	}

	src, err := file.Open()
	if err != nil {
		c.String(http.StatusBadRequest, "Could not read the uploaded file.")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.String(http.StatusBadRequest, "Could not read the uploaded file.")
		return
	}

	if _, err := h.service.SubmitReceipt(email, file.Filename, data); err != nil {
		h.writeFailure(c, err, "Failed to send receipt. Please try again later.")
		return
	}

	c.String(http.StatusOK, "Receipt received and will be confirmed shortly.")
}

// GET /health - health check
func (h *IntakeHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"service":         "macdee-orders",
		"standalone_mode": h.config.StandaloneMode,
	})
}

// writeFailure maps an intake error onto a plain-text HTTP response.
func (h *IntakeHandler) writeFailure(c *gin.Context, err error, sendMessage string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.String(http.StatusBadRequest, verr.Message)
		return
	}

	var serr *interfaces.SendError
	if errors.As(err, &serr) {
		c.String(http.StatusBadGateway, sendMessage)
		return
	}

	log.Printf("[HANDLER] Internal failure: %v", err)
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
