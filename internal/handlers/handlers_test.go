package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macdee-orders/internal/config"
	"macdee-orders/internal/intake"
	"macdee-orders/internal/ledger"
	"macdee-orders/internal/services/mock"
	"macdee-orders/internal/storage"
	"macdee-orders/internal/validation"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

const testTemplates = `
{{define "form.html"}}order form{{end}}
{{define "upload.html"}}upload form{{end}}
{{define "thank_you.html"}}Order received, {{.Name}}! Transfer {{.Amount}} to {{.AccountNumber}}{{end}}
`

type testServer struct {
	router     *gin.Engine
	notifier   *mock.MockNotifier
	ledgerPath string
	uploadsDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "orders.csv")
	uploadsDir := filepath.Join(dir, "receipts")

	cfg := &config.ParsedConfig{}
	cfg.Server.Port = 8000
	cfg.Order.UnitPriceKobo = 200000
	cfg.Order.MinimumTotalKobo = 200000
	cfg.Ledger.Path = ledgerPath
	cfg.Uploads.Dir = uploadsDir
	cfg.Uploads.MaxSizeBytes = 5242880
	cfg.Bank.AccountName = "Khalid Umar"
	cfg.Bank.AccountNumber = "7084937381"
	cfg.Bank.BankName = "Opay Bank"

	store, err := storage.NewReceiptStore(uploadsDir, false)
	require.NoError(t, err)

	notifier := mock.NewMockNotifier(false)
	validator := validation.NewValidator(
		cfg.Order.UnitPriceKobo,
		cfg.Order.MinimumTotalKobo,
		cfg.Uploads.MaxSizeBytes,
	)
	service := intake.NewService(
		validator,
		ledger.NewFileLedger(ledgerPath, false),
		store,
		notifier,
		cfg.Order.UnitPriceKobo,
		false,
	)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))
	NewIntakeHandler(service, validator, cfg).Register(router)

	return &testServer{
		router:     router,
		notifier:   notifier,
		ledgerPath: ledgerPath,
		uploadsDir: uploadsDir,
	}
}

func (ts *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) postUpload(t *testing.T, email, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("email", email))

	if filename != "" {
		fw, err := mw.CreateFormFile("receipt", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-receipt", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func TestCreateCheckoutSessionRedirects(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postForm("/create-checkout-session", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"quantity": {"3"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/thank-you?name=Ada&amount=6000.00", w.Header().Get("Location"))
	assert.Len(t, ts.notifier.Alerts, 1)
}

func TestCreateCheckoutSessionValidationFailure(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postForm("/create-checkout-session", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"quantity": {"0"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantity")
	assert.Empty(t, ts.notifier.Alerts)
	assert.NoFileExists(t, ts.ledgerPath)
}

func TestCreateCheckoutSessionSendFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.notifier.AlertErr = errors.New("relay down")

	w := ts.postForm("/create-checkout-session", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"quantity": {"3"},
	})

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
	assert.NoFileExists(t, ts.ledgerPath)
}

func TestThankYouPage(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/thank-you?name=Ada&amount=6000.00", nil)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada")
	assert.Contains(t, w.Body.String(), "6000.00")
	assert.Contains(t, w.Body.String(), "7084937381")
}

func TestUploadReceiptSuccess(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postUpload(t, "ada@example.com", "receipt.png", pngBytes)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Receipt received")
	require.Len(t, ts.notifier.Forwards, 1)
	assert.Equal(t, "image/png", ts.notifier.Forwards[0].MediaType)

	entries, err := os.ReadDir(ts.uploadsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUploadReceiptRejectsUnsupportedType(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postUpload(t, "ada@example.com", "receipt.exe", []byte("MZ"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, ts.notifier.Forwards)

	entries, err := os.ReadDir(ts.uploadsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadReceiptRequiresEmail(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postUpload(t, "", "receipt.png", pngBytes)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email")
}

func TestUploadReceiptRequiresFile(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postUpload(t, "ada@example.com", "", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No receipt file")
}

func TestUploadReceiptSendFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.notifier.ForwardErr = errors.New("relay down")

	w := ts.postUpload(t, "ada@example.com", "receipt.png", pngBytes)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to send receipt")
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
