package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	billingapp "github.com/bizify/backend/internal/application/billing"
	identityapp "github.com/bizify/backend/internal/application/identity"
	partnerapp "github.com/bizify/backend/internal/application/partner"
	printingapp "github.com/bizify/backend/internal/application/printing"
	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/infrastructure/auth"
	"github.com/bizify/backend/internal/infrastructure/cache"
	"github.com/bizify/backend/internal/infrastructure/config"
	"github.com/bizify/backend/internal/infrastructure/event"
	"github.com/bizify/backend/internal/infrastructure/persistence"
	"github.com/bizify/backend/internal/infrastructure/printing"
	transfer "github.com/bizify/backend/internal/infrastructure/transfer"
	"github.com/bizify/backend/internal/interfaces/http/handler"
	"github.com/bizify/backend/internal/interfaces/http/middleware"
	"github.com/bizify/backend/internal/interfaces/http/router"
	"github.com/bizify/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// TestApp is the API wired the way cmd/server wires it, minus telemetry
type TestApp struct {
	Engine *gin.Engine
	// Events records every invoice event published on the bus
	Events *testutil.EventRecorder
}

// envelope mirrors dto.Response with a raw payload
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewTestApp(t *testing.T, db *gorm.DB) *TestApp {
	t.Helper()
	log := zaptest.NewLogger(t)

	userRepo := persistence.NewGormUserRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	settingsRepo := persistence.NewGormSettingsRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	bus := event.NewInMemoryEventBus(log)
	audit := event.NewInvoiceAuditLogger(log)
	bus.Subscribe(audit, audit.EventTypes()...)
	events := testutil.NewEventRecorder(audit.EventTypes()...)
	bus.Subscribe(events)
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "integration-test-secret-key-0123456789",
		AccessTokenExpiration: time.Hour,
		Issuer:                "bizify-test",
	})
	authService := identityapp.NewAuthService(userRepo, settingsRepo, jwtService, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, customerRepo, txScope, log)
	invoiceService.SetEventPublisher(bus)
	statsService := billingapp.NewStatsService(invoiceRepo, customerRepo, log)

	catalog, err := printing.LoadCatalog()
	require.NoError(t, err)
	pdfService := printingapp.NewInvoicePDFService(invoiceRepo, customerRepo, settingsRepo,
		printing.NewGofpdfRenderer(catalog, log), log)

	exportService := transferapp.NewExportService(userRepo, customerRepo, invoiceRepo, settingsRepo, log)
	exportService.RegisterEncoder(transferapp.FormatJSON, transfer.NewJSONEncoder())
	exportService.RegisterEncoder(transferapp.FormatCSV, transfer.NewCSVEncoder())
	exportService.RegisterEncoder(transferapp.FormatExcel, transfer.NewExcelEncoder())
	exportService.RegisterEncoder(transferapp.FormatBackup, transfer.NewBackupEncoder())
	importService := transferapp.NewImportService(customerRepo, invoiceRepo, settingsRepo, txScope,
		transfer.NewReader(8<<20, log), log)

	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/health", handler.NewHealthHandler(&persistence.Database{DB: db}).Check)

	r := router.NewRouter(engine, router.WithAuth(middleware.JWTAuthWithConfig(middleware.AuthConfig{
		Authenticator: authService,
		Logger:        log,
	})))
	router.Mount(r, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customers: handler.NewCustomerHandler(partnerapp.NewCustomerService(customerRepo, invoiceRepo, log)),
		Invoices:  handler.NewInvoiceHandler(invoiceService, statsService, pdfService),
		Dashboard: handler.NewDashboardHandler(statsService),
		Settings:  handler.NewSettingsHandler(billingapp.NewSettingsService(settingsRepo, txScope, log)),
		Export:    handler.NewExportHandler(exportService),
		Import:    handler.NewImportHandler(importService),
	}, router.RouteOptions{
		Idempotency: middleware.Idempotency(middleware.IdempotencyConfig{Store: store, TTL: time.Hour}),
	})
	r.Setup()

	return &TestApp{Engine: engine, Events: events}
}

// Do sends a JSON request. An empty token sends no Authorization header.
func (a *TestApp) Do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.serve(req, token)
}

// Upload posts data as the multipart "file" field
func (a *TestApp) Upload(t *testing.T, path, token, filename string, data []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(handler.ImportFileField, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return a.serve(req, token)
}

func (a *TestApp) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, req)
	return w
}

// SignUp registers an account and returns its access token
func (a *TestApp) SignUp(t *testing.T, email string) string {
	t.Helper()
	const password = "correct-horse-battery"

	w := a.Do(t, http.MethodPost, "/api/v1/auth/register", "", identityapp.RegisterRequest{
		Email: email, Password: password, Name: "Test Owner",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.Do(t, http.MethodPost, "/api/v1/auth/token", "", identityapp.TokenRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return data[identityapp.TokenResponse](t, w).AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func data[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
