// Package integration wires the full HTTP stack against an in-memory
// database and drives it through the public API.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appcatalog "github.com/orderhub/backend/internal/application/catalog"
	appidentity "github.com/orderhub/backend/internal/application/identity"
	appordering "github.com/orderhub/backend/internal/application/ordering"
	"github.com/orderhub/backend/internal/infrastructure/auth"
	"github.com/orderhub/backend/internal/infrastructure/config"
	"github.com/orderhub/backend/internal/infrastructure/notification"
	"github.com/orderhub/backend/internal/infrastructure/persistence"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
	"github.com/orderhub/backend/internal/interfaces/http/handler"
	"github.com/orderhub/backend/internal/interfaces/http/middleware"
	"github.com/orderhub/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Contact{},
		&models.Shop{}, &models.Category{}, &models.ShopCategory{},
		&models.Product{}, &models.ProductInfo{}, &models.Parameter{}, &models.ProductParameter{},
		&models.Order{}, &models.OrderItem{},
	))
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_orders_user_basket ON orders(user_id) WHERE status = 'basket'",
	).Error)

	return db
}

// newTestServer builds the API exactly as cmd/server does, swapping postgres
// for sqlite, redis for the in-memory stores and SMTP for the log sink.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db := newTestDB(t)
	log := zap.NewNop()

	tokens := auth.NewTokenService(config.JWTConfig{
		Secret:     "integration-secret-32-characters",
		Expiration: time.Hour,
		Issuer:     "orderhub-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	confirmations := auth.NewInMemoryConfirmationStore()
	notifier := notification.NewLogSink(log)

	userRepo := persistence.NewGormUserRepository(db)
	contactRepo := persistence.NewGormContactRepository(db)
	shopRepo := persistence.NewGormShopRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	productInfoRepo := persistence.NewGormProductInfoRepository(db)
	parameterRepo := persistence.NewGormParameterRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	catalogWriter := persistence.NewGormCatalogWriter(db)

	authService := appidentity.NewAuthService(userRepo, tokens, blacklist, confirmations, notifier, log)
	accountService := appidentity.NewAccountService(userRepo, contactRepo)
	contactService := appidentity.NewContactService(contactRepo)
	importService := appcatalog.NewImportService(userRepo, catalogWriter, log)
	queryService := appcatalog.NewQueryService(shopRepo, categoryRepo, productInfoRepo, parameterRepo)
	partnerService := appcatalog.NewPartnerService(userRepo, shopRepo)
	basketService := appordering.NewBasketService(orderRepo, productInfoRepo, productRepo, contactRepo)
	orderService := appordering.NewOrderService(orderRepo, productInfoRepo, productRepo, shopRepo, contactRepo, userRepo, notifier, log)

	authMW := middleware.RequireAuth(tokens, blacklist)
	shopMW := middleware.RequireShop()

	engine := gin.New()
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewAuthHandler(authService, accountService, authMW)).
		Register(handler.NewContactHandler(contactService, authMW)).
		Register(handler.NewCatalogHandler(queryService)).
		Register(handler.NewPartnerHandler(importService, partnerService, orderService, authMW, shopMW)).
		Register(handler.NewBasketHandler(basketService, authMW)).
		Register(handler.NewOrderHandler(orderService, authMW)).
		Setup()

	return engine
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do sends a JSON request and decodes the response envelope. A nil body sends
// no payload; an io.Reader body is sent verbatim.
func do(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) (int, apiEnvelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if _, isRaw := body.(io.Reader); body != nil && !isRaw {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var envelope apiEnvelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), "body: %s", w.Body.String())
	}
	return w.Code, envelope
}

func decodeData(t *testing.T, envelope apiEnvelope, out interface{}) {
	t.Helper()
	require.NotNil(t, envelope.Data)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// registerActiveUser walks the register/confirm/login flow and returns a
// bearer token.
func registerActiveUser(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()

	status, resp := do(t, engine, http.MethodPost, "/user/register", "", map[string]string{
		"email":      email,
		"password":   "correct-horse-battery",
		"first_name": "Ivan",
		"last_name":  "Petrov",
	})
	require.Equal(t, http.StatusCreated, status)

	var registered struct {
		ConfirmationToken string `json:"confirmation_token"`
	}
	decodeData(t, resp, &registered)
	require.NotEmpty(t, registered.ConfirmationToken)

	status, _ = do(t, engine, http.MethodPost, "/user/register/confirm", "", map[string]string{
		"token": registered.ConfirmationToken,
	})
	require.Equal(t, http.StatusOK, status)

	status, resp = do(t, engine, http.MethodPost, "/user/login", "", map[string]string{
		"email":    email,
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, status)

	var login struct {
		Token string `json:"token"`
	}
	decodeData(t, resp, &login)
	require.NotEmpty(t, login.Token)
	return login.Token
}
