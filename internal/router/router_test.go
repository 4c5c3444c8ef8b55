package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jandervidros/internal/config"
	"jandervidros/internal/infra"
	"jandervidros/internal/model"
	"jandervidros/internal/repository"
	"jandervidros/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	ID      uint            `json:"id"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	store  *repository.Store
	token  string
}

func newTestServer(t *testing.T, authEnabled bool) *testServer {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := infra.NewDatabase(infra.DBOptions{Driver: infra.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	store := repository.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		Env:                "test",
		AuthEnabled:        authEnabled,
		JWTSecret:          "router-test-secret",
		JWTExpirationHours: 1,
		CORSOrigins:        "*",
		BusinessName:       "Jander Vidros",
	}
	if authEnabled {
		auth := service.NewAuthService(repository.NewCredentialRepository(store), cfg)
		_, err := auth.EnsureDefaultCredential(context.Background())
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &testServer{t: t, engine: New(ctx, Deps{Config: cfg, Store: store}), store: store}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) json(method, path string, body interface{}, wantStatus int) apiResponse {
	s.t.Helper()
	w := s.do(method, path, body)
	require.Equal(s.t, wantStatus, w.Code, w.Body.String())
	var resp apiResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func countRows(t *testing.T, s *repository.Store, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB(context.Background()).Model(m).Count(&n).Error)
	return n
}

type productJSON struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	MinStock int     `json:"minStock"`
	LowStock bool    `json:"lowStock"`
}

func TestBannerAndHealth(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jander Vidros")

	w = s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"disabled"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProducts_LowStockScenario(t *testing.T) {
	s := newTestServer(t, false)

	created := s.json(http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Tempered Glass 8mm", "category": "Glass", "quantity": 5, "price": 89.90, "minStock": 10,
	}, http.StatusCreated)
	require.NotZero(t, created.ID)
	path := fmt.Sprintf("/api/products/%d", created.ID)

	resp := s.json(http.MethodGet, "/api/products/low-stock", nil, http.StatusOK)
	var low []productJSON
	require.NoError(t, json.Unmarshal(resp.Data, &low))
	require.Len(t, low, 1)
	assert.Equal(t, "Tempered Glass 8mm", low[0].Name)
	assert.True(t, low[0].LowStock)

	stats := s.json(http.MethodGet, "/api/statistics", nil, http.StatusOK)
	assert.JSONEq(t, `{"totalProducts":1,"totalInventoryValue":449.5,"lowStockCount":1}`, string(stats.Data))

	s.json(http.MethodPut, path, map[string]interface{}{
		"name": "Tempered Glass 8mm", "category": "Glass", "quantity": 20, "price": 89.90, "minStock": 10,
	}, http.StatusOK)

	resp = s.json(http.MethodGet, "/api/products/low-stock", nil, http.StatusOK)
	assert.Equal(t, 0, *resp.Count)

	resp = s.json(http.MethodGet, path, nil, http.StatusOK)
	var got productJSON
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, 20, got.Quantity)
	assert.InDelta(t, 89.90, got.Price, 0.0001)

	resp = s.json(http.MethodGet, "/api/products/category/Glass", nil, http.StatusOK)
	assert.Equal(t, 1, *resp.Count)
	resp = s.json(http.MethodGet, "/api/products/search/tempered", nil, http.StatusOK)
	assert.Equal(t, 1, *resp.Count)

	s.json(http.MethodDelete, path, nil, http.StatusOK)
	resp = s.json(http.MethodGet, path, nil, http.StatusNotFound)
	assert.Equal(t, "Product not found", resp.Error)
}

func TestProducts_Errors(t *testing.T) {
	s := newTestServer(t, false)

	t.Run("missing name stores nothing", func(t *testing.T) {
		resp := s.json(http.MethodPost, "/api/products", map[string]interface{}{"quantity": 3}, http.StatusBadRequest)
		assert.Contains(t, string(resp.Details), `"name"`)
		assert.Zero(t, countRows(t, s.store, &model.Product{}))
	})

	t.Run("negative quantity", func(t *testing.T) {
		s.json(http.MethodPost, "/api/products", map[string]interface{}{"name": "x", "quantity": -1}, http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := s.json(http.MethodPost, "/api/products", `{"name":`, http.StatusBadRequest)
		assert.Equal(t, "Invalid JSON body", resp.Error)
	})

	t.Run("bad id", func(t *testing.T) {
		resp := s.json(http.MethodGet, "/api/products/abc", nil, http.StatusBadRequest)
		assert.Equal(t, "Invalid id", resp.Error)
	})

	t.Run("unknown ids", func(t *testing.T) {
		s.json(http.MethodPut, "/api/products/999", map[string]interface{}{"name": "x", "quantity": 1}, http.StatusNotFound)
		s.json(http.MethodDelete, "/api/products/999", nil, http.StatusNotFound)
	})

	t.Run("blank search", func(t *testing.T) {
		s.json(http.MethodGet, "/api/products/search/%20", nil, http.StatusBadRequest)
	})
}

func TestTransactions_SaleLifecycle(t *testing.T) {
	s := newTestServer(t, false)

	created := s.json(http.MethodPost, "/api/transactions", map[string]interface{}{
		"type":         "sale",
		"counterparty": "Jane",
		"date":         "2024-05-10",
		"items": []map[string]interface{}{
			{"description": "Glass Pane", "quantity": 2, "unitValue": 50.00},
			{"description": "Frame", "quantity": 1, "unitValue": 30.00},
		},
	}, http.StatusCreated)
	path := fmt.Sprintf("/api/transactions/%d", created.ID)

	resp := s.json(http.MethodGet, "/api/transactions?type=sale", nil, http.StatusOK)
	require.Equal(t, 1, *resp.Count)
	var list []struct {
		Counterparty string  `json:"counterparty"`
		Total        float64 `json:"total"`
		Items        []struct {
			Description string  `json:"description"`
			LineTotal   float64 `json:"lineTotal"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, "Jane", list[0].Counterparty)
	assert.InDelta(t, 130.00, list[0].Total, 0.0001)
	require.Len(t, list[0].Items, 2)
	assert.Equal(t, "Glass Pane", list[0].Items[0].Description)
	assert.InDelta(t, 100.00, list[0].Items[0].LineTotal, 0.0001)

	resp = s.json(http.MethodGet, "/api/transactions?type=purchase", nil, http.StatusOK)
	assert.Equal(t, 0, *resp.Count)

	w := s.do(http.MethodGet, path+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	s.json(http.MethodDelete, path, nil, http.StatusOK)
	s.json(http.MethodGet, path, nil, http.StatusNotFound)
	s.json(http.MethodGet, path+"/receipt", nil, http.StatusNotFound)
	assert.Zero(t, countRows(t, s.store, &model.TransactionItem{}))
}

func TestTransactions_RejectsInvalidLines(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.json(http.MethodPost, "/api/transactions", map[string]interface{}{
		"type": "sale", "counterparty": "Jane", "date": "2024-05-10",
		"items": []map[string]interface{}{{"description": "Glass Pane", "quantity": 0, "unitValue": 10}},
	}, http.StatusBadRequest)
	assert.Contains(t, string(resp.Details), `"items[0].quantity"`)
	assert.Zero(t, countRows(t, s.store, &model.Transaction{}))

	s.json(http.MethodGet, "/api/transactions?type=gift", nil, http.StatusBadRequest)
}

func TestServicesAndDashboard(t *testing.T) {
	s := newTestServer(t, false)

	created := s.json(http.MethodPost, "/api/services", map[string]interface{}{
		"clientName": "Maria", "description": "Shower box", "value": 750, "date": "2024-05-11",
	}, http.StatusCreated)
	s.json(http.MethodPost, "/api/appointments", map[string]interface{}{
		"title": "Measure bathroom", "date": "2024-05-12", "time": "09:30",
	}, http.StatusCreated)

	dash := s.json(http.MethodGet, "/api/dashboard", nil, http.StatusOK)
	assert.JSONEq(t, `{"totalProducts":0,"pendingServices":1,"totalAppointments":1}`, string(dash.Data))

	toggled := s.json(http.MethodPatch, fmt.Sprintf("/api/services/%d/toggle-status", created.ID), nil, http.StatusOK)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"status":"Completed"}`, created.ID), string(toggled.Data))

	dash = s.json(http.MethodGet, "/api/dashboard", nil, http.StatusOK)
	assert.JSONEq(t, `{"totalProducts":0,"pendingServices":0,"totalAppointments":1}`, string(dash.Data))

	resp := s.json(http.MethodGet, "/api/services?status=Completed", nil, http.StatusOK)
	assert.Equal(t, 1, *resp.Count)

	w := s.do(http.MethodGet, fmt.Sprintf("/api/services/%d/receipt", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	s.json(http.MethodPost, "/api/appointments", map[string]interface{}{
		"title": "Bad clock", "date": "2024-05-12", "time": "9:30",
	}, http.StatusBadRequest)
}

func TestAuth_LoginProtectsAPI(t *testing.T) {
	s := newTestServer(t, true)

	resp := s.json(http.MethodGet, "/api/products", nil, http.StatusUnauthorized)
	assert.NotEmpty(t, resp.Error)

	// public routes stay open
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", nil).Code)

	s.json(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "wrong"}, http.StatusUnauthorized)

	resp = s.json(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "123"}, http.StatusOK)
	var login struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "admin", login.Username)

	s.token = login.Token
	s.json(http.MethodGet, "/api/products", nil, http.StatusOK)

	s.json(http.MethodPut, "/api/auth/credentials", map[string]string{
		"username": "jander", "password": "vidros", "confirmPassword": "vidros",
	}, http.StatusOK)

	s.token = ""
	s.json(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "123"}, http.StatusUnauthorized)
	s.json(http.MethodPost, "/api/auth/login", map[string]string{"username": "jander", "password": "vidros"}, http.StatusOK)
}
