package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wordgrid/crossgen/internal/authsvc"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuthService(t *testing.T) *authsvc.Service {
	t.Helper()
	hash, err := authsvc.HashAPIKey("operator-key")
	if err != nil {
		t.Fatalf("HashAPIKey() error = %v", err)
	}
	return authsvc.NewService("jwt-secret", hash)
}

func TestLogin_ValidKey(t *testing.T) {
	auth := testAuthService(t)
	handlers := NewHandlers(nil, auth, nil, nil, nil)

	router := gin.New()
	router.POST("/login", handlers.Login)

	body, _ := json.Marshal(LoginRequest{APIKey: "operator-key"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a non-empty token")
	}
}

func TestLogin_InvalidKey(t *testing.T) {
	auth := testAuthService(t)
	handlers := NewHandlers(nil, auth, nil, nil, nil)

	router := gin.New()
	router.POST("/login", handlers.Login)

	body, _ := json.Marshal(LoginRequest{APIKey: "wrong-key"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestLogin_MissingAPIKey(t *testing.T) {
	auth := testAuthService(t)
	handlers := NewHandlers(nil, auth, nil, nil, nil)

	router := gin.New()
	router.POST("/login", handlers.Login)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
