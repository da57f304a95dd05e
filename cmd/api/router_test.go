package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "settlease-backend/internal/auth/domain"
	authUsecase "settlease-backend/internal/auth/usecase"
	"settlease-backend/pkg/ai"
	"settlease-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

// staticAuth accepts the token "good"; other AuthUsecase methods are unused here
type staticAuth struct {
	authUsecase.AuthUsecase
}

func (staticAuth) ValidateToken(token string) (*authdomain.User, error) {
	if token != "good" {
		return nil, authUsecase.ErrInvalidToken
	}
	return &authdomain.User{ID: "uid-1"}, nil
}

func newTestEngine(t *testing.T, settings *ai.RuntimeSettings) *gin.Engine {
	cfg := &config.Config{
		GinMode:     gin.TestMode,
		CORSOrigins: []string{"http://localhost:3000"},
	}
	return NewHandler(Dependencies{Auth: staticAuth{}, Settings: settings}, cfg, zaptest.NewLogger(t)).Engine()
}

func serve(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine(t, nil)

	for _, path := range []string{"/api/explore", "/api/places/info", "/generate-content/file"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/explore", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOllamaSettings(t *testing.T) {
	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer ollama.Close()

	settings := ai.NewRuntimeSettings("http://localhost:11434", "llama3")
	r := newTestEngine(t, settings)

	w := serve(r, http.MethodPut, "/api/settings/ollama", "good", `{"ollama_base_url":"`+ollama.URL+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ollama.URL, settings.OllamaBaseURL())
	assert.Equal(t, "llama3", settings.OllamaModel())

	w = serve(r, http.MethodPost, "/api/settings/ollama/test", "good", ``)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"connected":true`)

	w = serve(r, http.MethodGet, "/api/settings/ollama", "good", ``)
	assert.Contains(t, w.Body.String(), ollama.URL)
}

func TestOllamaSettingsRequireToken(t *testing.T) {
	settings := ai.NewRuntimeSettings("http://localhost:11434", "llama3")
	r := newTestEngine(t, settings)

	w := serve(r, http.MethodPut, "/api/settings/ollama", "", `{"ollama_base_url":"http://169.254.169.254"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodPost, "/api/settings/ollama/test", "", `{"ollama_base_url":"http://10.0.0.1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/api/settings/ollama", "bad", ``)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, "http://localhost:11434", settings.OllamaBaseURL())
}

func TestOllamaSettingsRejectInvalidURL(t *testing.T) {
	settings := ai.NewRuntimeSettings("http://localhost:11434", "llama3")
	r := newTestEngine(t, settings)

	w := serve(r, http.MethodPut, "/api/settings/ollama", "good", `{"ollama_base_url":"file:///etc/passwd"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "http://localhost:11434", settings.OllamaBaseURL())

	w = serve(r, http.MethodPost, "/api/settings/ollama/test", "good", `{"ollama_base_url":"gopher://localhost"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
