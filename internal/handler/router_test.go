package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/modal-gateway/backend/internal/client"
	"github.com/modal-gateway/backend/internal/config"
	"github.com/modal-gateway/backend/internal/extract"
	"github.com/modal-gateway/backend/internal/model"
	"github.com/modal-gateway/backend/internal/service"
	"github.com/modal-gateway/backend/internal/store"
)

type testEnv struct {
	router *gin.Engine
	store  *store.Memory
}

// newTestEnv wires the full route table against an in-memory store and
// the given inference endpoint.
func newTestEnv(t *testing.T, inferenceURL string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemory()
	authService, err := service.NewAuthService(mem, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: "24h"})
	if err != nil {
		t.Fatalf("NewAuthService error: %v", err)
	}

	historyService := service.NewHistoryService(mem)
	inference := client.NewInferenceClient(config.InferenceConfig{VisionURL: inferenceURL, TextURL: inferenceURL})
	analyzeService := service.NewAnalyzeService(inference, historyService)
	summarizeService := service.NewSummarizeService(inference, extract.NewURLScraper(), historyService)

	router := gin.New()
	router.GET("/", Root)
	router.GET("/ping", Ping)

	auth := router.Group("/auth")
	auth.POST("/signup", NewAuthHandler(authService).Signup)
	auth.POST("/login", NewAuthHandler(authService).Login)

	protected := router.Group("", AuthMiddleware(authService))
	protected.POST("/image/analyze", NewImageHandler(analyzeService).Analyze)
	protected.POST("/doc/summarize", NewDocumentHandler(summarizeService).Summarize)
	protected.GET("/history", NewHistoryHandler(historyService).List)

	return &testEnv{router: router, store: mem}
}

// stubModelServer answers every inference request with one generation.
func stubModelServer(t *testing.T, generated string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"generated_text":"` + generated + `"}]`))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

// signup registers a user and returns their token.
func (e *testEnv) signup(t *testing.T, username, password string) string {
	t.Helper()
	w := e.postJSON("/auth/signup", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if w.Code != http.StatusOK {
		t.Fatalf("signup failed: status %d body %s", w.Code, w.Body.String())
	}

	var resp model.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode signup response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("signup returned empty token")
	}
	return resp.Token
}

// multipartRequest builds a multipart POST with optional form fields and
// an optional file part carrying an explicit Content-Type.
func multipartRequest(t *testing.T, target string, fields map[string]string, fileField, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
