package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performWithMiddleware(mw gin.HandlerFunc, configure func(*http.Request)) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.Use(mw)
	engine.DELETE("/api/orders/:number", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/ORD-1", nil)
	if configure != nil {
		configure(req)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestAdminRequiredWithoutCredential(t *testing.T) {
	gate := &test.GateStub{Allow: true}

	recorder := performWithMiddleware(AdminRequired(gate), nil)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestAdminRequiredRejectsWrongToken(t *testing.T) {
	gate := &test.GateStub{Allow: false}

	recorder := performWithMiddleware(AdminRequired(gate), func(req *http.Request) {
		req.Header.Set("X-Admin-Token", "wrong")
	})
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}
	if gate.Credential != "wrong" {
		t.Fatalf("expected credential forwarded to the gate, got %q", gate.Credential)
	}
}

func TestAdminRequiredAcceptsHeaderToken(t *testing.T) {
	gate := &test.GateStub{Allow: true}

	recorder := performWithMiddleware(AdminRequired(gate), func(req *http.Request) {
		req.Header.Set("X-Admin-Token", "top-secret")
	})
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
}

func TestAdminRequiredAcceptsBearerToken(t *testing.T) {
	gate := &test.GateStub{Allow: true}

	recorder := performWithMiddleware(AdminRequired(gate), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer top-secret")
	})
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
	if gate.Credential != "top-secret" {
		t.Fatalf("expected bearer token forwarded, got %q", gate.Credential)
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(buf.String(), "/ping") {
		t.Fatalf("expected request path in log output, got %q", buf.String())
	}
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte("payload")); err != nil {
		t.Fatalf("compress body: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	engine := gin.New()
	engine.Use(DecompressRequest())
	engine.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if recorder.Body.String() != "payload" {
		t.Fatalf("expected decompressed body, got %q", recorder.Body.String())
	}
}
