package router

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/test/httpstub"
	"github.com/polkiloo/storefront/internal/usecase"
)

func newTestEngine(facade handlers.StorefrontFacade) *gin.Engine {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{MaxAttachmentBytes: 1024}
	engine := Setup(facade, testhelpers.TokenVerifierStub{Token: "admin-secret"}, cfg, logger)
	gin.SetMode(gin.TestMode)
	return engine
}

func TestSetupRoutes(t *testing.T) {
	facade := &httpstub.FacadeStub{
		CreateFn: func(context.Context, usecase.OrderRequest) (*model.Order, error) {
			return &model.Order{ID: "id", Reference: "RB202405170001"}, nil
		},
	}
	engine := newTestEngine(facade)

	cases := []struct {
		method string
		path   string
		body   string
		admin  bool
		status int
	}{
		{http.MethodGet, "/healthz", "", false, http.StatusOK},
		{http.MethodPost, "/api/orders", `{"items":[]}`, false, http.StatusCreated},
		{http.MethodPost, "/api/track-order", `{"orderReference":"RB202405170001","email":"a@b.c"}`, false, http.StatusOK},
		{http.MethodGet, "/api/admin/orders", "", false, http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/orders", "", true, http.StatusOK},
		{http.MethodGet, "/api/admin/orders/id", "", true, http.StatusOK},
		{http.MethodPut, "/api/admin/orders/id", `{"notes":"n"}`, true, http.StatusOK},
		{http.MethodPut, "/api/admin/orders/id", `{"notes":"n"}`, false, http.StatusUnauthorized},
		{http.MethodPost, "/api/admin/orders/id/reply", `{"subject":"s","message":"m"}`, true, http.StatusOK},
		{http.MethodGet, "/api/admin/stats", "", true, http.StatusOK},
		{http.MethodGet, "/api/unknown", "", false, http.StatusNotFound},
	}

	for _, tc := range cases {
		var body io.Reader
		if tc.body != "" {
			body = strings.NewReader(tc.body)
		}
		req := httptest.NewRequest(tc.method, tc.path, body)
		req.Header.Set("Content-Type", "application/json")
		if tc.admin {
			req.Header.Set("Authorization", "Bearer admin-secret")
		}
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != tc.status {
			t.Fatalf("%s %s (admin=%v): expected %d, got %d", tc.method, tc.path, tc.admin, tc.status, resp.Code)
		}
	}

	calls := facade.Calls()
	if len(calls) == 0 || calls[0] != "Health" {
		t.Fatalf("unexpected facade calls %v", calls)
	}
	for _, c := range calls {
		if c == "UpdateOrder" {
			return
		}
	}
	t.Fatal("expected authorised update to reach the facade")
}

func TestSetupAcceptsGzipBodies(t *testing.T) {
	var gotEmail string
	facade := &httpstub.FacadeStub{
		TrackFn: func(_ context.Context, _, email string) (*model.PublicOrderView, error) {
			gotEmail = email
			return &model.PublicOrderView{Reference: "RB202405170001"}, nil
		},
	}
	engine := newTestEngine(facade)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"orderReference":"RB202405170001","email":"jane@example.com"}`))
	_ = gz.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/track-order", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotEmail != "jane@example.com" {
		t.Fatalf("unexpected email %q", gotEmail)
	}
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("expected gzip encoded response")
	}
}

func TestMaxBodyBytes(t *testing.T) {
	if got := maxBodyBytes(&config.Config{MaxAttachmentBytes: 1024}); got != 4096+1<<20 {
		t.Fatalf("unexpected limit %d", got)
	}
}

var _ handlers.StorefrontFacade = (*httpstub.FacadeStub)(nil)
