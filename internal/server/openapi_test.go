package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// fetchJSON 지정 경로로 GET 요청을 보내고 응답 본문을 JSON으로 디코딩합니다.
func fetchJSON(t *testing.T, b *Builder, path string) (int, map[string]any) {
	t.Helper()

	app, err := b.Application()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

// =============================================================================
// OpenAPI Document Tests
// =============================================================================

// TestOpenAPIDocument_Served는 기본 경로에서 스키마 문서가 제공되고
// 메타데이터가 문서에 그대로 반영되는지 검증합니다.
func TestOpenAPIDocument_Served(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Title = "Inventory API"
	cfg.Description = "재고 관리 API"
	cfg.Version = "3.0.0"
	cfg.TermsOfService = "https://example.com/terms"
	cfg.Contact = map[string]any{"name": "infra-team"}
	cfg.License = map[string]any{"name": "Apache-2.0"}
	cfg.Tags = []map[string]any{
		{"name": "items"},
		{"name": "stocks"},
	}

	b := New()
	require.NoError(t, b.Construct(cfg))

	code, doc := fetchJSON(t, b, "/openapi.json")
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, "2.0", doc["swagger"])

	info, ok := doc["info"].(map[string]any)
	require.True(t, ok, "info 섹션이 있어야 합니다")
	assert.Equal(t, "Inventory API", info["title"])
	assert.Equal(t, "재고 관리 API", info["description"])
	assert.Equal(t, "3.0.0", info["version"])
	assert.Equal(t, "https://example.com/terms", info["termsOfService"])
	assert.Equal(t, map[string]any{"name": "infra-team"}, info["contact"])
	assert.Equal(t, map[string]any{"name": "Apache-2.0"}, info["license"])

	tags, ok := doc["tags"].([]any)
	require.True(t, ok, "tags 섹션이 있어야 합니다")
	require.Len(t, tags, 2)
	assert.Equal(t, map[string]any{"name": "items"}, tags[0], "태그 순서가 보존되어야 합니다")
	assert.Equal(t, map[string]any{"name": "stocks"}, tags[1])

	assert.Equal(t, map[string]any{}, doc["paths"], "라우트 스키마는 생성하지 않으므로 paths는 비어있어야 합니다")
}

// TestOpenAPIDocument_OptionalFieldsOmitted는 값이 비어있는 선택 필드가
// 문서에서 생략되는지 검증합니다.
func TestOpenAPIDocument_OptionalFieldsOmitted(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Title = "Minimal API"
	cfg.Version = "0.1.0"

	b := New()
	require.NoError(t, b.Construct(cfg))

	code, doc := fetchJSON(t, b, "/openapi.json")
	require.Equal(t, http.StatusOK, code)

	info := doc["info"].(map[string]any)
	assert.NotContains(t, info, "termsOfService")
	assert.NotContains(t, info, "contact")
	assert.NotContains(t, info, "license")
	assert.NotContains(t, doc, "tags")
	assert.NotContains(t, doc, "basePath")
}

// TestOpenAPIDocument_Prefix는 OpenAPIPrefix가 basePath와 스키마 제공
// 경로 구성에 반영되는지 검증합니다.
func TestOpenAPIDocument_Prefix(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Title = "Prefixed API"
	cfg.OpenAPIPrefix = "/api/v1"

	b := New()
	require.NoError(t, b.Construct(cfg))

	code, doc := fetchJSON(t, b, "/openapi.json")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/api/v1", doc["basePath"])
}

// =============================================================================
// Documentation UI Route Tests
// =============================================================================

// TestDocRoutes_Defaults는 기본 경로 구성에서 세 문서 엔드포인트가
// 모두 등록되는지 검증합니다.
func TestDocRoutes_Defaults(t *testing.T) {
	t.Parallel()

	b := New()
	require.NoError(t, b.Construct(DefaultConfig()))

	app, err := b.Application()
	require.NoError(t, err)

	t.Run("Swagger UI 경로 - index.html로 리다이렉트", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))

		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/docs/index.html", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("Redoc 경로 - HTML 셸 제공", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/redoc", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<redoc spec-url="/openapi.json">`)
	})

	t.Run("스키마 경로 - JSON 제공", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
	})
}

// TestDocRoutes_Suppression은 경로를 nil로 설정했을 때 해당 엔드포인트가
// 등록되지 않는지 검증합니다.
func TestDocRoutes_Suppression(t *testing.T) {
	t.Parallel()

	t.Run("OpenAPIPath가 nil이면 문서 엔드포인트 전체 비활성화", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.OpenAPIPath = nil

		b := New()
		require.NoError(t, b.Construct(cfg))
		app, err := b.Application()
		require.NoError(t, err)

		for _, path := range []string{"/openapi.json", "/docs", "/redoc"} {
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code, "%s 경로는 등록되지 않아야 합니다", path)
		}
	})

	t.Run("DocsPath만 nil이면 Swagger UI만 비활성화", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.DocsPath = nil

		b := New()
		require.NoError(t, b.Construct(cfg))
		app, err := b.Application()
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
		assert.Equal(t, http.StatusOK, rec.Code, "스키마 엔드포인트는 영향받지 않아야 합니다")
	})

	t.Run("RedocPath만 nil이면 Redoc만 비활성화", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.RedocPath = nil

		b := New()
		require.NoError(t, b.Construct(cfg))
		app, err := b.Application()
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/redoc", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code, "Swagger UI는 영향받지 않아야 합니다")
	})
}
