package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// redocHTMLTemplate Redoc 문서 UI를 렌더링하는 HTML 셸입니다.
// 첫 번째 자리에는 페이지 제목, 두 번째 자리에는 OpenAPI 스키마 URL이 들어갑니다.
const redocHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>%s</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
    <redoc spec-url="%s"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@next/bundles/redoc.standalone.js"></script>
</body>
</html>`

// registerDocRoutes Config의 경로 설정에 따라 문서 엔드포인트를 등록합니다.
//
//   - OpenAPIPath: OpenAPI(Swagger 2.0) 스키마 JSON
//   - DocsPath: Swagger UI (스키마 URL을 참조)
//   - RedocPath: Redoc UI (스키마 URL을 참조)
//
// OpenAPIPath가 nil이면 스키마 문서를 만들 수 없으므로 세 엔드포인트 모두 등록하지 않습니다.
// DocsPath/RedocPath는 개별적으로 nil 설정 시 해당 UI만 비활성화됩니다.
func registerDocRoutes(e *echo.Echo, cfg Config) {
	if cfg.OpenAPIPath == nil {
		return
	}

	openapiPath := *cfg.OpenAPIPath

	// 메타데이터로부터 조립한 스키마 문서를 swag.Spec에 담아 제공합니다.
	spec := &swag.Spec{
		Title:            cfg.Title,
		Description:      cfg.Description,
		Version:          cfg.Version,
		BasePath:         cfg.OpenAPIPrefix,
		InfoInstanceName: "lite-api-service",
		SwaggerTemplate:  buildOpenAPIDocument(cfg),
	}

	e.GET(openapiPath, func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(spec.ReadDoc()))
	})

	// 문서 UI가 스키마를 조회할 URL (OpenAPIPrefix가 설정된 경우 접두사 적용)
	specURL := cfg.OpenAPIPrefix + openapiPath

	if cfg.DocsPath != nil {
		docsPath := *cfg.DocsPath

		e.GET(docsPath, func(c echo.Context) error {
			return c.Redirect(http.StatusMovedPermanently, docsPath+"/index.html")
		})
		e.GET(docsPath+"/*", echoSwagger.EchoWrapHandler(
			// Swagger 문서 JSON 파일 위치 지정
			echoSwagger.URL(specURL),
			// 딥 링크 활성화 (특정 API로 바로 이동 가능한 URL 지원)
			echoSwagger.DeepLinking(true),
			// 문서 로드 시 태그(Tag) 목록만 펼침 상태로 표시 ("list", "full", "none")
			echoSwagger.DocExpansion("list"),
		))
	}

	if cfg.RedocPath != nil {
		title := cfg.Title
		if title == "" {
			title = "API Documentation"
		}
		html := fmt.Sprintf(redocHTMLTemplate, title+" - Redoc", specURL)

		e.GET(*cfg.RedocPath, func(c echo.Context) error {
			return c.HTML(http.StatusOK, html)
		})
	}
}

// buildOpenAPIDocument Config의 메타데이터를 Swagger 2.0 JSON 문서로 조립합니다.
//
// 모든 필드는 변환 없이 그대로 전달되며, 값이 비어있는 선택 필드는 문서에서 생략됩니다.
// 라우트별 스키마 생성은 이 래퍼의 범위가 아니므로 paths는 비어있습니다.
func buildOpenAPIDocument(cfg Config) string {
	info := map[string]any{
		"title":       cfg.Title,
		"description": cfg.Description,
		"version":     cfg.Version,
	}
	if cfg.TermsOfService != "" {
		info["termsOfService"] = cfg.TermsOfService
	}
	if cfg.Contact != nil {
		info["contact"] = cfg.Contact
	}
	if cfg.License != nil {
		info["license"] = cfg.License
	}

	doc := map[string]any{
		"swagger": "2.0",
		"info":    info,
		"paths":   map[string]any{},
	}
	if cfg.OpenAPIPrefix != "" {
		doc["basePath"] = cfg.OpenAPIPrefix
	}
	if len(cfg.Tags) > 0 {
		doc["tags"] = cfg.Tags
	}

	// Config의 값은 모두 JSON 직렬화 가능한 기본 타입이므로 직렬화는 실패하지 않습니다.
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return `{"swagger":"2.0","info":{},"paths":{}}`
	}
	return string(out)
}
