package middleware

import (
	"net"
	"strings"

	applog "github.com/TeleAI-mcp/lite-api-service/pkg/log"
	"github.com/TeleAI-mcp/lite-api-service/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// componentTrustedHost 신뢰 호스트 미들웨어의 로깅용 컴포넌트 이름
const componentTrustedHost = "server.middleware.trusted_host"

// TrustedHost 요청의 Host 헤더가 허용 목록에 포함되는지 검사하는 미들웨어를 반환합니다.
//
// DNS Rebinding 공격이나 Host 헤더 변조를 방어하기 위해 사용합니다.
// 패턴은 정확한 호스트명("example.com"), 서브도메인 와일드카드("*.example.com"),
// 전체 허용("*")을 지원하며, 포트가 포함된 Host 헤더는 포트를 제거한 후 비교합니다.
//
// 허용되지 않은 호스트의 요청은 HTTP 400 (Bad Request)으로 거부됩니다.
//
// Panics:
//   - allowedHosts에 유효한 패턴이 하나도 없는 경우
func TrustedHost(allowedHosts []string) echo.MiddlewareFunc {
	matcher := strutil.NewHostMatcher(allowedHosts)
	if matcher.Empty() {
		panic("TrustedHost: 허용 호스트 패턴이 최소 하나 이상 필요합니다")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			host := c.Request().Host

			// Host 헤더에 포트가 포함된 경우 제거 (예: "example.com:8080")
			if strings.Contains(host, ":") {
				if h, _, err := net.SplitHostPort(host); err == nil {
					host = h
				}
			}

			if !matcher.Match(host) {
				applog.WithComponentAndFields(componentTrustedHost, applog.Fields{
					"host":      c.Request().Host,
					"remote_ip": c.RealIP(),
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn("요청 차단: 허용되지 않은 호스트입니다")

				return ErrUntrustedHost
			}

			return next(c)
		}
	}
}
