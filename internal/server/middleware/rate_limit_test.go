package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TeleAI-mcp/lite-api-service/internal/server/httputil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// newRateLimitApp RateLimit 미들웨어가 적용된 테스트용 Echo 인스턴스를 생성합니다.
func newRateLimitApp(t *testing.T, requestsPerSecond, burst int) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Use(RateLimit(requestsPerSecond, burst))
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return e
}

// requestFromIP 지정한 클라이언트 IP로 요청을 보내고 응답을 반환합니다.
func requestFromIP(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

// =============================================================================
// Input Validation Tests
// =============================================================================

// TestRateLimit_InputValidation은 유효하지 않은 설정값에 대해 패닉이
// 발생하는지 검증합니다.
func TestRateLimit_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		requestsPerSecond int
		burst             int
		expectPanic       bool
	}{
		{"실패: requestsPerSecond가 0", 0, 10, true},
		{"실패: requestsPerSecond가 음수", -1, 10, true},
		{"실패: burst가 0", 10, 0, true},
		{"실패: burst가 음수", 10, -1, true},
		{"성공: 유효한 설정값", 10, 20, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.expectPanic {
				assert.Panics(t, func() {
					RateLimit(tt.requestsPerSecond, tt.burst)
				})
			} else {
				assert.NotPanics(t, func() {
					RateLimit(tt.requestsPerSecond, tt.burst)
				})
			}
		})
	}
}

// =============================================================================
// IP Rate Limiter Tests
// =============================================================================

// TestIPRateLimiter_GetLimiter는 IP별 Limiter 인스턴스 관리를 검증합니다.
//
// 검증 항목:
//   - 동일 IP에 대해 항상 같은 인스턴스 반환
//   - 서로 다른 IP에 대해 독립적인 인스턴스 반환
func TestIPRateLimiter_GetLimiter(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(10, 20)

	first := limiter.getLimiter("192.168.0.1")
	second := limiter.getLimiter("192.168.0.1")
	other := limiter.getLimiter("192.168.0.2")

	assert.Same(t, first, second, "동일 IP는 같은 Limiter 인스턴스를 공유해야 합니다")
	assert.NotSame(t, first, other, "다른 IP는 독립적인 Limiter 인스턴스를 가져야 합니다")
}

// TestIPRateLimiter_Eviction은 최대 보관 개수 초과 시 기존 항목이
// 축출되어 메모리가 무한정 증가하지 않는지 검증합니다.
func TestIPRateLimiter_Eviction(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(10, 20)

	for i := 0; i < maxIPRateLimiters+100; i++ {
		limiter.getLimiter(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}

	limiter.mu.RLock()
	count := len(limiter.limiters)
	limiter.mu.RUnlock()

	assert.LessOrEqual(t, count, maxIPRateLimiters, "Limiter 보관 개수는 최대치를 초과하지 않아야 합니다")
}

// =============================================================================
// Rate Limiting Behavior Tests
// =============================================================================

// TestRateLimit_BurstExceeded는 버스트 허용량 초과 시 429 응답과
// Retry-After 헤더가 반환되는지 검증합니다.
func TestRateLimit_BurstExceeded(t *testing.T) {
	t.Parallel()

	// 초당 1회, 버스트 2회 허용: 세 번째 연속 요청부터 차단됩니다.
	e := newRateLimitApp(t, 1, 2)

	const clientIP = "203.0.113.10"

	for i := 0; i < 2; i++ {
		rec := requestFromIP(e, clientIP)
		require.Equal(t, http.StatusOK, rec.Code, "버스트 허용량 이내의 요청은 통과해야 합니다")
	}

	rec := requestFromIP(e, clientIP)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, retryAfterSeconds, rec.Header().Get(retryAfter), "차단 응답에는 Retry-After 헤더가 포함되어야 합니다")
	assert.Contains(t, rec.Body.String(), "요청이 너무 많습니다")
}

// TestRateLimit_PerIPIsolation은 IP별로 제한이 독립적으로 적용되는지 검증합니다.
func TestRateLimit_PerIPIsolation(t *testing.T) {
	t.Parallel()

	e := newRateLimitApp(t, 1, 1)

	// 첫 번째 IP의 버스트를 소진시킵니다.
	require.Equal(t, http.StatusOK, requestFromIP(e, "203.0.113.1").Code)
	require.Equal(t, http.StatusTooManyRequests, requestFromIP(e, "203.0.113.1").Code)

	// 다른 IP는 영향받지 않아야 합니다.
	assert.Equal(t, http.StatusOK, requestFromIP(e, "203.0.113.2").Code)
}
