package middleware

import (
	"fmt"
	"sync"

	applog "github.com/TeleAI-mcp/lite-api-service/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// componentRateLimit 속도 제한 미들웨어의 로깅용 컴포넌트 이름
const componentRateLimit = "server.middleware.rate_limit"

const (
	// maxIPRateLimiters 서버가 메모리에 유지할 수 있는 최대 고유 IP 주소(Rate Limiter 인스턴스)의 수입니다.
	// 이 임계값에 도달하면 Go Map의 무작위 순회 특성을 활용한 간이 축출 전략으로 기존 항목을 제거합니다.
	maxIPRateLimiters = 10000

	// retryAfter RFC 7231, Section 7.1.3에 정의된 HTTP 헤더 필드입니다.
	retryAfter = "Retry-After"

	// retryAfterSeconds Rate Limit 임계값 초과 시 클라이언트에게 제안하는 기본 대기 시간(초)입니다.
	retryAfterSeconds = "1"
)

// ipRateLimiter IP 주소별 Rate Limiter를 관리하는 구조체입니다.
//
// Token Bucket 알고리즘을 사용하여 IP별로 독립적인 요청 제한을 적용합니다.
type ipRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit // 초당 허용 요청 수
	burst    int        // 버스트 허용량
}

func newIPRateLimiter(requestsPerSecond int, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// getLimiter 특정 IP의 Rate Limiter를 반환합니다. 없으면 새로 생성합니다.
//
// Double-Checked Locking 패턴을 사용하여 읽기 성능을 최적화합니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limiters[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double-check: 다른 고루틴이 이미 생성했을 수 있음
	limiter, exists = i.limiters[ip]
	if exists {
		return limiter
	}

	// 메모리 보호: 최대 개수 초과 시 하나 제거
	if len(i.limiters) >= maxIPRateLimiters {
		for oldIP := range i.limiters {
			delete(i.limiters, oldIP)
			break
		}
	}

	limiter = rate.NewLimiter(i.rate, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

// RateLimit IP 기반 Rate Limiting 미들웨어를 반환합니다.
//
// Token Bucket 알고리즘을 사용하여 IP별로 요청 속도를 제한합니다.
// 제한 초과 시 HTTP 429 (Too Many Requests)를 반환하고 Retry-After 헤더를 포함합니다.
//
// 주의사항:
//   - 메모리 기반 저장소 (서버 재시작 시 초기화)
//   - 다중 서버 환경에서는 서버별로 독립적인 제한 적용
//
// Panics:
//   - requestsPerSecond 또는 burst가 0 이하인 경우
func RateLimit(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(fmt.Sprintf("RateLimit: requestsPerSecond는 양수여야 합니다 (현재값: %d)", requestsPerSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf("RateLimit: burst는 양수여야 합니다 (현재값: %d)", burst))
	}

	limiter := newIPRateLimiter(requestsPerSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			ipLimiter := limiter.getLimiter(ip)

			if !ipLimiter.Allow() {
				applog.WithComponentAndFields(componentRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn("요청 차단: 속도 제한(Rate Limit)을 초과하였습니다")

				// 1초 후 재시도 권장
				c.Response().Header().Set(retryAfter, retryAfterSeconds)

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
