package server

import (
	"github.com/labstack/echo/v4"
)

// Option 구성 시점에 하위 Echo 인스턴스에 그대로 적용되는 확장 옵션입니다.
//
// 명명된 메타데이터 필드로 다루지 않는 하위 프레임워크의 설정(타임아웃, 바인더 교체 등)을
// 호출자가 직접 주입할 수 있는 개방형 채널(Open-Ended Channel) 역할을 합니다.
type Option func(*echo.Echo)

// Kind 미들웨어의 종류를 식별하는 이름입니다.
type Kind string

// 기본 제공되는 미들웨어 종류
const (
	KindCORS          Kind = "cors"
	KindGzip          Kind = "gzip"
	KindHTTPSRedirect Kind = "https_redirect"
	KindTrustedHost   Kind = "trusted_host"
)

// Attachment 부착된 미들웨어 하나를 기록합니다.
//
// 부착 순서대로 기록되며, Options는 호출자가 전달한 값이 변경 없이 보존됩니다.
type Attachment struct {
	// Kind 미들웨어 종류
	Kind Kind

	// Options 부착 시 전달된 설정 값 (종류별로 상이)
	Options map[string]any
}

// CORSOptions CORS 미들웨어의 설정입니다.
type CORSOptions struct {
	// AllowOrigins 허용할 Origin 목록
	AllowOrigins []string `json:"allow_origins"`

	// AllowCredentials 자격 증명(쿠키, Authorization 헤더 등) 허용 여부
	AllowCredentials bool `json:"allow_credentials"`

	// AllowMethods 허용할 HTTP 메서드 목록
	AllowMethods []string `json:"allow_methods"`

	// AllowHeaders 허용할 요청 헤더 목록
	AllowHeaders []string `json:"allow_headers"`
}

// DefaultCORSOptions 모든 Origin/메서드/헤더를 허용하고 자격 증명을 허용하는 기본 설정을 반환합니다.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		AllowMethods:     []string{"*"},
		AllowHeaders:     []string{"*"},
	}
}

// defaultGzipMinimumSize 이 크기(바이트) 미만의 응답은 압축하지 않습니다.
const defaultGzipMinimumSize = 500

// GzipOptions GZip 압축 미들웨어의 설정입니다.
type GzipOptions struct {
	// MinimumSize 압축을 적용할 최소 응답 크기 (바이트)
	MinimumSize int `json:"minimum_size"`
}

// DefaultGzipOptions 최소 압축 크기 500바이트의 기본 설정을 반환합니다.
func DefaultGzipOptions() GzipOptions {
	return GzipOptions{
		MinimumSize: defaultGzipMinimumSize,
	}
}

// TrustedHostOptions Trusted Host 미들웨어의 설정입니다.
type TrustedHostOptions struct {
	// AllowedHosts 허용할 호스트 패턴 목록 (예: "example.com", "*.example.com")
	AllowedHosts []string `json:"allowed_hosts"`
}

// optionsMap CORSOptions를 Attachment에 기록할 옵션 맵으로 변환합니다.
func (o CORSOptions) optionsMap() map[string]any {
	return map[string]any{
		"allow_origins":     o.AllowOrigins,
		"allow_credentials": o.AllowCredentials,
		"allow_methods":     o.AllowMethods,
		"allow_headers":     o.AllowHeaders,
	}
}

// optionsMap GzipOptions를 Attachment에 기록할 옵션 맵으로 변환합니다.
func (o GzipOptions) optionsMap() map[string]any {
	return map[string]any{
		"minimum_size": o.MinimumSize,
	}
}

// optionsMap TrustedHostOptions를 Attachment에 기록할 옵션 맵으로 변환합니다.
func (o TrustedHostOptions) optionsMap() map[string]any {
	return map[string]any{
		"allowed_hosts": o.AllowedHosts,
	}
}
