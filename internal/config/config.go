package config

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/TeleAI-mcp/lite-api-service/internal/pkg/errors"
	"github.com/TeleAI-mcp/lite-api-service/internal/server"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "lite-api-service"

	// DefaultFilename 애플리케이션 초기화 시 참조하는 기본 설정 파일명입니다.
	// 실행 인자를 통해 명시적인 경로가 제공되지 않을 경우, 시스템은 이 파일을 탐색하여 구성을 로드합니다.
	DefaultFilename = AppName + ".json"

	// envPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	envPrefix = "LITEAPI_"
)

// 설정 기본값
const (
	DefaultListenPort = 8080

	DefaultGzipMinimumSize = 500

	DefaultRateLimitPerSecond = 20
	DefaultRateLimitBurst     = 40
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug bool      `json:"debug"`
	API   APIConfig `json:"api"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate() error {
	return c.API.validate()
}

// VerifyRecommendations 서비스 운영의 안정성과 보안을 위해 권장되는 설정 준수 여부를 진단합니다.
// 강제적인 에러를 발생시키지는 않으나, 잠재적 위험 요소(예: Well-known Port 사용)에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	return c.API.VerifyRecommendations()
}

// APIConfig API 서버의 메타데이터와 미들웨어 설정을 정의하는 구조체
type APIConfig struct {
	Metadata      MetadataConfig      `json:"metadata"`
	WS            WSConfig            `json:"ws"`
	CORS          CORSConfig          `json:"cors"`
	Gzip          GzipConfig          `json:"gzip"`
	HTTPSRedirect HTTPSRedirectConfig `json:"https_redirect"`
	TrustedHosts  TrustedHostsConfig  `json:"trusted_hosts"`
	RateLimit     RateLimitConfig     `json:"rate_limit"`
}

func (c *APIConfig) validate() error {
	if err := c.WS.validate(); err != nil {
		return err
	}
	if err := c.CORS.validate(); err != nil {
		return err
	}
	if err := c.Gzip.validate(); err != nil {
		return err
	}
	if err := c.TrustedHosts.validate(); err != nil {
		return err
	}
	if err := c.RateLimit.validate(); err != nil {
		return err
	}
	return nil
}

func (c *APIConfig) VerifyRecommendations() []string {
	var warnings []string

	warnings = append(warnings, c.WS.VerifyRecommendations()...)

	// 모든 Origin을 허용하면서 자격 증명까지 허용하는 설정 경고
	if c.CORS.Enabled && c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowOrigins {
			if origin == "*" {
				warnings = append(warnings, "CORS가 모든 Origin(*)을 허용하면서 자격 증명(allow_credentials)까지 허용하도록 설정되었습니다. 운영 환경에서는 특정 도메인만 허용하는 것을 권장합니다")
				break
			}
		}
	}

	return warnings
}

// MetadataConfig 애플리케이션 구성에 전달되는 API 메타데이터를 정의하는 구조체
//
// 세 개의 문서 경로 필드는 빈 문자열("")로 설정하여 해당 엔드포인트를 비활성화할 수 있습니다.
type MetadataConfig struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Version        string           `json:"version"`
	DocsPath       string           `json:"docs_path"`
	RedocPath      string           `json:"redoc_path"`
	OpenAPIPath    string           `json:"openapi_path"`
	OpenAPIPrefix  string           `json:"openapi_prefix"`
	Tags           []map[string]any `json:"tags"`
	TermsOfService string           `json:"terms_of_service"`
	Contact        map[string]any   `json:"contact"`
	License        map[string]any   `json:"license"`
}

// ServerConfig 메타데이터 설정을 빌더의 Config로 변환합니다.
// 빈 문자열("")로 설정된 문서 경로는 nil로 변환되어 해당 엔드포인트를 비활성화합니다.
func (c *MetadataConfig) ServerConfig() server.Config {
	cfg := server.Config{
		Title:          c.Title,
		Description:    c.Description,
		Version:        c.Version,
		OpenAPIPrefix:  c.OpenAPIPrefix,
		Tags:           c.Tags,
		TermsOfService: c.TermsOfService,
		Contact:        c.Contact,
		License:        c.License,
	}

	if c.DocsPath != "" {
		cfg.DocsPath = server.Path(c.DocsPath)
	}
	if c.RedocPath != "" {
		cfg.RedocPath = server.Path(c.RedocPath)
	}
	if c.OpenAPIPath != "" {
		cfg.OpenAPIPath = server.Path(c.OpenAPIPath)
	}

	return cfg
}

// WSConfig 웹 서버의 포트 및 TLS(HTTPS) 보안 설정을 정의하는 구조체
type WSConfig struct {
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
}

func (c *WSConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		// Validator 에러를 사용자 친화적인 메시지로 변환한다.
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				switch fieldErr.StructField() {
				case "ListenPort":
					return apperrors.New(apperrors.InvalidInput, "웹 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
				case "TLSCertFile":
					switch fieldErr.Tag() {
					case "required_if":
						return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 인증서 파일 경로(tls_cert_file)는 필수입니다")
					case "file":
						return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 인증서 파일(tls_cert_file)을 찾을 수 없습니다: '%v'", fieldErr.Value()))
					default:
						return apperrors.New(apperrors.InvalidInput, "TLS 인증서 파일 경로(tls_cert_file) 설정이 올바르지 않습니다")
					}
				case "TLSKeyFile":
					switch fieldErr.Tag() {
					case "required_if":
						return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 키 파일 경로(tls_key_file)는 필수입니다")
					case "file":
						return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 키 파일(tls_key_file)을 찾을 수 없습니다: '%v'", fieldErr.Value()))
					default:
						return apperrors.New(apperrors.InvalidInput, "TLS 키 파일 경로(tls_key_file) 설정이 올바르지 않습니다")
					}
				}
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "웹 서버 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	return nil
}

func (c *WSConfig) VerifyRecommendations() []string {
	var warnings []string

	// 시스템 예약 포트(1024 미만) 사용 경고
	if c.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.ListenPort))
	}

	return warnings
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책을 설정하는 구조체
type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowOrigins     []string `json:"allow_origins" validate:"dive,cors_origin"`
	AllowCredentials bool     `json:"allow_credentials"`
	AllowMethods     []string `json:"allow_methods"`
	AllowHeaders     []string `json:"allow_headers"`
}

func (c *CORSConfig) validate() error {
	if !c.Enabled {
		return nil
	}

	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
	}

	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	// 각 Origin 유효성 검사 (와일드카드는 cors_origin 검증기가 허용함)
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				if fieldErr.Tag() == "cors_origin" {
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fieldErr.Value()))
				}
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "CORS 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}
	return nil
}

// GzipConfig GZip 응답 압축 미들웨어 설정 구조체
type GzipConfig struct {
	Enabled     bool `json:"enabled"`
	MinimumSize int  `json:"minimum_size"`
}

func (c *GzipConfig) validate() error {
	if c.Enabled && c.MinimumSize < 0 {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("GZip 최소 압축 크기(minimum_size)는 0 이상이어야 합니다: %d", c.MinimumSize))
	}
	return nil
}

// HTTPSRedirectConfig 평문 HTTP 요청을 HTTPS로 리다이렉트하는 미들웨어 설정 구조체
type HTTPSRedirectConfig struct {
	Enabled bool `json:"enabled"`
}

// TrustedHostsConfig Host 헤더 기반 요청 필터링 미들웨어 설정 구조체
type TrustedHostsConfig struct {
	Enabled      bool     `json:"enabled"`
	AllowedHosts []string `json:"allowed_hosts" validate:"dive,host_pattern"`
}

func (c *TrustedHostsConfig) validate() error {
	if !c.Enabled {
		return nil
	}

	if len(c.AllowedHosts) == 0 {
		return apperrors.New(apperrors.InvalidInput, "Trusted Host 활성화 시 허용 호스트 패턴(allowed_hosts)이 최소 하나 이상 필요합니다")
	}

	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				if fieldErr.Tag() == "host_pattern" {
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("호스트 패턴 형식이 올바르지 않습니다: '%v' (예: example.com, *.example.com)", fieldErr.Value()))
				}
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "Trusted Host 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}
	return nil
}

// RateLimitConfig IP 기반 요청 속도 제한 미들웨어 설정 구조체
type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerSecond int  `json:"requests_per_second"`
	Burst             int  `json:"burst"`
}

func (c *RateLimitConfig) validate() error {
	if !c.Enabled {
		return nil
	}

	if c.RequestsPerSecond <= 0 {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("속도 제한의 초당 허용 요청 수(requests_per_second)는 양수여야 합니다: %d", c.RequestsPerSecond))
	}
	if c.Burst <= 0 {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("속도 제한의 버스트 허용량(burst)은 양수여야 합니다: %d", c.Burst))
	}
	return nil
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
//
// 설정 우선순위 (낮음 -> 높음): 기본값 < JSON 설정 파일 < 환경 변수
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	err := k.Load(confmap.Provider(map[string]interface{}{
		"api.metadata.title":                 AppName,
		"api.metadata.version":               "0.1.0",
		"api.metadata.docs_path":             "/docs",
		"api.metadata.redoc_path":            "/redoc",
		"api.metadata.openapi_path":          "/openapi.json",
		"api.ws.listen_port":                 DefaultListenPort,
		"api.cors.allow_origins":             []string{"*"},
		"api.cors.allow_credentials":         true,
		"api.cors.allow_methods":             []string{"*"},
		"api.cors.allow_headers":             []string{"*"},
		"api.gzip.minimum_size":              DefaultGzipMinimumSize,
		"api.rate_limit.requests_per_second": DefaultRateLimitPerSecond,
		"api.rate_limit.burst":               DefaultRateLimitBurst,
	}, "."), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위, JSON 설정 덮어쓰기)
	// 접두사: LITEAPI_
	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	// 예: LITEAPI_API__WS__LISTEN_PORT -> api.ws.listen_port
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (Strict Validation 적용)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true, // 파일에 존재하지만 구조체에 없는 필드가 있을 경우 에러를 발생시킴
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
