package server

import (
	apperrors "github.com/TeleAI-mcp/lite-api-service/internal/pkg/errors"
	"github.com/TeleAI-mcp/lite-api-service/internal/server/httputil"
	appmiddleware "github.com/TeleAI-mcp/lite-api-service/internal/server/middleware"
	applog "github.com/TeleAI-mcp/lite-api-service/pkg/log"
	"github.com/TeleAI-mcp/lite-api-service/pkg/maputil"
	"github.com/TeleAI-mcp/lite-api-service/pkg/strutil"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Builder 하나의 Echo 애플리케이션 인스턴스를 구성하고 점진적으로 설정하는 빌더입니다.
//
// 두 단계로 동작합니다:
//  1. Construct()로 메타데이터와 함께 하위 인스턴스를 생성
//  2. Attach* 메서드로 미들웨어를 호출 순서대로 부착
//
// 유일한 상태는 단조 증가하는 미들웨어 체인과 구성된 인스턴스 하나뿐입니다.
// 모든 연산은 트래픽 수신 전 시작 시점에 순차적으로 호출되는 것을 전제로 하며,
// 빌더 자체에 대한 동시 접근은 지원하지 않습니다.
//
// 부착된 미들웨어가 체인의 어느 쪽에서 실행되는지는 하위 프레임워크의 의미론을 따릅니다.
// (Echo: 먼저 부착된 미들웨어가 가장 바깥쪽에서 실행됨) 빌더는 순서를 재배열하지 않습니다.
type Builder struct {
	app *echo.Echo

	config Config

	attachments []Attachment
}

// New 새로운 Builder를 생성합니다.
func New() *Builder {
	return &Builder{}
}

// Construct 하위 Echo 인스턴스를 생성하고 메타데이터를 적용합니다.
//
// 모든 Config 필드는 검증 없이 그대로 전달되며, 문서 엔드포인트(OpenAPI 스키마,
// Swagger UI, Redoc)가 Config의 경로 설정에 따라 등록됩니다. 전달된 확장 옵션(opts)은
// 명명된 필드로 다루지 않는 설정을 위해 인스턴스에 순서대로 그대로 적용됩니다.
//
// 이미 구성된 빌더에 다시 호출하면 ErrAlreadyConstructed를 반환합니다.
func (b *Builder) Construct(cfg Config, opts ...Option) error {
	if b.app != nil {
		return ErrAlreadyConstructed
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Echo 프레임워크의 내부 로그를 애플리케이션 로거로 통합합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	// 전역 HTTP 에러 핸들러 설정
	e.HTTPErrorHandler = httputil.ErrorHandler

	// 문서 엔드포인트 등록 (OpenAPIPath가 nil이면 전체 비활성화)
	registerDocRoutes(e, cfg)

	// 확장 옵션을 순서대로 그대로 적용
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	b.app = e
	b.config = cfg

	return nil
}

// AttachMiddleware 이름으로 지정한 종류의 미들웨어 하나를 옵션 맵과 함께 부착합니다.
//
// 옵션 맵은 해당 종류의 타입 옵션 구조체로 디코딩되며(설정되지 않은 키는 기본값 유지),
// 미들웨어는 즉시 하위 인스턴스에 설치됩니다. 전달된 옵션 맵은 변경 없이
// Attachments()에 기록됩니다.
//
// 기본 제공 종류(cors, gzip, https_redirect, trusted_host)만 지원하며,
// 임의의 미들웨어는 AttachCustom()을 사용해야 합니다.
func (b *Builder) AttachMiddleware(kind Kind, options map[string]any) error {
	if b.app == nil {
		return ErrNotConstructed
	}

	switch kind {
	case KindCORS:
		opts := DefaultCORSOptions()
		if err := maputil.DecodeTo(options, &opts); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "CORS 미들웨어 옵션이 유효하지 않습니다")
		}
		b.installCORS(opts)

	case KindGzip:
		opts := DefaultGzipOptions()
		if err := maputil.DecodeTo(options, &opts); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "GZip 미들웨어 옵션이 유효하지 않습니다")
		}
		b.installGzip(opts)

	case KindHTTPSRedirect:
		b.installHTTPSRedirect()

	case KindTrustedHost:
		var opts TrustedHostOptions
		if err := maputil.DecodeTo(options, &opts); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "Trusted Host 미들웨어 옵션이 유효하지 않습니다")
		}
		if strutil.NewHostMatcher(opts.AllowedHosts).Empty() {
			return apperrors.New(apperrors.InvalidInput, "유효한 허용 호스트 패턴이 최소 하나 이상 필요합니다")
		}
		b.installTrustedHost(opts)

	default:
		return apperrors.Newf(apperrors.InvalidInput, "알 수 없는 미들웨어 종류입니다: %s (임의 미들웨어는 AttachCustom을 사용하십시오)", kind)
	}

	b.record(kind, options)

	return nil
}

// AttachCustom 호출자가 제공한 임의 종류의 미들웨어를 부착합니다.
//
// 옵션 맵은 해석하지 않고 기록 목적으로만 보존합니다.
func (b *Builder) AttachCustom(kind Kind, options map[string]any, mw echo.MiddlewareFunc) error {
	if b.app == nil {
		return ErrNotConstructed
	}
	if mw == nil {
		return apperrors.New(apperrors.InvalidInput, "미들웨어 함수는 nil일 수 없습니다")
	}

	b.app.Use(mw)
	b.record(kind, options)

	return nil
}

// AttachCORS CORS 미들웨어를 부착합니다.
func (b *Builder) AttachCORS(opts CORSOptions) error {
	if b.app == nil {
		return ErrNotConstructed
	}

	b.installCORS(opts)
	b.record(KindCORS, opts.optionsMap())

	return nil
}

// AttachGzip 지정한 최소 크기(바이트) 이상의 응답을 압축하는 GZip 미들웨어를 부착합니다.
func (b *Builder) AttachGzip(minimumSize int) error {
	if b.app == nil {
		return ErrNotConstructed
	}

	opts := GzipOptions{MinimumSize: minimumSize}
	b.installGzip(opts)
	b.record(KindGzip, opts.optionsMap())

	return nil
}

// AttachHTTPSRedirect 평문 HTTP 요청을 HTTPS로 리다이렉트하는 미들웨어를 부착합니다.
func (b *Builder) AttachHTTPSRedirect() error {
	if b.app == nil {
		return ErrNotConstructed
	}

	b.installHTTPSRedirect()
	b.record(KindHTTPSRedirect, nil)

	return nil
}

// AttachTrustedHost 허용 호스트 패턴 목록으로 Trusted Host 미들웨어를 부착합니다.
//
// 패턴 목록이 비어있거나 공백 패턴만 포함하면 InvalidInput 에러를 반환합니다.
func (b *Builder) AttachTrustedHost(allowedHosts []string) error {
	if b.app == nil {
		return ErrNotConstructed
	}
	if strutil.NewHostMatcher(allowedHosts).Empty() {
		return apperrors.New(apperrors.InvalidInput, "유효한 허용 호스트 패턴이 최소 하나 이상 필요합니다")
	}

	opts := TrustedHostOptions{AllowedHosts: allowedHosts}
	b.installTrustedHost(opts)
	b.record(KindTrustedHost, opts.optionsMap())

	return nil
}

// Application 구성된 하위 Echo 인스턴스를 참조로 반환합니다.
//
// 복사본이 아니므로 이후 빌더와 호출자가 동일한 인스턴스를 공유합니다.
// 반환된 인스턴스에 라우트 등록과 서버 기동을 수행할 수 있습니다.
func (b *Builder) Application() (*echo.Echo, error) {
	if b.app == nil {
		return nil, ErrNotConstructed
	}
	return b.app, nil
}

// Config 구성에 사용된 메타데이터를 반환합니다.
func (b *Builder) Config() (Config, error) {
	if b.app == nil {
		return Config{}, ErrNotConstructed
	}
	return b.config, nil
}

// Attachments 부착된 미들웨어의 기록을 부착 순서대로 반환합니다.
func (b *Builder) Attachments() ([]Attachment, error) {
	if b.app == nil {
		return nil, ErrNotConstructed
	}

	out := make([]Attachment, len(b.attachments))
	copy(out, b.attachments)
	return out, nil
}

// record 부착된 미들웨어를 체인 기록에 추가합니다.
func (b *Builder) record(kind Kind, options map[string]any) {
	b.attachments = append(b.attachments, Attachment{
		Kind:    kind,
		Options: options,
	})
}

func (b *Builder) installCORS(opts CORSOptions) {
	b.app.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     opts.AllowOrigins,
		AllowCredentials: opts.AllowCredentials,
		AllowMethods:     opts.AllowMethods,
		AllowHeaders:     opts.AllowHeaders,
	}))
}

func (b *Builder) installGzip(opts GzipOptions) {
	b.app.Use(echomw.GzipWithConfig(echomw.GzipConfig{
		MinLength: opts.MinimumSize,
	}))
}

func (b *Builder) installHTTPSRedirect() {
	b.app.Use(echomw.HTTPSRedirect())
}

func (b *Builder) installTrustedHost(opts TrustedHostOptions) {
	b.app.Use(appmiddleware.TrustedHost(opts.AllowedHosts))
}
