package server

// Config 애플리케이션 구성에 필요한 API 메타데이터를 정의합니다.
//
// 모든 필드는 검증 없이 그대로(Verbatim) 하위 프레임워크와 OpenAPI 문서에 전달됩니다.
// 세 개의 문서 경로 필드는 nil로 설정하여 해당 엔드포인트를 비활성화할 수 있습니다.
// (OpenAPIPath가 nil이면 문서 생성 자체가 중단되므로 Docs/Redoc 엔드포인트도 비활성화됩니다)
//
// 생명주기: 애플리케이션 시작 시점에 한 번 구성되며 이후 불변(Immutable)입니다.
// 값을 변경하려면 애플리케이션을 다시 구성해야 합니다.
type Config struct {
	// Title API 제목
	Title string

	// Description API 설명
	Description string

	// Version API 버전 (시맨틱 버전 형식 권장, 예: "1.0.0")
	Version string

	// DocsPath Swagger UI 문서 경로 (nil: 비활성화)
	DocsPath *string

	// RedocPath Redoc 문서 경로 (nil: 비활성화)
	RedocPath *string

	// OpenAPIPath OpenAPI 스키마(JSON) 경로 (nil: 문서 생성 전체 비활성화)
	OpenAPIPath *string

	// OpenAPIPrefix 문서 UI가 OpenAPI 스키마를 조회할 때 사용할 경로 접두사 (기본값: 빈 문자열)
	OpenAPIPrefix string

	// Tags OpenAPI 태그 메타데이터 (순서 유지, 문서에 그대로 전달됨)
	Tags []map[string]any

	// TermsOfService 서비스 이용약관 URL
	TermsOfService string

	// Contact 연락처 정보 (OpenAPI info.contact에 그대로 전달됨)
	Contact map[string]any

	// License 라이선스 정보 (OpenAPI info.license에 그대로 전달됨)
	License map[string]any
}

// 문서 엔드포인트의 기본 경로
const (
	defaultDocsPath    = "/docs"
	defaultRedocPath   = "/redoc"
	defaultOpenAPIPath = "/openapi.json"
)

// DefaultConfig 문서 경로 기본값(/docs, /redoc, /openapi.json)이 채워진 Config를 반환합니다.
func DefaultConfig() Config {
	return Config{
		DocsPath:    Path(defaultDocsPath),
		RedocPath:   Path(defaultRedocPath),
		OpenAPIPath: Path(defaultOpenAPIPath),
	}
}

// Path 문서 경로 필드에 사용할 문자열 포인터를 생성합니다.
func Path(s string) *string {
	return &s
}
