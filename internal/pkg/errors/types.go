package errors

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

// 에러 타입 상수
const (
	// Unknown 알 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (초기화 누락, 잘못된 호출 순서 등 프로그래밍 오류)
	Internal

	// System 시스템 또는 인프라 오류 (파일, 네트워크 등)
	System

	// InvalidInput 잘못된 입력값 (유효성 검사 실패)
	InvalidInput

	// Conflict 상태 충돌 (중복 초기화 등)
	Conflict

	// NotFound 리소스를 찾을 수 없음
	NotFound
)

// String ErrorType의 문자열 표현을 반환합니다.
func (t ErrorType) String() string {
	switch t {
	case Internal:
		return "Internal"
	case System:
		return "System"
	case InvalidInput:
		return "InvalidInput"
	case Conflict:
		return "Conflict"
	case NotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}
