package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Error Creation Tests
// =============================================================================

// TestNew는 새 에러 생성과 속성 접근을 검증합니다.
func TestNew(t *testing.T) {
	t.Parallel()

	err := New(InvalidInput, "허용 호스트 목록이 비어있습니다")
	require.Error(t, err)

	appErr, ok := err.(*AppError)
	require.True(t, ok)
	assert.Equal(t, InvalidInput, appErr.Type())
	assert.Equal(t, "허용 호스트 목록이 비어있습니다", appErr.Message())
	assert.Equal(t, "[InvalidInput] 허용 호스트 목록이 비어있습니다", err.Error())
	assert.NotEmpty(t, appErr.Stack(), "에러 생성 시점의 스택이 캡처되어야 합니다")
}

// TestNewf는 포맷 문자열 기반 에러 생성을 검증합니다.
func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(NotFound, "설정 파일을 찾을 수 없습니다: %s", "app.json")
	require.Error(t, err)
	assert.Equal(t, "[NotFound] 설정 파일을 찾을 수 없습니다: app.json", err.Error())
}

// =============================================================================
// Error Wrapping Tests
// =============================================================================

// TestWrap은 에러 래핑과 체이닝 동작을 검증합니다.
func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("성공: 에러 체이닝", func(t *testing.T) {
		t.Parallel()

		root := fmt.Errorf("open app.json: no such file or directory")
		wrapped := Wrap(root, System, "설정 파일 로드 실패")

		require.Error(t, wrapped)
		assert.Equal(t, "[System] 설정 파일 로드 실패: open app.json: no such file or directory", wrapped.Error())

		appErr, ok := wrapped.(*AppError)
		require.True(t, ok)
		assert.Equal(t, root, appErr.Unwrap())
	})

	t.Run("성공: nil 에러는 nil 반환", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, Wrap(nil, System, "무시됨"))
		assert.NoError(t, Wrapf(nil, System, "무시됨: %d", 1))
	})
}

// TestRootCause는 다단계 래핑에서 근본 원인 추출을 검증합니다.
func TestRootCause(t *testing.T) {
	t.Parallel()

	root := fmt.Errorf("connection refused")
	level1 := Wrap(root, System, "서버 연결 실패")
	level2 := Wrap(level1, Internal, "초기화 실패")

	assert.Equal(t, root, RootCause(level2))
	assert.Equal(t, root, RootCause(root), "래핑되지 않은 에러는 자기 자신이 근본 원인입니다")
	assert.NoError(t, RootCause(nil))
}

// =============================================================================
// Error Type Inspection Tests
// =============================================================================

// TestIs는 에러 체인의 타입 포함 검사를 검증합니다.
func TestIs(t *testing.T) {
	t.Parallel()

	inner := New(NotFound, "대상 없음")
	outer := Wrap(inner, System, "처리 실패")

	assert.True(t, Is(outer, System), "바깥쪽 타입이 검출되어야 합니다")
	assert.True(t, Is(outer, NotFound), "체인 내부의 타입도 검출되어야 합니다")
	assert.False(t, Is(outer, Conflict))
	assert.False(t, Is(nil, System))
	assert.False(t, Is(fmt.Errorf("일반 에러"), System))
}

// TestTypeOf는 가장 바깥쪽 AppError 타입 추출을 검증합니다.
func TestTypeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"단일 AppError", New(Conflict, "중복 구성"), Conflict},
		{"래핑된 AppError는 바깥쪽 타입", Wrap(New(NotFound, "없음"), InvalidInput, "검증 실패"), InvalidInput},
		{"AppError로 감싼 일반 에러", Wrap(fmt.Errorf("io 오류"), System, "읽기 실패"), System},
		{"일반 에러는 Unknown", fmt.Errorf("일반 에러"), Unknown},
		{"nil은 Unknown", nil, Unknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, TypeOf(tt.err))
		})
	}
}

// TestAs는 에러 체인에서 AppError 추출을 검증합니다.
func TestAs(t *testing.T) {
	t.Parallel()

	inner := New(NotFound, "대상 없음")
	chained := fmt.Errorf("요청 처리 실패: %w", inner)

	var appErr *AppError
	require.True(t, As(chained, &appErr), "표준 래핑 체인에서도 AppError를 찾아야 합니다")
	assert.Equal(t, NotFound, appErr.Type())

	appErr = nil
	assert.False(t, As(fmt.Errorf("일반 에러"), &appErr))
}

// TestErrorType_String은 에러 타입의 문자열 표현을 검증합니다.
func TestErrorType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		errType ErrorType
		want    string
	}{
		{Unknown, "Unknown"},
		{Internal, "Internal"},
		{System, "System"},
		{InvalidInput, "InvalidInput"},
		{Conflict, "Conflict"},
		{NotFound, "NotFound"},
		{ErrorType(99), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.errType.String())
	}
}
