package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/TeleAI-mcp/lite-api-service/internal/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// invokeErrorHandler 지정한 에러로 ErrorHandler를 호출하고 기록된 응답을 반환합니다.
func invokeErrorHandler(t *testing.T, err error, method string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/resource", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(err, c)

	return rec
}

// decodeErrorResponse 응답 본문을 ErrorResponse로 디코딩합니다.
func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// =============================================================================
// ErrorHandler Tests
// =============================================================================

// TestErrorHandler_HTTPError는 echo.HTTPError가 상태 코드와 메시지를
// 유지한 채 표준 응답으로 변환되는지 검증합니다.
func TestErrorHandler_HTTPError(t *testing.T) {
	t.Parallel()

	t.Run("문자열 메시지", func(t *testing.T) {
		t.Parallel()

		rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusForbidden, "접근이 거부되었습니다"), http.MethodGet)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, http.StatusForbidden, resp.ResultCode)
		assert.Equal(t, "접근이 거부되었습니다", resp.Message)
	})

	t.Run("ErrorResponse 메시지", func(t *testing.T) {
		t.Parallel()

		rec := invokeErrorHandler(t, NewTooManyRequestsError("요청이 너무 많습니다"), http.MethodGet)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "요청이 너무 많습니다", decodeErrorResponse(t, rec).Message)
	})
}

// TestErrorHandler_AppError는 애플리케이션 에러 타입이 적절한
// HTTP 상태 코드로 매핑되는지 검증합니다.
func TestErrorHandler_AppError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"InvalidInput은 400", apperrors.New(apperrors.InvalidInput, "잘못된 입력값입니다"), http.StatusBadRequest},
		{"NotFound는 404", apperrors.New(apperrors.NotFound, "대상을 찾을 수 없습니다"), http.StatusNotFound},
		{"Conflict는 409", apperrors.New(apperrors.Conflict, "이미 존재합니다"), http.StatusConflict},
		{"Internal은 500", apperrors.New(apperrors.Internal, "내부 처리 실패"), http.StatusInternalServerError},
		{"System은 500", apperrors.New(apperrors.System, "파일 시스템 오류"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := invokeErrorHandler(t, tt.err, http.MethodGet)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCode, decodeErrorResponse(t, rec).ResultCode)
		})
	}
}

// TestErrorHandler_WrappedAppError는 래핑된 에러에서도 타입 매핑이
// 동작하는지 검증합니다.
func TestErrorHandler_WrappedAppError(t *testing.T) {
	t.Parallel()

	inner := apperrors.New(apperrors.NotFound, "설정 파일이 없습니다")
	wrapped := apperrors.Wrap(inner, apperrors.NotFound, "설정을 불러올 수 없습니다")

	rec := invokeErrorHandler(t, wrapped, http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "설정을 불러올 수 없습니다", decodeErrorResponse(t, rec).Message)
}

// TestErrorHandler_UnknownError는 분류되지 않은 일반 에러가
// 500과 표준 메시지로 처리되는지 검증합니다.
func TestErrorHandler_UnknownError(t *testing.T) {
	t.Parallel()

	rec := invokeErrorHandler(t, assert.AnError, http.MethodGet)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errMsgInternalServer, decodeErrorResponse(t, rec).Message)
}

// TestErrorHandler_NotFoundMessage는 404 에러의 기본 메시지가 한국어
// 안내 문구로 통일되는지 검증합니다.
func TestErrorHandler_NotFoundMessage(t *testing.T) {
	t.Parallel()

	rec := invokeErrorHandler(t, echo.ErrNotFound, http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errMsgNotFound, decodeErrorResponse(t, rec).Message)
}

// TestErrorHandler_HeadRequest는 HEAD 요청에 대해 본문 없이
// 상태 코드만 반환되는지 검증합니다.
func TestErrorHandler_HeadRequest(t *testing.T) {
	t.Parallel()

	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusBadRequest, "잘못된 요청"), http.MethodHead)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String(), "HEAD 요청의 에러 응답에는 본문이 없어야 합니다")
}

// TestErrorHandler_CommittedResponse는 이미 전송된 응답에 대해
// 추가 응답을 시도하지 않는지 검증합니다.
func TestErrorHandler_CommittedResponse(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, c.String(http.StatusOK, "이미 전송된 응답"))
	ErrorHandler(echo.NewHTTPError(http.StatusInternalServerError, "늦은 에러"), c)

	assert.Equal(t, http.StatusOK, rec.Code, "이미 커밋된 응답의 상태 코드는 변경되지 않아야 합니다")
	assert.Equal(t, "이미 전송된 응답", rec.Body.String())
}
