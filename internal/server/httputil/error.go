package httputil

import (
	"net/http"

	apperrors "github.com/TeleAI-mcp/lite-api-service/internal/pkg/errors"
	applog "github.com/TeleAI-mcp/lite-api-service/pkg/log"
	"github.com/labstack/echo/v4"
)

// componentErrorHandler 전역 에러 핸들러의 로깅용 컴포넌트 이름
const componentErrorHandler = "server.error_handler"

const (
	errMsgInternalServer = "내부 서버 오류가 발생했습니다."
	errMsgNotFound       = "페이지를 찾을 수 없습니다."
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 HTTP 에러를 가로채서 표준 ErrorResponse JSON 형식으로 변환하여 반환합니다.
// 애플리케이션 내부 에러(AppError)는 에러 타입에 따라 적절한 HTTP 상태 코드로 매핑되며,
// 에러 발생 시 적절한 로그 레벨(Error/Warn)로 상세 정보를 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := errMsgInternalServer

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else if resp, ok := he.Message.(ErrorResponse); ok {
			message = resp.Message
		}
	} else if appErr := (*apperrors.AppError)(nil); apperrors.As(err, &appErr) {
		code = statusCodeOf(err)
		message = appErr.Message()
	}

	// 404 에러는 사용자 친화적인 한국어 메시지로 통일
	if code == http.StatusNotFound && (message == "Not Found" || message == errMsgInternalServer) {
		message = errMsgNotFound
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		// 5xx: 서버 내부 오류 - 즉시 조치 필요
		applog.WithComponentAndFields(componentErrorHandler, fields).Error("HTTP 5xx 서버 오류가 발생하였습니다")
	} else if code >= http.StatusBadRequest {
		// 4xx: 클라이언트 요청 오류 - 정상적인 거부 응답
		applog.WithComponentAndFields(componentErrorHandler, fields).Warn("HTTP 4xx 클라이언트 오류가 발생하였습니다")
	}

	// 이중 응답 방지: 이미 응답이 전송된 경우 추가 응답 시도하지 않음
	if c.Response().Committed {
		return
	}

	// HEAD 요청 처리: HTTP 명세에 따라 헤더만 반환하고 본문은 생략
	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	c.JSON(code, ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// statusCodeOf 애플리케이션 에러 타입을 HTTP 상태 코드로 매핑합니다.
func statusCodeOf(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
