package server

import (
	apperrors "github.com/TeleAI-mcp/lite-api-service/internal/pkg/errors"
)

var (
	// ErrNotConstructed 애플리케이션이 구성되기 전에 부착/조회 메서드가 호출되었을 때 반환하는 에러입니다.
	// 런타임 입력 오류가 아닌 프로그래머 오류(Precondition Violation)를 나타냅니다.
	ErrNotConstructed = apperrors.New(apperrors.Internal, "애플리케이션이 아직 구성되지 않았습니다. Construct()를 먼저 호출해야 합니다")

	// ErrAlreadyConstructed Construct()가 중복 호출되었을 때 반환하는 에러입니다.
	ErrAlreadyConstructed = apperrors.New(apperrors.Conflict, "애플리케이션이 이미 구성되어 있습니다")
)
