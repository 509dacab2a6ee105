package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 로그 레벨에 따라 로그를 여러 채널로 분산하는 Hook 구현체입니다.
//
// 단일 로그 이벤트를 중요도에 따라 Critical, Main, Verbose 채널로 선별적으로 라우팅하여,
// 운영 로그와 디버깅 정보를 물리적으로 격리합니다.
type hook struct {
	mainWriter     io.Writer // 운영 상태와 에러를 기록하는 메인 채널 (INFO / WARN / ERROR / FATAL / PANIC)
	criticalWriter io.Writer // 치명적 장애를 별도로 격리 보존하는 채널 (ERROR / FATAL / PANIC)
	verboseWriter  io.Writer // 상세 디버깅 정보를 기록하는 채널 (DEBUG / TRACE)
	consoleWriter  io.Writer // 모든 레벨의 로그를 실시간으로 출력하는 표준 출력(Stdout)

	formatter Formatter

	mu sync.RWMutex // 로그 기록(Read Lock)과 종료 처리(Write Lock) 간의 동시성 제어

	closed bool // true일 경우 모든 로그 기록 요청을 거부
}

// Levels 이 Hook이 수신할 로그 레벨의 집합을 반환합니다.
func (h *hook) Levels() []Level {
	return AllLevels
}

// Fire 발생한 로그 이벤트를 레벨 기반 라우팅 정책에 따라 적절한 Writer로 분배합니다.
func (h *hook) Fire(entry *Entry) error {
	// Read Lock으로 동시 로깅을 허용하되, 기록 중 Hook이 종료되지 않도록 보호합니다.
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	// 로그 포맷팅 (한 번만 수행하여 재사용)
	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	var firstErr error

	// 0. Console Writer
	//    설정된 경우, 레벨 필터링 없이 모든 로그를 표준 출력으로 내보냅니다.
	if h.consoleWriter != nil {
		// 표준 출력 쓰기 실패는 전체 로깅 가용성에 영향을 주지 않도록 전파하지 않습니다.
		if _, err := h.consoleWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 표준 출력(Console) 쓰기 실패: %v\n", err)
		}
	}

	// 1. Critical Writer (Error 이상)
	//    쓰기 에러가 발생하더라도 메인 로그 기록은 수행되어야 하므로 에러 반환을 유예합니다.
	if entry.Level <= ErrorLevel {
		if h.criticalWriter != nil {
			if _, err := h.criticalWriter.Write(msg); err != nil {
				firstErr = err

				fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] Critical 로그 파일 쓰기 실패 (데이터 유실 위험): %v\n", err)
			}
		}
	}

	// 2. Verbose Writer (Debug/Trace)
	if entry.Level >= DebugLevel {
		if h.verboseWriter != nil {
			if _, err := h.verboseWriter.Write(msg); err != nil {
				if firstErr == nil {
					firstErr = err
				}

				fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] Verbose 로그 파일 쓰기 실패: %v\n", err)
			}
		}

		// 상세 로그(Debug/Trace)는 메인 로그에 남기지 않습니다.
		return firstErr
	}

	// 3. Main Writer (Info 이상)
	//    Critical Writer의 실패 여부와 관계없이 기록 시도를 보장합니다.
	if h.mainWriter != nil {
		if _, err := h.mainWriter.Write(msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}

			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] Main 로그 파일 쓰기 실패 (운영 기록 유실 위험): %v\n", err)
		}
	}

	return firstErr
}

// Close Hook을 '종료(Closed)' 상태로 전환하여 더 이상의 로그 기록을 차단합니다.
func (h *hook) Close() error {
	// Write Lock으로 현재 실행 중인 모든 로깅 작업이 완료될 때까지 대기합니다.
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	return nil
}
