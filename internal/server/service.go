package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	applog "github.com/TeleAI-mcp/lite-api-service/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	// componentService 서비스 생명주기 로깅용 컴포넌트 이름
	componentService = "server.service"

	// shutdownTimeout Graceful Shutdown 시 최대 대기 시간 (5초)
	shutdownTimeout = 5 * time.Second
)

// ServeConfig HTTP/HTTPS 서버 기동에 필요한 설정을 정의합니다.
type ServeConfig struct {
	// ListenPort 서버가 수신 대기할 포트
	ListenPort int

	// TLSServer TLS(HTTPS) 서버로 기동할지 여부
	TLSServer bool

	// TLSCertFile TLS 인증서 파일 경로 (TLSServer가 true인 경우 필수)
	TLSCertFile string

	// TLSKeyFile TLS 개인키 파일 경로 (TLSServer가 true인 경우 필수)
	TLSKeyFile string
}

// Service 구성된 Builder의 애플리케이션을 HTTP/HTTPS 서버로 실행하고 생명주기를 관리합니다.
//
// 서비스는 고루틴으로 실행되며, context를 통해 종료 신호를 받습니다.
// Start() 메서드로 시작하고, context 취소로 종료됩니다.
// 종료 시에는 5초 타임아웃의 Graceful Shutdown을 수행합니다.
type Service struct {
	builder *Builder

	serveConfig ServeConfig

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(builder *Builder, serveConfig ServeConfig) *Service {
	if builder == nil {
		panic("Service: builder는 nil일 수 없습니다")
	}

	return &Service{
		builder: builder,

		serveConfig: serveConfig,

		running:   false,
		runningMu: sync.Mutex{},
	}
}

// Start 서비스를 시작합니다.
//
// 구성되지 않은 빌더로 호출하면 ErrNotConstructed를 반환하며,
// 이미 실행 중인 경우 경고 로그만 남기고 정상 반환합니다.
//
// Parameters:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
//
// Note: 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(componentService).Info("서비스를 시작합니다")

	e, err := s.builder.Application()
	if err != nil {
		defer serviceStopWG.Done()
		return err
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(componentService).Warn("서비스가 이미 시작되어 있습니다")
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG, e)

	applog.WithComponent(componentService).Info("서비스가 시작되었습니다")

	return nil
}

// runServiceLoop 서비스의 메인 실행 루프입니다.
// HTTP 서버 시작과 Shutdown 대기를 순차적으로 수행합니다.
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// startHTTPServer HTTP/HTTPS 서버를 시작합니다.
//
// 설정에 따라 TLS 활성화 여부를 결정하며, 서버가 종료되면 done 채널을 닫아
// 대기 중인 고루틴에 신호를 보냅니다.
//
// Note: 이 함수는 블로킹되며, 서버가 종료될 때까지 반환되지 않습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.serveConfig.ListenPort
	applog.WithComponentAndFields(componentService, applog.Fields{
		"port": port,
		"tls":  s.serveConfig.TLSServer,
	}).Debug("HTTP 서버를 시작합니다")

	var err error
	if s.serveConfig.TLSServer {
		err = e.StartTLS(
			fmt.Sprintf(":%d", port),
			s.serveConfig.TLSCertFile,
			s.serveConfig.TLSKeyFile,
		)
	} else {
		err = e.Start(fmt.Sprintf(":%d", port))
	}

	s.handleServerError(err)
}

// handleServerError HTTP 서버 실행 중 발생한 에러를 처리합니다.
//
// 에러 처리 방식:
//   - nil: 처리하지 않음 (정상 종료)
//   - http.ErrServerClosed: Info 레벨 로깅 (Graceful Shutdown)
//   - 그 외: Error 레벨 로깅 (예상치 못한 에러)
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(componentService).Info("HTTP 서버가 정상적으로 중지되었습니다")
		return
	}

	applog.WithComponentAndFields(componentService, applog.Fields{
		"port":  s.serveConfig.ListenPort,
		"error": err,
	}).Error("HTTP 서버에서 치명적인 오류가 발생하였습니다")
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
//
// 종료 처리 순서:
//  1. 종료 신호 대기 (정상 종료 또는 서버 조기 종료)
//  2. Echo 서버 Shutdown 호출 (5초 타임아웃)
//  3. HTTP 서버 완전 종료 대기
//  4. 서비스 상태 정리 (running 플래그 초기화)
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		// 정상적인 종료 신호 수신
		applog.WithComponent(componentService).Info("서비스를 중지합니다")
	case <-httpServerDone:
		// HTTP 서버가 예기치 않게 종료됨 (포트 바인딩 실패 등)
		// 이미 종료되었으므로 Shutdown 호출 없이 상태만 정리
		applog.WithComponent(componentService).Error("HTTP 서버가 예기치 않게 종료되었습니다")

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(componentService, applog.Fields{
			"error": err,
		}).Error("HTTP 서버 Shutdown 중 오류가 발생하였습니다")
	}

	<-httpServerDone

	s.cleanup()
}

// cleanup 서비스 종료 후 상태를 정리합니다.
func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(componentService).Info("서비스가 중지되었습니다")
}
