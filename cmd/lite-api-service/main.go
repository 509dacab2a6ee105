package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/TeleAI-mcp/lite-api-service/internal/config"
	"github.com/TeleAI-mcp/lite-api-service/internal/pkg/version"
	"github.com/TeleAI-mcp/lite-api-service/internal/server"
	"github.com/TeleAI-mcp/lite-api-service/internal/server/middleware"
	applog "github.com/TeleAI-mcp/lite-api-service/pkg/log"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// 빌드 정보 변수 (Dockerfile의 ldflags로 주입됨)
var (
	Version     = "dev"     // Git 커밋 해시
	BuildDate   = "unknown" // 빌드 날짜
	BuildNumber = "0"       // 빌드 번호
)

const (
	banner = `
  _      _  _            _     ____   ___
 | |    (_)| |_  ___    / \   |  _ \ |_ _|
 | |    | || __|/ _ \  / _ \  | |_) | | |
 | |___ | || |_|  __/ / ___ \ |  __/  | |
 |_____||_| \__|\___|/_/   \_\|_|    |___|  %s
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	configFile := config.DefaultFilename
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	appConfig, err := config.LoadWithFile(configFile)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	// 3. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	// 아스키아트 출력(폰트: standard)
	fmt.Printf(banner, Version)

	// 빌드 정보 설정 (전역 싱글톤 등록)
	buildInfo := version.Info{
		Version:     Version,
		BuildDate:   BuildDate,
		BuildNumber: BuildNumber,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
	version.Set(buildInfo)

	applog.WithComponentAndFields("main", log.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	// 권장 설정 준수 여부 진단
	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	// 4. 애플리케이션 구성 및 미들웨어 부착
	builder, err := buildApplication(appConfig)
	if err != nil {
		applog.WithComponentAndFields("main", log.Fields{
			"error": err,
		}).Error("애플리케이션 구성 실패")

		log.Fatal("애플리케이션 구성 실패로 프로그램을 종료합니다")
	}

	// 5. 서비스 시작
	apiService := server.NewService(builder, server.ServeConfig{
		ListenPort:  appConfig.API.WS.ListenPort,
		TLSServer:   appConfig.API.WS.TLSServer,
		TLSCertFile: appConfig.API.WS.TLSCertFile,
		TLSKeyFile:  appConfig.API.WS.TLSKeyFile,
	})

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	serviceStopWG.Add(1)
	if err := apiService.Start(serviceStopCtx, serviceStopWG); err != nil {
		applog.WithComponentAndFields("main", log.Fields{
			"error": err,
		}).Error("서비스 초기화 실패")

		cancel()
		serviceStopWG.Wait()

		log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
	}

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC // Blocks here until interrupted

	// Handle shutdown
	applog.WithComponent("main").Info("Shutdown signal received")
	cancel()             // Signal cancellation to context.Context
	serviceStopWG.Wait() // Block here until are workers are done
}

// buildApplication 설정에 따라 애플리케이션을 구성하고 미들웨어를 부착합니다.
//
// 미들웨어는 다음 순서로 부착됩니다 (먼저 부착된 미들웨어가 가장 바깥쪽에서 실행됨):
// 패닉 복구 -> HTTPS 리다이렉트 -> Trusted Host -> 속도 제한 -> CORS -> GZip
func buildApplication(appConfig *config.AppConfig) (*server.Builder, error) {
	builder := server.New()

	if err := builder.Construct(appConfig.API.Metadata.ServerConfig()); err != nil {
		return nil, err
	}

	// 패닉 복구는 모든 미들웨어보다 바깥쪽에 위치해야 합니다.
	if err := builder.AttachCustom("panic_recovery", nil, middleware.PanicRecovery()); err != nil {
		return nil, err
	}

	if appConfig.API.HTTPSRedirect.Enabled {
		if err := builder.AttachHTTPSRedirect(); err != nil {
			return nil, err
		}
	}

	if appConfig.API.TrustedHosts.Enabled {
		if err := builder.AttachTrustedHost(appConfig.API.TrustedHosts.AllowedHosts); err != nil {
			return nil, err
		}
	}

	if appConfig.API.RateLimit.Enabled {
		rl := appConfig.API.RateLimit
		err := builder.AttachCustom("rate_limit", map[string]any{
			"requests_per_second": rl.RequestsPerSecond,
			"burst":               rl.Burst,
		}, middleware.RateLimit(rl.RequestsPerSecond, rl.Burst))
		if err != nil {
			return nil, err
		}
	}

	if appConfig.API.CORS.Enabled {
		cors := appConfig.API.CORS
		err := builder.AttachCORS(server.CORSOptions{
			AllowOrigins:     cors.AllowOrigins,
			AllowCredentials: cors.AllowCredentials,
			AllowMethods:     cors.AllowMethods,
			AllowHeaders:     cors.AllowHeaders,
		})
		if err != nil {
			return nil, err
		}
	}

	if appConfig.API.Gzip.Enabled {
		if err := builder.AttachGzip(appConfig.API.Gzip.MinimumSize); err != nil {
			return nil, err
		}
	}

	// 시스템 엔드포인트 등록
	app, err := builder.Application()
	if err != nil {
		return nil, err
	}
	registerSystemRoutes(app)

	return builder, nil
}

// registerSystemRoutes 서비스 상태 확인(/health) 및 버전 정보(/version) 엔드포인트를 등록합니다.
func registerSystemRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})
	e.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, version.Get())
	})
}
