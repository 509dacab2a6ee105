package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/TeleAI-mcp/lite-api-service/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// writeConfigFile 임시 디렉토리에 설정 파일을 생성하고 경로를 반환합니다.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// =============================================================================
// Load Tests
// =============================================================================

// TestLoadWithFile_Defaults는 빈 설정 파일 로드 시 기본값이 채워지는지 검증합니다.
func TestLoadWithFile_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWithFile(writeConfigFile(t, `{}`))
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, AppName, cfg.API.Metadata.Title)
	assert.Equal(t, "0.1.0", cfg.API.Metadata.Version)
	assert.Equal(t, "/docs", cfg.API.Metadata.DocsPath)
	assert.Equal(t, "/redoc", cfg.API.Metadata.RedocPath)
	assert.Equal(t, "/openapi.json", cfg.API.Metadata.OpenAPIPath)
	assert.Equal(t, DefaultListenPort, cfg.API.WS.ListenPort)
	assert.Equal(t, []string{"*"}, cfg.API.CORS.AllowOrigins)
	assert.True(t, cfg.API.CORS.AllowCredentials)
	assert.Equal(t, DefaultGzipMinimumSize, cfg.API.Gzip.MinimumSize)
	assert.Equal(t, DefaultRateLimitPerSecond, cfg.API.RateLimit.RequestsPerSecond)
	assert.Equal(t, DefaultRateLimitBurst, cfg.API.RateLimit.Burst)
}

// TestLoadWithFile_FileOverride는 설정 파일 값이 기본값을 덮어쓰는지 검증합니다.
func TestLoadWithFile_FileOverride(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWithFile(writeConfigFile(t, `{
		"debug": true,
		"api": {
			"metadata": {
				"title": "Custom API",
				"version": "2.0.0",
				"docs_path": "",
				"tags": [{"name": "orders"}]
			},
			"ws": {
				"listen_port": 9090
			},
			"gzip": {
				"enabled": true,
				"minimum_size": 1000
			}
		}
	}`))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "Custom API", cfg.API.Metadata.Title)
	assert.Equal(t, "2.0.0", cfg.API.Metadata.Version)
	assert.Empty(t, cfg.API.Metadata.DocsPath, "빈 문자열로 문서 경로를 비활성화할 수 있어야 합니다")
	assert.Equal(t, 9090, cfg.API.WS.ListenPort)
	assert.True(t, cfg.API.Gzip.Enabled)
	assert.Equal(t, 1000, cfg.API.Gzip.MinimumSize)
	require.Len(t, cfg.API.Metadata.Tags, 1)
	assert.Equal(t, "orders", cfg.API.Metadata.Tags[0]["name"])
}

// TestLoadWithFile_EnvOverride는 환경 변수가 설정 파일보다 우선하는지 검증합니다.
func TestLoadWithFile_EnvOverride(t *testing.T) {
	t.Setenv("LITEAPI_API__WS__LISTEN_PORT", "7070")
	t.Setenv("LITEAPI_API__METADATA__TITLE", "Env API")

	cfg, err := LoadWithFile(writeConfigFile(t, `{
		"api": {
			"ws": {"listen_port": 9090},
			"metadata": {"title": "File API"}
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.API.WS.ListenPort, "환경 변수가 설정 파일 값을 덮어써야 합니다")
	assert.Equal(t, "Env API", cfg.API.Metadata.Title)
}

// TestLoadWithFile_Errors는 설정 로드 실패 케이스를 검증합니다.
func TestLoadWithFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("실패: 설정 파일 없음", func(t *testing.T) {
		t.Parallel()

		_, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.System))
	})

	t.Run("실패: JSON 구문 오류", func(t *testing.T) {
		t.Parallel()

		_, err := LoadWithFile(writeConfigFile(t, `{"api": `))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("실패: 알 수 없는 설정 키", func(t *testing.T) {
		t.Parallel()

		_, err := LoadWithFile(writeConfigFile(t, `{"api": {"unknown_section": {"x": 1}}}`))
		require.Error(t, err, "구조체에 없는 설정 키는 오타 방지를 위해 거부되어야 합니다")
	})

	t.Run("실패: 유효성 검증 실패", func(t *testing.T) {
		t.Parallel()

		_, err := LoadWithFile(writeConfigFile(t, `{"api": {"ws": {"listen_port": 70000}}}`))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		assert.Contains(t, err.Error(), "listen_port")
	})
}

// =============================================================================
// Recommendation Tests
// =============================================================================

// TestVerifyRecommendations는 권장 설정 진단 경고를 검증합니다.
func TestVerifyRecommendations(t *testing.T) {
	t.Parallel()

	t.Run("예약 포트 사용 경고", func(t *testing.T) {
		t.Parallel()

		cfg := AppConfig{API: APIConfig{WS: WSConfig{ListenPort: 80}}}

		warnings := cfg.VerifyRecommendations()
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "예약 포트")
	})

	t.Run("CORS 와일드카드와 자격 증명 동시 허용 경고", func(t *testing.T) {
		t.Parallel()

		cfg := AppConfig{API: APIConfig{
			WS: WSConfig{ListenPort: 8080},
			CORS: CORSConfig{
				Enabled:          true,
				AllowOrigins:     []string{"*"},
				AllowCredentials: true,
			},
		}}

		warnings := cfg.VerifyRecommendations()
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "자격 증명")
	})

	t.Run("권장 설정 준수 시 경고 없음", func(t *testing.T) {
		t.Parallel()

		cfg := AppConfig{API: APIConfig{
			WS: WSConfig{ListenPort: 8080},
			CORS: CORSConfig{
				Enabled:      true,
				AllowOrigins: []string{"https://example.com"},
			},
		}}

		assert.Empty(t, cfg.VerifyRecommendations())
	})
}
