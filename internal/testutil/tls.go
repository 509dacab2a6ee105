package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

// T 테스트 헬퍼가 요구하는 *testing.T의 최소 표면입니다.
type T interface {
	Fatalf(format string, args ...interface{})
}

// GenerateSelfSignedCert HTTPS 서버 테스트용 자체 서명 인증서와 키 파일을
// 임시 디렉토리에 생성하고 두 파일의 경로와 정리 함수를 반환합니다.
// 인증서는 127.0.0.1 전용이며 유효기간이 짧습니다.
func GenerateSelfSignedCert(t T) (string, string, func()) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("테스트용 개인키 생성 실패: %v", err)
	}

	tmpl := x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{Organization: []string{"lite-api-service test"}},
		NotBefore:             time.Now().Add(-time.Minute),
		NotAfter:              time.Now().Add(2 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
	}

	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("테스트용 인증서 생성 실패: %v", err)
	}

	dir, err := os.MkdirTemp("", "liteapi-tls-")
	if err != nil {
		t.Fatalf("임시 디렉토리 생성 실패: %v", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	certPath := filepath.Join(dir, "server.crt")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(certPath, certPEM, 0o600); err != nil {
		cleanup()
		t.Fatalf("인증서 파일 기록 실패: %v", err)
	}

	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		cleanup()
		t.Fatalf("개인키 직렬화 실패: %v", err)
	}
	keyPath := filepath.Join(dir, "server.key")
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	if err := os.WriteFile(keyPath, keyPEM, 0o600); err != nil {
		cleanup()
		t.Fatalf("키 파일 기록 실패: %v", err)
	}

	return certPath, keyPath, cleanup
}
