package testutil

import (
	"fmt"
	"net"
	"time"
)

// FreePort 루프백 주소에 임시 리스너를 열어 충돌하지 않는 포트 번호를 확보합니다.
func FreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}

// WaitForListen 지정한 포트에서 서버가 연결을 받기 시작할 때까지 폴링합니다.
func WaitForListen(port int, timeout time.Duration) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if conn, err := net.DialTimeout("tcp", addr, 50*time.Millisecond); err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}

	return fmt.Errorf("포트 %d에서 %v 내에 서버가 수신을 시작하지 않았습니다", port, timeout)
}
