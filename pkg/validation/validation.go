// Package validation 설정값 검증을 위한 순수 함수들을 제공합니다.
//
// 외부 라이브러리에 의존하지 않는 도메인 검증 로직을 모아두는 패키지입니다.
// go-playground/validator의 커스텀 태그 등록 시 이 패키지의 함수들을 어댑터로 연결하여 사용합니다.
package validation

import (
	"fmt"
	"net"
	"strings"
)

// ValidatePort 포트 번호가 유효한 범위(1-65535) 내에 있는지 검증합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname 호스트명이 RFC 1123 표준을 준수하는지, 또는 IP 주소/로컬호스트인지 검증합니다.
//
// 규칙:
//   - localhost 허용
//   - 유효한 IPv4 및 IPv6 주소 허용
//   - 도메인명은 RFC 1123 규칙을 따름 (최대 253자, 레이블당 63자, 영문/숫자/하이픈)
func ValidateHostname(host string) error {
	// 1. localhost 체크
	if host == "localhost" {
		return nil
	}

	// 2. IP 주소 체크 (IPv4, IPv6)
	if ip := net.ParseIP(host); ip != nil {
		return nil
	}

	// 3. RFC 1123 도메인/호스트명 형식 검증
	if len(host) > 253 {
		return fmt.Errorf("호스트명 전체 길이는 253자를 초과할 수 없습니다 (len=%d)", len(host))
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if err := validateHostLabel(label, host); err != nil {
			return err
		}
	}

	return nil
}

// ValidateHostPattern 신뢰 호스트(Trusted Host) 패턴이 유효한지 검증합니다.
//
// 일반 호스트명 외에 다음 두 가지 특수 형태를 허용합니다:
//   - "*" : 모든 호스트 허용
//   - "*.example.com" : 서브도메인 와일드카드 (첫 레이블만 와일드카드 가능)
func ValidateHostPattern(pattern string) error {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return fmt.Errorf("호스트 패턴은 비어있을 수 없습니다")
	}

	// 전체 와일드카드
	if trimmed == "*" {
		return nil
	}

	// 서브도메인 와일드카드: 첫 레이블이 '*'인 경우 나머지 부분만 검증
	if rest, found := strings.CutPrefix(trimmed, "*."); found {
		if strings.Contains(rest, "*") {
			return fmt.Errorf("와일드카드(*)는 첫 레이블에만 사용할 수 있습니다 (pattern=%q)", pattern)
		}
		if err := ValidateHostname(rest); err != nil {
			return fmt.Errorf("호스트 패턴이 유효하지 않습니다 (pattern=%q): %w", pattern, err)
		}
		return nil
	}

	if strings.Contains(trimmed, "*") {
		return fmt.Errorf("와일드카드(*)는 '*.도메인' 형태로만 사용할 수 있습니다 (pattern=%q)", pattern)
	}

	// 포트가 포함된 형태(host:port)도 허용
	host := trimmed
	if h, portStr, err := net.SplitHostPort(trimmed); err == nil {
		host = h
		if portStr == "" {
			return fmt.Errorf("호스트 패턴의 포트가 비어있습니다 (pattern=%q)", pattern)
		}
	}

	if err := ValidateHostname(host); err != nil {
		return fmt.Errorf("호스트 패턴이 유효하지 않습니다 (pattern=%q): %w", pattern, err)
	}

	return nil
}

// validateHostLabel 호스트명의 단일 레이블이 RFC 1123 규칙을 준수하는지 검증합니다.
func validateHostLabel(label, host string) error {
	if len(label) == 0 {
		return fmt.Errorf("호스트명에 빈 레이블(연속된 점 등)이 포함되어 있습니다 (host=%q)", host)
	}
	if len(label) > 63 {
		return fmt.Errorf("각 레이블은 63자를 초과할 수 없습니다 (label=%q)", label)
	}

	// 시작과 끝 문자는 하이픈이 아니어야 함
	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("레이블은 하이픈(-)으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
	}

	for _, r := range label {
		// 허용 문자: 영문(대소문자), 숫자, 하이픈
		isValidChar := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
		if !isValidChar {
			return fmt.Errorf("호스트명은 영문, 숫자, 하이픈(-)으로만 구성되어야 합니다 (invalid_char=%q, host=%q)", r, host)
		}
	}

	return nil
}
