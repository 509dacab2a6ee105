// Package strutil 문자열 매칭 및 가공을 위한 유틸리티 기능을 제공합니다.
package strutil

import (
	"strings"
)

// HostMatcher 호스트 패턴 매칭을 수행하는 상태 기반(Stateful) 구조체입니다.
//
// 생성 시점에 패턴 파싱과 전처리(소문자 변환, 와일드카드 분리)를 수행합니다.
// 따라서 동일한 패턴 셋으로 요청마다 호스트를 검사하는 미들웨어 상황에서
// 반복적인 파싱과 메모리 할당 비용을 제거합니다.
type HostMatcher struct {
	// matchAll 패턴 목록에 전체 와일드카드("*")가 포함되어 있는지 여부
	matchAll bool

	// exact 정확히 일치해야 하는 호스트명 목록 (소문자 정규화됨)
	exact []string

	// suffixes 서브도메인 와일드카드("*.example.com")에서 추출한 접미사 목록
	// ".example.com" 형태로 저장되며, 호스트명이 이 접미사로 끝나면 매칭됩니다.
	suffixes []string
}

// NewHostMatcher 주어진 호스트 패턴들로 새로운 HostMatcher를 생성합니다.
//
// 초기화 과정에서 다음 작업이 수행됩니다:
// 1. 모든 패턴을 소문자로 변환 (호스트명은 대소문자를 구분하지 않음)
// 2. 와일드카드 구문("*", "*.domain") 파싱 및 분류
// 3. 빈 패턴 필터링
func NewHostMatcher(patterns []string) *HostMatcher {
	m := &HostMatcher{
		exact:    make([]string, 0, len(patterns)),
		suffixes: make([]string, 0, len(patterns)),
	}

	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}

		// 전체 와일드카드: 이후의 모든 검사가 불필요해짐
		if p == "*" {
			m.matchAll = true
			continue
		}

		// 서브도메인 와일드카드
		if rest, found := strings.CutPrefix(p, "*."); found {
			m.suffixes = append(m.suffixes, "."+rest)
			continue
		}

		m.exact = append(m.exact, p)
	}

	return m
}

// Match 대상 호스트명이 패턴 조건을 만족하는지 검사합니다.
//
// 호스트명은 대소문자 구분 없이 비교되며, 다음 중 하나라도 만족하면 true를 반환합니다:
//   - 전체 와일드카드("*") 패턴이 존재
//   - 정확히 일치하는 패턴 존재
//   - 서브도메인 와일드카드의 접미사로 끝남 ("api.example.com"은 "*.example.com"에 매칭)
func (m *HostMatcher) Match(host string) bool {
	if m.matchAll {
		return true
	}

	host = strings.ToLower(host)

	for _, e := range m.exact {
		if host == e {
			return true
		}
	}

	for _, suffix := range m.suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}

	return false
}

// Empty 유효한 패턴이 하나도 없는지 여부를 반환합니다.
func (m *HostMatcher) Empty() bool {
	return !m.matchAll && len(m.exact) == 0 && len(m.suffixes) == 0
}
