// Package maputil 맵(Map) 데이터를 구조체로 변환하기 위한 유틸리티 기능을 제공합니다.
package maputil

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode 입력된 맵(Map)이나 인터페이스 데이터를 지정된 제네릭 타입 T의 구조체로 변환하여 반환합니다.
//
// 내부적으로 `mapstructure` 라이브러리를 활용하며, 다음과 같은 기본 동작이 적용됩니다:
//   - 유연한 타입 변환 (Weakly Typed): "123" -> 123 (int), 1 -> true (bool) 등을 자동으로 보정합니다.
//   - 태그 지원: 기본적으로 구조체의 `json` 태그를 기준으로 필드를 매핑합니다.
//   - 알 수 없는 필드는 기본적으로 무시됩니다. 엄격한 검증이 필요하면 WithErrorUnused(true)를 사용하십시오.
//
// 사용 예시:
//
//	opts, err := maputil.Decode[CORSOptions](inputMap)
func Decode[T any](input any, opts ...Option) (*T, error) {
	output := new(T)
	if err := DecodeTo(input, output, opts...); err != nil {
		return nil, err
	}
	return output, nil
}

// DecodeTo 입력된 데이터를 대상 구조체 포인터(output)에 디코딩하여 값을 채웁니다.
//
// output 구조체에 미리 설정된 값은 입력 데이터에 해당 키가 없는 한 유지됩니다(Merge Semantics).
// 따라서 기본값이 채워진 구조체 위에 사용자 옵션 맵을 덮어쓰는 용도로 사용할 수 있습니다.
func DecodeTo[T any](input any, output *T, opts ...Option) error {
	if output == nil {
		return errors.New("디코딩 결과를 저장할 output 포인터가 nil입니다")
	}

	// 1. 기본 설정값으로 초기화
	cfg := &decodingConfig{
		tagName:          "json",
		weaklyTypedInput: true,
		errorUnused:      false,
	}

	// 2. 사용자 정의 옵션 적용
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	// 3. mapstructure.DecoderConfig 생성
	msConfig := &mapstructure.DecoderConfig{
		Result:           output,
		TagName:          cfg.tagName,
		WeaklyTypedInput: cfg.weaklyTypedInput,
		ErrorUnused:      cfg.errorUnused,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(msConfig)
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("입력 데이터를 %T(으)로 디코딩하는 데 실패했습니다: %w", output, err)
	}

	return nil
}

// decodingConfig 디코딩 옵션을 한곳에 모아 관리하는 비공개 설정 구조체입니다.
type decodingConfig struct {
	tagName          string
	weaklyTypedInput bool
	errorUnused      bool
}

// Option 디코딩 설정을 커스터마이징하기 위한 함수형 옵션 타입입니다.
type Option func(*decodingConfig)

// WithTagName 구조체 필드 매핑에 사용할 태그 이름을 지정합니다. (기본값: "json")
func WithTagName(tagName string) Option {
	return func(c *decodingConfig) {
		c.tagName = tagName
	}
}

// WithWeaklyTypedInput 타입이 달라도 가능한 경우 자동으로 변환(Weakly Typed)할지 설정합니다. (기본값: true)
func WithWeaklyTypedInput(enable bool) Option {
	return func(c *decodingConfig) {
		c.weaklyTypedInput = enable
	}
}

// WithErrorUnused 대상 구조체에 없는 필드가 입력 데이터에 존재할 경우, 무시하지 않고 에러를 발생시킵니다. (기본값: false)
//
// 오타 등으로 인해 의도치 않게 옵션이 누락되는 것을 방지하기 위해 엄격한 검증이 필요할 때 유용합니다.
func WithErrorUnused(enable bool) Option {
	return func(c *decodingConfig) {
		c.errorUnused = enable
	}
}
