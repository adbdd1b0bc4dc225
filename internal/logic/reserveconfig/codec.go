package reserveconfig

import (
	"fmt"

	"github.com/near/borsh-go"
)

// Encode 按链上布局做 borsh 序列化，长度必须恰好为 ReserveConfigSize
func Encode(cfg *ReserveConfig) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrEncoding)
	}
	data, err := borsh.Serialize(*cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: borsh serialize: %v", ErrEncoding, err)
	}
	if len(data) != ReserveConfigSize {
		return nil, fmt.Errorf("%w: encoded size %d, want %d", ErrEncoding, len(data), ReserveConfigSize)
	}
	return data, nil
}

// Decode Encode 的逆过程，主要用于校验与回读链上配置
func Decode(data []byte) (cfg *ReserveConfig, err error) {
	if len(data) != ReserveConfigSize {
		return nil, fmt.Errorf("%w: data size %d, want %d", ErrEncoding, len(data), ReserveConfigSize)
	}

	// borsh-go 对异常输入可能 panic，这里统一转成 error
	defer func() {
		if r := recover(); r != nil {
			cfg = nil
			err = fmt.Errorf("%w: borsh deserialize panic: %v", ErrEncoding, r)
		}
	}()

	var out ReserveConfig
	if err := borsh.Deserialize(&out, data); err != nil {
		return nil, fmt.Errorf("%w: borsh deserialize: %v", ErrEncoding, err)
	}
	return &out, nil
}
