package reserveconfig

import (
	"errors"
	"fmt"
)

// ErrEncoding 输入无法放入固定二进制结构；在任何网络调用之前暴露给调用方
var ErrEncoding = errors.New("reserve config encoding failed")

var (
	ErrUnknownOracleSymbol = fmt.Errorf("%w: unknown oracle symbol", ErrEncoding)
	ErrTokenNameTooLong    = fmt.Errorf("%w: token name too long", ErrEncoding)
	ErrInvalidCurve        = fmt.Errorf("%w: invalid borrow rate curve", ErrEncoding)
)
