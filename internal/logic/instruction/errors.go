package instruction

import "errors"

var (
	// ErrPayloadSize 编码后的参数长度与链上固定槽位不一致，不做截断或补齐
	ErrPayloadSize = errors.New("instruction payload size mismatch")

	// ErrMissingAccount 按布局绑定账户时缺少某个角色
	ErrMissingAccount = errors.New("instruction account missing")
)
