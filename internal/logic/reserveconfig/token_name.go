package reserveconfig

import "fmt"

// EncodeTokenName 按 UTF-8 编码后右侧补 0 到 32 字节；超长直接报错，不做截断
func EncodeTokenName(name string) ([TokenNameSize]byte, error) {
	var buf [TokenNameSize]byte
	if len(name) > TokenNameSize {
		return buf, fmt.Errorf("%w: %q is %d bytes, max %d", ErrTokenNameTooLong, name, len(name), TokenNameSize)
	}
	copy(buf[:], name)
	return buf, nil
}
