package reserveconfig

import (
	"fmt"

	"github.com/holiman/uint256"
)

// 链上费率使用 60 位小数的定点数（scaled fraction, sf）
const fractionBits = 60

const bpsDenominator = 10_000

// FractionFromBps 将 bps 转为 sf：bps * 2^60 / 10000。
// 中间值会超出 u64，因此用 uint256 计算；结果超出 u64 时报错。
func FractionFromBps(bps uint64) (uint64, error) {
	v := new(uint256.Int).SetUint64(bps)
	v.Lsh(v, fractionBits)
	v.Div(v, uint256.NewInt(bpsDenominator))
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: fraction of %d bps overflows u64", ErrEncoding, bps)
	}
	return v.Uint64(), nil
}

// FractionToBps FractionFromBps 的逆运算（向下取整），用于日志展示
func FractionToBps(sf uint64) uint64 {
	v := new(uint256.Int).SetUint64(sf)
	v.Mul(v, uint256.NewInt(bpsDenominator))
	v.Rsh(v, fractionBits)
	return v.Uint64()
}
