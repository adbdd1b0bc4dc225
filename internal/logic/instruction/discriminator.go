package instruction

import (
	"crypto/sha256"
	"encoding/binary"
)

// Anchor 方法 ID：sha256("global:<name>") 前 8 字节（大端读为 uint64）
const (
	InitLendingMarket             uint64 = 0x22a2740e65895eef
	InitReserve                   uint64 = 0x8af547e19904032b
	UpdateEntireReserveConfig     uint64 = 0x9d2ebaa0c5390bfd
	InitUserMetadata              uint64 = 0x75a9b045c5170fa2
	InitObligation                uint64 = 0xfb0ae74c1b0b9f60
	RefreshReserve                uint64 = 0x02da8aeb4fc91966
	RefreshObligation             uint64 = 0x218493e497c04859
	DepositLiquidityAndCollateral uint64 = 0x81c70402de271a2e
)

const discriminatorSize = 8

// Sighash 计算 Anchor 全局指令的方法 ID
func Sighash(name string) [discriminatorSize]byte {
	var out [discriminatorSize]byte
	sum := sha256.Sum256([]byte("global:" + name))
	copy(out[:], sum[:discriminatorSize])
	return out
}

func discriminatorBytes(d uint64) []byte {
	buf := make([]byte, discriminatorSize)
	binary.BigEndian.PutUint64(buf, d)
	return buf
}
