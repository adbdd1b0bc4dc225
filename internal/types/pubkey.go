package types

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58"
)

// PubkeySize 公钥固定长度（ed25519 / PDA 均为 32 字节）
const PubkeySize = 32

type Pubkey [PubkeySize]byte

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) Equals(other Pubkey) bool {
	return p == other
}

// IsZero 判断是否为全 0 地址（System Program 地址同样为全 0）
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// Bytes 返回底层字节切片（拷贝），用作 PDA seed
func (p Pubkey) Bytes() []byte {
	b := make([]byte, PubkeySize)
	copy(b, p[:])
	return b
}

// ToCommon 转换为 blocto SDK 的 common.PublicKey，仅在 SDK 边界处使用
func (p Pubkey) ToCommon() common.PublicKey {
	return common.PublicKey(p)
}

// PubkeyFromCommon 将 SDK 公钥转换回本地类型
func PubkeyFromCommon(pk common.PublicKey) Pubkey {
	return Pubkey(pk)
}

// MarshalText 使 Pubkey 在 yaml / json 中以 base58 字符串表示
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	v, err := TryPubkeyFromBase58(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// TryPubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时返回 error（用于不信任输入路径）
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode base58 pubkey %q: %w", s, err)
	}
	if len(data) != PubkeySize {
		return Pubkey{}, fmt.Errorf("invalid pubkey length: got %d, want 32, input=%q", len(data), s)
	}
	var p Pubkey
	copy(p[:], data)
	return p, nil
}

// PubkeyFromBase58 用于常量表初始化，解析失败直接 panic
func PubkeyFromBase58(s string) Pubkey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}

func PubkeysFromBase58(strs []string) []Pubkey {
	result := make([]Pubkey, 0, len(strs))
	for _, s := range strs {
		result = append(result, PubkeyFromBase58(s))
	}
	return result
}
