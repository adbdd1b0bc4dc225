package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// SignatureSize 交易签名长度（ed25519）
const SignatureSize = 64

// Signature 交易签名，也是提交成功后返回的确认句柄
type Signature [SignatureSize]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) IsZero() bool {
	return s == Signature{}
}

func SignatureFromBase58(str string) (Signature, error) {
	var sig Signature
	data, err := base58.Decode(str)
	if err != nil {
		return sig, fmt.Errorf("failed to decode base58 signature %q: %w", str, err)
	}
	if len(data) != SignatureSize {
		return sig, fmt.Errorf("invalid signature length: got %d, want %d", len(data), SignatureSize)
	}
	copy(sig[:], data)
	return sig, nil
}
