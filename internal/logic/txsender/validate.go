package txsender

import (
	"fmt"

	"klend-admin-sol/internal/types"
)

// validate 纯本地校验：
// 1. 至少一条指令
// 2. 指令中每个 signer 账户都有对应的签名者
// 3. fee payer 在签名者之中
// 4. 不接受与交易无关的多余签名者
func validate(req Request) error {
	if len(req.Instructions) == 0 {
		return fmt.Errorf("%w: %s: no instructions", ErrInvalidRequest, req.Label)
	}

	provided := make(map[types.Pubkey]struct{}, len(req.Signers))
	for _, signer := range req.Signers {
		provided[types.PubkeyFromCommon(signer.PublicKey)] = struct{}{}
	}

	if _, ok := provided[req.FeePayer]; !ok {
		return fmt.Errorf("%w: %s: fee payer %s is not a signer", ErrInvalidRequest, req.Label, req.FeePayer)
	}

	required := map[types.Pubkey]struct{}{req.FeePayer: {}}
	for i, ix := range req.Instructions {
		for _, key := range ix.Signers() {
			if _, ok := provided[key]; !ok {
				return fmt.Errorf("%w: %s: instruction #%d requires signature of %s", ErrInvalidRequest, req.Label, i, key)
			}
			required[key] = struct{}{}
		}
	}

	for key := range provided {
		if _, ok := required[key]; !ok {
			return fmt.Errorf("%w: %s: signer %s is not required by any instruction", ErrInvalidRequest, req.Label, key)
		}
	}
	return nil
}
