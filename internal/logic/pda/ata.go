package pda

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"

	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/types"
)

// AssociatedTokenAddress 用户的 ATA 地址 [owner, token_program, mint]，deposit 时作为流动性来源账户。
// token program 决定 ATA，SPL Token 与 Token-2022 下同一 mint 的 ATA 不同。
func AssociatedTokenAddress(owner, mint, tokenProgram types.Pubkey) (types.Pubkey, error) {
	seeds := [][]byte{owner.Bytes(), tokenProgram.Bytes(), mint.Bytes()}
	ata, _, err := common.FindProgramAddress(seeds, consts.AssociatedTokenProgram.ToCommon())
	if err != nil {
		return types.Pubkey{}, fmt.Errorf("%w: ata owner=%s, mint=%s, token program=%s: %v", ErrDerivation, owner, mint, tokenProgram, err)
	}
	return types.PubkeyFromCommon(ata), nil
}
