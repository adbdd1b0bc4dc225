package instruction

import (
	"github.com/blocto/solana-go-sdk/program/system"

	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/types"
)

// CreateProgramAccount system 程序 create_account：由 payer 出资创建归属 klend 程序的新账户
func (b *Builder) CreateProgramAccount(payer, newAccount types.Pubkey, lamports, space uint64) domain.Instruction {
	return domain.InstructionFromSdk(system.CreateAccount(system.CreateAccountParam{
		From:     payer.ToCommon(),
		New:      newAccount.ToCommon(),
		Owner:    b.programID.ToCommon(),
		Lamports: lamports,
		Space:    space,
	}))
}

// InitLendingMarketWithAllocation 返回 [create_account, init_lending_market]，lamports 应为租金豁免额
func (b *Builder) InitLendingMarketWithAllocation(owner, market types.Pubkey, quoteCurrency [32]byte, lamports uint64) ([]domain.Instruction, error) {
	initIx, err := b.InitLendingMarket(owner, market, quoteCurrency)
	if err != nil {
		return nil, err
	}
	return []domain.Instruction{
		b.CreateProgramAccount(owner, market, lamports, consts.LendingMarketSize),
		initIx,
	}, nil
}

// InitReserveWithAllocation 返回 [create_account, init_reserve]
func (b *Builder) InitReserveWithAllocation(owner, market, reserve, mint, tokenProgram types.Pubkey, lamports uint64) ([]domain.Instruction, error) {
	initIx, err := b.InitReserve(owner, market, reserve, mint, tokenProgram)
	if err != nil {
		return nil, err
	}
	return []domain.Instruction{
		b.CreateProgramAccount(owner, reserve, lamports, consts.ReserveSize),
		initIx,
	}, nil
}
