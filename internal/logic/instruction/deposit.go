package instruction

import (
	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/logic/pda"
	"klend-admin-sol/internal/types"
)

// DepositParams 存入流动性并作为抵押物记入默认 obligation
type DepositParams struct {
	Owner         types.Pubkey
	LendingMarket types.Pubkey
	Reserve       types.Pubkey
	Mint          types.Pubkey
	TokenProgram  types.Pubkey
	Oracles       ReserveOracles
	Amount        uint64 // 最小单位
}

type depositArgs struct {
	LiquidityAmount uint64
}

func (b *Builder) DepositReserveLiquidityAndObligationCollateral(p DepositParams) (domain.Instruction, error) {
	obligation, err := b.pda.DefaultObligation(p.Owner, p.LendingMarket)
	if err != nil {
		return domain.Instruction{}, err
	}
	authority, err := b.pda.MarketAuthority(p.LendingMarket)
	if err != nil {
		return domain.Instruction{}, err
	}
	vaults, err := b.pda.ReserveVaults(p.LendingMarket, p.Mint)
	if err != nil {
		return domain.Instruction{}, err
	}
	source, err := pda.AssociatedTokenAddress(p.Owner, p.Mint, p.TokenProgram)
	if err != nil {
		return domain.Instruction{}, err
	}

	return b.build("deposit_reserve_liquidity_and_obligation_collateral", DepositLiquidityAndCollateral, DepositLayout, map[Role]types.Pubkey{
		RoleOwner:                     p.Owner,
		RoleObligation:                obligation.Key,
		RoleLendingMarket:             p.LendingMarket,
		RoleLendingMarketAuthority:    authority.Key,
		RoleReserve:                   p.Reserve,
		RoleReserveLiquiditySupply:    vaults.LiquiditySupply,
		RoleReserveCollateralMint:     vaults.CollateralMint,
		RoleReserveCollateralSupply:   vaults.CollateralSupply,
		RoleUserSourceLiquidity:       source,
		RolePlaceholderUserCollateral: b.programID,
		RoleTokenProgram:              p.TokenProgram,
		RoleInstructionSysvar:         consts.SysvarInstructions,
	}, depositArgs{LiquidityAmount: p.Amount})
}

// DepositWithRefresh 返回 [refresh_reserve, refresh_obligation, deposit]。
// 顺序不可调整：程序会拒绝基于过期 reserve/obligation 状态的存入。
func (b *Builder) DepositWithRefresh(p DepositParams) ([]domain.Instruction, error) {
	refreshReserve, err := b.RefreshReserve(p.Reserve, p.LendingMarket, p.Oracles)
	if err != nil {
		return nil, err
	}

	obligation, err := b.pda.DefaultObligation(p.Owner, p.LendingMarket)
	if err != nil {
		return nil, err
	}
	refreshObligation, err := b.RefreshObligation(p.LendingMarket, obligation.Key)
	if err != nil {
		return nil, err
	}

	deposit, err := b.DepositReserveLiquidityAndObligationCollateral(p)
	if err != nil {
		return nil, err
	}

	return []domain.Instruction{refreshReserve, refreshObligation, deposit}, nil
}
