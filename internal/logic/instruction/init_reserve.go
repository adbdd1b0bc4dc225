package instruction

import (
	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/types"
)

// InitReserve 在市场下为 mint 创建 reserve，四个金库 PDA 由程序在指令内创建
func (b *Builder) InitReserve(owner, market, reserve, mint, tokenProgram types.Pubkey) (domain.Instruction, error) {
	authority, err := b.pda.MarketAuthority(market)
	if err != nil {
		return domain.Instruction{}, err
	}
	vaults, err := b.pda.ReserveVaults(market, mint)
	if err != nil {
		return domain.Instruction{}, err
	}

	return b.build("init_reserve", InitReserve, InitReserveLayout, map[Role]types.Pubkey{
		RoleOwner:                   owner,
		RoleLendingMarket:           market,
		RoleLendingMarketAuthority:  authority.Key,
		RoleReserve:                 reserve,
		RoleReserveLiquidityMint:    mint,
		RoleReserveLiquiditySupply:  vaults.LiquiditySupply,
		RoleFeeReceiver:             vaults.FeeVault,
		RoleReserveCollateralMint:   vaults.CollateralMint,
		RoleReserveCollateralSupply: vaults.CollateralSupply,
		RoleRent:                    consts.SysvarRent,
		RoleTokenProgram:            tokenProgram,
		RoleSystemProgram:           consts.SystemProgram,
	}, nil)
}
