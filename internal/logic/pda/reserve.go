package pda

import "klend-admin-sol/internal/types"

// ReserveVaults 一个 reserve 名下的四个 PDA 账户
type ReserveVaults struct {
	LiquiditySupply  types.Pubkey
	CollateralMint   types.Pubkey
	CollateralSupply types.Pubkey
	FeeVault         types.Pubkey
}

// ReserveVaults 一次性派生 reserve 的全部 vault，任一失败即返回
func (d *Deriver) ReserveVaults(market, mint types.Pubkey) (ReserveVaults, error) {
	var (
		vaults ReserveVaults
		addr   Address
		err    error
	)

	if addr, err = d.ReserveLiquiditySupply(market, mint); err != nil {
		return ReserveVaults{}, err
	}
	vaults.LiquiditySupply = addr.Key

	if addr, err = d.ReserveCollateralMint(market, mint); err != nil {
		return ReserveVaults{}, err
	}
	vaults.CollateralMint = addr.Key

	if addr, err = d.ReserveCollateralSupply(market, mint); err != nil {
		return ReserveVaults{}, err
	}
	vaults.CollateralSupply = addr.Key

	if addr, err = d.ReserveFeeVault(market, mint); err != nil {
		return ReserveVaults{}, err
	}
	vaults.FeeVault = addr.Key

	return vaults, nil
}
