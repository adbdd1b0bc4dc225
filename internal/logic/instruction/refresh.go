package instruction

import (
	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/types"
)

// ReserveOracles refresh_reserve 可读取的四类价格源，未使用的以程序地址占位
type ReserveOracles struct {
	Pyth             domain.OptionalPubkey
	SwitchboardPrice domain.OptionalPubkey
	SwitchboardTwap  domain.OptionalPubkey
	Scope            domain.OptionalPubkey
}

// PythOracles 仅使用 Pyth 价格账户
func PythOracles(pyth types.Pubkey) ReserveOracles {
	return ReserveOracles{Pyth: domain.Some(pyth)}
}

func (b *Builder) RefreshReserve(reserve, market types.Pubkey, oracles ReserveOracles) (domain.Instruction, error) {
	return b.build("refresh_reserve", RefreshReserve, RefreshReserveLayout, map[Role]types.Pubkey{
		RoleReserve:                reserve,
		RoleLendingMarket:          market,
		RolePythOracle:             oracles.Pyth.Resolve(b.programID),
		RoleSwitchboardPriceOracle: oracles.SwitchboardPrice.Resolve(b.programID),
		RoleSwitchboardTwapOracle:  oracles.SwitchboardTwap.Resolve(b.programID),
		RoleScopePrices:            oracles.Scope.Resolve(b.programID),
	}, nil)
}

// RefreshObligation depositReserves 为 obligation 当前已存入的 reserve（按存入顺序），新建仓位为空
func (b *Builder) RefreshObligation(market, obligation types.Pubkey, depositReserves ...types.Pubkey) (domain.Instruction, error) {
	ix, err := b.build("refresh_obligation", RefreshObligation, RefreshObligationLayout, map[Role]types.Pubkey{
		RoleLendingMarket: market,
		RoleObligation:    obligation,
	}, nil)
	if err != nil {
		return domain.Instruction{}, err
	}
	for _, reserve := range depositReserves {
		ix.Accounts = append(ix.Accounts, domain.AccountMeta{Pubkey: reserve})
	}
	return ix, nil
}
