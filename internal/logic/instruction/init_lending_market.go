package instruction

import (
	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/types"
)

type initLendingMarketArgs struct {
	QuoteCurrency [32]uint8
}

// InitLendingMarket 初始化借贷市场；market 账户需在同一交易中预先分配（见 InitLendingMarketWithAllocation）
func (b *Builder) InitLendingMarket(owner, market types.Pubkey, quoteCurrency [32]byte) (domain.Instruction, error) {
	authority, err := b.pda.MarketAuthority(market)
	if err != nil {
		return domain.Instruction{}, err
	}

	return b.build("init_lending_market", InitLendingMarket, InitLendingMarketLayout, map[Role]types.Pubkey{
		RoleOwner:                  owner,
		RoleLendingMarket:          market,
		RoleLendingMarketAuthority: authority.Key,
		RoleSystemProgram:          consts.SystemProgram,
		RoleRent:                   consts.SysvarRent,
	}, initLendingMarketArgs{QuoteCurrency: quoteCurrency})
}
