package pda

import "klend-admin-sol/internal/types"

// ObligationSeeds obligation PDA 的完整 seed 集合：
// [tag] [id] owner market seed1 seed2
//
// Seed1 / Seed2 为自由 32 字节，可用于区分同一 (owner, market) 下的多个仓位；
// 当前所有调用路径都使用全 0 默认值，即每个 (owner, market) 仅一个仓位。
type ObligationSeeds struct {
	Tag    uint8
	ID     uint8
	Owner  types.Pubkey
	Market types.Pubkey
	Seed1  [32]byte
	Seed2  [32]byte
}

// DefaultObligationSeeds tag=0, id=0, seed 全 0
func DefaultObligationSeeds(owner, market types.Pubkey) ObligationSeeds {
	return ObligationSeeds{Owner: owner, Market: market}
}

func (d *Deriver) Obligation(s ObligationSeeds) (Address, error) {
	return d.Derive(
		[]byte{s.Tag},
		[]byte{s.ID},
		s.Owner.Bytes(),
		s.Market.Bytes(),
		s.Seed1[:],
		s.Seed2[:],
	)
}

// DefaultObligation 派生 (owner, market) 的规范仓位地址
func (d *Deriver) DefaultObligation(owner, market types.Pubkey) (Address, error) {
	return d.Obligation(DefaultObligationSeeds(owner, market))
}
