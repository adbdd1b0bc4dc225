package instruction

import (
	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/logic/pda"
	"klend-admin-sol/internal/types"
)

type initObligationArgs struct {
	Tag uint8
	ID  uint8
}

// InitObligation 按给定种子创建 obligation；seed1/seed2 同时作为账户传入
func (b *Builder) InitObligation(feePayer types.Pubkey, seeds pda.ObligationSeeds, tokenProgram types.Pubkey) (domain.Instruction, error) {
	obligation, err := b.pda.Obligation(seeds)
	if err != nil {
		return domain.Instruction{}, err
	}
	meta, err := b.pda.UserMetadata(seeds.Owner)
	if err != nil {
		return domain.Instruction{}, err
	}

	return b.build("init_obligation", InitObligation, InitObligationLayout, map[Role]types.Pubkey{
		RoleOwner:         seeds.Owner,
		RoleFeePayer:      feePayer,
		RoleObligation:    obligation.Key,
		RoleLendingMarket: seeds.Market,
		RoleSeed1Account:  types.Pubkey(seeds.Seed1),
		RoleSeed2Account:  types.Pubkey(seeds.Seed2),
		RoleUserMetadata:  meta.Key,
		RoleTokenProgram:  tokenProgram,
		RoleSystemProgram: consts.SystemProgram,
		RoleRent:          consts.SysvarRent,
	}, initObligationArgs{Tag: seeds.Tag, ID: seeds.ID})
}

// InitDefaultObligation owner 自付费、tag/id/seed 全 0 的默认仓位，token program 使用 SPL Token
func (b *Builder) InitDefaultObligation(owner, market types.Pubkey) (domain.Instruction, error) {
	return b.InitObligation(owner, pda.DefaultObligationSeeds(owner, market), consts.TokenProgram)
}
