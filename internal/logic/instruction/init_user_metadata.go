package instruction

import (
	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/types"
)

type initUserMetadataArgs struct {
	UserLookupTable types.Pubkey
}

// InitUserMetadata 创建用户元数据账户；不使用推荐人时 referrer 传 domain.None()
func (b *Builder) InitUserMetadata(owner, feePayer types.Pubkey, referrer domain.OptionalPubkey) (domain.Instruction, error) {
	meta, err := b.pda.UserMetadata(owner)
	if err != nil {
		return domain.Instruction{}, err
	}

	return b.build("init_user_metadata", InitUserMetadata, InitUserMetadataLayout, map[Role]types.Pubkey{
		RoleOwner:                owner,
		RoleFeePayer:             feePayer,
		RoleUserMetadata:         meta.Key,
		RoleReferrerUserMetadata: referrer.Resolve(b.programID),
		RoleRent:                 consts.SysvarRent,
		RoleSystemProgram:        consts.SystemProgram,
	}, initUserMetadataArgs{})
}
