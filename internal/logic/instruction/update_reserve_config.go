package instruction

import (
	"fmt"

	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/logic/reserveconfig"
	"klend-admin-sol/internal/types"
)

// UpdateModeEntireConfig 整体替换 reserve 配置
const UpdateModeEntireConfig uint64 = 25

type updateEntireReserveConfigArgs struct {
	Mode  uint64
	Value [reserveconfig.ReserveConfigSize]uint8
}

// UpdateEntireReserveConfig 用已编码的配置整体覆盖 reserve 配置。
// encoded 长度必须恰好为 648 字节，否则返回 ErrPayloadSize。
func (b *Builder) UpdateEntireReserveConfig(owner, market, reserve types.Pubkey, encoded []byte) (domain.Instruction, error) {
	if len(encoded) != reserveconfig.ReserveConfigSize {
		return domain.Instruction{}, fmt.Errorf("%w: reserve config is %d bytes, want %d",
			ErrPayloadSize, len(encoded), reserveconfig.ReserveConfigSize)
	}

	args := updateEntireReserveConfigArgs{Mode: UpdateModeEntireConfig}
	copy(args.Value[:], encoded)

	return b.build("update_entire_reserve_config", UpdateEntireReserveConfig, UpdateEntireReserveConfigLayout, map[Role]types.Pubkey{
		RoleOwner:         owner,
		RoleLendingMarket: market,
		RoleReserve:       reserve,
	}, args)
}

// UpdateReserveConfig 编码 cfg 后调用 UpdateEntireReserveConfig
func (b *Builder) UpdateReserveConfig(owner, market, reserve types.Pubkey, cfg *reserveconfig.ReserveConfig) (domain.Instruction, error) {
	encoded, err := reserveconfig.Encode(cfg)
	if err != nil {
		return domain.Instruction{}, err
	}
	return b.UpdateEntireReserveConfig(owner, market, reserve, encoded)
}
