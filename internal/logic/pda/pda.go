package pda

import (
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"

	"klend-admin-sol/internal/types"
)

// ErrDerivation 在 seed 组合找不到合法 bump 时返回，属于常量表配置错误，不应重试
var ErrDerivation = errors.New("pda derivation failed")

// 各类 PDA 的固定 seed 前缀，与链上程序保持一致
var (
	seedMarketAuthority         = []byte("lma")
	seedReserveLiquiditySupply  = []byte("reserve_liq_supply")
	seedReserveCollateralMint   = []byte("reserve_coll_mint")
	seedReserveCollateralSupply = []byte("reserve_coll_supply")
	seedReserveFeeVault         = []byte("fee_receiver")
	seedUserMetadata            = []byte("user_meta")
)

// Address 派生结果：地址 + bump
type Address struct {
	Key  types.Pubkey
	Bump uint8
}

// Deriver 绑定一个 program id 的 PDA 派生器。无状态、无缓存，可并发使用。
type Deriver struct {
	programID types.Pubkey
}

func New(programID types.Pubkey) *Deriver {
	return &Deriver{programID: programID}
}

func (d *Deriver) ProgramID() types.Pubkey {
	return d.programID
}

// Derive 对任意 seed 组合执行 find_program_address
func (d *Deriver) Derive(seeds ...[]byte) (Address, error) {
	key, bump, err := common.FindProgramAddress(seeds, d.programID.ToCommon())
	if err != nil {
		return Address{}, fmt.Errorf("%w: program=%s, seeds=%d: %v", ErrDerivation, d.programID, len(seeds), err)
	}
	return Address{Key: types.PubkeyFromCommon(key), Bump: bump}, nil
}

// MarketAuthority ["lma", market]
func (d *Deriver) MarketAuthority(market types.Pubkey) (Address, error) {
	return d.Derive(seedMarketAuthority, market.Bytes())
}

// ReserveLiquiditySupply ["reserve_liq_supply", market, mint]
func (d *Deriver) ReserveLiquiditySupply(market, mint types.Pubkey) (Address, error) {
	return d.Derive(seedReserveLiquiditySupply, market.Bytes(), mint.Bytes())
}

// ReserveCollateralMint ["reserve_coll_mint", market, mint]
func (d *Deriver) ReserveCollateralMint(market, mint types.Pubkey) (Address, error) {
	return d.Derive(seedReserveCollateralMint, market.Bytes(), mint.Bytes())
}

// ReserveCollateralSupply ["reserve_coll_supply", market, mint]
func (d *Deriver) ReserveCollateralSupply(market, mint types.Pubkey) (Address, error) {
	return d.Derive(seedReserveCollateralSupply, market.Bytes(), mint.Bytes())
}

// ReserveFeeVault ["fee_receiver", market, mint]
func (d *Deriver) ReserveFeeVault(market, mint types.Pubkey) (Address, error) {
	return d.Derive(seedReserveFeeVault, market.Bytes(), mint.Bytes())
}

// UserMetadata ["user_meta", user]
func (d *Deriver) UserMetadata(user types.Pubkey) (Address, error) {
	return d.Derive(seedUserMetadata, user.Bytes())
}
