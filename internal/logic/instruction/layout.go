package instruction

import (
	"fmt"

	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/types"
)

// Role 账户在指令中的语义角色
type Role string

const (
	RoleOwner                     Role = "owner"
	RoleFeePayer                  Role = "fee_payer"
	RoleLendingMarket             Role = "lending_market"
	RoleLendingMarketAuthority    Role = "lending_market_authority"
	RoleReserve                   Role = "reserve"
	RoleReserveLiquidityMint      Role = "reserve_liquidity_mint"
	RoleReserveLiquiditySupply    Role = "reserve_liquidity_supply"
	RoleFeeReceiver               Role = "fee_receiver"
	RoleReserveCollateralMint     Role = "reserve_collateral_mint"
	RoleReserveCollateralSupply   Role = "reserve_collateral_supply"
	RoleUserMetadata              Role = "user_metadata"
	RoleReferrerUserMetadata      Role = "referrer_user_metadata"
	RoleObligation                Role = "obligation"
	RoleSeed1Account              Role = "seed1_account"
	RoleSeed2Account              Role = "seed2_account"
	RolePythOracle                Role = "pyth_oracle"
	RoleSwitchboardPriceOracle    Role = "switchboard_price_oracle"
	RoleSwitchboardTwapOracle     Role = "switchboard_twap_oracle"
	RoleScopePrices               Role = "scope_prices"
	RoleUserSourceLiquidity       Role = "user_source_liquidity"
	RolePlaceholderUserCollateral Role = "placeholder_user_destination_collateral"
	RoleTokenProgram              Role = "token_program"
	RoleSystemProgram             Role = "system_program"
	RoleRent                      Role = "rent"
	RoleInstructionSysvar         Role = "instruction_sysvar_account"
)

// AccountSpec 布局中的一个槽位
type AccountSpec struct {
	Role       Role
	IsSigner   bool
	IsWritable bool
}

// Layout 一条指令的完整账户布局，顺序即链上校验顺序
type Layout []AccountSpec

// Bind 按布局顺序把角色映射成 AccountMeta，缺任何一个角色都报错
func (l Layout) Bind(accounts map[Role]types.Pubkey) ([]domain.AccountMeta, error) {
	metas := make([]domain.AccountMeta, len(l))
	for i, spec := range l {
		key, ok := accounts[spec.Role]
		if !ok {
			return nil, fmt.Errorf("%w: #%d %s", ErrMissingAccount, i, spec.Role)
		}
		metas[i] = domain.AccountMeta{
			Pubkey:     key,
			IsSigner:   spec.IsSigner,
			IsWritable: spec.IsWritable,
		}
	}
	return metas, nil
}

func signerWritable(role Role) AccountSpec {
	return AccountSpec{Role: role, IsSigner: true, IsWritable: true}
}
func signer(role Role) AccountSpec   { return AccountSpec{Role: role, IsSigner: true} }
func writable(role Role) AccountSpec { return AccountSpec{Role: role, IsWritable: true} }
func readonly(role Role) AccountSpec { return AccountSpec{Role: role} }

// init_lending_market 账户布局：
//
// #0 - Lending Market Owner（签名，付费）
// #1 - Lending Market（新账户，需预先分配空间）
// #2 - Lending Market Authority（PDA）
// #3 - System Program
// #4 - Rent Sysvar
var InitLendingMarketLayout = Layout{
	signerWritable(RoleOwner),
	writable(RoleLendingMarket),
	readonly(RoleLendingMarketAuthority),
	readonly(RoleSystemProgram),
	readonly(RoleRent),
}

// init_reserve 账户布局：
//
// #0  - Lending Market Owner（签名，付费）
// #1  - Lending Market
// #2  - Lending Market Authority（PDA）
// #3  - Reserve（新账户，需预先分配空间）
// #4  - Reserve Liquidity Mint
// #5  - Reserve Liquidity Supply（PDA）
// #6  - Fee Receiver（PDA）
// #7  - Reserve Collateral Mint（PDA）
// #8  - Reserve Collateral Supply（PDA）
// #9  - Rent Sysvar
// #10 - Token Program
// #11 - System Program
var InitReserveLayout = Layout{
	signerWritable(RoleOwner),
	readonly(RoleLendingMarket),
	readonly(RoleLendingMarketAuthority),
	writable(RoleReserve),
	readonly(RoleReserveLiquidityMint),
	writable(RoleReserveLiquiditySupply),
	writable(RoleFeeReceiver),
	writable(RoleReserveCollateralMint),
	writable(RoleReserveCollateralSupply),
	readonly(RoleRent),
	readonly(RoleTokenProgram),
	readonly(RoleSystemProgram),
}

// update_entire_reserve_config 账户布局：
//
// #0 - Lending Market Owner（签名）
// #1 - Lending Market
// #2 - Reserve
var UpdateEntireReserveConfigLayout = Layout{
	signer(RoleOwner),
	readonly(RoleLendingMarket),
	writable(RoleReserve),
}

// init_user_metadata 账户布局：
//
// #0 - Owner（签名）
// #1 - Fee Payer（签名，付费）
// #2 - User Metadata（PDA）
// #3 - Referrer User Metadata（可选，缺省为程序地址）
// #4 - Rent Sysvar
// #5 - System Program
var InitUserMetadataLayout = Layout{
	signer(RoleOwner),
	signerWritable(RoleFeePayer),
	writable(RoleUserMetadata),
	readonly(RoleReferrerUserMetadata),
	readonly(RoleRent),
	readonly(RoleSystemProgram),
}

// init_obligation 账户布局：
//
// #0 - Obligation Owner（签名）
// #1 - Fee Payer（签名，付费）
// #2 - Obligation（PDA）
// #3 - Lending Market
// #4 - Seed1 Account
// #5 - Seed2 Account
// #6 - Owner User Metadata（PDA）
// #7 - Token Program
// #8 - System Program
// #9 - Rent Sysvar
var InitObligationLayout = Layout{
	signer(RoleOwner),
	signerWritable(RoleFeePayer),
	writable(RoleObligation),
	readonly(RoleLendingMarket),
	readonly(RoleSeed1Account),
	readonly(RoleSeed2Account),
	readonly(RoleUserMetadata),
	readonly(RoleTokenProgram),
	readonly(RoleSystemProgram),
	readonly(RoleRent),
}

// refresh_reserve 账户布局：
//
// #0 - Reserve
// #1 - Lending Market
// #2 - Pyth Oracle（可选）
// #3 - Switchboard Price Oracle（可选）
// #4 - Switchboard Twap Oracle（可选）
// #5 - Scope Prices（可选）
var RefreshReserveLayout = Layout{
	writable(RoleReserve),
	readonly(RoleLendingMarket),
	readonly(RolePythOracle),
	readonly(RoleSwitchboardPriceOracle),
	readonly(RoleSwitchboardTwapOracle),
	readonly(RoleScopePrices),
}

// refresh_obligation 账户布局（其后追加 obligation 已存入的 reserve，只读）：
//
// #0 - Lending Market
// #1 - Obligation
var RefreshObligationLayout = Layout{
	readonly(RoleLendingMarket),
	writable(RoleObligation),
}

// deposit_reserve_liquidity_and_obligation_collateral 账户布局：
//
// #0  - Owner（签名）
// #1  - Obligation（PDA）
// #2  - Lending Market
// #3  - Lending Market Authority（PDA）
// #4  - Reserve
// #5  - Reserve Liquidity Supply（PDA）
// #6  - Reserve Collateral Mint（PDA）
// #7  - Reserve Destination Deposit Collateral（= Collateral Supply PDA）
// #8  - User Source Liquidity（用户 ATA）
// #9  - Placeholder User Destination Collateral（缺省为程序地址）
// #10 - Token Program
// #11 - Instructions Sysvar
var DepositLayout = Layout{
	signerWritable(RoleOwner),
	writable(RoleObligation),
	readonly(RoleLendingMarket),
	readonly(RoleLendingMarketAuthority),
	writable(RoleReserve),
	writable(RoleReserveLiquiditySupply),
	writable(RoleReserveCollateralMint),
	writable(RoleReserveCollateralSupply),
	writable(RoleUserSourceLiquidity),
	readonly(RolePlaceholderUserCollateral),
	readonly(RoleTokenProgram),
	readonly(RoleInstructionSysvar),
}
