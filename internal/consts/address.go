package consts

import "klend-admin-sol/internal/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	// Programs
	SystemProgramStr          = "11111111111111111111111111111111"
	TokenProgramStr           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	TokenProgram2022Str       = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	AssociatedTokenProgramStr = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"

	// Sysvars
	SysvarRentStr         = "SysvarRent111111111111111111111111111111111"
	SysvarInstructionsStr = "Sysvar1nstructions1111111111111111111111111"

	// Lending: Kamino Lend 主网部署
	KlendProgramStr = "KLend2g3cP87fffoy8q1mQqGKjrxjC8boSyAYavgmjD"

	// 常用 Mint
	WSOLMintStr = "So11111111111111111111111111111111111111112"
	USDCMintStr = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	USDTMintStr = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
	MSOLMintStr = "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So"
)

var (
	// Programs
	SystemProgram          = types.PubkeyFromBase58(SystemProgramStr)
	TokenProgram           = types.PubkeyFromBase58(TokenProgramStr)
	TokenProgram2022       = types.PubkeyFromBase58(TokenProgram2022Str)
	AssociatedTokenProgram = types.PubkeyFromBase58(AssociatedTokenProgramStr)

	// Sysvars
	SysvarRent         = types.PubkeyFromBase58(SysvarRentStr)
	SysvarInstructions = types.PubkeyFromBase58(SysvarInstructionsStr)

	KlendProgram = types.PubkeyFromBase58(KlendProgramStr)

	WSOLMint = types.PubkeyFromBase58(WSOLMintStr)
	USDCMint = types.PubkeyFromBase58(USDCMintStr)
	USDTMint = types.PubkeyFromBase58(USDTMintStr)
	MSOLMint = types.PubkeyFromBase58(MSOLMintStr)
)
