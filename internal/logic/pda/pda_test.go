package pda

import (
	"sync"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/types"
)

var (
	testMarket  = types.PubkeyFromBase58("7u3HeHxYDLhnCoErrtycNokbQYbWGzLs6JSDqGAv5PfF")
	testMarket2 = types.Pubkey{0x2a, 0x01, 0x07}
	testUser    = types.PubkeyFromBase58("9DrvZvyWh1HuAoZxvYWMvkf2XCzryCpGgHqrMjyDWpmo")
)

func TestDerive_MatchesCreateProgramAddress(t *testing.T) {
	d := New(consts.KlendProgram)

	addr, err := d.MarketAuthority(testMarket)
	require.NoError(t, err)

	// 带上 bump 之后 create_program_address 必须得到同一地址
	key, err := common.CreateProgramAddress(
		[][]byte{[]byte("lma"), testMarket.Bytes(), {addr.Bump}},
		consts.KlendProgram.ToCommon(),
	)
	require.NoError(t, err)
	assert.Equal(t, addr.Key, types.PubkeyFromCommon(key))
}

func TestMarketAuthority_Deterministic(t *testing.T) {
	d := New(consts.KlendProgram)

	first, err := d.MarketAuthority(testMarket)
	require.NoError(t, err)
	second, err := d.MarketAuthority(testMarket)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := d.MarketAuthority(testMarket2)
	require.NoError(t, err)
	assert.NotEqual(t, first.Key, other.Key, "不同 market 的 authority 必须不同")
}

func TestDerive_ScopedByProgram(t *testing.T) {
	a, err := New(consts.KlendProgram).MarketAuthority(testMarket)
	require.NoError(t, err)
	b, err := New(consts.TokenProgram).MarketAuthority(testMarket)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, b.Key)
}

func TestDerive_TooLongSeed(t *testing.T) {
	d := New(consts.KlendProgram)
	_, err := d.Derive(make([]byte, 33))
	assert.ErrorIs(t, err, ErrDerivation)
}

func TestReserveVaults_DistinctPerRole(t *testing.T) {
	d := New(consts.KlendProgram)

	vaults, err := d.ReserveVaults(testMarket, consts.USDCMint)
	require.NoError(t, err)

	seen := map[types.Pubkey]struct{}{
		vaults.LiquiditySupply:  {},
		vaults.CollateralMint:   {},
		vaults.CollateralSupply: {},
		vaults.FeeVault:         {},
	}
	assert.Len(t, seen, 4, "四个 vault 的 seed 前缀不同，地址必须互不相同")

	feeVault, err := d.ReserveFeeVault(testMarket, consts.USDCMint)
	require.NoError(t, err)
	assert.Equal(t, feeVault.Key, vaults.FeeVault)

	otherMint, err := d.ReserveVaults(testMarket, consts.WSOLMint)
	require.NoError(t, err)
	assert.NotEqual(t, vaults.LiquiditySupply, otherMint.LiquiditySupply)
}

func TestObligation_Seeds(t *testing.T) {
	d := New(consts.KlendProgram)

	canonical, err := d.DefaultObligation(testUser, testMarket)
	require.NoError(t, err)

	again, err := d.Obligation(ObligationSeeds{Tag: 0, ID: 0, Owner: testUser, Market: testMarket})
	require.NoError(t, err)
	assert.Equal(t, canonical, again)

	tagged, err := d.Obligation(ObligationSeeds{Tag: 1, Owner: testUser, Market: testMarket})
	require.NoError(t, err)
	assert.NotEqual(t, canonical.Key, tagged.Key, "tag 不同时仓位地址必须不同")

	seeded := DefaultObligationSeeds(testUser, testMarket)
	seeded.Seed1[31] = 1
	withSeed, err := d.Obligation(seeded)
	require.NoError(t, err)
	assert.NotEqual(t, canonical.Key, withSeed.Key)
}

func TestUserMetadata(t *testing.T) {
	d := New(consts.KlendProgram)

	meta, err := d.UserMetadata(testUser)
	require.NoError(t, err)
	authority, err := d.MarketAuthority(testUser)
	require.NoError(t, err)
	assert.NotEqual(t, meta.Key, authority.Key, "seed 前缀不同不应碰撞")
}

func TestAssociatedTokenAddress(t *testing.T) {
	ata, err := AssociatedTokenAddress(testUser, consts.USDCMint, consts.TokenProgram)
	require.NoError(t, err)

	again, err := AssociatedTokenAddress(testUser, consts.USDCMint, consts.TokenProgram)
	require.NoError(t, err)
	assert.Equal(t, ata, again)
	assert.NotEqual(t, testUser, ata)

	// SPL Token 下与 SDK 的 ATA 推导一致
	sdkATA, _, err := common.FindAssociatedTokenAddress(testUser.ToCommon(), consts.USDCMint.ToCommon())
	require.NoError(t, err)
	assert.Equal(t, types.PubkeyFromCommon(sdkATA), ata)
}

func TestAssociatedTokenAddress_Token2022(t *testing.T) {
	ata, err := AssociatedTokenAddress(testUser, consts.USDCMint, consts.TokenProgram2022)
	require.NoError(t, err)

	legacy, err := AssociatedTokenAddress(testUser, consts.USDCMint, consts.TokenProgram)
	require.NoError(t, err)
	assert.NotEqual(t, legacy, ata, "token program 不同，ATA 不同")

	want, _, err := common.FindProgramAddress(
		[][]byte{testUser.Bytes(), common.Token2022ProgramID.Bytes(), consts.USDCMint.Bytes()},
		common.SPLAssociatedTokenAccountProgramID,
	)
	require.NoError(t, err)
	assert.Equal(t, types.PubkeyFromCommon(want), ata)
}

func TestDerive_Concurrent(t *testing.T) {
	d := New(consts.KlendProgram)
	want, err := d.DefaultObligation(testUser, testMarket)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Address, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = d.DefaultObligation(testUser, testMarket)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
