package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/zeromicro/go-zero/core/logx"

	"klend-admin-sol/internal/config"
	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/logic/reserveconfig"
	"klend-admin-sol/internal/logic/txsender"
	"klend-admin-sol/internal/pkg/logger"
	"klend-admin-sol/internal/svc"
	"klend-admin-sol/internal/types"
)

var (
	configFile = flag.String("f", "etc/klend.yaml", "the config file")
	op         = flag.String("op", "", "create-market | init-reserve | update-config | init-user | check-user | init-obligation | deposit")
	symbol     = flag.String("symbol", "", "token symbol used for oracle lookup and reserve name")
	amount     = flag.Uint64("amount", 0, "deposit amount in base units")

	// 地址类参数统一经 parseKeys 读取
	_ = flag.String("market", "", "lending market address")
	_ = flag.String("reserve", "", "reserve address")
	_ = flag.String("mint", "", "reserve liquidity mint")
	_ = flag.String("token-program", consts.TokenProgramStr, "token program of the mint")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			exit(1)
		}
	}()

	flag.Parse()

	c, err := config.Load(*configFile)
	if err != nil {
		logx.Errorf("load config: %v", err)
		os.Exit(1)
	}
	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		logx.Errorf("init logger: %v", err)
		os.Exit(1)
	}

	serviceContext, err := svc.NewServiceContext(c)
	if err != nil {
		logx.Errorf("init service context: %v", err)
		exit(1)
	}

	// 收到退出信号时取消正在进行的 RPC 调用
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logx.Infof("Running %s against %s", *op, c.Solana.Endpoint)
	err = run(ctx, serviceContext)
	stop()
	serviceContext.Close()
	if err != nil {
		logx.Errorf("%s failed: %v", *op, err)
		exit(1)
	}
	logger.Sync()
}

// exit 退出前刷新日志缓冲，os.Exit 不会执行 defer
func exit(code int) {
	logger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, sc *svc.ServiceContext) error {
	lending := sc.Lending
	payer := sc.Payer

	switch *op {
	case "create-market":
		market := sdktypes.NewAccount()
		receipt, err := lending.CreateLendingMarket(ctx, payer, market)
		return report(receipt, err, "market", market.PublicKey.ToBase58())

	case "init-reserve":
		keys, err := parseKeys("market", "mint", "token-program")
		if err != nil {
			return err
		}
		reserve := sdktypes.NewAccount()
		receipt, err := lending.InitReserve(ctx, payer, keys[0], reserve, keys[1], keys[2])
		return report(receipt, err, "reserve", reserve.PublicKey.ToBase58())

	case "update-config":
		keys, err := parseKeys("market", "reserve")
		if err != nil {
			return err
		}
		receipt, err := lending.UpdateReserveConfig(ctx, payer, keys[0], keys[1], *symbol, reserveconfig.DefaultParams())
		return report(receipt, err, "", "")

	case "init-user":
		receipt, err := lending.InitUserMetadata(ctx, payer)
		return report(receipt, err, "", "")

	case "check-user":
		ok, err := lending.IsUserMetadataInitialized(ctx, types.PubkeyFromCommon(payer.PublicKey))
		if err != nil {
			return err
		}
		fmt.Printf("user metadata initialized: %v\n", ok)
		return nil

	case "init-obligation":
		keys, err := parseKeys("market")
		if err != nil {
			return err
		}
		receipt, err := lending.InitObligation(ctx, payer, keys[0])
		return report(receipt, err, "", "")

	case "deposit":
		keys, err := parseKeys("market", "reserve", "mint", "token-program")
		if err != nil {
			return err
		}
		receipt, err := lending.DepositReserveLiquidityAndObligationCollateral(ctx, payer, keys[0], keys[1], keys[2], *symbol, *amount, keys[3])
		return report(receipt, err, "", "")

	default:
		flag.Usage()
		return fmt.Errorf("unknown op %q", *op)
	}
}

// parseKeys 按 flag 名依次解析 base58 地址，错误信息带上 flag 名
func parseKeys(names ...string) ([]types.Pubkey, error) {
	keys := make([]types.Pubkey, 0, len(names))
	for _, name := range names {
		f := flag.Lookup(name)
		if f == nil {
			return nil, fmt.Errorf("unknown flag -%s", name)
		}
		key, err := types.TryPubkeyFromBase58(f.Value.String())
		if err != nil {
			return nil, fmt.Errorf("-%s: %w", name, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func report(receipt txsender.Receipt, err error, createdName, createdAddr string) error {
	if err != nil {
		return err
	}
	if createdName != "" {
		fmt.Printf("%s: %s\n", createdName, createdAddr)
	}
	fmt.Printf("signature: %s\n", receipt.Signature)
	return nil
}
