package svc

import (
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/client"
	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/redis/go-redis/v9"

	"klend-admin-sol/internal/config"
	"klend-admin-sol/internal/journal"
	"klend-admin-sol/internal/logic/instruction"
	"klend-admin-sol/internal/logic/reserveconfig"
	"klend-admin-sol/internal/logic/txsender"
	"klend-admin-sol/internal/mq"
	"klend-admin-sol/internal/pkg/logger"
	"klend-admin-sol/internal/service"
)

// ServiceContext 包含 CLI 运行所需的全部资源
type ServiceContext struct {
	Config   *config.Config
	Payer    sdktypes.Account
	Client   *client.Client
	Producer *kafka.Producer // 未配置 Kafka 时为 nil
	Redis    *redis.Client   // 未配置 Redis 时为 nil
	Journal  *journal.RedisReceiptJournal
	Lending  *service.LendingService
}

// NewServiceContext 按配置组装依赖；Kafka / Redis 为可选回执通道
func NewServiceContext(c *config.Config) (*ServiceContext, error) {
	// 1. 签名账户
	if c.Payer.SecretKey == "" {
		return nil, errors.New("payer.secret_key is required")
	}
	payer, err := sdktypes.AccountFromBase58(c.Payer.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("load payer: %w", err)
	}

	programID, err := c.ProgramID()
	if err != nil {
		return nil, err
	}
	oracles, err := c.OracleSymbols()
	if err != nil {
		return nil, err
	}

	ctx := &ServiceContext{
		Config: c,
		Payer:  payer,
		Client: client.NewClient(c.Solana.Endpoint),
	}

	// 2. 回执通道
	var sinks []txsender.ReceiptSink
	if c.KafkaProducerConf.Enabled() {
		producer, err := mq.NewKafkaProducer(c.KafkaProducerConf)
		if err != nil {
			logger.Errorf("Kafka producer 初始化失败: %v", err)
			return nil, err
		}
		ctx.Producer = producer
		sinks = append(sinks, mq.NewReceiptPublisher(producer, c.KafkaProducerConf.Topic,
			c.KafkaProducerConf.Partitions, c.TimeConf.ReceiptSendTimeout()))
	}
	if c.Redis.Enabled() {
		ctx.Redis = redis.NewClient(&redis.Options{Addr: c.Redis.Addr})
		ctx.Journal = journal.NewRedisReceiptJournal(ctx.Redis, c.Redis.TTL())
		sinks = append(sinks, ctx.Journal)
	}

	// 3. 业务服务
	ctx.Lending = service.NewLendingService(
		instruction.NewBuilder(programID),
		txsender.NewOrchestrator(ctx.Client, sinks...),
		reserveconfig.NewOracleTable(oracles),
		c.TimeConf.SubmitTimeout(),
	)

	logger.Infof("服务上下文初始化完成, program: %s, payer: %s, 回执通道: %d", programID, payer.PublicKey.ToBase58(), len(sinks))
	return ctx, nil
}

// Close 关闭服务上下文中的资源
func (ctx *ServiceContext) Close() {
	if ctx.Producer != nil {
		ctx.Producer.Flush(1000)
		ctx.Producer.Close()
	}
	if ctx.Redis != nil {
		_ = ctx.Redis.Close()
	}
}
