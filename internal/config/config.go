package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/pkg/logger"
	"klend-admin-sol/internal/types"
)

type LogConfig struct {
	Format   string `yaml:"format"`   // 日志格式，支持 "console" 或 "json"
	LogDir   string `yaml:"log_dir"`  // 日志目录（可为相对路径或绝对路径）
	Level    string `yaml:"level"`    // 日志级别：debug / info / warn / error
	Compress bool   `yaml:"compress"` // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// SolanaConfig RPC 与目标程序
type SolanaConfig struct {
	Endpoint  string `yaml:"endpoint"`   // RPC 地址，例如 https://api.devnet.solana.com
	ProgramID string `yaml:"program_id"` // klend 程序地址，为空时使用主网部署地址（本地网络部署时覆盖）
}

// PayerConfig 签名账户；只支持 base58 私钥，不读取 keypair 文件
type PayerConfig struct {
	SecretKey string `yaml:"secret_key"` // base58 编码的 64 字节私钥
}

// KafkaProducerConfig 回执投递配置；brokers 为空时不启用
type KafkaProducerConfig struct {
	Brokers    string `yaml:"brokers"`    // Kafka broker 地址，多个用英文逗号分隔
	BatchSize  int    `yaml:"batch_size"` // 批处理大小（单位字节）
	LingerMs   int    `yaml:"linger_ms"`  // 批处理最大延迟（毫秒）
	Topic      string `yaml:"topic"`      // 回执 topic
	Partitions int    `yaml:"partitions"` // 回执 topic 分区数
}

func (c *KafkaProducerConfig) Enabled() bool {
	return c.Brokers != ""
}

// RedisConfig 回执日志；addr 为空时不启用
type RedisConfig struct {
	Addr     string `yaml:"addr"`      // Redis 地址，例如 127.0.0.1:6379
	TTLHours int    `yaml:"ttl_hours"` // 回执保留时长（小时）
}

func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func (c *RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// TimeConfig 表示各种超时配置（单位：毫秒）
type TimeConfig struct {
	SubmitTimeoutMs      int `yaml:"submit_timeout_ms"`       // 单笔交易从取 blockhash 到发送完成的最大耗时
	ReceiptSendTimeoutMs int `yaml:"receipt_send_timeout_ms"` // 单条回执发送到 Kafka 并等待 ack 的超时时间
}

func (c *TimeConfig) SubmitTimeout() time.Duration {
	return time.Duration(c.SubmitTimeoutMs) * time.Millisecond
}

func (c *TimeConfig) ReceiptSendTimeout() time.Duration {
	return time.Duration(c.ReceiptSendTimeoutMs) * time.Millisecond
}

// Config 主配置
type Config struct {
	LogConf           LogConfig           `yaml:"logger"`         // 日志配置
	Solana            SolanaConfig        `yaml:"solana"`         // RPC 配置
	Payer             PayerConfig         `yaml:"payer"`          // 签名账户
	Oracles           map[string]string   `yaml:"oracles"`        // symbol → Pyth 价格账户，覆盖/补充默认表
	KafkaProducerConf KafkaProducerConfig `yaml:"kafka_producer"` // Kafka 生产者配置
	Redis             RedisConfig         `yaml:"redis"`          // Redis 配置
	TimeConf          TimeConfig          `yaml:"time_conf"`      // 时间相关配置
}

const (
	defaultSubmitTimeoutMs      = 30_000
	defaultReceiptSendTimeoutMs = 3_000
	defaultReceiptTopic         = "klend-receipts"
	defaultReceiptPartitions    = 1
	defaultReceiptTTLHours      = 72
)

var ErrInvalidConfig = errors.New("invalid config")

// Load 读取 yaml 配置，补全默认值并校验
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrInvalidConfig, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.TimeConf.SubmitTimeoutMs <= 0 {
		c.TimeConf.SubmitTimeoutMs = defaultSubmitTimeoutMs
	}
	if c.TimeConf.ReceiptSendTimeoutMs <= 0 {
		c.TimeConf.ReceiptSendTimeoutMs = defaultReceiptSendTimeoutMs
	}
	if c.KafkaProducerConf.Topic == "" {
		c.KafkaProducerConf.Topic = defaultReceiptTopic
	}
	if c.KafkaProducerConf.Partitions <= 0 {
		c.KafkaProducerConf.Partitions = defaultReceiptPartitions
	}
	if c.Redis.TTLHours <= 0 {
		c.Redis.TTLHours = defaultReceiptTTLHours
	}
}

// Validate 地址类字段必须是合法 base58 公钥
func (c *Config) Validate() error {
	if c.Solana.Endpoint == "" {
		return fmt.Errorf("%w: solana.endpoint is required", ErrInvalidConfig)
	}
	if _, err := c.ProgramID(); err != nil {
		return err
	}
	if _, err := c.OracleSymbols(); err != nil {
		return err
	}
	return nil
}

// ProgramID 未配置时返回主网 klend 地址
func (c *Config) ProgramID() (types.Pubkey, error) {
	if c.Solana.ProgramID == "" {
		return consts.KlendProgram, nil
	}
	key, err := types.TryPubkeyFromBase58(c.Solana.ProgramID)
	if err != nil {
		return types.Pubkey{}, fmt.Errorf("%w: solana.program_id: %v", ErrInvalidConfig, err)
	}
	return key, nil
}

// OracleSymbols 默认表叠加配置中的 oracles（同名以配置为准）
func (c *Config) OracleSymbols() (map[string]types.Pubkey, error) {
	symbols := consts.DefaultOracleSymbols()
	for symbol, addr := range c.Oracles {
		key, err := types.TryPubkeyFromBase58(addr)
		if err != nil {
			return nil, fmt.Errorf("%w: oracles.%s: %v", ErrInvalidConfig, symbol, err)
		}
		symbols[symbol] = key
	}
	return symbols, nil
}
