package journal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"klend-admin-sol/internal/logic/txsender"
	"klend-admin-sol/internal/types"
)

// ReceiptStatus 最近一次提交的状态
type ReceiptStatus int

const (
	StatusUnknown ReceiptStatus = iota // 无记录或记录已过期
	StatusSubmitted
	StatusFailed
)

func (s ReceiptStatus) String() string {
	switch s {
	case StatusSubmitted:
		return "submitted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Redis key 前缀
const receiptPrefix = "klend:receipt"

const defaultTTL = 72 * time.Hour

// Entry 日志中保存的一条回执
type Entry struct {
	Status      ReceiptStatus
	Signature   string
	SubmittedAt time.Time
	Err         string
}

// RedisReceiptJournal 以 (label, fee payer) 为 key 记录最近一次提交结果，带 TTL。
// 只做旁路记录，不参与提交判定。
type RedisReceiptJournal struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ txsender.ReceiptSink = (*RedisReceiptJournal)(nil)

func NewRedisReceiptJournal(rdb redis.Cmdable, ttl time.Duration) *RedisReceiptJournal {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisReceiptJournal{rdb: rdb, ttl: ttl}
}

func (j *RedisReceiptJournal) getKey(label string, feePayer types.Pubkey) string {
	return fmt.Sprintf("%s:%s:%s", receiptPrefix, label, feePayer)
}

// Record 覆盖写入最近一次结果并刷新 TTL
func (j *RedisReceiptJournal) Record(ctx context.Context, receipt txsender.Receipt) error {
	status := StatusSubmitted
	if !receipt.Succeeded() {
		status = StatusFailed
	}

	key := j.getKey(receipt.Label, receipt.FeePayer)
	_, err := j.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"status", int(status),
			"signature", receipt.Signature,
			"submitted_at", receipt.SubmittedAt.UnixMilli(),
			"err", receipt.Err,
		)
		pipe.Expire(ctx, key, j.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis record receipt %s: %w", key, err)
	}
	return nil
}

// Last 读取最近一次结果；无记录时返回 StatusUnknown
func (j *RedisReceiptJournal) Last(ctx context.Context, label string, feePayer types.Pubkey) (Entry, error) {
	key := j.getKey(label, feePayer)
	fields, err := j.rdb.HGetAll(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return Entry{Status: StatusUnknown}, nil
	case err != nil:
		return Entry{}, fmt.Errorf("redis get error: %w", err)
	case len(fields) == 0:
		return Entry{Status: StatusUnknown}, nil
	}

	entry := Entry{
		Signature: fields["signature"],
		Err:       fields["err"],
	}
	if v, err := strconv.Atoi(fields["status"]); err == nil {
		switch ReceiptStatus(v) {
		case StatusSubmitted, StatusFailed:
			entry.Status = ReceiptStatus(v)
		default:
			entry.Status = StatusUnknown // 容错处理
		}
	}
	if ms, err := strconv.ParseInt(fields["submitted_at"], 10, 64); err == nil {
		entry.SubmittedAt = time.UnixMilli(ms)
	}
	return entry, nil
}
