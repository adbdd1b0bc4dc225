package utils

import (
	"encoding/binary"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// 消息类型前缀
const (
	EventTypeReceipt uint32 = 1 // 交易提交回执
)

const eventTypeSize = 4

var ErrShortEvent = errors.New("event shorter than type prefix")

// EncodeEvent 将 protobuf 消息编码为带事件类型前缀的二进制数据：
// - 前 4 字节为事件类型（uint32，小端序）
// - 后续为 protobuf 确定性序列化数据
func EncodeEvent(eventType uint32, msg proto.Message) ([]byte, error) {
	const extraBuffer = 32 // 多预留一些空间，降低 MarshalAppend 触发扩容的概率

	buf := make([]byte, eventTypeSize, eventTypeSize+proto.Size(msg)+extraBuffer)
	binary.LittleEndian.PutUint32(buf, eventType)

	opts := proto.MarshalOptions{Deterministic: true}
	result, err := opts.MarshalAppend(buf, msg)
	if err != nil {
		return nil, fmt.Errorf("EncodeEvent: marshal %T: %w", msg, err)
	}
	return result, nil
}

// DecodeEvent EncodeEvent 的逆过程，msg 为目标消息
func DecodeEvent(data []byte, msg proto.Message) (uint32, error) {
	if len(data) < eventTypeSize {
		return 0, ErrShortEvent
	}
	eventType := binary.LittleEndian.Uint32(data[:eventTypeSize])
	if err := proto.Unmarshal(data[eventTypeSize:], msg); err != nil {
		return eventType, fmt.Errorf("DecodeEvent: unmarshal %T: %w", msg, err)
	}
	return eventType, nil
}
