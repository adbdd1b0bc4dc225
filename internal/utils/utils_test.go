package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestEncodeDecodeEvent(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]any{
		"label":     "init_reserve",
		"signature": "5hHxQWz2",
		"count":     2,
	})
	require.NoError(t, err)

	data, err := EncodeEvent(EventTypeReceipt, msg)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0}, data[:4])

	again, err := EncodeEvent(EventTypeReceipt, msg)
	require.NoError(t, err)
	assert.Equal(t, data, again, "确定性序列化")

	var decoded structpb.Struct
	eventType, err := DecodeEvent(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, EventTypeReceipt, eventType)
	assert.True(t, proto.Equal(msg, &decoded))

	_, err = DecodeEvent([]byte{1, 0}, &decoded)
	assert.ErrorIs(t, err, ErrShortEvent)
}

func TestPartitionHashBytes(t *testing.T) {
	key := make([]byte, 32)
	key[7], key[15], key[19], key[27] = 0, 0, 0, 7

	assert.Equal(t, uint32(1), PartitionHashBytes(key, 3))
	assert.Equal(t, PartitionHashBytes(key, 3), PartitionHashBytes(key, 3))
	assert.Zero(t, PartitionHashBytes(key, 0))
	assert.Zero(t, PartitionHashBytes(key[:27], 3))
}
