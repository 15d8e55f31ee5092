package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectRedisUnreachableReturnsNil(t *testing.T) {
	rdb, err := ConnectRedis(context.Background(), "127.0.0.1:1", "", 0)

	assert.Error(t, err)
	assert.Nil(t, rdb)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "user:session:u-1", SessionKey("u-1"))
}
