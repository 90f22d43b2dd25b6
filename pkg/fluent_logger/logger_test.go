package fluentlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_RequiresTagPrefix(t *testing.T) {
	client, err := NewClient(Config{Host: "127.0.0.1", Port: 24224})
	assert.Error(t, err)
	assert.Nil(t, client)
}
