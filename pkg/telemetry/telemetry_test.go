package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false, ServiceName: "test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: true})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewResource(t *testing.T) {
	res, err := newResource(context.Background(), Config{ServiceName: "produce-store-api"})
	require.NoError(t, err)

	found := false
	for _, kv := range res.Attributes() {
		if kv.Key == "service.name" {
			found = true
			assert.Equal(t, "produce-store-api", kv.Value.AsString())
		}
	}
	assert.True(t, found)
}
