package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-dao/timelock-admin/internal/api"
	"github.com/arcadia-dao/timelock-admin/internal/test"
	"github.com/arcadia-dao/timelock-admin/internal/util/command"
)

func TestWithServer(t *testing.T) {
	cfg := test.DefaultTestConfig(t)

	var testError = errors.New("test error")

	resultErr := command.WithServer(context.Background(), cfg, func(ctx context.Context, s *api.Server) error {
		require.NotNil(t, s.Signer)

		pub, err := s.Signer.PublicKeyUncompressed(ctx)
		require.NoError(t, err)
		assert.Len(t, pub, 65)

		return testError
	})

	assert.Equal(t, testError, resultErr)
}
