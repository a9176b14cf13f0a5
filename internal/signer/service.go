package signer

import (
	"context"

	"github.com/pkg/errors"
)

// New constructs the signer variant selected by cfg.Type. Called once at
// process init; the returned handle is shared across all requests.
//
//nolint:ireturn
func New(ctx context.Context, cfg Config) (Signer, error) {
	switch cfg.Type {
	case "kms":
		return NewKMSSigner(ctx, cfg)
	case "", "local":
		return NewLocalSigner(cfg.PrivateKey)
	}

	return nil, errors.Errorf("unknown signer type %q", cfg.Type)
}
