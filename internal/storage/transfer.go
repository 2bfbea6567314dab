package storage

import (
	"context"
	"fmt"
)

// Transfer copies the snapshot held by input into output
func Transfer(ctx context.Context, input, output Storage) error {
	snap, err := input.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}

	if err := snap.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	if err := output.Save(ctx, snap); err != nil {
		return fmt.Errorf("saving destination: %w", err)
	}
	return nil
}
