// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/quixsi/core/internal/model"
)

// InviteDirectory resolves invite codes. It is read-only once loaded and
// safe for concurrent use.
type InviteDirectory interface {
	// Lookup returns false when no group uses the code. The match is exact
	// and case-sensitive.
	Lookup(ctx context.Context, code string) (*model.InviteGroup, bool)
	AllCodes(ctx context.Context) []string
}
