package sheets

import (
	"context"

	"driversdash/internal/core"
)

// BackupAppender mirrors entries one row at a time to an external sheet.
// The sheet is a one-way backup; the key-value store stays authoritative.
type BackupAppender interface {
	AppendEntry(ctx context.Context, e core.Entry) error
}
