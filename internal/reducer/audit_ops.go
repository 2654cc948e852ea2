package reducer

import (
	"context"

	"github.com/EnvSync-Cloud/envsync/internal/audit"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

// CreateAuditEntry appends a new hash-chained entry to orgID's audit log.
func (d *Dispatcher) CreateAuditEntry(ctx context.Context, orgID, userID, action, details, message string) (*audit.Entry, error) {
	entry, err := d.audit.Append(ctx, orgID, userID, action, details, message)
	if err != nil {
		return nil, apperrors.Wrap(err, "create_audit_entry")
	}
	return entry, nil
}
