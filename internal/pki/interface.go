package pki

import "context"

// Repository persists certificate and CRL records.
type Repository interface {
	// GetActiveRoot returns the active root_ca row, or apperrors.ErrNotFound.
	GetActiveRoot(ctx context.Context) (*Certificate, error)

	// GetActiveOrgCA returns the active org_ca row for orgID, or
	// apperrors.ErrNotFound.
	GetActiveOrgCA(ctx context.Context, orgID string) (*Certificate, error)

	// GetBySerial looks up a certificate by its serial within an org's
	// issuance scope (the root certificate is stored under the system org
	// ID, "_system").
	GetBySerial(ctx context.Context, orgID, serialHex string) (*Certificate, error)

	// Create inserts a new certificate row.
	Create(ctx context.Context, cert *Certificate) error

	// UpdateStatus flips a certificate's status in place.
	UpdateStatus(ctx context.Context, id int64, status string) error

	// CreateCrlEntry appends a revocation record.
	CreateCrlEntry(ctx context.Context, entry *CrlEntry) error

	// ListCrlEntries returns every revocation recorded for orgID.
	ListCrlEntries(ctx context.Context, orgID string) ([]*CrlEntry, error)

	// GetCrlEntryBySerial returns the revocation record for a serial, or
	// apperrors.ErrNotFound if the certificate was never revoked.
	GetCrlEntryBySerial(ctx context.Context, orgID, serialHex string) (*CrlEntry, error)
}
