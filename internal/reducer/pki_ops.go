package reducer

import (
	"context"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/pki"
)

// CreateOrgCA issues orgID's intermediate CA, signed by the active root.
func (d *Dispatcher) CreateOrgCA(ctx context.Context, rootKey []byte, orgID, orgName string) (string, error) {
	certPEM, err := d.pki.CreateOrgCA(ctx, rootKey, orgID, orgName)
	if err != nil {
		return "", apperrors.Wrap(err, "create_org_ca")
	}
	return certPEM, nil
}

// IssueMemberCert issues a leaf certificate for memberEmail under orgID's CA.
func (d *Dispatcher) IssueMemberCert(ctx context.Context, rootKey []byte, orgID, memberEmail string) (certPEM, keyPEM string, err error) {
	certPEM, keyPEM, err = d.pki.IssueMemberCert(ctx, rootKey, orgID, memberEmail)
	if err != nil {
		return "", "", apperrors.Wrap(err, "issue_member_cert")
	}
	return certPEM, keyPEM, nil
}

// RevokeCert flips a certificate's status to revoked and appends a CRL entry.
func (d *Dispatcher) RevokeCert(ctx context.Context, orgID, serialHex, reason string) error {
	return apperrors.Wrap(d.pki.RevokeCert(ctx, orgID, serialHex, reason), "revoke_cert")
}

// GetCRL builds orgID's current CRL envelope.
func (d *Dispatcher) GetCRL(ctx context.Context, orgID string) (*pki.CrlEnvelope, error) {
	envelope, err := d.pki.GetCRL(ctx, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "get_crl")
	}
	return envelope, nil
}

// CheckOCSP reports the revocation status of one certificate serial.
func (d *Dispatcher) CheckOCSP(ctx context.Context, orgID, serialHex string) (*pki.OCSPResult, error) {
	result, err := d.pki.CheckOCSP(ctx, orgID, serialHex)
	if err != nil {
		return nil, apperrors.Wrap(err, "check_ocsp")
	}
	return result, nil
}

// GetRootCA returns the active root certificate in PEM form.
func (d *Dispatcher) GetRootCA(ctx context.Context) (string, error) {
	certPEM, err := d.pki.GetRootCA(ctx)
	if err != nil {
		return "", apperrors.Wrap(err, "get_root_ca")
	}
	return certPEM, nil
}
