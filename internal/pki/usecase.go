package pki

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"time"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	cryptoService "github.com/EnvSync-Cloud/envsync/internal/crypto/service"
	cryptoUsecase "github.com/EnvSync-Cloud/envsync/internal/crypto/usecase"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/sequence"
)

func rootPrivateKeyAAD() []byte {
	return []byte("pki:root_ca:private_key")
}

func orgCAPrivateKeyAAD(orgID string) []byte {
	return fmt.Appendf(nil, "pki:%s:org_ca:private_key", orgID)
}

func memberPrivateKeyAAD(orgID, email string) []byte {
	return fmt.Appendf(nil, "pki:%s:member:%s:private_key", orgID, email)
}

// UseCase implements the PKI pipeline: root initialization, org CA and
// member issuance, revocation, and CRL/OCSP status lookups.
type UseCase struct {
	repo        Repository
	sequences   *sequence.UseCase
	envelope    cryptoUsecase.EnvelopeUseCase
	aeadManager cryptoService.AEADManager
}

// NewUseCase builds the PKI UseCase.
func NewUseCase(repo Repository, sequences *sequence.UseCase, envelope cryptoUsecase.EnvelopeUseCase, aeadManager cryptoService.AEADManager) *UseCase {
	return &UseCase{repo: repo, sequences: sequences, envelope: envelope, aeadManager: aeadManager}
}

func (u *UseCase) cipherCurrent(ctx context.Context, rootKey []byte, orgID string) (cryptoService.AEAD, int, error) {
	dekPlain, version, err := u.envelope.GetOrCreateDEK(ctx, rootKey, orgID, scopeID)
	if err != nil {
		return nil, 0, err
	}
	defer cryptoDomain.Zero(dekPlain)
	cipher, err := u.aeadManager.CreateCipher(dekPlain, cryptoDomain.AESGCM)
	return cipher, version, err
}

func (u *UseCase) cipherForVersion(ctx context.Context, rootKey []byte, orgID string, version int) (cryptoService.AEAD, error) {
	dekPlain, err := u.envelope.GetDEKAtVersion(ctx, rootKey, orgID, scopeID, version)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(dekPlain)
	return u.aeadManager.CreateCipher(dekPlain, cryptoDomain.AESGCM)
}

// decryptIssuerKey loads and decrypts the private key belonging to an issuer
// row (root or org CA), returning the parsed key and the issuer's own parsed
// certificate.
func (u *UseCase) decryptIssuerKey(ctx context.Context, rootKey []byte, cert *Certificate, aad []byte) (*rsa.PrivateKey, *x509.Certificate, error) {
	cipher, err := u.cipherForVersion(ctx, rootKey, cert.OrgID, cert.KeyVersion)
	if err != nil {
		return nil, nil, err
	}
	keyDER, err := cipher.Decrypt(cert.EncryptedPrivateKey, cert.PrivateKeyNonce, aad)
	if err != nil {
		return nil, nil, err
	}
	key, err := parsePrivateKey(keyDER)
	if err != nil {
		return nil, nil, err
	}
	issuerCert, err := parseCertificate(cert.CertDER)
	if err != nil {
		return nil, nil, err
	}
	return key, issuerCert, nil
}

// InitRootCA generates the root keypair and self-signed certificate if one
// is not already active. Returns the root certificate in PEM form.
func (u *UseCase) InitRootCA(ctx context.Context, rootKey []byte) (string, error) {
	if existing, err := u.repo.GetActiveRoot(ctx); err == nil {
		return pemEncode(existing.CertDER, pemLabelCertificate), nil
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	if err := u.sequences.Init(ctx); err != nil {
		return "", err
	}

	key, err := generateKeypair()
	if err != nil {
		return "", err
	}
	serial, err := u.sequences.Next(ctx, sequence.CertSerial)
	if err != nil {
		return "", err
	}
	der, err := buildRootCertificate(key, serial)
	if err != nil {
		return "", err
	}

	cipher, version, err := u.cipherCurrent(ctx, rootKey, systemOrgID)
	if err != nil {
		return "", err
	}
	keyDER, err := marshalPrivateKey(key)
	if err != nil {
		return "", err
	}
	ciphertext, nonce, err := cipher.Encrypt(keyDER, rootPrivateKeyAAD())
	if err != nil {
		return "", err
	}

	cert := &Certificate{
		OrgID:               systemOrgID,
		CertType:            CertTypeRoot,
		SerialHex:           serialHex(serial),
		SubjectCN:           rootCN,
		CertDER:             der,
		EncryptedPrivateKey: ciphertext,
		PrivateKeyNonce:     nonce,
		KeyVersion:          version,
		Status:              StatusActive,
	}
	if err := u.repo.Create(ctx, cert); err != nil {
		return "", err
	}
	return pemEncode(der, pemLabelCertificate), nil
}

// GetRootCA returns the active root certificate in PEM form.
func (u *UseCase) GetRootCA(ctx context.Context) (string, error) {
	root, err := u.repo.GetActiveRoot(ctx)
	if err != nil {
		return "", err
	}
	return pemEncode(root.CertDER, pemLabelCertificate), nil
}

// CreateOrgCA issues the intermediate CA for orgID, signed by the active
// root. Fails with apperrors.ErrStateViolation if an active org CA already
// exists.
func (u *UseCase) CreateOrgCA(ctx context.Context, rootKey []byte, orgID, orgName string) (string, error) {
	if _, err := u.repo.GetActiveOrgCA(ctx, orgID); err == nil {
		return "", apperrors.ErrStateViolation
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	root, err := u.repo.GetActiveRoot(ctx)
	if err != nil {
		return "", err
	}
	rootPrivKey, rootCert, err := u.decryptIssuerKey(ctx, rootKey, root, rootPrivateKeyAAD())
	if err != nil {
		return "", err
	}

	orgKey, err := generateKeypair()
	if err != nil {
		return "", err
	}
	serial, err := u.sequences.Next(ctx, sequence.CertSerial)
	if err != nil {
		return "", err
	}
	der, err := buildSubCACertificate(rootCert, rootPrivKey, &orgKey.PublicKey, orgName, serial)
	if err != nil {
		return "", err
	}

	cipher, version, err := u.cipherCurrent(ctx, rootKey, orgID)
	if err != nil {
		return "", err
	}
	keyDER, err := marshalPrivateKey(orgKey)
	if err != nil {
		return "", err
	}
	ciphertext, nonce, err := cipher.Encrypt(keyDER, orgCAPrivateKeyAAD(orgID))
	if err != nil {
		return "", err
	}

	cert := &Certificate{
		OrgID:               orgID,
		CertType:            CertTypeOrgCA,
		SerialHex:           serialHex(serial),
		SubjectCN:           orgName + " CA",
		CertDER:             der,
		EncryptedPrivateKey: ciphertext,
		PrivateKeyNonce:     nonce,
		KeyVersion:          version,
		Status:              StatusActive,
	}
	if err := u.repo.Create(ctx, cert); err != nil {
		return "", err
	}
	return pemEncode(der, pemLabelCertificate), nil
}

// IssueMemberCert issues a leaf certificate for memberEmail, signed by
// orgID's active org CA. Returns the certificate and private key, both PEM
// encoded.
func (u *UseCase) IssueMemberCert(ctx context.Context, rootKey []byte, orgID, memberEmail string) (certPEM, keyPEM string, err error) {
	orgCA, err := u.repo.GetActiveOrgCA(ctx, orgID)
	if err != nil {
		return "", "", err
	}
	orgPrivKey, orgCert, err := u.decryptIssuerKey(ctx, rootKey, orgCA, orgCAPrivateKeyAAD(orgID))
	if err != nil {
		return "", "", err
	}

	memberKey, err := generateKeypair()
	if err != nil {
		return "", "", err
	}
	serial, err := u.sequences.Next(ctx, sequence.CertSerial)
	if err != nil {
		return "", "", err
	}
	der, err := buildLeafCertificate(orgCert, orgPrivKey, &memberKey.PublicKey, memberEmail, serial)
	if err != nil {
		return "", "", err
	}

	cipher, version, err := u.cipherCurrent(ctx, rootKey, orgID)
	if err != nil {
		return "", "", err
	}
	keyDER, err := marshalPrivateKey(memberKey)
	if err != nil {
		return "", "", err
	}
	ciphertext, nonce, err := cipher.Encrypt(keyDER, memberPrivateKeyAAD(orgID, memberEmail))
	if err != nil {
		return "", "", err
	}

	cert := &Certificate{
		OrgID:               orgID,
		CertType:            CertTypeMember,
		SerialHex:           serialHex(serial),
		SubjectCN:           memberEmail,
		CertDER:             der,
		EncryptedPrivateKey: ciphertext,
		PrivateKeyNonce:     nonce,
		KeyVersion:          version,
		Status:              StatusActive,
	}
	if err := u.repo.Create(ctx, cert); err != nil {
		return "", "", err
	}
	return pemEncode(der, pemLabelCertificate), pemEncode(keyDER, pemLabelPrivateKey), nil
}

// RevokeCert flips a certificate's status and appends a CRL entry.
func (u *UseCase) RevokeCert(ctx context.Context, orgID, serialHexValue, reason string) error {
	cert, err := u.repo.GetBySerial(ctx, orgID, serialHexValue)
	if err != nil {
		return err
	}
	if err := u.repo.UpdateStatus(ctx, cert.ID, StatusRevoked); err != nil {
		return err
	}
	return u.repo.CreateCrlEntry(ctx, &CrlEntry{
		OrgID:     orgID,
		SerialHex: serialHexValue,
		Reason:    reason,
		RevokedAt: time.Now().UTC(),
	})
}

// GetCRL builds the CRL envelope for orgID, consuming one crl_number.
func (u *UseCase) GetCRL(ctx context.Context, orgID string) (*CrlEnvelope, error) {
	entries, err := u.repo.ListCrlEntries(ctx, orgID)
	if err != nil {
		return nil, err
	}
	crlNumber, err := u.sequences.Next(ctx, sequence.CrlNumber)
	if err != nil {
		return nil, err
	}

	revoked := make([]CrlSerialEntry, 0, len(entries))
	for _, e := range entries {
		revoked = append(revoked, CrlSerialEntry{
			SerialHex:       e.SerialHex,
			Reason:          e.Reason,
			RevokedAtMicros: e.RevokedAt.UnixMicro(),
		})
	}
	return &CrlEnvelope{
		OrgID:          orgID,
		CrlNumber:      crlNumber,
		IsDelta:        false,
		RevokedSerials: revoked,
	}, nil
}

// CheckOCSP reports the revocation status of a single serial.
func (u *UseCase) CheckOCSP(ctx context.Context, orgID, serialHexValue string) (*OCSPResult, error) {
	entry, err := u.repo.GetCrlEntryBySerial(ctx, orgID, serialHexValue)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return &OCSPResult{Status: OCSPGood}, nil
	}
	if err != nil {
		return nil, err
	}
	return &OCSPResult{Status: OCSPRevoked, RevokedAtMicros: entry.RevokedAt.UnixMicro()}, nil
}

// GetCertMeta returns a certificate row without decrypting its private key,
// for collaborators that only need status, subject, and serial.
func (u *UseCase) GetCertMeta(ctx context.Context, orgID, serialHexValue string) (*Certificate, error) {
	return u.repo.GetBySerial(ctx, orgID, serialHexValue)
}
