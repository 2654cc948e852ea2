package pki

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/binary"
	"encoding/hex"
	"encoding/pem"
	"math/big"
	"time"

	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
)

const (
	keySize = 3072

	rootValidity  = 10 * 365 * 24 * time.Hour
	subCAValidity = 5 * 365 * 24 * time.Hour
	leafValidity  = 365 * 24 * time.Hour

	rootCN = "EnvSync Root CA"
)

// generateKeypair produces an RSA-3072 keypair, the spec's single profile
// size for Root, SubCA, and Leaf alike.
func generateKeypair() (*rsa.PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, keySize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPKIBuild, "failed to generate keypair: "+err.Error())
	}
	return key, nil
}

// serialHex renders a sequence value as the spec's big-endian 8-byte,
// lowercase 16-character hex serial.
func serialHex(value int64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	return hex.EncodeToString(buf[:])
}

func serialBigInt(value int64) *big.Int {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	return new(big.Int).SetBytes(buf[:])
}

// buildRootCertificate creates the self-signed root template and signs it
// with its own key, mirroring warren's template-then-CreateCertificate-
// then-ParseCertificate shape.
func buildRootCertificate(key *rsa.PrivateKey, serial int64) ([]byte, error) {
	now := time.Now()
	template := &x509.Certificate{
		SerialNumber: serialBigInt(serial),
		Subject:      pkix.Name{CommonName: rootCN},
		NotBefore:    now,
		NotAfter:     now.Add(rootValidity),
		KeyUsage:     x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		IsCA:         true,
		BasicConstraintsValid: true,
		SignatureAlgorithm:    x509.SHA256WithRSA,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPKIBuild, "failed to create root certificate: "+err.Error())
	}
	return der, nil
}

// buildSubCACertificate issues an org intermediate CA signed by the root,
// path-length-constrained to zero per the spec.
func buildSubCACertificate(rootCert *x509.Certificate, rootKey *rsa.PrivateKey, pub *rsa.PublicKey, orgName string, serial int64) ([]byte, error) {
	now := time.Now()
	template := &x509.Certificate{
		SerialNumber:          serialBigInt(serial),
		Subject:               pkix.Name{CommonName: orgName + " CA"},
		NotBefore:             now,
		NotAfter:              now.Add(subCAValidity),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		IsCA:                  true,
		BasicConstraintsValid: true,
		MaxPathLen:            0,
		MaxPathLenZero:        true,
		SignatureAlgorithm:    x509.SHA256WithRSA,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, rootCert, pub, rootKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPKIBuild, "failed to create sub-CA certificate: "+err.Error())
	}
	return der, nil
}

// buildLeafCertificate issues a member certificate signed by the org CA.
func buildLeafCertificate(orgCACert *x509.Certificate, orgCAKey *rsa.PrivateKey, pub *rsa.PublicKey, memberEmail string, serial int64) ([]byte, error) {
	now := time.Now()
	template := &x509.Certificate{
		SerialNumber:       serialBigInt(serial),
		Subject:            pkix.Name{CommonName: memberEmail},
		NotBefore:          now,
		NotAfter:           now.Add(leafValidity),
		KeyUsage:           x509.KeyUsageKeyEncipherment,
		SignatureAlgorithm: x509.SHA256WithRSA,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, orgCACert, pub, orgCAKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPKIBuild, "failed to create leaf certificate: "+err.Error())
	}
	return der, nil
}

func parseCertificate(der []byte) (*x509.Certificate, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPKIBuild, "failed to parse certificate: "+err.Error())
	}
	return cert, nil
}

// marshalPrivateKey encodes a key as PKCS#8 DER, the spec's private-key wire
// format.
func marshalPrivateKey(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPKIBuild, "failed to marshal private key: "+err.Error())
	}
	return der, nil
}

func parsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPKIBuild, "failed to parse private key: "+err.Error())
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrPKIBuild, "private key is not RSA")
	}
	return rsaKey, nil
}

// pemEncode wraps DER bytes as a PEM block. encoding/pem already produces
// the spec's 64-character base64 lines, so no hand-rolled wrapping is
// needed here.
func pemEncode(der []byte, label string) string {
	block := &pem.Block{Type: label, Bytes: der}
	return string(pem.EncodeToMemory(block))
}

const (
	pemLabelCertificate = "CERTIFICATE"
	pemLabelPrivateKey  = "PRIVATE KEY"
)
