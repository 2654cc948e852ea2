package pki

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/EnvSync-Cloud/envsync/internal/crypto/domain"
	cryptoService "github.com/EnvSync-Cloud/envsync/internal/crypto/service"
	cryptoUsecase "github.com/EnvSync-Cloud/envsync/internal/crypto/usecase"
	apperrors "github.com/EnvSync-Cloud/envsync/internal/errors"
	"github.com/EnvSync-Cloud/envsync/internal/sequence"
)

type fakeRepository struct {
	mu        sync.Mutex
	certs     []*Certificate
	crlByOrg  map[string][]*CrlEntry
	nextCrlID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{crlByOrg: make(map[string][]*CrlEntry)}
}

func (f *fakeRepository) GetActiveRoot(_ context.Context) (*Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.certs {
		if c.CertType == CertTypeRoot && c.Status == StatusActive {
			return c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeRepository) GetActiveOrgCA(_ context.Context, orgID string) (*Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.certs {
		if c.CertType == CertTypeOrgCA && c.OrgID == orgID && c.Status == StatusActive {
			return c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeRepository) GetBySerial(_ context.Context, orgID, serialHex string) (*Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.certs {
		if c.OrgID == orgID && c.SerialHex == serialHex {
			return c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeRepository) Create(_ context.Context, cert *Certificate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cert.ID = int64(len(f.certs) + 1)
	f.certs = append(f.certs, cert)
	return nil
}

func (f *fakeRepository) UpdateStatus(_ context.Context, id int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.certs {
		if c.ID == id {
			c.Status = status
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeRepository) CreateCrlEntry(_ context.Context, entry *CrlEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextCrlID++
	entry.ID = f.nextCrlID
	f.crlByOrg[entry.OrgID] = append(f.crlByOrg[entry.OrgID], entry)
	return nil
}

func (f *fakeRepository) ListCrlEntries(_ context.Context, orgID string) ([]*CrlEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.crlByOrg[orgID], nil
}

func (f *fakeRepository) GetCrlEntryBySerial(_ context.Context, orgID, serialHex string) (*CrlEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.crlByOrg[orgID] {
		if e.SerialHex == serialHex {
			return e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeSequenceRepository struct {
	mu     sync.Mutex
	values map[string]int64
}

func newFakeSequenceRepository() *fakeSequenceRepository {
	return &fakeSequenceRepository{values: make(map[string]int64)}
}

func (f *fakeSequenceRepository) Init(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[name]; !ok {
		f.values[name] = 0
	}
	return nil
}

func (f *fakeSequenceRepository) Next(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[name]; !ok {
		return 0, apperrors.ErrSequenceMissing
	}
	f.values[name]++
	return f.values[name], nil
}

type fakeDekRepository struct {
	mu   sync.Mutex
	rows map[string][]*cryptoDomain.Dek
}

func newFakeDekRepository() *fakeDekRepository {
	return &fakeDekRepository{rows: make(map[string][]*cryptoDomain.Dek)}
}

func (f *fakeDekRepository) key(orgID, scopeID string) string { return orgID + "/" + scopeID }

func (f *fakeDekRepository) GetCurrent(_ context.Context, orgID, scopeID string) (*cryptoDomain.Dek, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.rows[f.key(orgID, scopeID)]
	if len(rows) == 0 {
		return nil, cryptoDomain.ErrDekNotFound
	}
	return rows[len(rows)-1], nil
}

func (f *fakeDekRepository) GetByVersion(_ context.Context, orgID, scopeID string, version int) (*cryptoDomain.Dek, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows[f.key(orgID, scopeID)] {
		if row.Version == version {
			return row, nil
		}
	}
	return nil, cryptoDomain.ErrDekNotFound
}

func (f *fakeDekRepository) Create(_ context.Context, dek *cryptoDomain.Dek) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(dek.OrgID, dek.ScopeID)
	dek.ID = int64(len(f.rows[k]) + 1)
	f.rows[k] = append(f.rows[k], dek)
	return nil
}

func testRootKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 3)
	}
	return key
}

func newTestUseCase() *UseCase {
	envelope := cryptoUsecase.NewEnvelopeUseCase(newFakeDekRepository(), cryptoService.NewAEADManager())
	return NewUseCase(newFakeRepository(), sequence.NewUseCase(newFakeSequenceRepository()), envelope, cryptoService.NewAEADManager())
}

func TestUseCase_IssuanceChain(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()
	root := testRootKey()

	_, err := uc.InitRootCA(ctx, root)
	require.NoError(t, err)

	orgCAPEM, err := uc.CreateOrgCA(ctx, root, "orgA", "OrgA")
	require.NoError(t, err)
	orgCACert := decodeCertPEM(t, orgCAPEM)
	assert.Equal(t, "EnvSync Root CA", orgCACert.Issuer.CommonName)
	assert.Equal(t, 0, orgCACert.MaxPathLen)
	assert.True(t, orgCACert.MaxPathLenZero)

	memberPEM, memberKeyPEM, err := uc.IssueMemberCert(ctx, root, "orgA", "alice@x")
	require.NoError(t, err)
	memberCert := decodeCertPEM(t, memberPEM)
	assert.Equal(t, "OrgA CA", memberCert.Issuer.CommonName)
	assert.Equal(t, "alice@x", memberCert.Subject.CommonName)
	assert.Contains(t, memberKeyPEM, "PRIVATE KEY")
}

func TestUseCase_CreateOrgCARejectsDuplicate(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()
	root := testRootKey()

	_, err := uc.InitRootCA(ctx, root)
	require.NoError(t, err)
	_, err = uc.CreateOrgCA(ctx, root, "orgA", "OrgA")
	require.NoError(t, err)

	_, err = uc.CreateOrgCA(ctx, root, "orgA", "OrgA")
	assert.True(t, apperrors.Is(err, apperrors.ErrStateViolation))
}

func TestUseCase_RevokeAndOCSP(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()
	root := testRootKey()

	_, err := uc.InitRootCA(ctx, root)
	require.NoError(t, err)
	_, err = uc.CreateOrgCA(ctx, root, "orgA", "OrgA")
	require.NoError(t, err)
	_, _, err = uc.IssueMemberCert(ctx, root, "orgA", "alice@x")
	require.NoError(t, err)

	cert, err := uc.repo.GetBySerial(ctx, "orgA", serialHex(3))
	require.NoError(t, err)

	status, err := uc.CheckOCSP(ctx, "orgA", cert.SerialHex)
	require.NoError(t, err)
	assert.Equal(t, OCSPGood, status.Status)

	require.NoError(t, uc.RevokeCert(ctx, "orgA", cert.SerialHex, "key_compromise"))

	status, err = uc.CheckOCSP(ctx, "orgA", cert.SerialHex)
	require.NoError(t, err)
	assert.Equal(t, OCSPRevoked, status.Status)

	crl, err := uc.GetCRL(ctx, "orgA")
	require.NoError(t, err)
	assert.Equal(t, int64(1), crl.CrlNumber)
	require.Len(t, crl.RevokedSerials, 1)
	assert.Equal(t, cert.SerialHex, crl.RevokedSerials[0].SerialHex)
}

func decodeCertPEM(t *testing.T, pemStr string) *x509.Certificate {
	t.Helper()
	block, _ := pem.Decode([]byte(pemStr))
	require.NotNil(t, block)
	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	return cert
}
