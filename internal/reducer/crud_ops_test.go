package reducer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EnvSync-Cloud/envsync/internal/org"
	"github.com/EnvSync-Cloud/envsync/internal/user"
)

type fakeUserRepository struct {
	byID map[uuid.UUID]*user.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byID: make(map[uuid.UUID]*user.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, u *user.User) error {
	if _, ok := f.byID[u.ID]; ok {
		return user.ErrAlreadyExists
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, orgID, email string) (*user.User, error) {
	for _, u := range f.byID {
		if u.OrgID == orgID && u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return user.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeOrgRepository struct {
	byID map[uuid.UUID]*org.Org
}

func newFakeOrgRepository() *fakeOrgRepository {
	return &fakeOrgRepository{byID: make(map[uuid.UUID]*org.Org)}
}

func (f *fakeOrgRepository) Create(_ context.Context, o *org.Org) error {
	f.byID[o.ID] = o
	return nil
}

func (f *fakeOrgRepository) GetByID(_ context.Context, id uuid.UUID) (*org.Org, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, org.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrgRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return org.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestDispatcher(users user.Repository, orgs org.Repository) *Dispatcher {
	return New(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		users, orgs, nil, nil, nil, nil, nil, nil, nil)
}

func TestDispatcher_UserCRUD(t *testing.T) {
	d := newTestDispatcher(newFakeUserRepository(), newFakeOrgRepository())
	ctx := context.Background()

	u := &user.User{ID: uuid.New(), OrgID: "org-1", Email: "a@example.com", Name: "A"}
	require.NoError(t, d.CreateUser(ctx, u))

	got, err := d.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	got, err = d.GetUserByEmail(ctx, "org-1", "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, d.DeleteUser(ctx, u.ID))
	_, err = d.GetUser(ctx, u.ID)
	assert.Error(t, err)
}

func TestDispatcher_UserCreateDuplicateFails(t *testing.T) {
	d := newTestDispatcher(newFakeUserRepository(), newFakeOrgRepository())
	ctx := context.Background()

	u := &user.User{ID: uuid.New(), OrgID: "org-1", Email: "a@example.com", Name: "A"}
	require.NoError(t, d.CreateUser(ctx, u))
	err := d.CreateUser(ctx, u)
	assert.Error(t, err)
}

func TestDispatcher_OrgCRUD(t *testing.T) {
	d := newTestDispatcher(newFakeUserRepository(), newFakeOrgRepository())
	ctx := context.Background()

	o := &org.Org{ID: uuid.New(), Name: "Acme"}
	require.NoError(t, d.CreateOrg(ctx, o))

	got, err := d.GetOrg(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	require.NoError(t, d.DeleteOrg(ctx, o.ID))
	_, err = d.GetOrg(ctx, o.ID)
	assert.Error(t, err)
}
