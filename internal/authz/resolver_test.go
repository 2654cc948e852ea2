package authz

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory Repository for resolver tests.
type fakeRepository struct {
	mu     sync.Mutex
	tuples []*Tuple
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{}
}

func (f *fakeRepository) Insert(_ context.Context, t *Tuple) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tuples {
		if existing.Subject == t.Subject && existing.Relation == t.Relation &&
			existing.ObjectType == t.ObjectType && existing.ObjectID == t.ObjectID {
			return nil
		}
	}
	f.nextID++
	t.ID = f.nextID
	f.tuples = append(f.tuples, t)
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, subject, relation, objectType, objectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tuples {
		if t.Subject == subject && t.Relation == relation && t.ObjectType == objectType && t.ObjectID == objectID {
			f.tuples = append(f.tuples[:i], f.tuples[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepository) Find(_ context.Context, filter Filter) ([]*Tuple, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Tuple
	for _, t := range f.tuples {
		if filter.Subject != "" && filter.Subject != t.Subject {
			continue
		}
		if filter.Relation != "" && filter.Relation != t.Relation {
			continue
		}
		if filter.ObjectType != "" && filter.ObjectType != t.ObjectType {
			continue
		}
		if filter.ObjectID != "" && filter.ObjectID != t.ObjectID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func TestUseCase_DirectMatch(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Write(ctx, "user:alice", "admin", "org", "org1"))

	allowed, err := uc.Allowed(ctx, "alice", "admin", "org", "org1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = uc.Allowed(ctx, "bob", "admin", "org", "org1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestUseCase_RoleImplication(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Write(ctx, "user:alice", "master", "org", "org1"))

	allowed, err := uc.Allowed(ctx, "alice", "can_view", "org", "org1")
	require.NoError(t, err)
	assert.True(t, allowed, "master implies can_view")

	allowed, err = uc.Allowed(ctx, "alice", "can_manage_org", "org", "org1")
	require.NoError(t, err)
	assert.True(t, allowed, "master implies can_manage_org")
}

func TestUseCase_TeamExpansion(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Write(ctx, "user:alice", "team_member", "team", "team1"))
	require.NoError(t, uc.Write(ctx, "team:team1#member", "editor", "app", "app1"))

	allowed, err := uc.Allowed(ctx, "alice", "can_view", "app", "app1")
	require.NoError(t, err)
	assert.True(t, allowed, "team editor implies app can_view")
}

func TestUseCase_StructuralInheritance(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	// app1 belongs to org1; env_type1 belongs to app1.
	require.NoError(t, uc.Write(ctx, "org:org1", "org", "app", "app1"))
	require.NoError(t, uc.Write(ctx, "app:app1", "app", "env_type", "envtype1"))
	require.NoError(t, uc.Write(ctx, "user:alice", "can_view", "org", "org1"))

	allowed, err := uc.Allowed(ctx, "alice", "can_view", "app", "app1")
	require.NoError(t, err)
	assert.True(t, allowed, "org can_view implies app can_view")

	allowed, err = uc.Allowed(ctx, "alice", "can_view", "env_type", "envtype1")
	require.NoError(t, err)
	assert.True(t, allowed, "env_type inherits transitively through app then org")
}

func TestUseCase_EnvTypeDirectOrgInheritance(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	// env_type2 carries a direct structural tuple to org2 with no app->org
	// path (app2 is unparented), so only the direct env_type->org branch
	// can grant access.
	require.NoError(t, uc.Write(ctx, "app:app2", "app", "env_type", "envtype2"))
	require.NoError(t, uc.Write(ctx, "org:org2", "org", "env_type", "envtype2"))
	require.NoError(t, uc.Write(ctx, "user:bob", "can_view", "org", "org2"))

	allowed, err := uc.Allowed(ctx, "bob", "can_view", "env_type", "envtype2")
	require.NoError(t, err)
	assert.True(t, allowed, "env_type inherits directly from its parent org")
}

func TestUseCase_BatchCheck(t *testing.T) {
	repo := newFakeRepository()
	uc := NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Write(ctx, "user:alice", "admin", "org", "org1"))

	results, err := uc.BatchCheck(ctx, "alice", []CheckRequest{
		{Relation: "can_view", ObjectType: "org", ObjectID: "org1"},
		{Relation: "can_manage_org", ObjectType: "org", ObjectID: "org1"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "can_view:org:org1", results[0].Key)
	assert.True(t, results[0].Allowed)
	assert.False(t, results[1].Allowed, "admin does not imply can_manage_org (master-only)")
}
