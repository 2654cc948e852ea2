package payload

import "context"

// Kind distinguishes the two payload surfaces at compile time so a
// UseCase[EnvVar] can never be constructed over a secret Repository by
// accident, while both share one generic implementation. Prefix doubles as
// the AAD tag ("env"/"secret") and the DEK scope suffix ("<app_id>:env" /
// "<app_id>:secret").
type Kind interface {
	Prefix() string
}

// EnvVar selects the environment-variable payload surface.
type EnvVar struct{}

// Prefix implements Kind.
func (EnvVar) Prefix() string { return "env" }

// Secret selects the secret payload surface.
type Secret struct{}

// Prefix implements Kind.
func (Secret) Prefix() string { return "secret" }

// Repository is the storage contract for one payload table (env vars or
// secrets). Implementations live in repository/postgresql and
// repository/mysql, parameterized by table name rather than duplicated per
// entity.
type Repository interface {
	GetByKey(ctx context.Context, orgID, appID, envTypeID, key string) (*Record, error)
	List(ctx context.Context, orgID, appID, envTypeID string) ([]*Record, error)
	Create(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, orgID, appID, envTypeID, key string) error
}
