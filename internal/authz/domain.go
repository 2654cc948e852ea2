// Package authz implements the relational authorization resolver: a tuple
// store plus a role-implication and structural-inheritance walk over
// org/app/env_type/gpg_key/certificate/team objects.
package authz

import "time"

// Tuple is one authz_tuples row. Subjects take the form "user:<uuid>",
// "org:<uuid>", "app:<uuid>", or "team:<uuid>#member".
type Tuple struct {
	ID         int64
	Subject    string
	Relation   string
	ObjectType string
	ObjectID   string
	CreatedAt  time.Time
}

// Filter selects tuples by any combination of fields; an empty field is a
// wildcard.
type Filter struct {
	Subject    string
	Relation   string
	ObjectType string
	ObjectID   string
}

// CheckRequest is one entry of a batch permission check.
type CheckRequest struct {
	Relation   string
	ObjectType string
	ObjectID   string
}

// CheckResult is the outcome of one CheckRequest, keyed per spec as
// "relation:object_type:object_id".
type CheckResult struct {
	Key     string
	Allowed bool
}
