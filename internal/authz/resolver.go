package authz

import (
	"context"
	"strings"
)

// maxDepth bounds the structural-inheritance walk: env_type -> app -> org ->
// root is 4 levels deep; 8 gives headroom while still guarding against
// tuple cycles per §4.7's termination clause.
const maxDepth = 8

// UseCase implements the tuple store plus the allowed() resolution walk.
type UseCase struct {
	repo Repository
}

// NewUseCase builds the authorization UseCase.
func NewUseCase(repo Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Write inserts a tuple, deduplicating by content.
func (u *UseCase) Write(ctx context.Context, subject, relation, objectType, objectID string) error {
	return u.repo.Insert(ctx, &Tuple{Subject: subject, Relation: relation, ObjectType: objectType, ObjectID: objectID})
}

// Delete removes the exact tuple.
func (u *UseCase) Delete(ctx context.Context, subject, relation, objectType, objectID string) error {
	return u.repo.Delete(ctx, subject, relation, objectType, objectID)
}

// Find lists tuples matching filter.
func (u *UseCase) Find(ctx context.Context, filter Filter) ([]*Tuple, error) {
	return u.repo.Find(ctx, filter)
}

// Allowed resolves allowed(user_id, relation, object_type, object_id) per
// §4.7: direct match, role implication, team expansion, then structural
// parent inheritance, short-circuiting on the first true.
func (u *UseCase) Allowed(ctx context.Context, userID, relation, objectType, objectID string) (bool, error) {
	return u.resolve(ctx, userID, relation, objectType, objectID, 0, make(map[string]struct{}))
}

// BatchCheck resolves a list of checks for the same user in one call.
func (u *UseCase) BatchCheck(ctx context.Context, userID string, checks []CheckRequest) ([]CheckResult, error) {
	out := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		allowed, err := u.Allowed(ctx, userID, c.Relation, c.ObjectType, c.ObjectID)
		if err != nil {
			return nil, err
		}
		out = append(out, CheckResult{
			Key:     c.Relation + ":" + c.ObjectType + ":" + c.ObjectID,
			Allowed: allowed,
		})
	}
	return out, nil
}

func (u *UseCase) resolve(ctx context.Context, userID, relation, objectType, objectID string, depth int, visited map[string]struct{}) (bool, error) {
	if depth > maxDepth {
		return false, nil
	}
	key := objectType + ":" + objectID + "#" + relation
	if _, seen := visited[key]; seen {
		return false, nil
	}
	visited[key] = struct{}{}

	userSubject := "user:" + userID

	// 1-2. Direct match, then role implication.
	ok, err := u.hasDirectOrImplied(ctx, userSubject, relation, objectType, objectID)
	if err != nil || ok {
		return ok, err
	}

	// 3. Team expansion: walk every team the user belongs to.
	memberships, err := u.repo.Find(ctx, Filter{Subject: userSubject, Relation: "team_member", ObjectType: "team"})
	if err != nil {
		return false, err
	}
	for _, m := range memberships {
		teamSubject := "team:" + m.ObjectID + "#member"
		ok, err := u.hasDirectOrImplied(ctx, teamSubject, relation, objectType, objectID)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	// 4. Structural parent inheritance.
	return u.resolveParent(ctx, userID, relation, objectType, objectID, depth, visited)
}

// hasDirectOrImplied checks a direct tuple under relation, then every
// relation that implies it, for the given subject.
func (u *UseCase) hasDirectOrImplied(ctx context.Context, subject, relation, objectType, objectID string) (bool, error) {
	relations := append([]string{relation}, impliedBy(objectType, relation)...)
	for _, r := range relations {
		tuples, err := u.repo.Find(ctx, Filter{Subject: subject, Relation: r, ObjectType: objectType, ObjectID: objectID})
		if err != nil {
			return false, err
		}
		if len(tuples) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (u *UseCase) resolveParent(ctx context.Context, userID, relation, objectType, objectID string, depth int, visited map[string]struct{}) (bool, error) {
	switch objectType {
	case "app":
		orgID, ok, err := u.parentID(ctx, "org", "app", objectID)
		if err != nil || !ok {
			return false, err
		}
		if orgRelation, has := orgInheritedRelation(relation); has {
			if allowed, err := u.resolve(ctx, userID, orgRelation, "org", orgID, depth+1, visited); err != nil || allowed {
				return allowed, err
			}
		}
		return u.resolve(ctx, userID, relation, "org", orgID, depth+1, visited)

	case "env_type":
		if appID, ok, err := u.parentID(ctx, "app", "env_type", objectID); err != nil {
			return false, err
		} else if ok {
			if allowed, err := u.resolve(ctx, userID, relation, "app", appID, depth+1, visited); err != nil || allowed {
				return allowed, err
			}
		}
		orgID, ok, err := u.parentID(ctx, "org", "env_type", objectID)
		if err != nil || !ok {
			return false, err
		}
		return u.resolve(ctx, userID, relation, "org", orgID, depth+1, visited)

	case "gpg_key", "certificate", "team":
		orgID, ok, err := u.parentID(ctx, "org", objectType, objectID)
		if err != nil || !ok {
			return false, err
		}
		return u.resolve(ctx, userID, relation, "org", orgID, depth+1, visited)

	default:
		return false, nil
	}
}

// parentID locates the tuple recording objectID's structural parent: a row
// with relation=parentKind, object_type=objectType, object_id=objectID, and
// a subject of the form "<parentKind>:<parentID>".
func (u *UseCase) parentID(ctx context.Context, parentKind, objectType, objectID string) (string, bool, error) {
	tuples, err := u.repo.Find(ctx, Filter{Relation: parentKind, ObjectType: objectType, ObjectID: objectID})
	if err != nil {
		return "", false, err
	}
	for _, t := range tuples {
		if kind, id, ok := parseSubject(t.Subject); ok && kind == parentKind {
			return id, true, nil
		}
	}
	return "", false, nil
}

func parseSubject(subject string) (kind, id string, ok bool) {
	parts := strings.SplitN(subject, ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
