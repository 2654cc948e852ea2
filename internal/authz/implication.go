package authz

// implicationTable is the authoritative role-implication map from spec
// §4.7: for (object_type, relation), which relations on the same object
// also satisfy it. Loaded once as a literal; never mutated at runtime.
var implicationTable = map[string]map[string][]string{
	"org": {
		"can_view":                     {"admin", "master", "member"},
		"can_edit":                     {"admin", "master"},
		"member":                       {"admin", "master"},
		"admin":                        {"master"},
		"have_billing_options":         {"admin", "master"},
		"have_api_access":              {"admin", "master"},
		"have_webhook_access":          {"admin", "master"},
		"have_gpg_access":              {"admin", "master"},
		"have_cert_access":             {"admin", "master"},
		"have_audit_access":            {"admin", "master"},
		"can_manage_roles":             {"admin", "master"},
		"can_manage_teams":             {"admin", "master"},
		"can_manage_invites":           {"admin", "master"},
		"can_manage_org":               {"master"},
	},
	"app": {
		"can_view":   {"admin", "editor", "viewer"},
		"can_edit":   {"admin", "editor"},
		"can_manage": {"admin"},
		"viewer":     {"editor", "admin"},
		"editor":     {"admin"},
	},
	"env_type": {
		"can_view":             {"admin", "editor", "viewer"},
		"can_edit":             {"admin", "editor"},
		"can_manage_protected": {"admin"},
		"viewer":               {"editor", "admin"},
		"editor":               {"admin"},
	},
	"gpg_key": {
		"can_view":   {"owner", "manager", "signer"},
		"can_sign":   {"owner", "manager", "signer"},
		"can_manage": {"owner", "manager"},
	},
	"certificate": {
		"can_view":   {"owner", "manager", "viewer"},
		"can_manage": {"owner", "manager"},
		"can_revoke": {"owner", "manager"},
	},
}

// impliedBy returns the relations that satisfy relation on objectType.
// Unlisted relations have an empty implication set per spec.
func impliedBy(objectType, relation string) []string {
	return implicationTable[objectType][relation]
}

// orgInheritedRelation maps an app-level relation onto the org-level relation that
// also satisfies it, per §4.7's "can_view/viewer on app is allowed by
// org-level can_view; can_edit/editor by org-level can_edit".
func orgInheritedRelation(appRelation string) (string, bool) {
	switch appRelation {
	case "can_view", "viewer":
		return "can_view", true
	case "can_edit", "editor":
		return "can_edit", true
	default:
		return "", false
	}
}
