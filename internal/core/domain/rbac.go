package domain

// Role is a named permission group assignable to users.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// Permission grants an action on a resource. Action follows the
// "<resource>:<verb>" convention; "<resource>:*" grants every verb on that
// resource, and the {action:"*", resource:"*"} pair grants everything.
type Permission struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Resource    string `json:"resource"`
	Description string `json:"description,omitempty"`
}

// EffectivePermissions flattens the permissions of all roles into a single
// set, deduplicated by permission id. A permission reachable through several
// roles appears once.
func EffectivePermissions(roles []Role) []Permission {
	seen := make(map[string]struct{})
	var out []Permission
	for _, role := range roles {
		for _, p := range role.Permissions {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Authorize reports whether any permission in the set grants (resource,
// action). The model is allow-only: there are no deny rules, so a single
// match suffices.
func Authorize(perms []Permission, resource, action string) bool {
	for _, p := range perms {
		// Global wildcard: full system access.
		if p.Action == "*" && p.Resource == "*" {
			return true
		}
		if p.Resource != resource {
			continue
		}
		// Resource wildcard: every action on this resource.
		if p.Action == resource+":*" {
			return true
		}
		// Exact match.
		if p.Action == resource+":"+action {
			return true
		}
	}
	return false
}
