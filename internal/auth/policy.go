package auth

import "blog_backend/internal/models"

// Identity is the authenticated caller, resolved from the access token and
// passed explicitly into every service operation.
type Identity struct {
	UserID string
	Login  string
	Role   models.UserRole
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == models.UserRoleAdmin
}

// Requirement is the access condition attached to one (resource, action)
// pair.
type Requirement int

const (
	// Public needs no identity at all.
	Public Requirement = iota
	// Authenticated needs any valid identity.
	Authenticated
	// AdminOnly needs the admin role.
	AdminOnly
	// OwnerOnly needs the identity's login to match the resource author.
	OwnerOnly
	// AdminAndOwner needs the admin role and authorship at the same time.
	// Only comment deletion uses this.
	AdminAndOwner
)

// Policy is the full access table of the API. Each mutating operation looks
// its requirement up here instead of hand-rolling boolean checks, so the
// whole authorization surface is auditable in one place.
var Policy = map[string]Requirement{
	"post:list":   Public,
	"post:get":    Public,
	"post:create": Authenticated,
	"post:update": Authenticated,
	// Post deletion has no ownership or role condition; any valid token
	// suffices.
	"post:delete": Authenticated,

	"comment:get":    Public,
	"comment:likes":  Public,
	"comment:create": Authenticated,
	"comment:like":   Authenticated,
	"comment:update": OwnerOnly,
	"comment:delete": AdminAndOwner,
	"comment:unlike": Authenticated,

	"user:list":   Public,
	"user:get":    Public,
	"user:create": AdminOnly,
	"user:avatar": Authenticated,
	"user:update": AdminOnly,
	"user:delete": AdminOnly,
}

// RequirementFor returns the table entry for resource:action. Unknown pairs
// default to AdminOnly so a forgotten entry fails closed.
func RequirementFor(resource, action string) Requirement {
	req, ok := Policy[resource+":"+action]
	if !ok {
		return AdminOnly
	}
	return req
}

// Allowed evaluates a requirement against the identity and, for ownership
// requirements, the resource's recorded author login.
func Allowed(req Requirement, id *Identity, owner string) bool {
	switch req {
	case Public:
		return true
	case Authenticated:
		return id != nil
	case AdminOnly:
		return id.IsAdmin()
	case OwnerOnly:
		return id != nil && id.Login == owner
	case AdminAndOwner:
		return id.IsAdmin() && id.Login == owner
	default:
		return false
	}
}

// Can is the single entry point services use: it looks up the policy entry
// and evaluates it.
func Can(id *Identity, resource, action, owner string) bool {
	return Allowed(RequirementFor(resource, action), id, owner)
}
