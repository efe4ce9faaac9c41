package rbac

// Role represents a class of user. Roles are assigned by an administrator
// and stored on the user's profile row.
type Role string

const (
	// RoleAdmin has full access including deletes and settings changes.
	RoleAdmin Role = "admin"
	// RoleStaff can create and modify content but not delete high-value records.
	RoleStaff Role = "staff"
	// RolePartner is an external collaborator with read-only access to
	// projects and media.
	RolePartner Role = "partner"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RolePartner:
		return true
	}
	return false
}

// Permission identifies an atomic capability of shape resource:action.
type Permission string

const (
	PermUsersRead      Permission = "users:read"
	PermUsersWrite     Permission = "users:write"
	PermUsersDelete    Permission = "users:delete"
	PermProjectsRead   Permission = "projects:read"
	PermProjectsWrite  Permission = "projects:write"
	PermProjectsDelete Permission = "projects:delete"
	PermMediaRead      Permission = "media:read"
	PermMediaWrite     Permission = "media:write"
	PermMediaDelete    Permission = "media:delete"
	PermBlogRead       Permission = "blog:read"
	PermBlogWrite      Permission = "blog:write"
	PermBlogDelete     Permission = "blog:delete"
	PermContactsRead   Permission = "contacts:read"
	PermContactsWrite  Permission = "contacts:write"
	PermContactsDelete Permission = "contacts:delete"
	PermSettingsRead   Permission = "settings:read"
	PermSettingsWrite  Permission = "settings:write"
	PermAIUse          Permission = "ai:use"
)

// permissionRoles is the full authorization policy. It never changes at
// runtime. Staff deliberately gets write without delete on projects, blog
// and contacts; deletes and settings changes are reserved for admin.
// Partner only reads projects and media.
var permissionRoles = map[Permission][]Role{
	PermUsersRead:      {RoleAdmin},
	PermUsersWrite:     {RoleAdmin},
	PermUsersDelete:    {RoleAdmin},
	PermProjectsRead:   {RoleAdmin, RoleStaff, RolePartner},
	PermProjectsWrite:  {RoleAdmin, RoleStaff},
	PermProjectsDelete: {RoleAdmin},
	PermMediaRead:      {RoleAdmin, RoleStaff, RolePartner},
	PermMediaWrite:     {RoleAdmin, RoleStaff},
	PermMediaDelete:    {RoleAdmin, RoleStaff},
	PermBlogRead:       {RoleAdmin, RoleStaff},
	PermBlogWrite:      {RoleAdmin, RoleStaff},
	PermBlogDelete:     {RoleAdmin},
	PermContactsRead:   {RoleAdmin, RoleStaff},
	PermContactsWrite:  {RoleAdmin, RoleStaff},
	PermContactsDelete: {RoleAdmin},
	PermSettingsRead:   {RoleAdmin, RoleStaff},
	PermSettingsWrite:  {RoleAdmin},
	PermAIUse:          {RoleAdmin, RoleStaff},
}

// HasPermission reports whether the role may exercise the permission.
// Unknown permissions are denied.
func HasPermission(role Role, perm Permission) bool {
	for _, allowed := range permissionRoles[perm] {
		if allowed == role {
			return true
		}
	}
	return false
}

// AllPermissions returns every permission known to the policy table.
func AllPermissions() []Permission {
	perms := make([]Permission, 0, len(permissionRoles))
	for p := range permissionRoles {
		perms = append(perms, p)
	}
	return perms
}
