package rbac

import "context"

// Guard is the single choke point protected operations pass through.
type Guard struct {
	resolver *Resolver
}

// NewGuard constructs a Guard on top of the resolver.
func NewGuard(resolver *Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// RequirePermission resolves the caller and checks the permission table.
// Resolver failures propagate unchanged; a role without the permission gets
// ErrInsufficientPermission.
func (g *Guard) RequirePermission(ctx context.Context, perm Permission) (*AuthUser, error) {
	user, err := g.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if !HasPermission(user.Role, perm) {
		return nil, ErrInsufficientPermission
	}
	return user, nil
}

// RequireAdmin resolves the caller and requires the admin role exactly.
func (g *Guard) RequireAdmin(ctx context.Context) (*AuthUser, error) {
	user, err := g.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if user.Role != RoleAdmin {
		return nil, ErrInsufficientPermission
	}
	return user, nil
}

// RequireStaff resolves the caller and requires staff-or-above. Several
// endpoints need this coarser check where no single permission fits.
func (g *Guard) RequireStaff(ctx context.Context) (*AuthUser, error) {
	user, err := g.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if user.Role != RoleAdmin && user.Role != RoleStaff {
		return nil, ErrInsufficientPermission
	}
	return user, nil
}
