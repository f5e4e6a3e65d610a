package accesscontrol

import (
	"context"
	"strings"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/auth"
)

// Gate enforces screen grants on gated path prefixes. Paths that match
// no route are allowed through; the route table decides what is gated,
// not the gate.
type Gate struct {
	routes []ScreenRoute
	grants GrantStore
}

func NewGate(routes []ScreenRoute, grants GrantStore) *Gate {
	return &Gate{
		routes: routes,
		grants: grants,
	}
}

// RoutesFromConfig converts the configured mapping, preserving order.
func RoutesFromConfig(cfg []internal.ScreenRouteConfig) []ScreenRoute {
	routes := make([]ScreenRoute, 0, len(cfg))
	for _, rc := range cfg {
		routes = append(routes, ScreenRoute{
			PathPrefix: rc.Prefix,
			ScreenCode: rc.Screen,
		})
	}
	return routes
}

func (g *Gate) Authorize(ctx context.Context, identity *auth.User, path string) error {
	screenCode, gated := g.match(path)
	if !gated {
		return nil
	}

	if identity.IsUnrestricted() {
		return nil
	}

	ok, err := g.grants.HasScreenGrant(identity.ID, screenCode)
	if err != nil {
		return internal.NewInternalError("failed to check screen grant", err)
	}
	if !ok {
		return internal.ErrScreenAccessDenied
	}
	return nil
}

func (g *Gate) match(path string) (string, bool) {
	for _, route := range g.routes {
		if strings.HasPrefix(path, route.PathPrefix) {
			return route.ScreenCode, true
		}
	}
	return "", false
}
