package auth

import "strings"

type Action int

const (
	Allow Action = iota
	RedirectLogin
	RedirectDashboard
)

func (a Action) String() string {
	switch a {
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	default:
		return "allow"
	}
}

type Decision struct {
	Action      Action
	Location    string
	ClearCookie bool
	// Claims is set when the request carried a valid token.
	Claims *Claims
}

type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

var (
	DefaultPublicPaths = []string{"/login", "/signup", "/forgot-password"}
	DefaultBypassPaths = []string{"/api/auth/signup", "/api/auth/login", "/api/auth/logout", "/healthz"}
)

// Guard decides, per request path, whether a visitor may proceed.
type Guard struct {
	Verifier      TokenVerifier
	PublicPaths   []string
	BypassPaths   []string
	LoginPath     string
	DashboardPath string
}

func NewGuard(v TokenVerifier) Guard {
	return Guard{
		Verifier:      v,
		PublicPaths:   DefaultPublicPaths,
		BypassPaths:   DefaultBypassPaths,
		LoginPath:     "/login",
		DashboardPath: "/dashboard",
	}
}

// Decide applies the page rules:
//   - bypass paths always pass;
//   - a valid session on a public page goes to the dashboard;
//   - no valid session on a protected page goes to login;
//   - a token that fails verification is cleared.
func (g Guard) Decide(path, token string) Decision {
	if matchPath(path, g.BypassPaths) {
		return Decision{Action: Allow}
	}

	var claims *Claims
	if token != "" && g.Verifier != nil {
		if c, err := g.Verifier.Verify(token); err == nil {
			claims = c
		}
	}
	stale := token != "" && claims == nil

	if matchPath(path, g.PublicPaths) {
		if claims != nil {
			return Decision{Action: RedirectDashboard, Location: g.DashboardPath, Claims: claims}
		}
		return Decision{Action: Allow, ClearCookie: stale}
	}
	if claims == nil {
		return Decision{Action: RedirectLogin, Location: g.LoginPath, ClearCookie: stale}
	}
	return Decision{Action: Allow, Claims: claims}
}

// matchPath matches whole path segments: "/login" covers "/login/x" but not "/loginx".
func matchPath(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}
