package promote

import (
	"strings"

	"github.com/alanmeadows/prgate/internal/config"
)

// Gate decides whether a task status is consistent with a PR's target branch.
// Each target branch has a set of environment names considered "at or past"
// that promotion stage; the status must mention one of them.
type Gate struct {
	development string
	staging     string
	production  []string

	stagingEligible    []string
	productionEligible []string
}

// NewGate derives the environment sets from the configured branch names.
func NewGate(branches config.BranchesConfig) *Gate {
	g := &Gate{
		development: strings.ToLower(branches.Development),
		staging:     strings.ToLower(branches.Staging),
	}
	for _, p := range branches.Production {
		g.production = append(g.production, strings.ToLower(p))
	}

	// A staging promotion accepts anything from development onward; a
	// production promotion requires at least staging.
	g.stagingEligible = append([]string{g.development, g.staging}, g.production...)
	g.productionEligible = append([]string{g.staging}, g.production...)

	return g
}

// Decide reports whether the status permits promotion into base. The check is
// a case-insensitive substring match: a status embedding an environment name
// anywhere satisfies it. An empty status never matches. Unknown target
// branches are unconditionally rejected.
func (g *Gate) Decide(status, base string) bool {
	switch {
	case strings.EqualFold(base, g.staging):
		return containsAny(status, g.stagingEligible)
	case g.isProduction(base):
		return containsAny(status, g.productionEligible)
	default:
		return false
	}
}

// Skip reports whether PRs targeting base are exempt from status checking.
// The development branch is not a promotion stage.
func (g *Gate) Skip(base string) bool {
	return strings.EqualFold(base, g.development)
}

func (g *Gate) isProduction(base string) bool {
	for _, p := range g.production {
		if strings.EqualFold(base, p) {
			return true
		}
	}
	return false
}

func containsAny(status string, envs []string) bool {
	if status == "" {
		return false
	}
	status = strings.ToLower(status)
	for _, env := range envs {
		if env != "" && strings.Contains(status, env) {
			return true
		}
	}
	return false
}
