package permission

import (
	"fmt"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
)

// SeedDefaults adds any default policy that is missing. Policies added by
// operators are left alone.
func (e *Enforcer) SeedDefaults() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, policy := range access.DefaultPolicies() {
		ok, err := e.enforcer.AddPolicy(policy[0], policy[1], policy[2])
		if err != nil {
			e.logger.Errorw("failed to add default policy",
				"error", err,
				"subject", policy[0],
				"object", policy[1],
				"action", policy[2])
			return added, fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
		if ok {
			added++
		}
	}

	if added > 0 {
		e.logger.Infow("default policies seeded", "added", added)
	}
	return added, nil
}
