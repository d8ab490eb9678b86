package auth

import (
	"fmt"

	"github.com/Rameshkumar-V/Tamilmani/internal/logger"
	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each policy exists before adding it,
// making the operation idempotent and safe to run on every application start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Any logged-in credential carries the 'admin' subject; only admins may
	// reach the back-office. Public pages are not gated, so no anonymous
	// policies are needed.
	policies := [][]string{
		{"admin", "/admin", "*"},
		{"admin", "/admin/*", "*"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
