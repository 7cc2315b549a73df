// Package health defines the site health-check model and the contract every
// check implements.
//
// A Check is a single named test of one aspect of a site. It reports a Result
// with one of three statuses: Good, Warning or Critical. Checks are grouped
// into categories for display and attributed to the provider that contributed
// them.
//
// # Writing a check
//
// Concrete checks embed Base, which carries the check's identity and supplies
// the Good, Warning and Critical result constructors:
//
//	type cronCheck struct {
//	    health.Base
//	    lastRun time.Time
//	}
//
//	func (c *cronCheck) Perform(ctx context.Context) (health.Result, error) {
//	    if time.Since(c.lastRun) > time.Hour {
//	        return c.Warning("Scheduled tasks have not run in the last hour."), nil
//	    }
//	    return c.Good("Scheduled tasks are running."), nil
//	}
//
// # Fault isolation
//
// Checks are never called directly. Run wraps Perform so that a returned error
// or a panic becomes a Warning result carrying the fault message; Run itself
// never fails:
//
//	result := health.Run(ctx, check)
//
// Collaborators such as a database handle are optional. A check that needs one
// that was not supplied returns ErrMissingCollaborator, which Run turns into a
// Warning like any other fault.
//
// # Categories and providers
//
// CategoryRegistry starts with eight built-in categories spaced ten apart so
// third-party categories can be placed between them. ProviderRegistry starts
// empty. Both use last-write-wins when a slug is registered twice.
package health
