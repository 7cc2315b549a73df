package health

import (
	"context"
	"fmt"
)

// Run performs check and always returns a result.
//
// A returned error or a panic inside Perform becomes a Warning result whose
// description contains the fault message. The result's slug, category and
// provider always match the check's own.
func Run(ctx context.Context, check Check) Result {
	result, _ := Execute(ctx, check)
	return result
}

// Execute is Run that also reports the fault, if any, that was converted into
// the returned Warning result. The result is valid even when the error is not
// nil.
func Execute(ctx context.Context, check Check) (result Result, fault error) {
	if check == nil {
		return Result{
			Status:      StatusWarning,
			Description: FaultDescription(ErrNilCheck),
		}, ErrNilCheck
	}

	defer func() {
		if rec := recover(); rec != nil {
			fault = fmt.Errorf("%w: %v", ErrCheckPanicked, rec)
			result = FaultResult(check, fault)
		}
	}()

	res, err := check.Perform(ctx)
	if err != nil {
		return FaultResult(check, err), err
	}
	return stamp(check, res), nil
}

// FaultResult builds the Warning result reported for a check that failed to
// produce its own. Identity fields whose accessor panics are left empty.
func FaultResult(check Check, fault error) Result {
	r, _ := Identify(check)
	r.Description = FaultDescription(fault)
	r.Status = StatusWarning
	return r
}

// Identify reads the check's slug, title, category and provider into a
// Result. A nil check or a panicking accessor stops the read; the fields read
// so far are kept and the error wraps ErrNilCheck or ErrCheckPanicked.
func Identify(check Check) (r Result, err error) {
	if check == nil {
		return Result{}, ErrNilCheck
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: reading identity: %v", ErrCheckPanicked, rec)
		}
	}()

	r.Slug = check.Slug()
	r.Category = check.Category()
	r.Provider = check.Provider()
	r.Title = check.Title()
	return r, nil
}

// FaultDescription is the user-facing text for a check fault.
func FaultDescription(fault error) string {
	return "The check could not be completed: " + fault.Error()
}

// stamp makes the result's identity agree with the check that produced it.
func stamp(check Check, r Result) Result {
	r.Slug = check.Slug()
	r.Category = check.Category()
	r.Provider = check.Provider()
	if r.Title == "" {
		r.Title = check.Title()
	}
	if !r.Status.Valid() {
		r.Status = StatusWarning
	}
	return r
}
