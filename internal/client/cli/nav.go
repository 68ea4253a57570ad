package cli

import (
	"fmt"

	"github.com/parishportal/parishportal/internal/client/gate"
)

// guard runs the access gate for the view at path. On denial it prints
// the navigation outcome (the CLI analogue of a redirect) and returns
// false.
func (a *App) guard(required gate.Requirement, path string) bool {
	d := gate.Evaluate(a.auth, required, path)
	switch d.Action {
	case gate.Render:
		return true
	case gate.ShowLoading:
		printlnFn("Checking your session, try again in a moment")
	case gate.RedirectLogin:
		printlnFn(fmt.Sprintf("Please log in first; you will be returned to %s", d.ReturnTo))
	case gate.RedirectPortal:
		printlnFn("That page needs admin access; taking you to the member portal instead")
	case gate.RedirectHome:
		printlnFn("That page needs a member account; taking you home instead")
	}
	return false
}
