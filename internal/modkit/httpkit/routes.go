package httpkit

import (
	"net/http"
	"strings"
)

// MountUnder gives a module its own middleware scope at prefix
// a blank or root prefix mounts the module in a group on r itself
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	scoped := func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	}
	if strings.Trim(prefix, " /") == "" {
		r.Group(scoped)
		return
	}
	r.Route(prefix, scoped)
}
