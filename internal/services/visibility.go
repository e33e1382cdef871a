package services

import "github.com/studiocrm/crm-api/internal/repository"

// ViewOptions carries the caller-supplied visibility switches.
type ViewOptions struct {
	// Rep narrows to a single rep. Only honored for admins; non-admins are
	// always pinned to their own username.
	Rep *string

	// ShowArchived includes archived contacts.
	ShowArchived bool
}

// BuildContactFilter composes the visibility rules into a repository filter.
// This is the only place the role-based narrowing happens, so list views,
// dashboard counts and exports cannot disagree about who sees what.
func BuildContactFilter(viewer Viewer, opts ViewOptions) repository.ContactFilter {
	filter := repository.ContactFilter{
		ShowArchived: opts.ShowArchived,
	}

	if viewer.IsAdmin() {
		filter.Rep = opts.Rep
	} else {
		own := viewer.Username
		filter.Rep = &own
	}

	return filter
}
