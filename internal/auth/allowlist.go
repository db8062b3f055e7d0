package auth

// AllowList is the set of emails permitted to use the console
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList builds an allow-list; entries are matched case-insensitively
func NewAllowList(emails []string) *AllowList {
	a := &AllowList{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if n := normalizeEmail(e); n != "" {
			a.emails[n] = struct{}{}
		}
	}
	return a
}

// Allows reports whether email is on the list
func (a *AllowList) Allows(email string) bool {
	_, ok := a.emails[normalizeEmail(email)]
	return ok
}

// Len returns the number of allowed emails
func (a *AllowList) Len() int {
	return len(a.emails)
}
