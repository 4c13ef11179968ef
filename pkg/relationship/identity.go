package relationship

// Identity is one account in a relationship export.
type Identity struct {
	Username   string `json:"username"`
	ProfileURL string `json:"url"`
}

// List keeps identities in export order.
type List []Identity

// Usernames returns the usernames of l in order.
func (l List) Usernames() []string {
	names := make([]string, 0, len(l))
	for _, id := range l {
		names = append(names, id.Username)
	}
	return names
}

// Set builds a membership set keyed by username.
func (l List) Set() Set {
	s := make(Set, len(l))
	for _, id := range l {
		s.Add(id.Username)
	}
	return s
}

func (l List) filter(keep func(Identity) bool) List {
	out := List{}
	for _, id := range l {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}
