package relationship

// Reference is the username view of a previously recorded snapshot.
type Reference struct {
	Followers []string
	Following []string
}

// Changes describes how relationships moved since a reference snapshot.
// The four lists are computed independently and may overlap.
type Changes struct {
	// NewUnfollows holds current followers that the reference did not record.
	// The name is kept for compatibility with existing consumers even though
	// these accounts are new arrivals.
	NewUnfollows  List `json:"newUnfollows"`
	NewFollowers  List `json:"newFollowers"`
	YouUnfollowed List `json:"youUnfollowed"`
	NewMutual     List `json:"newMutual"`
}

// Empty reports whether no category has entries.
func (c Changes) Empty() bool {
	return len(c.NewUnfollows) == 0 &&
		len(c.NewFollowers) == 0 &&
		len(c.YouUnfollowed) == 0 &&
		len(c.NewMutual) == 0
}

// DetectChanges compares the current lists with ref.
//
// NewFollowers and YouUnfollowed name accounts that only the reference knows
// about, so they are walked in reference order and carry no profile URL.
func DetectChanges(currentFollowers, currentFollowing List, ref Reference) Changes {
	baseFollowers := NewSet(ref.Followers...)
	baseFollowing := NewSet(ref.Following...)
	currFollowers := currentFollowers.Set()
	currFollowing := currentFollowing.Set()

	return Changes{
		NewUnfollows: currentFollowers.filter(func(id Identity) bool {
			return !baseFollowers.Has(id.Username)
		}),
		NewFollowers:  missingFrom(ref.Followers, currFollowers),
		YouUnfollowed: missingFrom(ref.Following, currFollowing),
		NewMutual: currentFollowing.filter(func(id Identity) bool {
			return currFollowers.Has(id.Username) &&
				baseFollowing.Has(id.Username) &&
				!baseFollowers.Has(id.Username)
		}),
	}
}

func missingFrom(usernames []string, current Set) List {
	out := List{}
	seen := make(Set, len(usernames))
	for _, u := range usernames {
		if current.Has(u) || seen.Has(u) {
			continue
		}
		seen.Add(u)
		out = append(out, Identity{Username: u})
	}
	return out
}
