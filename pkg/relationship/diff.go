package relationship

// Diff partitions the current relationships.
type Diff struct {
	NotFollowingBack List `json:"notFollowingBack"` // you follow them, they don't follow you
	NotFollowedBack  List `json:"notFollowedBack"`  // they follow you, you don't follow them
	Mutual           List `json:"mutual"`
}

// Compare classifies following and followers by username membership.
// Output lists keep input order.
func Compare(following, followers List) Diff {
	followersSet := followers.Set()
	followingSet := following.Set()

	return Diff{
		NotFollowingBack: following.filter(func(id Identity) bool {
			return !followersSet.Has(id.Username)
		}),
		NotFollowedBack: followers.filter(func(id Identity) bool {
			return !followingSet.Has(id.Username)
		}),
		Mutual: following.filter(func(id Identity) bool {
			return followersSet.Has(id.Username)
		}),
	}
}
