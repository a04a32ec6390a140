package model

const (
	rankNoviceMax = 10
	rankFanMax    = 20
)

// UserRank derives the profile rank from the number of watched films. It is
// empty when nothing has been watched.
func UserRank(films []Film) string {
	watched := FilterPredicates.Count(films, FilterHistory)
	switch {
	case watched == 0:
		return ""
	case watched <= rankNoviceMax:
		return "novice"
	case watched <= rankFanMax:
		return "fan"
	}
	return "movie buff"
}
