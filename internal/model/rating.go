package model

// ratingTitles maps lower rating bounds to Codeforces titles, highest first.
var ratingTitles = []struct {
	min   int
	title string
}{
	{3000, "Legendary Grandmaster"},
	{2600, "International Grandmaster"},
	{2400, "Grandmaster"},
	{2300, "International Master"},
	{2100, "Master"},
	{1900, "Candidate Master"},
	{1600, "Expert"},
	{1400, "Specialist"},
	{1200, "Pupil"},
}

// RatingTitle returns the title for a rating.
func RatingTitle(rating int) string {
	for _, t := range ratingTitles {
		if rating >= t.min {
			return t.title
		}
	}
	return "Newbie"
}

// Difficulty buckets a problem rating for the practice log.
// Unrated problems are "medium".
func Difficulty(problemRating int) string {
	switch {
	case problemRating <= 0:
		return "medium"
	case problemRating < 1400:
		return "easy"
	case problemRating < 1900:
		return "medium"
	default:
		return "hard"
	}
}
