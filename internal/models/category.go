package models

// CategoryOther collects projects whose label is not one of the fixed
// categories.
const CategoryOther = "Other"

// Categories is the fixed set of project category labels, in display
// order. Aggregates report every label even when no project carries it.
var Categories = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX Design",
	"DevOps",
	"Data Science",
	"Cybersecurity",
	"Game Development",
	"Blockchain",
	CategoryOther,
}

// KnownCategory reports whether label is one of the fixed categories.
func KnownCategory(label string) bool {
	for _, c := range Categories {
		if c == label {
			return true
		}
	}
	return false
}
