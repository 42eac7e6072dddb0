package domain

import "strings"

type Person struct {
	Name         string `json:"name" toml:"name"`
	Email        string `json:"email" toml:"email"`
	Address      string `json:"address" toml:"address"`
	ThumbnailURL string `json:"thumbnail_url" toml:"thumbnail_url"`
}

// FilterByName returns the persons whose name contains query, ignoring case.
// The result is never nil.
func FilterByName(persons []Person, query string) []Person {
	needle := strings.ToLower(query)
	filtered := make([]Person, 0, len(persons))
	for _, person := range persons {
		if strings.Contains(strings.ToLower(person.Name), needle) {
			filtered = append(filtered, person)
		}
	}

	return filtered
}
