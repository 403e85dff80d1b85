package search

import "fmt"

// Summarize states the search term and the number of matches.
func Summarize(term string, found int) string {
	if found == 0 {
		return fmt.Sprintf("Searched for '%s'. Found no direct matches. You might try rephrasing or searching for a broader category.", term)
	}
	return fmt.Sprintf("Searched for '%s'. Found %d relevant recipe(s).", term, found)
}

// SummarizeFailure states the search term and that the recipe data could not
// be read.
func SummarizeFailure(term string) string {
	return fmt.Sprintf("Searched for '%s'. An error occurred while accessing the recipe data.", term)
}
