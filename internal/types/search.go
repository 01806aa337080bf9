package types

// Candidate is a single job or internship listing produced by one search
// response. Candidates are immutable value objects; user annotations
// (saved/hidden) live in a per-browsing-session overlay keyed by ID, never
// on the candidate itself.
type Candidate struct {
	ID                 string   `json:"id"`
	Company            string   `json:"company"`
	Title              string   `json:"title"`
	Location           string   `json:"location"`
	Salary             string   `json:"salary,omitempty"`
	Tags               []string `json:"tags"`
	DescriptionSnippet string   `json:"description_snippet"`
	Source             string   `json:"source"`
	URL                string   `json:"url"`
	DatePosted         string   `json:"date_posted"`
	ViewsCount         int      `json:"views_count,omitempty"`
}

// SearchResult is the structured payload of one opportunity search.
type SearchResult struct {
	Summary     string      `json:"summary"`
	Vacancies   []Candidate `json:"vacancies"`
	Internships []Candidate `json:"internships"`
}
