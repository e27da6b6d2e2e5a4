package domain

// Domain contains the models that make up a daily brief snapshot.

// Article is a single headline with its absolute link.
type Article struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Section groups the articles of one logical newspaper page. Summary is
// omitted from the snapshot when summarization was skipped or failed.
type Section struct {
	Page     string    `json:"page"`
	Articles []Article `json:"articles"`
	Summary  string    `json:"summary,omitempty"`
}

// Brief is the complete per-run snapshot; each run replaces the prior one.
type Brief struct {
	LastUpdated string               `json:"lastUpdated"`
	Sources     map[string][]Section `json:"sources"`
}

// HasArticles reports whether the section carries at least one article.
func (s Section) HasArticles() bool { return len(s.Articles) > 0 }
