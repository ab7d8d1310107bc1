package report

// Labels are the fixed texts of a report. Callers fill them from their translations.
type Labels struct {
	Title       string
	Repository  string
	Branch      string
	GeneratedAt string

	Number    string
	Hash      string
	Message   string
	Additions string
	Deletions string
	Files     string
	Cost      string

	Totals         string
	TotalCommits   string
	TotalAdditions string
	TotalDeletions string
	TotalFiles     string
	TotalCost      string
	AverageCost    string
}

func DefaultLabels() Labels {
	return Labels{
		Title:       "Repository cost report",
		Repository:  "Repository",
		Branch:      "Branch",
		GeneratedAt: "Generated at",

		Number:    "#",
		Hash:      "Commit",
		Message:   "Message",
		Additions: "Lines added",
		Deletions: "Lines deleted",
		Files:     "Files changed",
		Cost:      "Cost",

		Totals:         "TOTAL",
		TotalCommits:   "Commits",
		TotalAdditions: "Lines added",
		TotalDeletions: "Lines deleted",
		TotalFiles:     "Files changed",
		TotalCost:      "Total cost",
		AverageCost:    "Average cost",
	}
}
