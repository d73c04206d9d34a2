package services

import "strings"

// KnownTechnologies is scanned, in order, when a reply yields no services.
var KnownTechnologies = []string{
	"Python", "JavaScript", "Java", "C++", "C#", "Go", "Rust", "PHP", "Ruby", "Swift",
	"React", "Vue", "Angular", "Node.js", "Express", "Flask", "Django", "Spring",
	"MongoDB", "PostgreSQL", "MySQL", "Redis", "Elasticsearch",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "GitHub", "GitLab",
	"REST", "API", "GraphQL", "JWT", "OAuth",
}

// DetectKnown returns the known technologies whose names occur anywhere in
// text, case-insensitively. Matching is by substring, so short names such as
// "Go" or "API" hit liberally.
func DetectKnown(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, tech := range KnownTechnologies {
		if strings.Contains(lower, strings.ToLower(tech)) {
			found = append(found, tech)
		}
	}
	return found
}
