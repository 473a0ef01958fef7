package change

import (
	"regexp"
	"strings"
)

var (
	dependsPattern = regexp.MustCompile(`^--\s+depends:\s+(.*)$`)
	sourcesPattern = regexp.MustCompile(`^--\s+sources:\s+(.*)$`)
)

// ExtractDependsOn collects the names declared on "-- depends:" directive
// lines, in first-seen order across all matching lines. A directive only
// counts when it starts the line.
func ExtractDependsOn(contents string) []string {
	return extractDirective(dependsPattern, contents)
}

// ExtractSources collects the names declared on "-- sources:" directive lines.
func ExtractSources(contents string) []string {
	return extractDirective(sourcesPattern, contents)
}

func extractDirective(pattern *regexp.Regexp, contents string) []string {
	var names []string
	for _, line := range strings.Split(contents, "\n") {
		match := pattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if match == nil {
			continue
		}
		for _, name := range strings.Split(match[1], ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
