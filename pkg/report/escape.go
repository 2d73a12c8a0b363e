package report

import "strings"

// LinkPath converts a wiki page path into the escaped form Azure DevOps
// expects in Markdown link targets. The replacement order matters: literal
// dashes are escaped before spaces become dashes, so the two can never
// collide.
func LinkPath(path string) string {
	p := strings.TrimPrefix(path, "/")
	p = strings.ReplaceAll(p, "-", "%2D")
	p = strings.ReplaceAll(p, " ", "-")
	p = strings.ReplaceAll(p, "|", "%7C")
	p = strings.ReplaceAll(p, "*", "%2A")
	p = strings.ReplaceAll(p, ":", "%3A")
	return p
}

// DisplayText is the human-readable link text for a page path. Only the
// table delimiter needs escaping here.
func DisplayText(path string) string {
	p := strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(p, "|", "%7C")
}

// ArticleLinkPath escapes a committed file path for the new-articles table.
// Only spaces change: the git log reports paths that are already in wiki
// link form, so two commits naming "Foo Bar.md" and "Foo-Bar.md" collapse to
// the same link and deduplicate.
func ArticleLinkPath(path string) string {
	return strings.ReplaceAll(path, " ", "-")
}

// ArticleDisplayText undoes link escaping for the visible text of a
// new-articles row.
func ArticleDisplayText(linkPath string) string {
	s := strings.ReplaceAll(linkPath, "-", " ")
	s = strings.ReplaceAll(s, "%2D", "-")
	s = strings.ReplaceAll(s, "%3A", ":")
	return s
}
