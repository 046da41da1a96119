package discovery

import "regexp"

// skipPatterns exclude URLs that never belong in the discovered set:
// blog/news/date archives, taxonomy pages, binary downloads, and
// fragment/script/mailto links.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/blog/`),
	regexp.MustCompile(`(?i)/news/`),
	regexp.MustCompile(`(?i)/articles?/`),
	regexp.MustCompile(`(?i)/posts?/`),
	regexp.MustCompile(`/\d{4}/\d{2}/`),
	regexp.MustCompile(`(?i)/category/`),
	regexp.MustCompile(`(?i)/tag/`),
	regexp.MustCompile(`(?i)/author/`),
	regexp.MustCompile(`(?i)\.pdf$`),
	regexp.MustCompile(`(?i)\.docx?`),
	regexp.MustCompile(`(?i)\.zip`),
	regexp.MustCompile(`#`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)mailto:`),
}

var (
	aboutPattern    = regexp.MustCompile(`(?i)/about|/team|/attorney|/lawyer|/staff`)
	contactPattern  = regexp.MustCompile(`(?i)/contact|/get-in-touch|/location`)
	servicesPattern = regexp.MustCompile(`(?i)/service|/practice|/area|/expertise|/what-we-do`)
)

// Categorize assigns a URL to exactly one category. The second return is
// false when the URL matches a skip pattern and must be excluded entirely.
// About and contact are checked before services so that a URL like
// /about-our-practice lands in about, matching the priority order.
func Categorize(url string) (Category, bool) {
	for _, p := range skipPatterns {
		if p.MatchString(url) {
			return "", false
		}
	}
	switch {
	case aboutPattern.MatchString(url):
		return CategoryAbout, true
	case contactPattern.MatchString(url):
		return CategoryContact, true
	case servicesPattern.MatchString(url):
		return CategoryServices, true
	default:
		return CategoryOther, true
	}
}

// truncate caps each category at max entries, preserving insertion order.
func (s CategorizedURLSet) truncate(max int) {
	for cat, urls := range s {
		if len(urls) > max {
			s[cat] = urls[:max]
		}
	}
}
