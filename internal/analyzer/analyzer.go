// Package analyzer extracts business information from a site's homepage.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/fetcher"
)

// Fetcher is the retrieval dependency the analyzer needs.
type Fetcher interface {
	Get(ctx context.Context, url string) (fetcher.Response, error)
}

// BusinessInfo holds identity details gathered from the homepage.
type BusinessInfo struct {
	Name         string `json:"name"`
	Tagline      string `json:"tagline,omitempty"`
	AboutSummary string `json:"about_summary,omitempty"`
	LogoAlt      string `json:"logo_alt,omitempty"`
}

// Contact holds contact details gathered from markup and structured data.
type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// NavItem is one navigation link.
type NavItem struct {
	Label       string `json:"label"`
	URL         string `json:"url"`
	RelativeURL string `json:"relative_url"`
}

// ServiceCard is one service teased on the homepage.
type ServiceCard struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TeamMember is one person found in a team section.
type TeamMember struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// SEOData captures homepage metadata relevant to rebuilding the site.
type SEOData struct {
	Title         string            `json:"title,omitempty"`
	Description   string            `json:"description,omitempty"`
	Keywords      string            `json:"keywords,omitempty"`
	OpenGraph     map[string]string `json:"open_graph,omitempty"`
	H1s           []string          `json:"h1_tags,omitempty"`
	HeadingCounts map[string]int    `json:"heading_structure,omitempty"`
}

// Analysis is the aggregate homepage analysis result.
type Analysis struct {
	URL          string            `json:"url"`
	BusinessInfo BusinessInfo      `json:"business_info"`
	Contact      Contact           `json:"contact"`
	Navigation   []NavItem         `json:"navigation"`
	Services     []ServiceCard     `json:"services"`
	Team         []TeamMember      `json:"team"`
	SEO          SEOData           `json:"seo_data"`
	Social       map[string]string `json:"social_media,omitempty"`
}

// Analyzer fetches a homepage and extracts business information from it.
type Analyzer struct {
	fetch  Fetcher
	logger *zap.Logger
}

// New builds an Analyzer.
func New(fetch Fetcher, logger *zap.Logger) *Analyzer {
	return &Analyzer{fetch: fetch, logger: logger}
}

var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}`),
		regexp.MustCompile(`\d{3}[-.\s]\d{3}[-.\s]\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[\s.-]?\d{2,4}[\s.-]?\d{3,4}[\s.-]?\d{3,4}`),
	}
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	socialPatterns = map[string]*regexp.Regexp{
		"facebook":  regexp.MustCompile(`(?i)facebook\.com`),
		"twitter":   regexp.MustCompile(`(?i)twitter\.com|x\.com`),
		"linkedin":  regexp.MustCompile(`(?i)linkedin\.com`),
		"instagram": regexp.MustCompile(`(?i)instagram\.com`),
		"youtube":   regexp.MustCompile(`(?i)youtube\.com`),
		"pinterest": regexp.MustCompile(`(?i)pinterest\.com`),
	}
)

// Analyze fetches the homepage and extracts everything it can. Individual
// sub-extractions are fail-soft; a fetch failure yields an Analysis with
// only the URL populated.
func (a *Analyzer) Analyze(ctx context.Context, url string) Analysis {
	analysis := Analysis{URL: url}

	resp, err := a.fetch.Get(ctx, url)
	if err != nil {
		a.logger.Warn("homepage fetch failed", zap.String("url", url), zap.Error(err))
		return analysis
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		a.logger.Warn("homepage parse failed", zap.String("url", url), zap.Error(err))
		return analysis
	}

	ld := jsonLD(doc)
	analysis.BusinessInfo = extractBusinessInfo(doc, ld)
	analysis.Contact = extractContact(doc, ld)
	analysis.Navigation = extractNavigation(doc, url)
	analysis.Services = extractServices(doc)
	analysis.Team = extractTeam(doc)
	analysis.SEO = extractSEO(doc)
	analysis.Social = extractSocial(doc)
	return analysis
}

// jsonLD parses the first JSON-LD script block, if any.
func jsonLD(doc *goquery.Document) map[string]any {
	raw := doc.Find(`script[type="application/ld+json"]`).First().Text()
	if raw == "" {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}

// extractBusinessInfo picks the business name from the strongest available
// signal: JSON-LD name, og:site_name, brand element, logo alt text, then the
// cleaned <title>.
func extractBusinessInfo(doc *goquery.Document, ld map[string]any) BusinessInfo {
	info := BusinessInfo{}

	logo := doc.Find(`img[class*="logo"], img[id*="logo"], img[class*="brand"]`).First()
	if alt, ok := logo.Attr("alt"); ok {
		info.LogoAlt = strings.TrimSpace(alt)
	}

	var candidates []string
	if name, ok := ld["name"].(string); ok {
		candidates = append(candidates, name)
	}
	if og, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		candidates = append(candidates, og)
	}
	brand := doc.Find(`[class*="brand"], [class*="site-title"], [class*="company-name"]`).First()
	candidates = append(candidates, brand.Text())
	if info.LogoAlt != "" && !strings.HasPrefix(strings.ToLower(info.LogoAlt), "logo") {
		candidates = append(candidates, info.LogoAlt)
	}
	candidates = append(candidates, cleanBusinessName(doc.Find("title").First().Text()))

	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if len(c) > 3 {
			info.Name = c
			break
		}
	}

	if tagline := doc.Find(`[class*="tagline"], [class*="slogan"], [class*="subtitle"]`).First().Text(); tagline != "" {
		info.Tagline = strings.TrimSpace(tagline)
	}
	if about := doc.Find(`section[class*="about"], div[class*="about"], section#about, div#about`).First().Text(); about != "" {
		info.AboutSummary = capString(normalizeSpace(about), 500)
	}
	return info
}

func extractContact(doc *goquery.Document, ld map[string]any) Contact {
	contact := Contact{}
	bodyText := doc.Find("body").Text()

	for _, p := range phonePatterns {
		if m := p.FindString(bodyText); m != "" {
			contact.Phone = m
			break
		}
	}
	if m := emailPattern.FindString(bodyText); m != "" {
		contact.Email = m
	}
	if href, ok := doc.Find(`a[href^="mailto:"]`).First().Attr("href"); ok {
		contact.Email = strings.TrimPrefix(href, "mailto:")
	}
	if addr := doc.Find(`address, [class*="address"]`).First().Text(); addr != "" {
		contact.Address = normalizeSpace(addr)
	}

	// Structured data wins over scraped text.
	if phone, ok := ld["telephone"].(string); ok && phone != "" {
		contact.Phone = phone
	}
	if email, ok := ld["email"].(string); ok && email != "" {
		contact.Email = email
	}
	return contact
}

func extractNavigation(doc *goquery.Document, base string) []NavItem {
	nav := doc.Find("nav").First()
	if nav.Length() == 0 {
		nav = doc.Find(`[class*="nav"], [class*="menu"]`).First()
	}

	var items []NavItem
	nav.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "#") {
			return
		}
		items = append(items, NavItem{
			Label:       strings.TrimSpace(link.Text()),
			URL:         absoluteURL(base, href),
			RelativeURL: href,
		})
	})
	return items
}

func extractServices(doc *goquery.Document) []ServiceCard {
	section := doc.Find(`section[class*="service"], div[class*="service"], section#services, div#services`).First()
	if section.Length() == 0 {
		return nil
	}

	var services []ServiceCard
	section.Find(`div[class*="service"], div[class*="card"], div[class*="item"], article`).
		EachWithBreak(func(i int, item *goquery.Selection) bool {
			if i >= 10 {
				return false
			}
			title := strings.TrimSpace(item.Find("h2, h3, h4").First().Text())
			if title == "" {
				return true
			}
			desc := item.Find(`p, [class*="desc"], [class*="text"]`).First().Text()
			services = append(services, ServiceCard{
				Title:       title,
				Description: capString(normalizeSpace(desc), 200),
			})
			return true
		})
	return services
}

func extractTeam(doc *goquery.Document) []TeamMember {
	section := doc.Find(`section[class*="team"], div[class*="team"], section[class*="staff"], div[class*="staff"], section#team, div#team`).First()
	if section.Length() == 0 {
		return nil
	}

	var team []TeamMember
	section.Find(`div[class*="member"], div[class*="person"], div[class*="profile"], div[class*="card"], article`).
		EachWithBreak(func(i int, item *goquery.Selection) bool {
			if i >= 20 {
				return false
			}
			name := strings.TrimSpace(item.Find("h2, h3, h4").First().Text())
			if name == "" {
				return true
			}
			team = append(team, TeamMember{
				Name:  name,
				Title: strings.TrimSpace(item.Find(`[class*="title"], [class*="position"], [class*="role"]`).First().Text()),
				Bio:   capString(normalizeSpace(item.Find(`[class*="bio"], [class*="desc"], p`).First().Text()), 300),
			})
			return true
		})
	return team
}

func extractSEO(doc *goquery.Document) SEOData {
	seo := SEOData{
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		OpenGraph: map[string]string{},
		HeadingCounts: map[string]int{
			"h1": doc.Find("h1").Length(),
			"h2": doc.Find("h2").Length(),
			"h3": doc.Find("h3").Length(),
		},
	}
	seo.Description, _ = doc.Find(`meta[name="description"]`).Attr("content")
	seo.Keywords, _ = doc.Find(`meta[name="keywords"]`).Attr("content")

	doc.Find(`meta[property^="og:"]`).Each(func(_ int, tag *goquery.Selection) {
		prop, _ := tag.Attr("property")
		content, _ := tag.Attr("content")
		if prop != "" {
			seo.OpenGraph[strings.TrimPrefix(prop, "og:")] = content
		}
	})
	if len(seo.OpenGraph) == 0 {
		seo.OpenGraph = nil
	}

	doc.Find("h1").EachWithBreak(func(i int, h *goquery.Selection) bool {
		if i >= 3 {
			return false
		}
		seo.H1s = append(seo.H1s, strings.TrimSpace(h.Text()))
		return true
	})
	return seo
}

func extractSocial(doc *goquery.Document) map[string]string {
	social := map[string]string{}
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		for platform, pattern := range socialPatterns {
			if _, seen := social[platform]; !seen && pattern.MatchString(href) {
				social[platform] = href
			}
		}
	})
	if len(social) == 0 {
		return nil
	}
	return social
}

var separatorSuffix = regexp.MustCompile(`\s*[•–]\s*.*$`)

// cleanBusinessName strips descriptions from a <title> using common
// "Name | Description" and "Name - Description" layouts.
func cleanBusinessName(title string) string {
	title = strings.TrimSpace(title)
	switch {
	case strings.Contains(title, "|"):
		return strings.TrimSpace(strings.Split(title, "|")[0])
	case strings.Contains(title, "-"):
		return strings.TrimSpace(strings.Split(title, "-")[0])
	default:
		return normalizeSpace(separatorSuffix.ReplaceAllString(title, ""))
	}
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(href, "/")
}

func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func capString(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
