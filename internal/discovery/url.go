package discovery

import (
	"fmt"
	"net/url"
	"strings"
)

// baseURL reduces any page URL to scheme://host.
func baseURL(rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	return fmt.Sprintf("%s://%s", strings.ToLower(u.Scheme), strings.ToLower(u.Host)), nil
}

// resolveSameDomain resolves href against base and returns the absolute URL
// only when it stays on the same host.
func resolveSameDomain(base, href string) (string, bool) {
	baseU, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	refU, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	abs := baseU.ResolveReference(refU)
	if !strings.EqualFold(abs.Host, baseU.Host) {
		return "", false
	}
	return abs.String(), true
}

// orderedSet is a string set that remembers insertion order, so category
// truncation operates on a stable pre-truncation order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(value string) {
	if value == "" {
		return
	}
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
}

func (s *orderedSet) addAll(values []string) {
	for _, v := range values {
		s.add(v)
	}
}

func (s *orderedSet) values() []string {
	return s.items
}
