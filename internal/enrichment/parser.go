package enrichment

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Profile holds the contact details extractable from an outlet website
type Profile struct {
	Title       string
	Description string
	Email       string
	Phone       string
}

// ParseProfile extracts a contact profile from an outlet homepage. The first
// mailto: and tel: links win; title and meta description are taken verbatim.
func ParseProfile(doc *goquery.Document) *Profile {
	profile := &Profile{}

	profile.Title = strings.TrimSpace(doc.Find("title").First().Text())

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		profile.Description = strings.TrimSpace(desc)
	}

	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		email := strings.TrimPrefix(href, "mailto:")
		// Strip subject/cc query parameters
		if idx := strings.Index(email, "?"); idx >= 0 {
			email = email[:idx]
		}
		if email != "" {
			profile.Email = email
			return false
		}
		return true
	})

	doc.Find(`a[href^="tel:"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		phone := strings.TrimPrefix(href, "tel:")
		if phone != "" {
			profile.Phone = phone
			return false
		}
		return true
	})

	return profile
}

// IsEmpty reports whether parsing found nothing usable
func (p *Profile) IsEmpty() bool {
	return p.Title == "" && p.Description == "" && p.Email == "" && p.Phone == ""
}
