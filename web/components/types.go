package components

import "strings"

// LinkData is used by the preview page to build a default URL.
type LinkData struct {
	Domain    string
	ShortCode string
}

// URL joins the domain and short code into an https URL.
func (l LinkData) URL() string {
	domain := strings.TrimSuffix(strings.TrimSpace(l.Domain), "/")
	if domain == "" {
		domain = "qrcreator.link"
	}
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	if l.ShortCode == "" {
		return domain
	}
	return domain + "/" + strings.TrimPrefix(l.ShortCode, "/")
}
