package handler

import "net/http"

const robotsTxt = `User-agent: *
Allow: /
Disallow: /api/
Disallow: /hackathons/team/
Disallow: /hackathons/pool/

Sitemap: https://cursorboston.com/sitemap.xml
`

// Robots handles GET /robots.txt
func Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(robotsTxt))
}
