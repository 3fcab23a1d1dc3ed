package content

import "strings"

// PostDate is the display form of a post date. The structured fields and
// Long/Ordinal are derived from the noon-UTC day; Timestamp is the instant
// the post was dated with and is the sort key.
type PostDate struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"` // 0-11
	MonthAbbr string `json:"monthAbbr"`
	Day       int    `json:"day"`

	Timestamp int64  `json:"time"` // unix milliseconds
	Long      string `json:"string"`
	Ordinal   string `json:"ordinal"`
}

type Post struct {
	Link        string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Date        PostDate `json:"date"`

	SourcePath string `json:"-"`
}

// Normalize trims the human-entered fields.
func (p *Post) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
}

// Newer reports whether p sorts before q in a newest-first list.
func (p Post) Newer(q Post) bool {
	return p.Date.Timestamp > q.Date.Timestamp
}
