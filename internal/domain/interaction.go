package domain

import (
	"time"
)

// Platform identifies where an interaction originated.
type Platform string

const (
	PlatformChat             Platform = "chat"
	PlatformWhatsApp         Platform = "whatsapp"
	PlatformTwitter          Platform = "twitter"
	PlatformLinkedInPosts    Platform = "linkedin_posts"
	PlatformLinkedInMessages Platform = "linkedin_messages"
	PlatformInstagram        Platform = "instagram"
	PlatformTelegram         Platform = "telegram"
	PlatformCSV              Platform = "csv"
	PlatformJSON             Platform = "json"
)

// IngestPlatforms lists the platforms the normalizer parses, in
// declaration order. Chat interactions are logged directly and never
// pass through ingestion.
var IngestPlatforms = []Platform{
	PlatformWhatsApp, PlatformTwitter,
	PlatformLinkedInPosts, PlatformLinkedInMessages,
	PlatformInstagram, PlatformTelegram, PlatformCSV, PlatformJSON,
}

func ValidIngestPlatform(p string) bool {
	for _, known := range IngestPlatforms {
		if Platform(p) == known {
			return true
		}
	}
	return false
}

// Interaction is one logged exchange or ingested post/message.
// Records are immutable once appended to the episodic store and are
// never reordered or deleted.
type Interaction struct {
	ID           string    `json:"id"`
	Seq          int64     `json:"seq"`
	Timestamp    time.Time `json:"timestamp"`
	Platform     Platform  `json:"platform"`
	Question     string    `json:"question"` // the other party's text; empty for pure posts
	Answer       string    `json:"answer"`   // the substantive text of the exchange
	AuthorIsUser bool      `json:"author_is_user"`
	Tags         []string  `json:"tags,omitempty"`
	Confidence   float32   `json:"confidence"`
}
