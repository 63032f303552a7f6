package ingest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	jsWrapperPattern = regexp.MustCompile(`^window\.[^=]+=\s*`)
	tweetShortLink   = regexp.MustCompile(`https://t\.co/\S+`)
	tweetMention     = regexp.MustCompile(`@\w+`)
)

type tweetEnvelope struct {
	Tweet *tweetBody `json:"tweet"`
	// Flat form (plain JSON array of tweets)
	FullText string `json:"full_text"`
	Text     string `json:"text"`
}

type tweetBody struct {
	FullText string `json:"full_text"`
	Text     string `json:"text"`
}

// parseTwitter reads a tweets.js archive (or plain tweet array).
// Retweets and replies to others are not user-authored posts and never
// become candidates; URLs and mentions are scrubbed from the text.
func parseTwitter(text string) ([]candidate, error) {
	clean := jsWrapperPattern.ReplaceAllString(strings.TrimSpace(text), "")

	var items []tweetEnvelope
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		var wrapper struct {
			Tweets []tweetEnvelope `json:"tweets"`
		}
		if err2 := json.Unmarshal([]byte(clean), &wrapper); err2 != nil {
			return nil, fmt.Errorf("%w: tweet archive is not decodable JSON: %v", ErrUnreadableInput, err)
		}
		items = wrapper.Tweets
	}

	var out []candidate
	for _, item := range items {
		content := item.FullText
		if content == "" {
			content = item.Text
		}
		if item.Tweet != nil {
			content = item.Tweet.FullText
			if content == "" {
				content = item.Tweet.Text
			}
		}

		if strings.HasPrefix(content, "RT @") || strings.HasPrefix(content, "@") {
			continue
		}

		content = strings.TrimSpace(tweetShortLink.ReplaceAllString(content, ""))
		content = strings.TrimSpace(tweetMention.ReplaceAllString(content, ""))
		if content == "" {
			continue
		}

		out = append(out, candidate{
			answer:       content,
			authorIsUser: true,
			tags:         []string{"post", "tweet"},
			certainty:    certaintyTyped,
		})
	}
	return out, nil
}
