package ingest

import (
	"encoding/json"
	"fmt"
)

type instagramPost struct {
	Media []struct {
		Title string `json:"title"`
	} `json:"media"`
}

type instagramInbox struct {
	Messages []struct {
		SenderName string `json:"sender_name"`
		Content    string `json:"content"`
	} `json:"messages"`
}

// parseInstagram reads either the posts export (array of media items
// with captions) or a DM thread ({messages: [...]}). DM threads follow
// the same authorship rule as other message platforms.
func parseInstagram(text, userHandle string) ([]candidate, []string, error) {
	var posts []instagramPost
	if err := json.Unmarshal([]byte(text), &posts); err == nil && len(posts) > 0 && posts[0].Media != nil {
		var out []candidate
		for _, p := range posts {
			for _, m := range p.Media {
				if m.Title == "" {
					continue
				}
				out = append(out, candidate{
					answer:       m.Title,
					authorIsUser: true,
					tags:         []string{"post", "caption"},
					certainty:    certaintyTyped,
				})
			}
		}
		return out, nil, nil
	}

	var inbox instagramInbox
	if err := json.Unmarshal([]byte(text), &inbox); err != nil {
		return nil, nil, fmt.Errorf("%w: instagram export is not decodable JSON: %v", ErrUnreadableInput, err)
	}

	handle := normalizeHandle(userHandle)
	senders := make(map[string]struct{})
	for _, m := range inbox.Messages {
		senders[normalizeHandle(m.SenderName)] = struct{}{}
	}

	if handle == "" && len(senders) > 1 {
		out := make([]candidate, 0, len(inbox.Messages))
		for _, m := range inbox.Messages {
			out = append(out, candidate{
				answer:        m.Content,
				discard:       true,
				discardReason: "multi-author thread with no user handle",
			})
		}
		return out, []string{"DM thread has multiple senders; pass a user handle to attribute records"}, nil
	}

	var out []candidate
	for i, m := range inbox.Messages {
		if m.Content == "" {
			continue
		}
		isUser := handle == "" || normalizeHandle(m.SenderName) == handle
		question := ""
		if i > 0 && normalizeHandle(inbox.Messages[i-1].SenderName) != normalizeHandle(m.SenderName) {
			question = inbox.Messages[i-1].Content
		}
		out = append(out, candidate{
			question:     question,
			answer:       m.Content,
			authorIsUser: isUser,
			tags:         []string{"dm", "chat"},
			certainty:    certaintyTyped,
		})
	}
	return out, nil, nil
}
