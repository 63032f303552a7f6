package ingest

import (
	"regexp"
	"strings"
)

// whatsAppLine matches `date, time - author: text` transcript lines.
var whatsAppLine = regexp.MustCompile(
	`^(\d{1,2}/\d{1,2}/\d{2,4}),?\s+` + // date
		`(\d{1,2}:\d{2}(?::\d{2})?(?:\s?[AP]M)?)\s+-\s+` + // time
		`([^:]+):\s+` + // sender
		`(.+)$`) // message

type transcriptMessage struct {
	sender  string
	content string
}

// parseWhatsApp turns a transcript export into candidates. Continuation
// lines fold into the preceding message. A record is attributed to the
// user only when the sender matches the supplied handle; with no handle
// a multi-author transcript cannot resolve authorship, so every record
// is discarded with a diagnostic.
func parseWhatsApp(text, userHandle string) ([]candidate, []string) {
	var messages []transcriptMessage
	for _, line := range strings.Split(text, "\n") {
		m := whatsAppLine.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil {
			messages = append(messages, transcriptMessage{
				sender:  strings.TrimSpace(m[3]),
				content: strings.TrimSpace(m[4]),
			})
			continue
		}
		trimmed := strings.TrimSpace(line)
		if len(messages) > 0 && trimmed != "" && !strings.HasPrefix(line, "‎") {
			messages[len(messages)-1].content += " " + trimmed
		}
	}
	if len(messages) == 0 {
		return nil, nil
	}

	handle := normalizeHandle(userHandle)
	senders := make(map[string]struct{})
	for _, m := range messages {
		senders[normalizeHandle(m.sender)] = struct{}{}
	}

	if handle == "" {
		if len(senders) > 1 {
			out := make([]candidate, len(messages))
			for i := range messages {
				out[i] = candidate{
					answer:        messages[i].content,
					discard:       true,
					discardReason: "multi-author transcript with no user handle",
				}
			}
			return out, []string{"transcript has multiple authors; pass a user handle to attribute records"}
		}
		// Single author, unambiguous.
		out := make([]candidate, 0, len(messages))
		for _, m := range messages {
			out = append(out, candidate{
				answer:       m.content,
				authorIsUser: true,
				tags:         []string{"chat"},
				certainty:    certaintyTyped,
			})
		}
		return out, nil
	}

	var out []candidate
	for i, m := range messages {
		if normalizeHandle(m.sender) != handle {
			continue
		}
		question := ""
		if i > 0 && normalizeHandle(messages[i-1].sender) != handle {
			question = messages[i-1].content
		}
		out = append(out, candidate{
			question:     question,
			answer:       m.content,
			authorIsUser: true,
			tags:         []string{"chat"},
			certainty:    certaintyTyped,
		})
	}
	return out, nil
}
