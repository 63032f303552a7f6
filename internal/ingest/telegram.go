package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type telegramExport struct {
	Messages []telegramMessage `json:"messages"`
}

type telegramMessage struct {
	Type string          `json:"type"`
	From string          `json:"from"`
	Date string          `json:"date"`
	Text json.RawMessage `json:"text"`
}

// flattenText handles Telegram's text field, which is either a plain
// string or a list of strings and {text: ...} entity objects.
func (m telegramMessage) flattenText() string {
	var plain string
	if err := json.Unmarshal(m.Text, &plain); err == nil {
		return strings.TrimSpace(plain)
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(m.Text, &parts); err != nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range parts {
		var s string
		if err := json.Unmarshal(p, &s); err == nil {
			sb.WriteString(s)
			sb.WriteString(" ")
			continue
		}
		var ent struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(p, &ent); err == nil {
			sb.WriteString(ent.Text)
			sb.WriteString(" ")
		}
	}
	return strings.TrimSpace(sb.String())
}

// parseTelegram reads a Telegram desktop export (result.json). Service
// entries (type != "message") are not records. Authorship follows the
// shared message-platform rule.
func parseTelegram(text, userHandle string) ([]candidate, []string, error) {
	var export telegramExport
	if err := json.Unmarshal([]byte(text), &export); err != nil {
		return nil, nil, fmt.Errorf("%w: telegram export is not decodable JSON: %v", ErrUnreadableInput, err)
	}

	type msg struct {
		sender  string
		content string
		ts      time.Time
	}
	var msgs []msg
	for _, m := range export.Messages {
		if m.Type != "message" {
			continue
		}
		content := m.flattenText()
		if content == "" {
			continue
		}
		ts, _ := time.Parse("2006-01-02T15:04:05", m.Date)
		msgs = append(msgs, msg{sender: strings.TrimSpace(m.From), content: content, ts: ts})
	}

	handle := normalizeHandle(userHandle)
	senders := make(map[string]struct{})
	for _, m := range msgs {
		senders[normalizeHandle(m.sender)] = struct{}{}
	}

	if handle == "" && len(senders) > 1 {
		out := make([]candidate, len(msgs))
		for i := range msgs {
			out[i] = candidate{
				answer:        msgs[i].content,
				discard:       true,
				discardReason: "multi-author chat with no user handle",
			}
		}
		return out, []string{"chat has multiple senders; pass a user handle to attribute records"}, nil
	}

	var out []candidate
	for i, m := range msgs {
		isUser := handle == "" || normalizeHandle(m.sender) == handle
		question := ""
		if i > 0 && normalizeHandle(msgs[i-1].sender) != normalizeHandle(m.sender) {
			question = msgs[i-1].content
		}
		out = append(out, candidate{
			question:     question,
			answer:       m.content,
			timestamp:    m.ts,
			authorIsUser: isUser,
			tags:         []string{"chat", "message"},
			certainty:    certaintyTyped,
		})
	}
	return out, nil, nil
}
