package ingest

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// postContentColumns are the header names LinkedIn exports have used
// for the post body, in preference order.
var postContentColumns = []string{"sharecommentary", "content", "text", "description"}

// parseLinkedInPosts reads a posts/shares CSV export; one candidate per
// row with a recognizable content column.
func parseLinkedInPosts(text string) ([]candidate, error) {
	rows, header, err := readCSV(text)
	if err != nil {
		return nil, err
	}

	var out []candidate
	for _, row := range rows {
		content := ""
		for _, col := range postContentColumns {
			if v := cellValue(header, row, col); v != "" {
				content = v
				break
			}
		}
		if content == "" {
			continue
		}
		out = append(out, candidate{
			answer:       content,
			authorIsUser: true,
			tags:         []string{"post"},
			certainty:    certaintyTyped,
		})
	}
	return out, nil
}

// parseLinkedInMessages reads a messages CSV export. Both sides of a
// thread are retained for context, but only rows whose sender matches
// the user handle get author_is_user=true. Without a handle a
// multi-sender thread cannot resolve authorship and all rows are
// discarded with a diagnostic.
func parseLinkedInMessages(text, userHandle string) ([]candidate, []string, error) {
	rows, header, err := readCSV(text)
	if err != nil {
		return nil, nil, err
	}

	type msg struct {
		sender  string
		content string
	}
	var msgs []msg
	for _, row := range rows {
		sender := cellValue(header, row, "sender name")
		if sender == "" {
			sender = cellValue(header, row, "from")
		}
		content := cellValue(header, row, "content")
		if content == "" {
			content = cellValue(header, row, "body")
		}
		if content == "" {
			continue
		}
		msgs = append(msgs, msg{sender: sender, content: content})
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
				discardReason: "multi-author thread with no user handle",
			}
		}
		return out, []string{"message thread has multiple senders; pass a user handle to attribute records"}, nil
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
			authorIsUser: isUser,
			tags:         []string{"message", "chat"},
			certainty:    certaintyTyped,
		})
	}
	return out, nil, nil
}

// readCSV parses tabular content into rows plus a lowercased
// header-name -> column-index map.
func readCSV(text string) ([][]string, map[string]int, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: not parseable as CSV: %v", ErrUnreadableInput, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		header[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return records[1:], header, nil
}

func cellValue(header map[string]int, row []string, col string) string {
	idx, ok := header[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
