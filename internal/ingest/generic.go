package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// textColumnSynonyms is the shared synonym set for locating the
// text-bearing field in generic tabular or structured input.
var textColumnSynonyms = []string{
	"text", "content", "message", "post", "body",
	"caption", "description", "comment", "reply",
}

func isTextColumn(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, syn := range textColumnSynonyms {
		if name == syn {
			return true
		}
	}
	return false
}

// parseGenericCSV locates the first header column matching a text
// synonym and emits one candidate per row.
func parseGenericCSV(text string) ([]candidate, error) {
	rows, header, err := readCSV(text)
	if err != nil {
		return nil, err
	}

	textCol := ""
	for _, syn := range textColumnSynonyms {
		if _, ok := header[syn]; ok {
			textCol = syn
			break
		}
	}
	if textCol == "" {
		return nil, fmt.Errorf("%w: no text-bearing column in CSV header (looked for %s)",
			ErrUnknownPlatform, strings.Join(textColumnSynonyms, ", "))
	}

	var out []candidate
	for _, row := range rows {
		content := cellValue(header, row, textCol)
		if content == "" {
			continue
		}
		out = append(out, candidate{
			answer:       content,
			authorIsUser: true,
			tags:         []string{"imported"},
			certainty:    certaintyGeneric,
		})
	}
	return out, nil
}

// parseGenericJSON accepts a list of strings, a list of objects with a
// text-synonym field, or a {posts|messages|data|items|tweets: [...]}
// wrapper around either. Elements without a resolvable text field are
// skipped.
func parseGenericJSON(text string) ([]candidate, error) {
	raw := json.RawMessage(strings.TrimSpace(text))

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range []string{"posts", "messages", "data", "items", "tweets"} {
			if inner, ok := obj[key]; ok {
				raw = inner
				break
			}
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: generic JSON is not an array (or known wrapper around one): %v", ErrUnreadableInput, err)
	}

	var out []candidate
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, genericCandidate(s))
			continue
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			out = append(out, candidate{discard: true, discardReason: "element is neither string nor object"})
			continue
		}
		resolved := false
		for _, syn := range textColumnSynonyms {
			rawVal, ok := fields[syn]
			if !ok {
				continue
			}
			var val string
			if err := json.Unmarshal(rawVal, &val); err == nil && val != "" {
				out = append(out, genericCandidate(val))
				resolved = true
				break
			}
		}
		if !resolved {
			out = append(out, candidate{discard: true, discardReason: "no text-bearing field"})
		}
	}
	return out, nil
}

func genericCandidate(text string) candidate {
	return candidate{
		answer:       text,
		authorIsUser: true,
		tags:         []string{"imported"},
		certainty:    certaintyGeneric,
	}
}
