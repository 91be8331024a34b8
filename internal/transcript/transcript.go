package transcript

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

const maxLineBytes = 1 << 20

// Item is one record of the provider's newline-delimited transcript.
type Item struct {
	SpeakerID string `json:"speaker_id"`
	Type      string `json:"type"`
	Text      string `json:"text"`
	StartTS   int64  `json:"start_ts"`
	StopTS    int64  `json:"stop_ts"`

	// Extra holds the provider fields not mapped above, verbatim.
	Extra map[string]json.RawMessage `json:"-"`
}

type itemFields Item

var mappedFields = []string{"speaker_id", "type", "text", "start_ts", "stop_ts"}

func (i *Item) UnmarshalJSON(b []byte) error {
	var f itemFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range mappedFields {
		delete(all, k)
	}
	if len(all) > 0 {
		f.Extra = all
	}
	*i = Item(f)
	return nil
}

func (i Item) MarshalJSON() ([]byte, error) {
	return i.MarshalWith(nil)
}

// MarshalWith encodes the record as one object with add merged in at the top
// level. Mapped fields override Extra, and add overrides both.
func (i Item) MarshalWith(add map[string]any) ([]byte, error) {
	b, err := json.Marshal(itemFields(i))
	if err != nil {
		return nil, err
	}
	var mapped map[string]json.RawMessage
	if err := json.Unmarshal(b, &mapped); err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(i.Extra)+len(mapped)+len(add))
	for k, v := range i.Extra {
		out[k] = v
	}
	for k, v := range mapped {
		out[k] = v
	}
	for k, v := range add {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		out[k] = raw
	}
	return json.Marshal(out)
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Parse decodes an NDJSON document. Blank lines are skipped; any malformed
// line fails the whole document.
func Parse(body []byte) ([]Item, error) {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	items := []Item{}
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
