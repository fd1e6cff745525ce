package zaim

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The API marks absent values with sentinels instead of null: 0 for reference
// ids and "" for free text. Flags are 1 for true.

func nullID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	return nullString(*s)
}

func flag(n int) bool { return n == 1 }

// decodeRequired unmarshals data into v after checking that every key is
// present and not null.
func decodeRequired(data []byte, v any, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var missing []string
	for _, k := range keys {
		if raw, ok := fields[k]; !ok || string(raw) == "null" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return json.Unmarshal(data, v)
}
