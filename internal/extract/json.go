package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/divyamb08/multilingual-summarizer/pkg/utils"
)

const (
	// maxJSONItems is how many array elements are expanded in full.
	maxJSONItems = 5
	// maxJSONValueLen is where nested serialized values get cut off.
	maxJSONValueLen = 100
)

const jsonHint = "the file is not valid JSON; check it with a JSON validator"

// extractJSON parses content and renders it by root shape: arrays expand
// their first 5 elements key-by-key, objects expand each top-level key, and
// scalars pretty-print. Nested values are serialized and truncated at 100
// characters. Syntax errors raise a typed, descriptive failure.
func extractJSON(content []byte) (string, error) {
	var root interface{}
	if err := json.Unmarshal(content, &root); err != nil {
		return "", corruptedErr("JSON", jsonHint, err)
	}

	var b strings.Builder
	switch v := root.(type) {
	case []interface{}:
		fmt.Fprintf(&b, "JSON array with %d items\n", len(v))
		shown := len(v)
		if shown > maxJSONItems {
			shown = maxJSONItems
		}
		for i := 0; i < shown; i++ {
			fmt.Fprintf(&b, "\nItem %d:\n", i+1)
			writeJSONValue(&b, "  ", v[i])
		}
		if len(v) > maxJSONItems {
			fmt.Fprintf(&b, "\n...and %d more items\n", len(v)-maxJSONItems)
		}
	case map[string]interface{}:
		writeJSONValue(&b, "", v)
	default:
		pretty, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return "", corruptedErr("JSON", jsonHint, err)
		}
		b.Write(pretty)
	}
	return strings.TrimSpace(b.String()), nil
}

// writeJSONValue renders v one key per line when it is an object, or as a
// single truncated serialization otherwise. Keys are sorted so output is
// stable.
func writeJSONValue(b *strings.Builder, indent string, v interface{}) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		fmt.Fprintf(b, "%s%s\n", indent, serializeJSON(v))
		return
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s%s: %s\n", indent, k, serializeJSON(obj[k]))
	}
}

func serializeJSON(v interface{}) string {
	if s, ok := v.(string); ok {
		return utils.Truncate(s, maxJSONValueLen)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return utils.Truncate(string(raw), maxJSONValueLen)
}
