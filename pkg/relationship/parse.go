package relationship

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

const (
	followingKey  = "relationships_following"
	stringListKey = "string_list_data"
)

var ErrMalformedExport = errors.New("export is not valid JSON")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseFollowing decodes the "following" export:
//
//	{"relationships_following": [{"title": "...", "string_list_data": [{"href": "...", "value": "..."}]}]}
//
// Anything that is valid JSON but not shaped like this yields an empty list.
func ParseFollowing(data []byte) (List, error) {
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("decode following export: %w: %v", ErrMalformedExport, err)
	}

	items := elements(json.Get(data, followingKey))
	list := make(List, 0, len(items))
	for _, raw := range items {
		item := json.Get(raw)
		entry := item.Get(stringListKey, 0)

		username := stringValue(item.Get("title"))
		if username == "" {
			username = stringValue(entry.Get("value"))
		}
		list = append(list, Identity{
			Username:   username,
			ProfileURL: stringValue(entry.Get("href")),
		})
	}
	return list, nil
}

// ParseFollowers decodes the "followers" export, a bare array:
//
//	[{"string_list_data": [{"href": "...", "value": "..."}]}]
func ParseFollowers(data []byte) (List, error) {
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("decode followers export: %w: %v", ErrMalformedExport, err)
	}

	items := elements(json.Get(data))
	list := make(List, 0, len(items))
	for _, raw := range items {
		entry := json.Get(raw, stringListKey, 0)
		list = append(list, Identity{
			Username:   stringValue(entry.Get("value")),
			ProfileURL: stringValue(entry.Get("href")),
		})
	}
	return list, nil
}

// validate accepts any single JSON value, scalars included, and rejects
// trailing bytes.
func validate(data []byte) error {
	var v any
	return json.Unmarshal(data, &v)
}

func elements(v jsoniter.Any) []jsoniter.RawMessage {
	if v.ValueType() != jsoniter.ArrayValue {
		return nil
	}
	var raws []jsoniter.RawMessage
	v.ToVal(&raws)
	return raws
}

func stringValue(v jsoniter.Any) string {
	if v.ValueType() != jsoniter.StringValue {
		return ""
	}
	return v.ToString()
}
