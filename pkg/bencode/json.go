package bencode

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/go-errors/errors"
)

// ToJSON converts the tree into values understood by encoding/json. Byte
// strings and keys are escaped with EscapeRaw so the result is plain text.
func (i *Item) ToJSON() interface{} {
	switch i.typ {
	case String:
		return EscapeRaw(i.str)

	case Integer:
		return i.integer

	case List:
		list := make([]interface{}, 0, len(i.children))
		for _, child := range i.children {
			list = append(list, child.ToJSON())
		}
		return list

	case Dictionary:
		m := make(map[string]interface{}, len(i.children))
		for _, child := range i.children {
			m[EscapeRaw(child.key)] = child.ToJSON()
		}
		return m
	}
	return nil
}

// FromJSON builds a tree from decoded JSON. Numbers may be json.Number,
// float64 or any Go integer; strings are unescaped with UnescapeRaw.
func FromJSON(value interface{}) (*Item, error) {
	switch v := value.(type) {
	case string:
		return NewString(UnescapeRaw(v), ""), nil

	case map[string]interface{}:
		res := New(Dictionary, "")
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			item, err := FromJSON(v[key])
			if err != nil {
				return nil, err
			}
			item.key = UnescapeRaw(key)
			if IsHexKey(string(item.key)) {
				item.hex = true
			}
			res.AppendMapItem(item)
		}
		return res, nil

	case []interface{}:
		res := New(List, "")
		for _, element := range v {
			item, err := FromJSON(element)
			if err != nil {
				return nil, err
			}
			res.AppendChild(item)
		}
		return res, nil

	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return nil, errors.Errorf("bencode: invalid number %q", v.String())
			}
			return NewInteger(int64(math.Trunc(f)), ""), nil
		}
		return NewInteger(n, ""), nil

	case float64:
		return NewInteger(int64(math.Trunc(v)), ""), nil
	case int:
		return NewInteger(int64(v), ""), nil
	case int64:
		return NewInteger(v, ""), nil
	case int32:
		return NewInteger(int64(v), ""), nil
	case uint32:
		return NewInteger(int64(v), ""), nil
	}

	return nil, errors.Errorf("bencode: unsupported JSON value of type %T", value)
}
