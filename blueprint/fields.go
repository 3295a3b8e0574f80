package blueprint

import (
	"bytes"
	"reflect"
	"sort"

	"github.com/goccy/go-json"
)

// Extra holds JSON members kept verbatim: keys the model does not know and
// values whose JSON type does not fit the Go field.
type Extra map[string]json.RawMessage

type member struct {
	key   string
	value any
}

// decodeMembers unmarshals each known key of a JSON object into its target
// pointer. It only fails when data is not a JSON object; anything that does
// not fit lands in the returned Extra and the target stays zero.
func decodeMembers(data []byte, targets map[string]any) (Extra, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}

	var extra Extra
	for key, raw := range members {
		target, ok := targets[key]
		if ok && fits(raw, target) {
			continue
		}
		if extra == nil {
			extra = Extra{}
		}
		extra[key] = compact(raw)
	}
	return extra, nil
}

// fits decodes raw into target, resetting target when raw has the wrong
// shape. null only fits fields that can hold it.
func fits(raw json.RawMessage, target any) bool {
	elem := reflect.ValueOf(target).Elem()
	if isNull(raw) {
		switch elem.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
			elem.SetZero()
			return true
		default:
			return false
		}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		elem.SetZero()
		return false
	}
	return true
}

// encodeMembers writes members in order, letting Extra override a member
// of the same key, then the remaining Extra keys sorted.
func encodeMembers(members []member, extra Extra) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value []byte) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
		return nil
	}

	for _, m := range members {
		if raw, ok := extra[m.key]; ok {
			if err := write(m.key, raw); err != nil {
				return nil, err
			}
			continue
		}
		v, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		if err := write(m.key, v); err != nil {
			return nil, err
		}
	}

	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.key] = true
	}
	rest := make([]string, 0, len(extra))
	for key := range extra {
		if !known[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		if err := write(key, extra[key]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func compact(raw []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return append(json.RawMessage(nil), raw...)
	}
	return json.RawMessage(buf.Bytes())
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
