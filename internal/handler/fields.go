package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Messages for submitted values of the wrong JSON type.
const (
	msgNull    = "This field may not be null."
	msgInteger = "A valid integer is required."
	msgString  = "Not a valid string."
	msgBoolean = "Must be a valid boolean."
)

// jsonValue decodes an already validated raw field.  Numbers stay
// json.Number so integers and floats can be told apart.
func jsonValue(raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func jsonTypeName(v any) string {
	switch v := v.(type) {
	case string:
		return "str"
	case bool:
		return "bool"
	case []any:
		return "list"
	case map[string]any:
		return "dict"
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return "int"
		}
		return "float"
	}
	return "NoneType"
}

// intField accepts JSON integers and strings holding one.  A zero
// fraction such as "5.0" is allowed.
func intField(raw json.RawMessage) (int, string) {
	var s string
	switch v := jsonValue(raw).(type) {
	case nil:
		return 0, msgNull
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	default:
		return 0, msgInteger
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && strings.Trim(s[i+1:], "0") == "" {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, msgInteger
	}
	return n, ""
}

// pkField reads a primary key given as a JSON integer or numeric string.
func pkField(raw json.RawMessage) (uint64, string) {
	v := jsonValue(raw)
	var s string
	switch v := v.(type) {
	case nil:
		return 0, msgNull
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, "Incorrect type. Expected pk value, received " + jsonTypeName(v) + "."
	}
	return id, ""
}

// textField accepts strings and numbers, the latter in their JSON form.
func textField(raw json.RawMessage) (string, string) {
	switch v := jsonValue(raw).(type) {
	case nil:
		return "", msgNull
	case string:
		return v, ""
	case json.Number:
		return v.String(), ""
	}
	return "", msgString
}

func boolField(raw json.RawMessage) (bool, string) {
	switch v := jsonValue(raw).(type) {
	case nil:
		return false, msgNull
	case bool:
		return v, ""
	case json.Number, string:
		s, _ := v.(string)
		if n, ok := v.(json.Number); ok {
			s = n.String()
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "t", "yes", "y", "on", "1":
			return true, ""
		case "false", "f", "no", "n", "off", "0":
			return false, ""
		}
	}
	return false, msgBoolean
}
