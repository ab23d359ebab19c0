package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gitee.com/golang-module/dongle"
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// MinorUnits converts an amount to the gateway's fixed-point form: amount * 1000,
// truncated toward zero, printed as an integer.
func MinorUnits(amount decimal.Decimal) string {
	return amount.Mul(thousand).Truncate(0).String()
}

// canonicalAmount applies MinorUnits to an amount received as text.
// An empty amount stays empty so the hash ordering reports it as missing.
func canonicalAmount(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return "", fmt.Errorf("amount %q: %w", raw, err)
	}
	return MinorUnits(amount), nil
}

// canonicalInteger normalizes entity codes and reference numbers. Empty or zero
// input hashes as the empty string; otherwise the leading integer is kept with
// leading zeros removed.
func canonicalInteger(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "0" {
		return ""
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	digits := strings.TrimLeft(s[:end], "0")
	if digits == "" {
		return "0"
	}
	return sign + digits
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// docEntry is one key of an ordered JSON document.
type docEntry struct {
	key   string
	value interface{}
}

// encodeDocument writes entries as a compact JSON object in the given order,
// skipping empty values, without escaping slashes, HTML characters or
// non-ASCII text, then Base64 encodes it.
func encodeDocument(name string, entries []docEntry) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	written := 0
	for _, e := range entries {
		if isEmptyValue(e.value) {
			continue
		}
		key, err := marshalCompact(e.key)
		if err != nil {
			return "", &EncodingError{Document: name, Err: err}
		}
		value, err := marshalCompact(e.value)
		if err != nil {
			return "", &EncodingError{Document: name, Err: fmt.Errorf("%s: %w", e.key, err)}
		}
		if written > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
		written++
	}
	buf.WriteByte('}')
	return dongle.Encode.FromBytes(buf.Bytes()).ByBase64().ToString(), nil
}

func marshalCompact(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// isEmptyValue drops nil, empty strings, false and empty collections. Numbers,
// including zero, and numeric strings such as "0" are kept.
func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case map[string]interface{}:
		return len(t) == 0
	case map[string]string:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}
