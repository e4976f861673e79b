package calil

import (
	"errors"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// Decode normalizes untrusted wire text into a parsed JSON value. Two shapes
// are accepted: a bare JSON document, and a single JSONP-style wrapper of the
// form "token( json );" with optional surrounding whitespace. Exactly one
// wrapping layer is stripped, and only when both the callback token and the
// trailing ");" terminator are present; anything else is parsed as-is.
//
// Text that is not valid JSON after unwrapping yields a *DecodeError. It is
// never replaced with an empty value.
func Decode(raw string) (gjson.Result, error) {
	text := strings.TrimSpace(raw)
	if inner, ok := unwrapJSONP(text); ok {
		text = inner
	}
	if text == "" {
		return gjson.Result{}, &DecodeError{Err: errors.New("empty payload")}
	}
	if !gjson.Valid(text) {
		return gjson.Result{}, &DecodeError{Err: errors.New("not valid JSON")}
	}
	return gjson.Parse(text), nil
}

// unwrapJSONP strips one "token( ... );" layer. The grammar is strict so that
// garbage never silently parses: the prefix up to the first "(" must be a
// plain callback identifier and the text must end with ");". The inner text
// still goes through full JSON validation afterwards.
func unwrapJSONP(text string) (string, bool) {
	open := strings.Index(text, "(")
	if open <= 0 {
		return "", false
	}
	if !isCallbackToken(strings.TrimSpace(text[:open])) {
		return "", false
	}
	rest := strings.TrimSpace(text[open+1:])
	if !strings.HasSuffix(rest, ");") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimSuffix(rest, ");")), true
}

func isCallbackToken(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r == '_' || r == '$' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
