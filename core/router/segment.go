package router

import (
	"net/url"
	"strings"
)

// SegmentKind classifies one path segment.
type SegmentKind uint8

const (
	SegmentStatic   SegmentKind = iota // /users
	SegmentParam                       // /:id
	SegmentWildcard                    // /*
)

// Segment is one separator-delimited unit of a URL path. For parameter
// segments Name holds the bind name with the ":" marker stripped; for
// static segments it holds the literal text.
type Segment struct {
	Name string
	Kind SegmentKind
}

// Tokenize splits a raw path into typed segments. Both "/" and "\" act as
// separators, empty fragments from repeated separators are skipped, and
// anything from the first "?" onward is discarded. Fragments are not
// %-decoded here; parameter values are decoded at lookup time.
func Tokenize(path string) []Segment {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	fields := strings.FieldsFunc(path, isSeparator)
	if len(fields) == 0 {
		return nil
	}

	segs := make([]Segment, 0, len(fields))
	for _, f := range fields {
		switch {
		case f[0] == ':':
			segs = append(segs, Segment{Name: f[1:], Kind: SegmentParam})
		case f == "*":
			segs = append(segs, Segment{Name: "*", Kind: SegmentWildcard})
		default:
			segs = append(segs, Segment{Name: f, Kind: SegmentStatic})
		}
	}
	return segs
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// splitQuery separates the path portion from the raw query string.
func splitQuery(path string) (string, string) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

// parseQuery parses a raw query string into a flat key→value map.
// %-escapes are decoded and keys without "=" map to an empty value.
// Unlike url.Values, repeated keys keep the last value.
func parseQuery(raw string) map[string]string {
	if raw == "" {
		return nil
	}

	query := make(map[string]string)
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		key, val, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(val); err == nil {
			val = v
		}
		query[key] = val
	}
	return query
}

// decodeSegment decodes %-escapes in a matched parameter value.
// Malformed escapes fall back to the raw text rather than failing the match.
func decodeSegment(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

// joinSegments rebuilds the slash-joined tail for a wildcard remainder.
func joinSegments(segs []Segment) string {
	switch len(segs) {
	case 0:
		return ""
	case 1:
		return segs[0].Name
	}

	var b strings.Builder
	for i, seg := range segs {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(seg.Name)
	}
	return b.String()
}
