package logger

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// encoder renders a Record into a single output line (without trailing
// newline). Encoding the same record twice yields byte-identical output when
// color is disabled.
type encoder interface {
	Encode(r Record) string
}

var builderPool = sync.Pool{
	New: func() any { return &strings.Builder{} },
}

// sortedContextKeys returns the context field names in a stable order.
// The Context map is unordered by contract; sorting keeps encoded output
// deterministic.
func sortedContextKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// renderValue is the generic to-string rendering used by the KV encoder and
// by JSON fallback values. It avoids fmt for the common scalar types.
func renderValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Duration:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// kvEncoder renders "msg k=v ... rid=<id> mod=<m> ctxk=ctxv ...".
// The message alone is the whole line when there is nothing attached.
type kvEncoder struct{}

func (kvEncoder) Encode(r Record) string {
	sb := builderPool.Get().(*strings.Builder)
	sb.Reset()
	defer builderPool.Put(sb)

	sb.WriteString(r.Message)
	for _, p := range r.Pairs {
		sb.WriteByte(' ')
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(renderValue(p.Value))
	}
	if r.Ctx.RequestID != "" {
		sb.WriteString(" rid=")
		sb.WriteString(r.Ctx.RequestID)
	}
	if r.Ctx.Module != "" {
		sb.WriteString(" mod=")
		sb.WriteString(r.Ctx.Module)
	}
	for _, k := range sortedContextKeys(r.Ctx.Fields) {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(r.Ctx.Fields[k])
	}
	return sb.String()
}

// pairShadows reports whether a caller pair reuses a context field name. The
// pair wins: the call site is more specific than ambient context.
func pairShadows(pairs []Pair, key string) bool {
	for _, p := range pairs {
		if p.Key == key {
			return true
		}
	}
	return false
}

// envelopeKey renames a caller pair that collides with an envelope key the
// record actually emits, keeping the object's keys unique without dropping
// the caller's value.
func envelopeKey(key string, ctx Context) string {
	switch key {
	case "level", "msg":
		return "field_" + key
	case "rid":
		if ctx.RequestID != "" {
			return "field_rid"
		}
	case "mod":
		if ctx.Module != "" {
			return "field_mod"
		}
	}
	return key
}

// jsonEncoder renders a compact single-line object with the fixed key order
// level, msg, rid, mod, context fields, then kv pairs. Field order carries
// meaning for humans tailing the stream, so the object is built by hand
// rather than through an unordered map. Keys are unique: a pair shadowing a
// context field replaces it, and a pair named after an envelope key is
// emitted under a field_ prefix.
type jsonEncoder struct{}

func (jsonEncoder) Encode(r Record) string {
	sb := builderPool.Get().(*strings.Builder)
	sb.Reset()
	defer builderPool.Put(sb)

	sb.WriteByte('{')
	appendJSONString(sb, "level")
	sb.WriteByte(':')
	appendJSONString(sb, r.Level.String())
	sb.WriteByte(',')
	appendJSONString(sb, "msg")
	sb.WriteByte(':')
	appendJSONString(sb, r.Message)
	if r.Ctx.RequestID != "" {
		sb.WriteByte(',')
		appendJSONString(sb, "rid")
		sb.WriteByte(':')
		appendJSONString(sb, r.Ctx.RequestID)
	}
	if r.Ctx.Module != "" {
		sb.WriteByte(',')
		appendJSONString(sb, "mod")
		sb.WriteByte(':')
		appendJSONString(sb, r.Ctx.Module)
	}
	for _, k := range sortedContextKeys(r.Ctx.Fields) {
		if pairShadows(r.Pairs, k) {
			continue
		}
		sb.WriteByte(',')
		appendJSONString(sb, k)
		sb.WriteByte(':')
		appendJSONString(sb, r.Ctx.Fields[k])
	}
	for _, p := range r.Pairs {
		sb.WriteByte(',')
		appendJSONString(sb, envelopeKey(p.Key, r.Ctx))
		sb.WriteByte(':')
		appendJSONValue(sb, p.Value)
	}
	sb.WriteByte('}')
	return sb.String()
}

// appendJSONValue writes a value as a JSON primitive where possible.
// Numbers and booleans go out unquoted; anything else becomes a quoted
// best-effort string.
func appendJSONValue(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case bool:
		sb.WriteString(strconv.FormatBool(x))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		sb.WriteString(renderValue(x))
	case float32:
		appendJSONFloat(sb, float64(x), 32)
	case float64:
		appendJSONFloat(sb, x, 64)
	case nil:
		sb.WriteString("null")
	default:
		appendJSONString(sb, renderValue(v))
	}
}

// appendJSONFloat quotes non-finite floats; bare NaN/Inf is not valid JSON.
func appendJSONFloat(sb *strings.Builder, f float64, bits int) {
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if strings.ContainsAny(s, "NI") { // NaN, Inf, -Inf
		appendJSONString(sb, s)
		return
	}
	sb.WriteString(s)
}

// appendJSONString writes s as a quoted JSON string with standard escaping:
// quote, backslash, the named control escapes, and \u00XX for the rest of the
// range below 0x20.
func appendJSONString(sb *strings.Builder, s string) {
	const hex = "0123456789abcdef"
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20:
			sb.WriteString(`\u00`)
			sb.WriteByte(hex[c>>4])
			sb.WriteByte(hex[c&0xf])
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
}

// encoderFor returns the encoder for a format. The pretty encoder is handed
// its color decision at selection time so queued records keep the styling
// they were rendered with.
func encoderFor(f Format, color bool) encoder {
	switch f {
	case FormatJSON:
		return jsonEncoder{}
	case FormatJSONPretty:
		return prettyEncoder{color: color}
	default:
		return kvEncoder{}
	}
}
