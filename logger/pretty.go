package logger

import (
	"strings"
)

// ANSI fragments used by the pretty encoder. Colorization only ever wraps
// structural text in escape codes; stripping the codes from colored output
// must yield exactly the uncolored output.
const (
	ansiReset   = "\033[0m"
	ansiKey     = "\033[36m"       // cyan
	ansiString  = "\033[32m"       // green
	ansiNumber  = "\033[33m"       // yellow
	ansiBool    = "\033[35m"       // magenta
	ansiPunct   = "\033[90m"       // gray
	ansiDimMS   = "\033[38;5;110m" // dimmed accent for durations
	ansiAccent  = "\033[1;36m"     // bold cyan for method/path
	ansiStatus2 = "\033[32m"       // 2xx green
	ansiStatus3 = "\033[36m"       // 3xx cyan
	ansiStatus4 = "\033[33m"       // 4xx yellow
	ansiStatus5 = "\033[31m"       // 5xx red
)

// prettyEncoder renders the same field set as the JSON encoder, one
// key/value per indented line, with optional semantic colorization.
type prettyEncoder struct {
	color bool
}

type prettyItem struct {
	key   string
	value string // already JSON-marshaled
	style string // ANSI code for the value, empty when uncolored
}

func (e prettyEncoder) Encode(r Record) string {
	items := make([]prettyItem, 0, 4+len(r.Ctx.Fields)+len(r.Pairs))
	items = append(items, e.item("level", jsonQuote(r.Level.String())))
	items = append(items, e.item("msg", jsonQuote(r.Message)))
	if r.Ctx.RequestID != "" {
		items = append(items, e.item("rid", jsonQuote(r.Ctx.RequestID)))
	}
	if r.Ctx.Module != "" {
		items = append(items, e.item("mod", jsonQuote(r.Ctx.Module)))
	}
	for _, k := range sortedContextKeys(r.Ctx.Fields) {
		if pairShadows(r.Pairs, k) {
			continue
		}
		items = append(items, e.item(k, jsonQuote(r.Ctx.Fields[k])))
	}
	for _, p := range r.Pairs {
		items = append(items, e.itemValue(envelopeKey(p.Key, r.Ctx), p.Value))
	}

	sb := builderPool.Get().(*strings.Builder)
	sb.Reset()
	defer builderPool.Put(sb)

	sb.WriteString(e.punct("{"))
	sb.WriteByte('\n')
	for i, it := range items {
		sb.WriteString("  ")
		sb.WriteString(e.wrap(ansiKey, jsonQuote(it.key)))
		sb.WriteString(e.punct(":"))
		sb.WriteByte(' ')
		sb.WriteString(e.wrap(it.style, it.value))
		if i != len(items)-1 {
			sb.WriteString(e.punct(","))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(e.punct("}"))
	if e.color {
		// Do not leak styling past the record.
		sb.WriteString(ansiReset)
	}
	return sb.String()
}

func (e prettyEncoder) item(key, marshaled string) prettyItem {
	return prettyItem{key: key, value: marshaled, style: e.styleFor(key, marshaled)}
}

func (e prettyEncoder) itemValue(key string, v any) prettyItem {
	sb := builderPool.Get().(*strings.Builder)
	sb.Reset()
	appendJSONValue(sb, v)
	marshaled := sb.String()
	builderPool.Put(sb)
	return prettyItem{key: key, value: marshaled, style: e.styleFor(key, marshaled)}
}

// styleFor picks the value color: field-name heuristics first, then the
// syntactic role of the marshaled value.
func (e prettyEncoder) styleFor(key, marshaled string) string {
	if !e.color {
		return ""
	}
	switch {
	case key == "status":
		if c := statusStyle(marshaled); c != "" {
			return c
		}
	case key == "duration_ms" || strings.HasSuffix(key, "_ms"):
		return ansiDimMS
	case key == "method" || key == "path":
		return ansiAccent
	}
	switch {
	case strings.HasPrefix(marshaled, `"`):
		return ansiString
	case marshaled == "true" || marshaled == "false":
		return ansiBool
	case marshaled == "null":
		return ansiPunct
	default:
		return ansiNumber
	}
}

// statusStyle bands a numeric HTTP status by its class. Non-numeric status
// values fall through to role coloring.
func statusStyle(marshaled string) string {
	if len(marshaled) == 0 || marshaled[0] < '1' || marshaled[0] > '9' {
		return ""
	}
	switch marshaled[0] {
	case '2':
		return ansiStatus2
	case '3':
		return ansiStatus3
	case '4':
		return ansiStatus4
	case '5':
		return ansiStatus5
	default:
		return ansiNumber
	}
}

func (e prettyEncoder) wrap(code, s string) string {
	if !e.color || code == "" {
		return s
	}
	return code + s + ansiReset
}

func (e prettyEncoder) punct(s string) string {
	return e.wrap(ansiPunct, s)
}

func jsonQuote(s string) string {
	sb := builderPool.Get().(*strings.Builder)
	sb.Reset()
	appendJSONString(sb, s)
	out := sb.String()
	builderPool.Put(sb)
	return out
}
