// Package banner prints the one-shot server-ready block. The whole block is
// emitted under the shared console coordinator, so console-synchronized log
// writes hold off until the banner is fully on screen.
package banner

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vixlabs/vixutil/logger"
)

// Info describes the server identity and endpoints shown in the banner.
type Info struct {
	App     string // defaults to "vix"
	Version string // e.g. "Vix v1.16.1"
	ReadyMS int    // startup duration; negative hides it

	Mode       string // "dev" or "run"; empty means run
	Status     string // "ready" | "listening" | "running" | ...
	ConfigPath string

	Host     string // defaults to "localhost"
	Port     int    // defaults to 8080
	Scheme   string // defaults to "http"
	BasePath string // defaults to "/"

	ShowWS   bool
	WSHost   string
	WSPort   int
	WSScheme string
	WSPath   string

	ShowHints  bool
	Threads    int
	MaxThreads int
}

const labelWidth = 8

// ModeFromEnv resolves VIX_MODE to "dev" or "run". The watch/reload spellings
// count as dev; everything else, including unset, means run.
func ModeFromEnv() string {
	switch strings.ToLower(os.Getenv("VIX_MODE")) {
	case "dev", "watch", "reload":
		return "dev"
	default:
		return "run"
	}
}

// Emit prints the banner to stderr.
func Emit(info Info) {
	EmitTo(os.Stderr, info)
}

// EmitTo prints the banner to w under the console coordinator: log writes
// with console synchronization enabled wait until the block is complete.
func EmitTo(w io.Writer, info Info) {
	applyDefaults(&info)

	logger.ResetBanner()
	defer logger.MarkBannerDone()

	color := logger.Caps.ColorEnabled(w)
	links := logger.Caps.HyperlinksEnabled(w)

	logger.AcquireConsole()
	defer logger.ReleaseConsole()

	var b strings.Builder
	if color {
		b.WriteString("\033[0m")
	}
	writeHeadline(&b, info, color)
	b.WriteByte('\n')

	row(&b, bullet(color), "HTTP:", httpURL(info), false, color, links)
	if info.ShowWS {
		row(&b, bullet(color), "WS:", wsURL(info), false, color, links)
	}
	if info.ConfigPath != "" {
		row(&b, infoMark(color), "Config:", info.ConfigPath, true, color, links)
	}
	if info.Threads > 0 {
		v := strconv.Itoa(info.Threads)
		if info.MaxThreads > 0 {
			v += "/" + strconv.Itoa(info.MaxThreads)
		}
		row(&b, infoMark(color), "Threads:", v, true, color, links)
	}
	row(&b, infoMark(color), "Mode:", prettyMode(info.Mode), true, color, links)
	row(&b, infoMark(color), "Status:", prettyStatus(info.Status), true, color, links)
	if info.ShowHints {
		row(&b, infoMark(color), "Hint:", "Ctrl+C to stop the server", true, color, links)
	}
	b.WriteByte('\n')

	io.WriteString(w, b.String())
}

func applyDefaults(info *Info) {
	if info.App == "" {
		info.App = "vix"
	}
	if info.Status == "" {
		info.Status = "ready"
	}
	if info.Host == "" {
		info.Host = "localhost"
	}
	if info.Port == 0 {
		info.Port = 8080
	}
	if info.Scheme == "" {
		info.Scheme = "http"
	}
	if info.BasePath == "" {
		info.BasePath = "/"
	}
	if info.ShowWS {
		if info.WSHost == "" {
			info.WSHost = "localhost"
		}
		if info.WSPort == 0 {
			info.WSPort = 9090
		}
		if info.WSScheme == "" {
			info.WSScheme = "ws"
		}
	}
}

// writeHeadline renders the first banner line: local time, identity, status
// pill, version, startup time and mode tag.
func writeHeadline(b *strings.Builder, info Info, color bool) {
	t := localTime12h(time.Now())
	if color {
		b.WriteString(gray(t))
	} else {
		b.WriteString(t)
	}
	b.WriteString("  ")
	b.WriteString(identity(info.App, info.Mode, color))
	b.WriteString("  ")
	b.WriteString(statusPill(strings.ToUpper(info.Status), color))

	if info.Version != "" {
		b.WriteString("  ")
		if color {
			b.WriteString("\033[1m\033[97m" + info.Version + "\033[0m")
		} else {
			b.WriteString(info.Version)
		}
	}
	if info.ReadyMS >= 0 {
		ms := " (" + strconv.Itoa(info.ReadyMS) + " ms)"
		if color {
			b.WriteString("\033[38;5;110m" + ms + "\033[0m")
		} else {
			b.WriteString(ms)
		}
	}
	if info.Mode != "" {
		b.WriteString("  ")
		b.WriteString(modeTag(info.Mode, color))
	}
	b.WriteString("\n")
}

func row(b *strings.Builder, icon, label, value string, dimValue, color, links bool) {
	lbl := label
	if len(lbl) < labelWidth {
		lbl += strings.Repeat(" ", labelWidth-len(lbl))
	}
	b.WriteString("  ")
	if color {
		b.WriteString("\033[0m")
	}
	b.WriteString(icon)
	b.WriteString(" ")
	if color {
		b.WriteString("\033[1m\033[97m" + lbl + "\033[0m")
	} else {
		b.WriteString(lbl)
	}
	if dimValue {
		b.WriteString(wrap("\033[2m", value, color))
	} else {
		b.WriteString(link(value, color, links))
	}
	b.WriteString("\n")
}

// localTime12h formats t as 12-hour wall time, e.g. "3:04:05 PM".
func localTime12h(t time.Time) string {
	hour := t.Hour()
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d:%02d %s", hour, t.Minute(), t.Second(), suffix)
}

func httpURL(i Info) string {
	u := i.Scheme + "://" + i.Host + ":" + strconv.Itoa(i.Port)
	if !strings.HasPrefix(i.BasePath, "/") {
		u += "/"
	}
	return u + i.BasePath
}

func wsURL(i Info) string {
	u := i.WSScheme + "://" + i.WSHost + ":" + strconv.Itoa(i.WSPort)
	if i.WSPath != "" {
		if !strings.HasPrefix(i.WSPath, "/") {
			u += "/"
		}
		u += i.WSPath
	}
	return u
}

func identity(app, mode string, color bool) string {
	if !color {
		return "[" + app + "]"
	}
	icon := "●"
	if mode == "dev" {
		icon = "◆"
	}
	return wrap("\033[32m", icon, true) + " " + "\033[1m\033[32m" + strings.ToUpper(app) + "\033[0m"
}

// statusPill renders the status as an inverse-video pill. Color codes track
// the status family: green for ready, teal for running, orange for warnings,
// red for failures.
func statusPill(statusUpper string, color bool) string {
	if !color {
		return statusUpper
	}
	bg := statusBG(statusUpper)
	return "\033[1m\033[48;5;" + strconv.Itoa(bg) + "m\033[30m " + statusUpper + " \033[0m"
}

func statusBG(statusUpper string) int {
	switch statusUpper {
	case "RUNNING", "LISTENING":
		return 35
	case "WARN", "WARNING":
		return 214
	case "ERROR", "FAILED":
		return 196
	default:
		return 34
	}
}

func modeTag(mode string, color bool) string {
	if !color {
		return "[" + mode + "]"
	}
	if mode == "dev" {
		return "\033[1m\033[48;5;34m\033[30m dev \033[0m"
	}
	return "\033[1m\033[48;5;238m\033[97m run \033[0m"
}

func prettyMode(mode string) string {
	switch mode {
	case "dev":
		return "dev (watch/reload)"
	case "":
		return "run"
	default:
		return mode
	}
}

func prettyStatus(status string) string {
	if status == "" {
		return "ready"
	}
	return status
}

func bullet(color bool) string {
	if color {
		return wrap("\033[36m", "›", true)
	}
	return ">"
}

func infoMark(color bool) string {
	if color {
		return wrap("\033[90m", "i", true)
	}
	return "i"
}

// link wraps url in an OSC-8 hyperlink when the terminal is on the allowlist.
// The visible text is cyan under color; the link itself never changes it.
func link(url string, color, links bool) string {
	label := url
	if color {
		label = wrap("\033[36m", url, true)
	}
	if !links {
		return label
	}
	return "\033]8;;" + url + "\033\\" + label + "\033]8;;\033\\"
}

func gray(s string) string { return wrap("\033[90m", s, true) }

func wrap(code, s string, on bool) string {
	if !on {
		return s
	}
	return code + s + "\033[0m"
}
