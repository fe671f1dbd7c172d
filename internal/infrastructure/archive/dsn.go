package archive

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DSNOptions are connection settings applied to a postgres DSN unless the DSN
// already sets them.
type DSNOptions struct {
	ApplicationName string
	ConnectTimeout  time.Duration
}

// PostgresDSN applies opts to raw, which may be a postgres:// URL or a lib/pq
// keyword/value string. Values already present in raw win.
func PostgresDSN(raw string, opts DSNOptions) string {
	raw = strings.TrimSpace(raw)
	params := opts.params()
	if raw == "" || len(params) == 0 {
		return raw
	}

	if parsed, err := url.Parse(raw); err == nil && (parsed.Scheme == "postgres" || parsed.Scheme == "postgresql") {
		query := parsed.Query()
		for _, p := range params {
			if query.Get(p.key) == "" {
				query.Set(p.key, p.value)
			}
		}
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	present := make(map[string]struct{})
	for _, token := range strings.Fields(raw) {
		if key, _, ok := strings.Cut(token, "="); ok {
			present[key] = struct{}{}
		}
	}
	var b strings.Builder
	b.WriteString(raw)
	for _, p := range params {
		if _, ok := present[p.key]; ok {
			continue
		}
		b.WriteString(" " + p.key + "=" + quoteDSNValue(p.value))
	}
	return b.String()
}

// DatabaseName extracts the database name from a postgres URL or keyword DSN.
func DatabaseName(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}
	for _, token := range strings.Fields(raw) {
		if value, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

type dsnParam struct {
	key   string
	value string
}

func (o DSNOptions) params() []dsnParam {
	var out []dsnParam
	if name := strings.TrimSpace(o.ApplicationName); name != "" {
		out = append(out, dsnParam{key: "application_name", value: name})
	}
	if o.ConnectTimeout >= time.Second {
		out = append(out, dsnParam{key: "connect_timeout", value: strconv.Itoa(int(o.ConnectTimeout / time.Second))})
	}
	return out
}

func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
