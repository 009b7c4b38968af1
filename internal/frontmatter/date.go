package frontmatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// normalizeDate rewrites a top-level date to epoch seconds and adds year,
// month and day siblings. Unparseable dates are left alone.
func normalizeDate(t *Tree, loc *time.Location) {
	raw, found := t.Get("date")
	if !found {
		return
	}

	ts, ok := parseDate(raw, loc)
	if !ok {
		return
	}

	local := ts.In(loc)

	t.Set("date", epoch(ts))
	t.Set("year", strconv.Itoa(local.Year()))
	t.Set("month", fmt.Sprintf("%02d", int(local.Month())))
	t.Set("day", fmt.Sprintf("%02d", local.Day()))
}

// parseDate tries, in order: a native time, a numeric epoch, then a date
// string read in loc.
func parseDate(v any, loc *time.Location) (time.Time, bool) {
	switch v2 := v.(type) {
	case time.Time:
		return v2, true

	case *time.Time:
		if v2 == nil {
			return time.Time{}, false
		}
		return *v2, true

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		secs, err := cast.ToInt64E(v2)
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(secs, 0), true

	case string:
		s := strings.TrimSpace(v2)
		if s == "" {
			return time.Time{}, false
		}

		if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(secs, 0), true
		}

		ts, err := cast.ToTimeInDefaultLocationE(s, loc)
		if err != nil {
			return time.Time{}, false
		}
		return ts, true

	default:
		return time.Time{}, false
	}
}

func epoch(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
