package cache

import (
	"log/slog"
	"time"
)

// DefaultRefreshLocation は銘柄リストが更新される市場のタイムゾーンです。
const DefaultRefreshLocation = "America/New_York"

// TimeUntilNextRefresh は now から次の hour 時（loc のローカル時刻）までの期間を返します。
// ちょうど hour 時の場合は翌日までの期間を返すため、結果は常に正の値です。
func TimeUntilNextRefresh(now time.Time, hour int, loc *time.Location) time.Duration {
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// DailyTTL returns a TTL function that expires entries at hour o'clock in
// locName every day. An unknown location falls back to UTC.
func DailyTTL(hour int, locName string) func() time.Duration {
	loc, err := time.LoadLocation(locName)
	if err != nil {
		slog.Warn("unknown cache refresh location, using UTC", "location", locName, "error", err)
		loc = time.UTC
	}
	return func() time.Duration {
		return TimeUntilNextRefresh(time.Now(), hour, loc)
	}
}
