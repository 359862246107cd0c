package logic

import (
	"math"
	"strconv"
	"time"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with a 1024 base and at most two decimals
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatDate renders a modification time as dd.mm.yyyy
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02.01.2006")
}
