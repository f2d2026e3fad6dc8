// Package display holds the formatting rules shared by every page payload:
// dates, timestamps, money, percentages and labels.
package display

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"motopartes/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	DateLayout      = "2006-01-02"
	DateView        = "02/01/2006"
	TimestampLayout = "2006-01-02 15:04"
	CurrencySymbol  = "S/"

	// PlaceholderImage replaces missing or broken image references.
	PlaceholderImage = domain.PlaceholderImage
	NoSchedule       = "Sin horario"
)

var (
	locMu sync.RWMutex
	loc   = mustLoad("America/Lima")
)

func mustLoad(name string) *time.Location {
	l, err := time.LoadLocation(name)
	if err != nil {
		// Lima has no DST; a fixed zone is exact.
		return time.FixedZone("PET", -5*60*60)
	}
	return l
}

// SetLocation changes the zone timestamps are rendered in.
func SetLocation(l *time.Location) {
	if l == nil {
		return
	}
	locMu.Lock()
	loc = l
	locMu.Unlock()
}

func Location() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()
	return loc
}

// Date turns a YYYY-MM-DD string into DD/MM/YYYY. Anything that does not
// look like a calendar date is returned unchanged.
func Date(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) < 2 {
		return s
	}
	day := parts[2][:2]
	return day + "/" + parts[1] + "/" + parts[0]
}

// Timestamp renders t in the display zone regardless of the zone it was stored in.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location()).Format(TimestampLayout)
}

// Money formats an amount as "S/ 1,234.50".
func Money(d decimal.Decimal) string {
	s := d.Round(2).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := CurrencySymbol + " " + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

func Percent(p int) string {
	return strconv.Itoa(p) + "%"
}

// Capitalize upper-cases the first letter: "confirmada" -> "Confirmada".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Image substitutes the placeholder for an empty reference.
func Image(url string) string {
	if strings.TrimSpace(url) == "" {
		return PlaceholderImage
	}
	return url
}

func CountLabel(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
