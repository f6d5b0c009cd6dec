// Package export renders the activity log as a spreadsheet-friendly CSV
// file and optionally archives it to object storage.
package export

import (
	"strings"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// bom makes spreadsheet apps read the file as UTF-8.
const bom = "\ufeff"

const (
	dateLayout = "2.1.2006"
	timeLayout = "15:04:05"
)

// Header is the fixed column row: date, time, name, id number, role,
// vehicle number, action, note.
var Header = []string{"תאריך", "שעה", "שם", `ת"ז`, "תפקיד", "מספר רכב", "פעולה", "הערה"}

const (
	labelEntry = "כניסה"
	labelExit  = "יציאה"
)

// ActionLabel returns the localized label for a. Anything but an entry is
// labelled as an exit.
func ActionLabel(a types.ActionType) string {
	if a == types.ActionEntry {
		return labelEntry
	}
	return labelExit
}

// FormatCSV renders logs with a header row. Every cell is quoted and rows
// are separated by "\n". Timestamps are shown in loc.
func FormatCSV(logs []types.EntryLog, loc *time.Location) []byte {
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	b.WriteString(bom)
	writeRow(&b, Header)

	for _, l := range logs {
		ts := l.Timestamp.In(loc)
		b.WriteByte('\n')
		writeRow(&b, []string{
			ts.Format(dateLayout),
			ts.Format(timeLayout),
			l.PersonName,
			l.IDNumber,
			l.Role,
			l.VehicleNumber,
			ActionLabel(l.ActionType),
			l.Note,
		})
	}
	return []byte(b.String())
}

func writeRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(c, `"`, `""`))
		b.WriteByte('"')
	}
}

// FileName is the download name for an export produced at now. The date is
// the UTC calendar date regardless of now's location.
func FileName(now time.Time) string {
	return "gate-log-" + now.UTC().Format("2006-01-02") + ".csv"
}
