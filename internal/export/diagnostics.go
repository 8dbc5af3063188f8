package export

import "strings"

// DefaultMaxErrorLines is the number of failure lines shown after a batch.
const DefaultMaxErrorLines = 20

// Summarize renders one "[{member}/{pathID}]: {reason}" line per failed outcome,
// in report order, keeping only the first maxLines. It returns false when nothing
// failed. A non-positive maxLines means DefaultMaxErrorLines.
func Summarize(report *Report, maxLines int) (string, bool) {
	if report == nil {
		return "", false
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxErrorLines
	}

	var lines []string
	for _, o := range report.Outcomes {
		if o.Status != StatusFailed {
			continue
		}
		if len(lines) == maxLines {
			break
		}
		lines = append(lines, o.Message())
	}

	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}
