package simx

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/robknapen/WISS-Framework/sim/unit"
)

// ReportConfig controls the text layout of Report. Separator, comment
// prefix, and the empty-value placeholder are parameters per spec §6.
type ReportConfig struct {
	Separator     string
	CommentPrefix string
	EmptyValue    string
	RunID         string
	RunDate       time.Time
	DateFormat    string // time.Format layout; defaults to "2006-01-02"
}

// DefaultReportConfig returns the conventional separator/prefix/placeholder
// combination used when a caller has no reason to override them.
func DefaultReportConfig(runID string) ReportConfig {
	return ReportConfig{
		Separator:     "\t",
		CommentPrefix: "#",
		EmptyValue:    "-",
		RunID:         runID,
		DateFormat:    "2006-01-02",
	}
}

type reportColumn struct {
	dv      *dynVar
	caption string
}

func (sx *SimXChange) reportColumns() []reportColumn {
	var cols []reportColumn
	for _, name := range sx.sortedVarNames() {
		vars := sx.byName[name]
		bare := len(vars) == 1
		for _, dv := range vars {
			caption := dv.name
			if !bare {
				caption = dv.simID + "." + dv.name
			}
			cols = append(cols, reportColumn{dv: dv, caption: caption})
		}
	}
	return cols
}

// Report writes the two-section text report described in spec §6: a header
// followed by the time-series-of-state-and-auxiliary-variables section,
// then (only if at least one forced value actually changed) the
// time-series-of-forced-state-variables section.
func (sx *SimXChange) Report(w io.Writer, cfg ReportConfig) error {
	if cfg.Separator == "" {
		cfg.Separator = "\t"
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = "2006-01-02"
	}

	bw := bufio.NewWriter(w)
	sep := cfg.Separator
	p := cfg.CommentPrefix

	fmt.Fprintf(bw, "%s WISS simulation kernel report\n", p)
	fmt.Fprintf(bw, "%s RUN_ID: %s\n", p, cfg.RunID)
	fmt.Fprintf(bw, "%s RUN_DATE: %s\n", p, cfg.RunDate.Format(cfg.DateFormat))
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "%s Time series of state and auxiliary variables\n", p)
	fmt.Fprintln(bw)

	cols := sx.reportColumns()

	fmt.Fprintf(bw, "%s Column units: %s%s%s", p, unit.Caption(unit.DATE), sep, unit.Caption(unit.DAYS))
	for _, c := range cols {
		fmt.Fprintf(bw, "%s%s", sep, unit.Caption(c.dv.nativeUnit))
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "DATE%sELAPSED", sep)
	for _, c := range cols {
		fmt.Fprintf(bw, "%s%s", sep, c.caption)
	}
	fmt.Fprintln(bw)

	for d := 0; d <= sx.curDateIndex; d++ {
		fmt.Fprintf(bw, "%s%s%d", sx.dateForIndex(d).Format(cfg.DateFormat), sep, d)
		for _, c := range cols {
			if c.dv.hasValueAt(d) {
				fmt.Fprintf(bw, "%s%s", sep, strconv.FormatFloat(c.dv.valueAt(d), 'g', -1, 64))
			} else {
				fmt.Fprintf(bw, "%s%s", sep, cfg.EmptyValue)
			}
		}
		fmt.Fprintln(bw)
	}

	var changed []forcedRecord
	for _, r := range sx.forcedRecords {
		if !naEqual(r.oldValue, r.newValue) {
			changed = append(changed, r)
		}
	}
	if len(changed) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "%s Time series of forced state and auxiliary variables\n", p)
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "DATE%sVAR%sOldValue%sNewValue%sUnit\n", sep, sep, sep, sep)
		for _, r := range changed {
			old := cfg.EmptyValue
			if !isNaN(r.oldValue) {
				old = strconv.FormatFloat(r.oldValue, 'g', -1, 64)
			}
			fmt.Fprintf(bw, "%s%s%s%s%s%s%s%s%s%s\n",
				sx.dateForIndex(r.dayIndex).Format(cfg.DateFormat), sep,
				r.simID+"."+r.name, sep,
				old, sep,
				strconv.FormatFloat(r.newValue, 'g', -1, 64), sep,
				unit.Caption(r.unit), sep)
		}
	}

	return bw.Flush()
}

func isNaN(f float64) bool { return f != f }

// naEqual treats two missing (NaN) values as equal to each other but a
// missing value as always different from a concrete one, matching the
// report's "changed" filter: a variable's very first forced write (from
// missing to a concrete value) is a change worth recording.
func naEqual(a, b float64) bool {
	if isNaN(a) && isNaN(b) {
		return true
	}
	if isNaN(a) || isNaN(b) {
		return false
	}
	return a == b
}
