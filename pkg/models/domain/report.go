package domain

// Report is a renderable table of analysis output: a titled grid of rows
// plus free-form summary lines shown above it.
type Report struct {
	Title   string
	Summary []ReportLine
	Columns []string
	Rows    [][]string
}

// ReportLine is a single labelled value in a report's summary block.
type ReportLine struct {
	Label string
	Value string
}
