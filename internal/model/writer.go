package model

// Writer defines a generic interface for exporting a finished report.
type Writer interface {
	// Name identifies the writer in logs.
	Name() string

	// Write exports the report. Timestamp names the run, e.g. 2006-01-02_15-04-05.
	Write(report *Report, timestamp string) error
}

// TimestampLayout formats the run timestamp handed to writers.
const TimestampLayout = "2006-01-02_15-04-05"
