package cvm

// FetchOutcome tags the result of a monthly archive fetch so callers can
// branch on the upstream condition without inspecting HTTP details.
type FetchOutcome int

const (
	// OutcomeFetched means the archive was downloaded successfully.
	OutcomeFetched FetchOutcome = iota

	// OutcomeNotFound means the archive for that month is not published
	// (HTTP 404). Expected for the current month early in the cycle.
	OutcomeNotFound

	// OutcomeForbidden means the upstream refused the request (HTTP 403),
	// treated as a possibly transient block.
	OutcomeForbidden

	// OutcomeFailed means any other transport or protocol failure.
	OutcomeFailed
)

// String returns a human-readable tag for logging.
func (o FetchOutcome) String() string {
	switch o {
	case OutcomeFetched:
		return "fetched"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeForbidden:
		return "forbidden"
	default:
		return "failed"
	}
}

// FetchResult is the typed outcome of fetching one monthly archive.
// Path is set only when Outcome is OutcomeFetched; Err only when
// Outcome is OutcomeFailed.
type FetchResult struct {
	Outcome FetchOutcome
	Path    string
	Err     error
}

// Row is one raw daily-report line extracted from an archive CSV member.
// Fields are kept as published; normalisation, filtering and numeric
// parsing are the importer's job so it can count skipped rows.
type Row struct {
	CNPJ  string // fund registry number as published (punctuated)
	Date  string // quota date, YYYY-MM-DD
	Value string // quota value, comma decimal separator
}
