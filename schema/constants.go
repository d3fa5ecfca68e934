package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// IndicatorKind represents the computation behind a summary row.
	IndicatorKind string

	// DatabaseBackend represents the database backend for the run archive.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	XLSXOut OutputMode = "xlsx"
)

// All indicator kinds supported.
const (
	SnapshotKind IndicatorKind = "snapshot" // value at a reference year
	ChangeKind   IndicatorKind = "change"   // annual rate of change over a year pair
	NetZeroKind  IndicatorKind = "netzero"  // interpolated year of threshold crossing
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// AllIndicatorKinds returns a list of all supported indicator kinds.
var AllIndicatorKinds = []IndicatorKind{SnapshotKind, ChangeKind, NetZeroKind}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
	XLSXOut: {},
}

// ValidArchiveBackends lists all valid archive backends.
var ValidArchiveBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// MinQuartileCount is the smallest contributing sample size for which a cell
// reports median and interquartile range; below it the cell reports the full
// observed range instead.
const MinQuartileCount = 7

// PlaceholderCell is rendered for cohort cells with zero contributing
// scenarios.
const PlaceholderCell = "-"

// NeverCrosses is rendered for net-zero years of positive infinity, i.e.
// series that stay above the threshold across the whole observed horizon.
const NeverCrosses = "never"

// MaxMembersShown caps the cohort member roster in table output. Full
// rosters go to CSV and JSON output only.
const MaxMembersShown = 4
