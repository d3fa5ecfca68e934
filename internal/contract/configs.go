package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/gigaton-io/gigaton/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultRegion      = "World"
	DefaultThreshold   = 0.0
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// VariableSpec describes one emissions or sequestration series the report
// covers: the canonical name used in report rows, the variable name to pull
// from the dataset, the unit every row is converted into, and whether the
// year-of-net-zero indicator applies.
type VariableSpec struct {
	Name    string `mapstructure:"name"`
	Source  string `mapstructure:"source"`
	Unit    string `mapstructure:"unit"`
	NetZero bool   `mapstructure:"net-zero"`
}

// CohortSpec names a group of scenarios sharing one of the listed category
// labels. Cohorts may overlap: a scenario can satisfy several specs.
type CohortSpec struct {
	Name       string   `mapstructure:"name"`
	Categories []string `mapstructure:"categories"`
}

// Matches reports whether a category label satisfies this cohort's filter.
func (c CohortSpec) Matches(category string) bool {
	return slices.Contains(c.Categories, category)
}

// UnitConversionSpec declares a multiplicative conversion between two units.
type UnitConversionSpec struct {
	From   string  `mapstructure:"from"`
	To     string  `mapstructure:"to"`
	Factor float64 `mapstructure:"factor"`
}

// UnitKey identifies a conversion direction in the processed conversion map.
type UnitKey struct {
	From string
	To   string
}

// YearPair is a validated (start, end) year pair with start < end.
type YearPair struct {
	Start int
	End   int
}

// String renders the pair the same way the config accepts it.
func (p YearPair) String() string {
	return schema.FormatYearPair(p.Start, p.End)
}

// Span returns the number of years between start and end.
func (p YearPair) Span() int {
	return p.End - p.Start
}

// Config holds the runtime configuration for the report.
// This struct remains the "final, validated" config.
type Config struct {
	DatasetPath  string
	MetadataPath string
	Region       string
	ResultLimit  int
	Workers      int
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)
	Threshold    float64

	ReferenceYears []int
	YearPairs      []YearPair
	Variables      []VariableSpec
	Cohorts        []CohortSpec
	Renames        map[string]string
	Conversions    map[UnitKey]float64
	Excludes       []string

	// ActiveVariable narrows the single-variable commands (netzero, changes,
	// snapshot) to one configured variable. Empty means pick the default.
	ActiveVariable string

	ArchiveBackend   schema.DatabaseBackend
	ArchiveDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DatasetPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Metadata         string `mapstructure:"metadata"`
	Region           string `mapstructure:"region"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	Exclude          string `mapstructure:"exclude"`
	ArchiveBackend   string `mapstructure:"archive-backend"`
	ArchiveDBConnect string `mapstructure:"archive-db-connect"`

	// --- Fields from the single-variable command flags ---
	Variable string `mapstructure:"variable"`

	// --- Report shape from the config file ---
	Threshold      float64              `mapstructure:"threshold"`
	ReferenceYears []int                `mapstructure:"reference-years"`
	YearPairs      []string             `mapstructure:"year-pairs"`
	Variables      []VariableSpec       `mapstructure:"variables"`
	Cohorts        []CohortSpec         `mapstructure:"cohorts"`
	Renames        map[string]string    `mapstructure:"renames"`
	Conversions    []UnitConversionSpec `mapstructure:"unit-conversions"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ReferenceYears != nil {
		clone.ReferenceYears = slices.Clone(c.ReferenceYears)
	}
	if c.YearPairs != nil {
		clone.YearPairs = slices.Clone(c.YearPairs)
	}
	if c.Variables != nil {
		clone.Variables = slices.Clone(c.Variables)
	}
	if c.Excludes != nil {
		clone.Excludes = slices.Clone(c.Excludes)
	}
	if c.Cohorts != nil {
		clone.Cohorts = make([]CohortSpec, len(c.Cohorts))
		for i, cohort := range c.Cohorts {
			clone.Cohorts[i] = CohortSpec{
				Name:       cohort.Name,
				Categories: slices.Clone(cohort.Categories),
			}
		}
	}
	if c.Renames != nil {
		clone.Renames = make(map[string]string, len(c.Renames))
		maps.Copy(clone.Renames, c.Renames)
	}
	if c.Conversions != nil {
		clone.Conversions = make(map[UnitKey]float64, len(c.Conversions))
		maps.Copy(clone.Conversions, c.Conversions)
	}
	return &clone
}

// CloneWithVariable creates a copy of the Config narrowed to one variable.
func (c *Config) CloneWithVariable(name string) *Config {
	clone := c.Clone()
	clone.ActiveVariable = name
	return clone
}

// ConversionFactor returns the multiplicative factor from one unit into
// another. Identical units convert with factor 1 without a configured rule.
func (c *Config) ConversionFactor(from, to string) (float64, error) {
	if from == to {
		return 1.0, nil
	}
	if factor, ok := c.Conversions[UnitKey{From: from, To: to}]; ok {
		return factor, nil
	}
	return 0, fmt.Errorf("%w: no rule from %q to %q", ErrMissingUnitConversion, from, to)
}

// FindVariable returns the configured variable spec with the given canonical
// name.
func (c *Config) FindVariable(name string) (VariableSpec, bool) {
	return findVariableByName(c.Variables, name)
}

// CohortNames returns the configured cohort names in column order.
func (c *Config) CohortNames() []string {
	names := make([]string, len(c.Cohorts))
	for i, cohort := range c.Cohorts {
		names[i] = cohort.Name
	}
	return names
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processYearPairs(cfg, input); err != nil {
		return err
	}
	if err := processReferenceYears(cfg, input); err != nil {
		return err
	}
	if err := processVariables(cfg, input); err != nil {
		return err
	}
	if err := processCohorts(cfg, input); err != nil {
		return err
	}
	if err := processConversions(cfg, input); err != nil {
		return err
	}
	if err := resolveInputPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the archive backend configuration.
// An empty backend leaves the archive disabled.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.ArchiveBackend = schema.DatabaseBackend(strings.ToLower(input.ArchiveBackend))
	if cfg.ArchiveBackend != "" {
		if _, ok := schema.ValidArchiveBackends[cfg.ArchiveBackend]; !ok {
			return fmt.Errorf("invalid archive backend '%s'. must be sqlite, mysql, postgresql, none", input.ArchiveBackend)
		}
		cfg.ArchiveDBConnect = input.ArchiveDBConnect
		if err := ValidateDatabaseConnectionString(cfg.ArchiveBackend, cfg.ArchiveDBConnect); err != nil {
			return err
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-structural fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Threshold = input.Threshold
	cfg.ActiveVariable = strings.TrimSpace(input.Variable)

	cfg.Region = strings.TrimSpace(input.Region)
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, xlsx", cfg.Output)
	}

	// --- 4. Backend Validation ---
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}

	// --- 5. Excludes Processing ---
	cfg.Excludes = nil
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// ParseYearPair parses a "start-end" string into a validated YearPair.
// Rejects unparseable payloads and pairs with start >= end.
func ParseYearPair(s string) (YearPair, error) {
	trimmed := strings.TrimSpace(s)
	parts := strings.Split(trimmed, "-")
	if len(parts) != 2 {
		return YearPair{}, fmt.Errorf("%w: %q must look like '2020-2030'", ErrMalformedYearPair, s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return YearPair{}, fmt.Errorf("%w: bad start year in %q: %v", ErrMalformedYearPair, s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return YearPair{}, fmt.Errorf("%w: bad end year in %q: %v", ErrMalformedYearPair, s, err)
	}
	if start >= end {
		return YearPair{}, fmt.Errorf("%w: start %d must precede end %d", ErrMalformedYearPair, start, end)
	}
	return YearPair{Start: start, End: end}, nil
}

// processYearPairs parses and validates every configured year pair.
func processYearPairs(cfg *Config, input *ConfigRawInput) error {
	cfg.YearPairs = make([]YearPair, 0, len(input.YearPairs))
	seen := make(map[YearPair]struct{})
	for _, raw := range input.YearPairs {
		pair, err := ParseYearPair(raw)
		if err != nil {
			return err
		}
		if _, dup := seen[pair]; dup {
			return fmt.Errorf("duplicate year pair %s", pair)
		}
		seen[pair] = struct{}{}
		cfg.YearPairs = append(cfg.YearPairs, pair)
	}
	return nil
}

// processReferenceYears validates the configured reference years.
func processReferenceYears(cfg *Config, input *ConfigRawInput) error {
	cfg.ReferenceYears = make([]int, 0, len(input.ReferenceYears))
	seen := make(map[int]struct{})
	for _, year := range input.ReferenceYears {
		if year <= 0 {
			return fmt.Errorf("reference year must be positive (received %d)", year)
		}
		if _, dup := seen[year]; dup {
			return fmt.Errorf("duplicate reference year %d", year)
		}
		seen[year] = struct{}{}
		cfg.ReferenceYears = append(cfg.ReferenceYears, year)
	}
	return nil
}

// processVariables validates the configured variables and fills defaults.
func processVariables(cfg *Config, input *ConfigRawInput) error {
	cfg.Variables = make([]VariableSpec, 0, len(input.Variables))
	seen := make(map[string]struct{})
	for _, v := range input.Variables {
		v.Name = strings.TrimSpace(v.Name)
		v.Source = strings.TrimSpace(v.Source)
		v.Unit = strings.TrimSpace(v.Unit)
		if v.Name == "" {
			return fmt.Errorf("variable name cannot be empty")
		}
		if v.Unit == "" {
			return fmt.Errorf("variable %q needs a target unit", v.Name)
		}
		if v.Source == "" {
			v.Source = v.Name
		}
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("duplicate variable %q", v.Name)
		}
		seen[v.Name] = struct{}{}
		cfg.Variables = append(cfg.Variables, v)
	}

	if cfg.ActiveVariable != "" {
		if _, ok := findVariableByName(cfg.Variables, cfg.ActiveVariable); !ok {
			return fmt.Errorf("unknown variable %q. configured: %s", cfg.ActiveVariable, variableNames(cfg.Variables))
		}
	}
	return nil
}

// processCohorts validates the configured cohorts.
func processCohorts(cfg *Config, input *ConfigRawInput) error {
	cfg.Cohorts = make([]CohortSpec, 0, len(input.Cohorts))
	seen := make(map[string]struct{})
	for _, cohort := range input.Cohorts {
		cohort.Name = strings.TrimSpace(cohort.Name)
		if cohort.Name == "" {
			return fmt.Errorf("cohort name cannot be empty")
		}
		if _, dup := seen[cohort.Name]; dup {
			return fmt.Errorf("duplicate cohort %q", cohort.Name)
		}
		if len(cohort.Categories) == 0 {
			return fmt.Errorf("cohort %q needs at least one category", cohort.Name)
		}
		categories := make([]string, 0, len(cohort.Categories))
		for _, cat := range cohort.Categories {
			cat = strings.TrimSpace(cat)
			if cat == "" {
				return fmt.Errorf("cohort %q has an empty category", cohort.Name)
			}
			categories = append(categories, cat)
		}
		cohort.Categories = categories
		seen[cohort.Name] = struct{}{}
		cfg.Cohorts = append(cfg.Cohorts, cohort)
	}
	return nil
}

// processConversions validates conversion rules and builds the lookup map.
func processConversions(cfg *Config, input *ConfigRawInput) error {
	cfg.Conversions = make(map[UnitKey]float64, len(input.Conversions))
	for _, rule := range input.Conversions {
		from := strings.TrimSpace(rule.From)
		to := strings.TrimSpace(rule.To)
		if from == "" || to == "" {
			return fmt.Errorf("unit conversion needs both 'from' and 'to' units")
		}
		if rule.Factor == 0 {
			return fmt.Errorf("unit conversion %q -> %q needs a non-zero factor", from, to)
		}
		key := UnitKey{From: from, To: to}
		if _, dup := cfg.Conversions[key]; dup {
			return fmt.Errorf("duplicate unit conversion %q -> %q", from, to)
		}
		cfg.Conversions[key] = rule.Factor
	}
	return nil
}

// resolveInputPaths resolves and checks the dataset and metadata paths.
func resolveInputPaths(cfg *Config, input *ConfigRawInput) error {
	datasetPath, err := resolveExistingFile(input.DatasetPathStr, "dataset")
	if err != nil {
		return err
	}
	cfg.DatasetPath = datasetPath

	if strings.TrimSpace(input.Metadata) != "" {
		metadataPath, err := resolveExistingFile(input.Metadata, "metadata")
		if err != nil {
			return err
		}
		cfg.MetadataPath = metadataPath
	}
	return nil
}

// resolveExistingFile turns a user path into an absolute path to a regular file.
func resolveExistingFile(path, label string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%s path is required", label)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot read %s file %q: %w", label, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s path %q is a directory, expected a file", label, path)
	}
	return absPath, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

func findVariableByName(vars []VariableSpec, name string) (VariableSpec, bool) {
	for _, v := range vars {
		if v.Name == name {
			return v, true
		}
	}
	return VariableSpec{}, false
}

func variableNames(vars []VariableSpec) string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return strings.Join(names, ", ")
}
