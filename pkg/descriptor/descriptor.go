// Package descriptor maps logical database engine names to the versioned
// JDBC driver archives published for them.
//
// The table is static and built at package load; descriptors are plain
// values and safe for concurrent reads. Engine keys are canonical lowercase
// identifiers ("postgresql", "redshift", "sql server", ...). The aliases
// "pdw" and "synapse" resolve to the "sql server" descriptor.
//
// Embedded engines (sqlite, duckdb) ship their driver inside the client
// library and need no external archive; their descriptors report
// RequiresDriver() == false.
package descriptor

import (
	"sort"
	"strings"

	"github.com/matzehuels/driverjars/pkg/errors"
)

// Descriptor identifies the driver archive for one database engine.
type Descriptor struct {
	Key         string // canonical engine key (e.g., "postgresql")
	ArchiveName string // zip file name on the hosting site (empty for embedded engines)
	Version     string // driver version bundled in the archive
	DriverClass string // fully-qualified JDBC driver class name
	JarPattern  string // substring matched against installed jar file names
}

// RequiresDriver reports whether the engine needs an external driver archive.
// Embedded engines (sqlite, duckdb) return false.
func (d Descriptor) RequiresDriver() bool {
	return d.ArchiveName != ""
}

// table holds one descriptor per supported engine, keyed by canonical name.
// Archive names match the files published on the hosting site exactly,
// including their mixed casing.
var table = map[string]Descriptor{
	"postgresql": {
		Key:         "postgresql",
		ArchiveName: "postgresqlV42.2.18.zip",
		Version:     "42.2.18",
		DriverClass: "org.postgresql.Driver",
		JarPattern:  "postgresql",
	},
	"redshift": {
		Key:         "redshift",
		ArchiveName: "RedshiftV2.1.0.9.zip",
		Version:     "2.1.0.9",
		DriverClass: "com.amazon.redshift.jdbc42.Driver",
		JarPattern:  "redshift",
	},
	"sql server": {
		Key:         "sql server",
		ArchiveName: "sqlServerV9.2.0.zip",
		Version:     "9.2.0",
		DriverClass: "com.microsoft.sqlserver.jdbc.SQLServerDriver",
		JarPattern:  "mssql",
	},
	"oracle": {
		Key:         "oracle",
		ArchiveName: "oracleV19.8.zip",
		Version:     "19.8",
		DriverClass: "oracle.jdbc.driver.OracleDriver",
		JarPattern:  "ojdbc",
	},
	"spark": {
		Key:         "spark",
		ArchiveName: "SparkV2.6.21.zip",
		Version:     "2.6.21",
		DriverClass: "com.simba.spark.jdbc.Driver",
		JarPattern:  "spark",
	},
	"snowflake": {
		Key:         "snowflake",
		ArchiveName: "SnowflakeV3.13.22.zip",
		Version:     "3.13.22",
		DriverClass: "net.snowflake.client.jdbc.SnowflakeDriver",
		JarPattern:  "snowflake",
	},
	"sqlite": {
		Key: "sqlite",
	},
	"duckdb": {
		Key: "duckdb",
	},
}

// aliases maps alternate engine names to canonical keys.
// PDW and Synapse use the SQL Server driver.
var aliases = map[string]string{
	"pdw":     "sql server",
	"synapse": "sql server",
}

// SelectorAll expands to every engine with a downloadable driver archive.
const SelectorAll = "all"

// Normalize returns the canonical engine key for name: lowercased, trimmed,
// with aliases resolved. It does not validate that the key is known.
func Normalize(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// Resolve returns the descriptor for the given engine name.
// Aliases are accepted. Unknown names fail with ErrCodeUnsupportedEngine.
func Resolve(name string) (Descriptor, error) {
	key := Normalize(name)
	d, ok := table[key]
	if !ok {
		return Descriptor{}, errors.New(errors.ErrCodeUnsupportedEngine,
			"unsupported dbms %q (known engines: %s)", name, strings.Join(Keys(), ", "))
	}
	return d, nil
}

// Expand resolves a dbms selector to the list of descriptors to process.
// The selector SelectorAll expands to every downloadable engine exactly once;
// any other value resolves to a single descriptor via Resolve.
func Expand(selector string) ([]Descriptor, error) {
	if Normalize(selector) == SelectorAll {
		return Downloadable(), nil
	}
	d, err := Resolve(selector)
	if err != nil {
		return nil, err
	}
	return []Descriptor{d}, nil
}

// All returns every known descriptor, embedded engines included,
// sorted by key for stable output.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(table))
	for _, d := range table {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Downloadable returns the descriptors of engines that have a driver
// archive on the hosting site, sorted by key.
func Downloadable() []Descriptor {
	var out []Descriptor
	for _, d := range All() {
		if d.RequiresDriver() {
			out = append(out, d)
		}
	}
	return out
}

// Keys returns the canonical keys of all known engines, sorted.
func Keys() []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
