package descriptor

import (
	"testing"

	"github.com/matzehuels/driverjars/pkg/errors"
)

func TestResolveDownloadableEngines(t *testing.T) {
	for _, key := range []string{"postgresql", "redshift", "sql server", "oracle", "spark", "snowflake"} {
		d, err := Resolve(key)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", key, err)
		}
		if d.ArchiveName == "" {
			t.Errorf("Resolve(%q): empty archive name", key)
		}
		if d.Version == "" {
			t.Errorf("Resolve(%q): empty version", key)
		}
		if d.DriverClass == "" {
			t.Errorf("Resolve(%q): empty driver class", key)
		}
		if !d.RequiresDriver() {
			t.Errorf("Resolve(%q): RequiresDriver() = false, want true", key)
		}
	}
}

func TestResolveAliases(t *testing.T) {
	sqlServer, err := Resolve("sql server")
	if err != nil {
		t.Fatalf("Resolve(sql server) failed: %v", err)
	}

	for _, alias := range []string{"pdw", "synapse", "PDW", " Synapse "} {
		d, err := Resolve(alias)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", alias, err)
		}
		if d != sqlServer {
			t.Errorf("Resolve(%q) = %+v, want sql server descriptor", alias, d)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("mariadb")
	if err == nil {
		t.Fatal("expected error for unknown engine")
	}
	if !errors.Is(err, errors.ErrCodeUnsupportedEngine) {
		t.Errorf("expected UNSUPPORTED_ENGINE, got %v", err)
	}
}

func TestResolveEmbedded(t *testing.T) {
	for _, key := range []string{"sqlite", "duckdb"} {
		d, err := Resolve(key)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", key, err)
		}
		if d.RequiresDriver() {
			t.Errorf("Resolve(%q): RequiresDriver() = true, want false", key)
		}
	}
}

func TestExpandAll(t *testing.T) {
	ds, err := Expand("all")
	if err != nil {
		t.Fatalf("Expand(all) failed: %v", err)
	}

	want := map[string]bool{
		"postgresql": false, "redshift": false, "sql server": false,
		"oracle": false, "spark": false, "snowflake": false,
	}
	for _, d := range ds {
		seen, known := want[d.Key]
		if !known {
			t.Errorf("Expand(all) returned unexpected engine %q", d.Key)
		}
		if seen {
			t.Errorf("Expand(all) returned engine %q more than once", d.Key)
		}
		want[d.Key] = true
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("Expand(all) missing engine %q", key)
		}
	}
}

func TestExpandSingle(t *testing.T) {
	ds, err := Expand("snowflake")
	if err != nil {
		t.Fatalf("Expand(snowflake) failed: %v", err)
	}
	if len(ds) != 1 || ds[0].Key != "snowflake" {
		t.Errorf("Expand(snowflake) = %+v, want single snowflake descriptor", ds)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"PostgreSQL", "postgresql"},
		{"  redshift  ", "redshift"},
		{"pdw", "sql server"},
		{"SYNAPSE", "sql server"},
		{"oracle", "oracle"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
