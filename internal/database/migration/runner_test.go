package migration

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__add_index.sql":   {Data: []byte("CREATE INDEX x ON jobs (position);")},
		"V1__create_jobs.sql": {Data: []byte("CREATE TABLE jobs (id INT);\n")},
		"README.md":           {Data: []byte("ignored")},
	}

	migs, err := Load(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 || migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("migrations = %+v", migs)
	}
	if migs[0].Name != "create_jobs" || migs[0].Checksum == "" || strings.HasSuffix(migs[0].SQL, "\n") {
		t.Fatalf("first migration = %+v", migs[0])
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file": {"V1__a.sql": {Data: []byte("  ")}},
		"duplicate": {
			"V1__a.sql": {Data: []byte("SELECT 1;")},
			"V01__b.sql": {Data: []byte("SELECT 2;")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
