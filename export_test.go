package orrery

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExportConfig(t *testing.T) {
	if !(ExportConfig{}).IsUseless() {
		t.Fatal("empty export config should be useless")
	}
	conf := ExportConfig{Filename: "x", Start: EpochJ2000, End: EpochJ2000.Add(time.Hour), Step: time.Minute}
	if conf.IsUseless() {
		t.Fatal("complete export config reported useless")
	}
	conf.Step = 0
	if !conf.IsUseless() {
		t.Fatal("zero step should be useless")
	}
	if err := ExportEphemeris(ExportConfig{}, nil); err == nil {
		t.Fatal("useless config must be rejected")
	}
}

func TestExportEphemeris(t *testing.T) {
	conf := ExportConfig{
		Filename: filepath.Join(t.TempDir(), "ephem"),
		Start:    EpochJ2000,
		End:      EpochJ2000.Add(9 * 24 * time.Hour),
		Step:     24 * time.Hour,
	}
	if err := ExportEphemeris(conf, []*Body{Earth, Mars}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(conf.Filename + ".csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header plus ten daily samples.
	if len(records) != 11 {
		t.Fatalf("exported %d rows, expected 11", len(records))
	}
	if records[0][2] != "Earth_x" || records[0][5] != "Mars_x" {
		t.Fatalf("unexpected header %v", records[0])
	}
	if len(records[1]) != 8 {
		t.Fatalf("rows have %d columns, expected 8", len(records[1]))
	}
}
