package orrery

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// ExportConfig configures an ephemeris export.
type ExportConfig struct {
	Filename string
	// Timestamp appends the start instant to the file name so repeated
	// runs do not clobber each other.
	Timestamp bool
	Start     time.Time
	End       time.Time
	Step      time.Duration
}

// IsUseless reports whether this config would export nothing.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == "" || !c.End.After(c.Start) || c.Step <= 0
}

func (c ExportConfig) createFile() (*os.File, error) {
	name := c.Filename
	if c.Timestamp {
		name += "-" + c.Start.Format("2006-01-02-15.04.05")
	}
	name += ".csv"
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("creating ephemeris file: %w", err)
	}
	return f, nil
}

// ExportEphemeris samples the positions of the given bodies at every Step
// between Start and End and writes them to a CSV file. Columns are the
// instant, its Julian day, and an xyz triple in km per body.
func ExportEphemeris(conf ExportConfig, bodies []*Body) error {
	if conf.IsUseless() {
		return errors.New("useless export configuration")
	}
	f, err := conf.createFile()
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	hdr := []string{"time", "jd"}
	for _, bd := range bodies {
		hdr = append(hdr, bd.Name+"_x", bd.Name+"_y", bd.Name+"_z")
	}
	if err = w.Write(hdr); err != nil {
		return err
	}

	for dt := conf.Start; !dt.After(conf.End); dt = dt.Add(conf.Step) {
		rec := []string{
			dt.Format(time.RFC3339),
			strconv.FormatFloat(julian.TimeToJD(dt), 'f', 6, 64),
		}
		for _, bd := range bodies {
			pos, err := bd.Position(dt)
			if err != nil {
				return fmt.Errorf("ephemeris of %s: %w", bd.Name, err)
			}
			for _, v := range pos {
				rec = append(rec, strconv.FormatFloat(v, 'f', 3, 64))
			}
		}
		if err = w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
