// Copyright (C) 2024 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command colbuildtool builds a string column from a newline-delimited
// text file and reports the encoding it picked. It is a thin
// demonstration harness around package colbuild, configured by a
// definition.yaml in the spirit of db's table definitions.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/sneller-labs/strcolumn/column/colbuild"
)

// config is the shape of the definition.yaml a run of colbuildtool
// reads. Field names carry json tags because sigs.k8s.io/yaml converts
// YAML to JSON before unmarshaling.
type config struct {
	Input            string `json:"input"`
	NullToken        string `json:"nullToken,omitempty"`
	CardinalityLimit int    `json:"cardinalityLimit,omitempty"`
	SummaryOutput    string `json:"summaryOutput,omitempty"`
}

// summary is written to SummaryOutput, when set, after a build.
type summary struct {
	Rows              int    `json:"rows"`
	DictionaryEntries int    `json:"dictionaryEntries"`
	Encoding          string `json:"encoding"`
	SizeBytes         int    `json:"sizeBytes"`
	ContainsNull      bool   `json:"containsNull"`
	Fingerprint       string `json:"fingerprint"`
}

var dashc string

func init() {
	flag.StringVar(&dashc, "c", "definition.yaml", "path to the build definition")
}

func main() {
	flag.Parse()
	log.SetFlags(0)
	colbuild.Errorf = func(f string, args ...any) {
		log.Printf(f, args...)
	}
	if err := run(dashc); err != nil {
		log.Fatalf("colbuildtool: %s", err)
	}
}

func run(defpath string) error {
	raw, err := os.ReadFile(defpath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", defpath, err)
	}
	var cfg config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", defpath, err)
	}
	if cfg.Input == "" {
		return fmt.Errorf("%s: input is required", defpath)
	}
	if cfg.NullToken == "" {
		cfg.NullToken = "\\N"
	}

	values, err := readValues(cfg.Input, cfg.NullToken)
	if err != nil {
		return err
	}

	col := colbuild.FromOptionalStrings(values, colbuild.Options{
		CardinalityLimit: cfg.CardinalityLimit,
	})

	s := summary{
		Rows:              col.NumRows(),
		DictionaryEntries: col.DictionaryLen(),
		Encoding:          col.Encoding().String(),
		SizeBytes:         col.Size(),
		ContainsNull:      col.ContainsNull(),
		Fingerprint:       fmt.Sprintf("%016x", col.Fingerprint()),
	}
	out, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if cfg.SummaryOutput == "" {
		os.Stdout.Write(out)
		return nil
	}
	return os.WriteFile(cfg.SummaryOutput, out, 0644)
}

// readValues reads one logical row per line from path, treating any
// line equal to nullToken as NULL.
func readValues(path, nullToken string) ([]*string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var values []*string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == nullToken {
			values = append(values, nil)
			continue
		}
		s := line
		values = append(values, &s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}
