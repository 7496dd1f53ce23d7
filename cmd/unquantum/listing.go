/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cinematronics/unquantum/archive"
)

// listingEntry is the YAML-friendly projection of an archive.Entry.
type listingEntry struct {
	Name     string `yaml:"name"`
	Comment  string `yaml:"comment,omitempty"`
	Size     uint32 `yaml:"size"`
	Modified string `yaml:"modified"`
}

func toListingEntries(entries []archive.Entry) []listingEntry {
	out := make([]listingEntry, len(entries))

	for i, e := range entries {
		out[i] = listingEntry{
			Name:     e.Name,
			Comment:  e.Comment,
			Size:     e.OriginalLen,
			Modified: e.ModTime().Format(time.RFC3339),
		}
	}

	return out
}

// listEntries writes the file table to w, either as an aligned text table
// or, when format is "yaml", as a YAML document.
func listEntries(archiveName string, entries []archive.Entry, format string, w io.Writer) error {
	if format == "yaml" {
		doc := map[string][]listingEntry{archiveName: toListingEntries(entries)}
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)
	}

	fmt.Fprintf(w, "%s:\n", archiveName)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED\tCOMMENT")

	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", e.Name, e.OriginalLen, e.ModTime().Format(time.RFC3339), e.Comment)
	}

	return tw.Flush()
}
