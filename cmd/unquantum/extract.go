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
	"os"
	"path/filepath"
	"strings"

	"github.com/cinematronics/unquantum/archive"
	"github.com/cinematronics/unquantum/stream"
)

// extractArchive splits the decompressed payload by the entries' declared
// sizes and writes each file under outDir, translating DOS path separators
// and rejecting path components that would escape outDir.
func extractArchive(parsed *archive.Parsed, data []byte, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", outDir, err)
	}

	parts := stream.Split(parsed, data)

	for i, e := range parsed.Entries {
		relPath, err := sanitizeArchivePath(e.Name)

		if err != nil {
			return fmt.Errorf("entry %q: %w", e.Name, err)
		}

		fullPath := filepath.Join(outDir, relPath)

		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return fmt.Errorf("creating directory for %q: %w", e.Name, err)
		}

		if err := os.WriteFile(fullPath, parts[i], 0o644); err != nil {
			return fmt.Errorf("writing %q: %w", fullPath, err)
		}
	}

	return nil
}

// sanitizeArchivePath translates a DOS-style stored name (backslash
// separators) to the native separator and rejects any component that would
// let the entry escape the extraction directory.
func sanitizeArchivePath(name string) (string, error) {
	native := strings.ReplaceAll(name, `\`, string(filepath.Separator))
	cleaned := filepath.Clean(native)

	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("unsafe path %q escapes extraction directory", name)
	}

	return cleaned, nil
}
