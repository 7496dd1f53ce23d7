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
	"github.com/charmbracelet/log"

	quantum "github.com/cinematronics/unquantum"
)

// reporter adapts quantum.Event notifications to charmbracelet/log calls,
// the way app/InfoPrinter.go adapts kanzi.Event to fmt.Fprintln: the core
// packages never log, so this is the one Listener implementation in the
// whole repository that turns progress into output.
type reporter struct {
	logger   *log.Logger
	rescales int
}

func newReporter(logger *log.Logger) *reporter {
	return &reporter{logger: logger}
}

// ProcessEvent implements quantum.Listener.
func (r *reporter) ProcessEvent(evt *quantum.Event) {
	switch evt.Type() {
	case quantum.EvtArchiveParsed:
		r.logger.Debug("archive parsed", "files", evt.Size())

	case quantum.EvtFileStart:
		r.logger.Debug("decoding file", "index", evt.FileIndex(), "size", evt.Size())

	case quantum.EvtFileEnd:
		r.logger.Debug("decoded file", "index", evt.FileIndex(), "size", evt.Size())

	case quantum.EvtRescale:
		r.rescales++
		r.logger.Debug("model rescaled", "file", evt.FileIndex(), "count", r.rescales)

	case quantum.EvtDecompressionEnd:
		r.logger.Info("decompression complete", "bytes", evt.Size())
	}
}
