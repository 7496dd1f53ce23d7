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

package quantum

import (
	"fmt"
	"time"
)

const (
	// EvtArchiveParsed fires once the header and file table are read.
	EvtArchiveParsed = 0
	// EvtFileStart fires before a file's selectors start decoding.
	EvtFileStart = 1
	// EvtFileEnd fires once a file reaches its declared size.
	EvtFileEnd = 2
	// EvtRescale fires whenever a Frequency Model rescales.
	EvtRescale = 3
	// EvtDecompressionEnd fires once every file has been produced.
	EvtDecompressionEnd = 4
)

// Event describes one point of progress during decompression. Core
// packages never print or log: they call Listener.ProcessEvent, and it is
// up to the caller (typically cmd/unquantum) to turn events into output.
type Event struct {
	eventType int
	fileIndex int
	size      int64
	eventTime time.Time
	msg       string
}

// NewEvent creates an Event for a given file index and size.
func NewEvent(eventType, fileIndex int, size int64) *Event {
	return &Event{eventType: eventType, fileIndex: fileIndex, size: size, eventTime: time.Now()}
}

// NewEventFromString creates an Event carrying a free-form message instead
// of a size, used for EvtRescale.
func NewEventFromString(eventType, fileIndex int, msg string) *Event {
	return &Event{eventType: eventType, fileIndex: fileIndex, msg: msg, eventTime: time.Now()}
}

// Type returns the event kind (one of the Evt* constants).
func (e *Event) Type() int { return e.eventType }

// FileIndex returns the 0-based index of the file the event concerns, or
// -1 for events that are not file-scoped.
func (e *Event) FileIndex() int { return e.fileIndex }

// Size returns the event's byte count (EvtFileStart, EvtFileEnd,
// EvtDecompressionEnd) or file-table length (EvtArchiveParsed).
func (e *Event) Size() int64 { return e.size }

// Time returns when the event was created.
func (e *Event) Time() time.Time { return e.eventTime }

func (e *Event) String() string {
	if e.msg != "" {
		return e.msg
	}

	name := ""

	switch e.eventType {
	case EvtArchiveParsed:
		name = "ARCHIVE_PARSED"
	case EvtFileStart:
		name = "FILE_START"
	case EvtFileEnd:
		name = "FILE_END"
	case EvtRescale:
		name = "RESCALE"
	case EvtDecompressionEnd:
		name = "DECOMPRESSION_END"
	}

	return fmt.Sprintf("{ \"type\":\"%s\", \"file\":%d, \"size\":%d, \"time\":%d }",
		name, e.fileIndex, e.size, e.eventTime.UnixNano()/1000000)
}

// Listener receives Events as a decompression progresses.
type Listener interface {
	ProcessEvent(evt *Event)
}
