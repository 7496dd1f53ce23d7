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

package lz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowPutByteWraps(t *testing.T) {
	w := newWindow(2) // 4-byte window
	w.putByte('A')
	w.putByte('B')
	w.putByte('C')
	w.putByte('D')
	require.Equal(t, 0, w.posn)
	w.putByte('E')
	require.Equal(t, byte('E'), w.buf[0])
	require.Equal(t, 1, w.posn)
}

func TestCopyMatchOffsetOneReplicatesPrecedingByte(t *testing.T) {
	w := newWindow(4)
	w.putByte('X')

	out := w.copyMatch(1, 5)
	require.Equal(t, []byte{'X', 'X', 'X', 'X', 'X'}, out)
}

func TestCopyMatchOverlappingCopiesByteAtATime(t *testing.T) {
	w := newWindow(4)
	w.putByte('A')
	w.putByte('B')

	// offset 2 (distance to 'A'), length 5: each newly written byte
	// becomes a valid source for a later byte in the same copy.
	out := w.copyMatch(2, 5)
	require.Equal(t, []byte{'A', 'B', 'A', 'B', 'A'}, out)
}

func TestCopyMatchAdvancesPosnByEffectiveLength(t *testing.T) {
	w := newWindow(10) // 1024-byte window
	w.putByte('Z')
	before := w.posn
	w.copyMatch(1, 37)
	require.Equal(t, (before+37)%w.size(), w.posn)
}
