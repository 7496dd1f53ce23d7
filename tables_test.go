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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionSlotCount(t *testing.T) {
	require.Equal(t, 20, PositionSlotCount(10))
	require.Equal(t, 42, PositionSlotCount(21))
}

func TestM4AndM5SlotCountsSaturate(t *testing.T) {
	require.Equal(t, 20, M4SlotCount(10))  // 2*10 < 24
	require.Equal(t, 24, M4SlotCount(21))  // 2*21 > 24, saturates
	require.Equal(t, 20, M5SlotCount(10))  // 2*10 < 36
	require.Equal(t, 36, M5SlotCount(21))  // 2*21 > 36, saturates
}

func TestPositionSlotZeroHasBaseZeroAndNoExtraBits(t *testing.T) {
	// Slot 0 has base 0 and reads no extra bits, so it yields offset 1
	// (base 0 + 1).
	require.EqualValues(t, 0, PositionBase[0])
	require.Equal(t, uint(0), ExtraBits[0])
}

func TestTableLengths(t *testing.T) {
	require.Len(t, PositionBase, NumPositionSlots)
	require.Len(t, ExtraBits, NumPositionSlots)
	require.Len(t, LengthBase, NumLengthSlots)
	require.Len(t, LengthExtra, NumLengthSlots)
}

func TestErrorWrapsKindAndUnderlyingCause(t *testing.T) {
	base := errors.New("boom")
	err := &Error{Kind: KindCorruptBitstream, Err: base}

	require.ErrorIs(t, err, base)
	require.Contains(t, err.Error(), "corrupt bitstream")
	require.Contains(t, err.Error(), "boom")
}

func TestNewErrorFormats(t *testing.T) {
	err := NewError(KindMalformedContainer, "bad value %d", 42)
	require.Equal(t, KindMalformedContainer, err.Kind)
	require.Contains(t, err.Error(), "bad value 42")
}
