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

// Package entropy implements the adaptive arithmetic coder at the heart of
// Quantum decompression: the Model (an adaptive cumulative-frequency table
// with rescale and symbol reorder) and the Decoder (interval narrowing and
// renormalization over H/L/C registers).
package entropy

const (
	// maxTotalFreq is the ceiling a model's total frequency may exceed only
	// transiently, between the post-decode bump and the rescale check.
	maxTotalFreq = 3800

	// freqIncrement is how much cumulative frequency is added to a decoded
	// symbol (and every prefix ahead of it) on each decode.
	freqIncrement = 8

	// initialShiftLeft is the rescale-mode counter's starting value. Each
	// rescale decrements it first, so the first initialShiftLeft-1 rescales
	// halve-and-bump and the one that brings it to zero resets it to
	// rescaleInterval and fully reorders.
	initialShiftLeft = 4

	// rescaleInterval is the shiftLeft value restored after a full rescale.
	rescaleInterval = 50
)

// entry is one symbol record: a symbol identifier and its cumulative
// frequency (the sum of its own and every frequency ahead of it).
type entry struct {
	sym     int
	cumFreq uint32
}

// Model is an adaptive cumulative-frequency table over a fixed alphabet.
// entries[i].cumFreq is strictly greater than entries[i+1].cumFreq for
// every i, entries[0].cumFreq is the total frequency, and the trailing
// sentinel entry always has cumFreq 0.
type Model struct {
	entries   []entry
	shiftLeft int
}

// NewModel builds a Model over the symbol range [start, start+length),
// record i holding symbol start+i with cumulative frequency length-i.
func NewModel(start, length int) *Model {
	m := &Model{
		entries:   make([]entry, length+1),
		shiftLeft: initialShiftLeft,
	}

	for i := 0; i <= length; i++ {
		m.entries[i] = entry{sym: start + i, cumFreq: uint32(length - i)}
	}

	return m
}

// Total returns the model's current total frequency (entries[0].cumFreq).
func (m *Model) Total() uint32 {
	return m.entries[0].cumFreq
}

// entries excluding the trailing sentinel.
func (m *Model) count() int {
	return len(m.entries) - 1
}

// find scans from index 1 upward for the first index i with
// cumFreq[i] <= target, and returns i-1: the entry whose interval contains
// target.
func (m *Model) find(target uint32) int {
	i := 1

	for m.entries[i].cumFreq > target {
		i++
	}

	return i - 1
}

// bump adds freqIncrement to entries[0..index], preserving strict
// monotonicity (every prefix up to and including index gets heavier).
func (m *Model) bump(index int) {
	for j := index; j >= 0; j-- {
		m.entries[j].cumFreq += freqIncrement
	}
}

// needsRescale reports whether the total frequency has crossed the ceiling
// and a rescale must run before the next decode.
func (m *Model) needsRescale() bool {
	return m.entries[0].cumFreq > maxTotalFreq
}

// rescale runs one rescale pass: while shiftLeft is still positive it
// halves every cumulative frequency and restores strict monotonicity
// ("halve and bump" mode); once shiftLeft reaches zero it instead converts
// to individual frequencies, adds one and halves those (ceiling rounding,
// preventing a frequency from collapsing to zero), reorders the alphabet by
// descending frequency, and rebuilds cumulative frequencies from the
// reordered individual ones. Returns true if a full reorder occurred.
func (m *Model) rescale() bool {
	m.shiftLeft--

	if m.shiftLeft > 0 {
		n := m.count()

		for i := n - 1; i >= 0; i-- {
			half := m.entries[i].cumFreq / 2

			if half <= m.entries[i+1].cumFreq {
				half = m.entries[i+1].cumFreq + 1
			}

			m.entries[i].cumFreq = half
		}

		return false
	}

	m.shiftLeft = rescaleInterval
	n := m.count()
	indiv := make([]uint32, n)

	for i := 0; i < n; i++ {
		indiv[i] = (m.entries[i].cumFreq - m.entries[i+1].cumFreq + 1) / 2
	}

	syms := make([]int, n)

	for i := 0; i < n; i++ {
		syms[i] = m.entries[i].sym
	}

	// Selection sort, descending by individual frequency; a later entry is
	// chosen only when strictly larger, so an entry already holding the
	// maximum is never swapped. The swaps can still move equal-frequency
	// entries past each other, so the relative order of ties is not kept.
	for i := 0; i < n-1; i++ {
		best := i

		for j := i + 1; j < n; j++ {
			if indiv[j] > indiv[best] {
				best = j
			}
		}

		if best != i {
			indiv[i], indiv[best] = indiv[best], indiv[i]
			syms[i], syms[best] = syms[best], syms[i]
		}
	}

	m.entries[n].cumFreq = 0

	for i := n - 1; i >= 0; i-- {
		m.entries[i].sym = syms[i]
		m.entries[i].cumFreq = indiv[i] + m.entries[i+1].cumFreq
	}

	return true
}
