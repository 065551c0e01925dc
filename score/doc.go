// Package score models pitched music on an integer tick grid and
// writes it out as LilyPond source.
//
// Durations count in 128ths of a whole note, so dotted values and
// tuplet ratios stay exact. A Score holds voices of measures; every
// measure is validated against the time signature before writing.
package score
