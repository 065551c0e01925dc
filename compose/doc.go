// Package compose turns text into a 26-voice vocal score, one voice
// per letter of the Latin alphabet.
//
// The pipeline normalizes the input, counts letter frequencies, and
// gives each letter a fixed pitch and a rhythmic density proportional
// to how often it occurs. The most frequent letter sings every beat;
// rarer letters thin out toward silence. RenderRoll draws the result
// as a piano-roll proof sheet.
package compose
