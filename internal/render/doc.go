// Package render prints expressions and definitions in either concrete
// syntax. The same layout pass reports the byte ranges of marked spine
// locations so callers can highlight a redex in the text they show.
package render
