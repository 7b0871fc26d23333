package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hamcat/rigmap/pkg/constants"
)

// Band labels in the order they are written.
const (
	BandHF  = "HF"
	BandVHF = "VHF"
	BandUHF = "UHF"
)

// Notes renders the grant's metadata as a notes line.
func (g Grant) Notes() string {
	return fmt.Sprintf("FCC Grant Date: %s; Purpose: %s; Freq: %s-%s MHz",
		g.GrantDate, g.Purpose, g.LowerMHz, g.UpperMHz)
}

// Bands returns the band labels the grant's frequency range touches, or nil
// when either edge is missing or not a number.
func (g Grant) Bands() []string {
	lo, err := strconv.ParseFloat(g.LowerMHz, 64)
	if err != nil {
		return nil
	}
	hi, err := strconv.ParseFloat(g.UpperMHz, 64)
	if err != nil {
		return nil
	}
	return BandsFor(lo, hi)
}

// BandsFor labels the range lo..hi MHz with every band it touches: HF
// below 30, VHF 30-300 and UHF 300-1000. A range that includes a band's
// upper edge counts as touching that band.
func BandsFor(lo, hi float64) []string {
	if hi < lo {
		lo, hi = hi, lo
	}
	var bands []string
	if touches(lo, hi, 0, constants.HFUpperMHz) {
		bands = append(bands, BandHF)
	}
	if touches(lo, hi, constants.HFUpperMHz, constants.VHFUpperMHz) {
		bands = append(bands, BandVHF)
	}
	if touches(lo, hi, constants.VHFUpperMHz, constants.UHFUpperMHz) {
		bands = append(bands, BandUHF)
	}
	return bands
}

func touches(lo, hi, bandLo, bandHi float64) bool {
	return (lo < bandHi && hi > bandLo) ||
		(lo <= bandHi && bandHi <= hi) ||
		(lo >= bandLo && hi <= bandHi)
}

// BandLabel joins band labels the way the catalog writes them.
func BandLabel(bands []string) string {
	return strings.Join(bands, ", ")
}
