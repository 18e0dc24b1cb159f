package models

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var populationPrinter = message.NewPrinter(language.English)

// Country is a single entry of the country dataset.
// Only Name and Region take part in filtering; the rest is display data.
type Country struct {
	Name       string `json:"name" yaml:"name"`
	Region     string `json:"region" yaml:"region"`
	Capital    string `json:"capital,omitempty" yaml:"capital,omitempty"`
	Population int64  `json:"population,omitempty" yaml:"population,omitempty"`
	Flags      Flags  `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// DisplayPopulation formats the population with thousands separators.
func (c Country) DisplayPopulation() string {
	return populationPrinter.Sprintf("%d", c.Population)
}

// Flags holds the image URLs of a country's flag.
type Flags struct {
	SVG string `json:"svg,omitempty" yaml:"svg,omitempty"`
	PNG string `json:"png,omitempty" yaml:"png,omitempty"`
}

// Region is a geographic region name used by the region filter.
type Region string

// RegionNone is the empty-marker meaning "no region filter".
const RegionNone Region = ""

const (
	RegionAfrica  Region = "Africa"
	RegionAmerica Region = "America"
	RegionAsia    Region = "Asia"
	RegionEurope  Region = "Europe"
	RegionOceania Region = "Oceania"
)

// Regions lists the selectable regions in display order.
var Regions = []Region{
	RegionAfrica,
	RegionAmerica,
	RegionAsia,
	RegionEurope,
	RegionOceania,
}

// IsNone reports whether r is the empty-marker.
func (r Region) IsNone() bool {
	return r == RegionNone
}

// String returns the region name, or "All" for the empty-marker.
func (r Region) String() string {
	if r.IsNone() {
		return "All"
	}
	return string(r)
}

// ParseRegion resolves a user-supplied region name case-insensitively.
// An empty string and "all" resolve to RegionNone.
func ParseRegion(s string) (Region, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return RegionNone, true
	}
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return RegionNone, false
}

// NextRegion cycles through the empty-marker followed by Regions.
func NextRegion(r Region) Region {
	if r.IsNone() {
		return Regions[0]
	}
	for i, candidate := range Regions {
		if candidate == r && i+1 < len(Regions) {
			return Regions[i+1]
		}
	}
	return RegionNone
}
