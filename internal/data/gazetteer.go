// Package data holds the curated lexicons used by the lexical entity
// recognizer. Lists are deliberately small; the recognizer is
// best-effort and precision matters more than recall here.
package data

import "strings"

// places maps lower-cased place names to true. Major North American
// cities plus provinces, states and a few countries that show up in
// local crime reporting.
var places = map[string]bool{
	// Ontario and the rest of Canada
	"toronto": true, "ottawa": true, "hamilton": true, "london": true,
	"sudbury": true, "thunder bay": true, "north bay": true, "timmins": true,
	"kingston": true, "windsor": true, "barrie": true, "kitchener": true,
	"winnipeg": true, "regina": true, "saskatoon": true, "calgary": true,
	"edmonton": true, "vancouver": true, "victoria": true, "montreal": true,
	"quebec city": true, "halifax": true,
	"ontario": true, "quebec": true, "manitoba": true, "alberta": true,
	"saskatchewan": true, "british columbia": true, "nova scotia": true,
	"new brunswick": true, "canada": true,
	// United States
	"new york": true, "chicago": true, "los angeles": true, "houston": true,
	"phoenix": true, "philadelphia": true, "detroit": true, "seattle": true,
	"boston": true, "denver": true, "dallas": true, "atlanta": true,
	"miami": true, "minneapolis": true, "portland": true, "baltimore": true,
	"cleveland": true, "pittsburgh": true, "buffalo": true, "milwaukee": true,
	"california": true, "texas": true, "florida": true, "michigan": true,
	"illinois": true, "washington": true, "oregon": true, "ohio": true,
	"united states": true, "america": true, "mexico": true,
}

// givenNames maps common lower-cased given names to true. Used as a
// person cue when no honorific precedes a capitalized run.
var givenNames = map[string]bool{
	"james": true, "john": true, "robert": true, "michael": true,
	"william": true, "david": true, "richard": true, "joseph": true,
	"thomas": true, "charles": true, "christopher": true, "daniel": true,
	"matthew": true, "anthony": true, "mark": true, "donald": true,
	"steven": true, "paul": true, "andrew": true, "joshua": true,
	"kevin": true, "brian": true, "george": true, "timothy": true,
	"ronald": true, "jason": true, "edward": true, "ryan": true,
	"mary": true, "patricia": true, "jennifer": true, "linda": true,
	"elizabeth": true, "barbara": true, "susan": true, "jessica": true,
	"sarah": true, "karen": true, "lisa": true, "nancy": true,
	"sandra": true, "ashley": true, "emily": true, "michelle": true,
	"amanda": true, "melissa": true, "deborah": true, "stephanie": true,
	"laura": true, "rachel": true, "catherine": true, "christine": true,
}

// honorifics maps lower-cased titles that introduce a person mention.
var honorifics = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true,
	"officer": true, "constable": true, "detective": true,
	"sergeant": true, "sgt": true, "chief": true, "deputy": true,
	"judge": true, "justice": true, "prosecutor": true,
}

// IsPlace reports whether name (any casing) is a known place.
func IsPlace(name string) bool {
	return places[strings.ToLower(name)]
}

// IsGivenName reports whether name (any casing) is a common given name.
func IsGivenName(name string) bool {
	return givenNames[strings.ToLower(name)]
}

// IsHonorific reports whether tok (any casing, trailing period
// ignored) is a title that introduces a person.
func IsHonorific(tok string) bool {
	return honorifics[strings.ToLower(strings.TrimSuffix(tok, "."))]
}
