package mobgen

import "errors"

var MissingPlayerError = errors.New("base document has no mobs.player entry")
var ParseError = errors.New("malformed map document")
var NegativeCountError = errors.New("mob count must not be negative")
var EmptyCatalogError = errors.New("asset catalog is empty")
var NoSourceError = errors.New("generator has no random source; call Init first")
var CoordRangeError = errors.New("invalid coordinate range")
