// Package protocol implements the ILLO light-sync advertisement format
package protocol

// Version represents the illo firmware version
const Version = "0.1.0"

// Wire format constants. One frame travels as the name field of a single
// connectionless advertisement:
//
//	ILLO_<seq>_<pos1>_<int1>_<col1>_<pos2>_<int2>_<col2>_<pos3>_<int3>_<col3>
const (
	Prefix    = "ILLO" // literal marker separating sync frames from foreign traffic
	Separator = '_'

	FieldCount   = 11 // prefix + sequence + 3 triples of 3 fields each
	FrameTriples = 3  // sparse pixel updates carried per frame
	NumPixels    = 10 // ring cells, positions 0-9

	MaxIntensity = 255
	MaxColorType = 2

	SeqModulus = 256 // sequence counter wraps mod 256

	// MaxTokenLen is the longest token Encode can produce
	// ("ILLO_255_9_255_2_9_255_2_9_255_2"). Tokens must fit the
	// name field of a legacy advertisement, so this is part of the
	// wire contract.
	MaxTokenLen = 32
)

// SeedToken is the first advertisement a leader publishes before its
// animator has produced a frame: sequence 0, all triples dark.
const SeedToken = "ILLO_0_0_0_0_0_0_0_0_0_0"
