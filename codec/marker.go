package codec

// FormatMarker is the on-disk type tag byte preceding every serialized
// Value payload. Values are fixed by SPEC_FULL.md §4.5 and must never be
// renumbered: adding an alternative means extending this table and
// bumping Version, never reusing or reordering existing tags.
type FormatMarker uint8

const (
	MarkerDouble FormatMarker = 0
	MarkerString FormatMarker = 1
	MarkerBlob   FormatMarker = 2
	MarkerBool   FormatMarker = 3
	MarkerChar   FormatMarker = 4
	MarkerUChar  FormatMarker = 5
	MarkerUInt16 FormatMarker = 6
	MarkerInt16  FormatMarker = 7
	MarkerUInt32 FormatMarker = 8
	MarkerInt32  FormatMarker = 9
	MarkerUInt64 FormatMarker = 10
	MarkerInt64  FormatMarker = 11
	MarkerFloat  FormatMarker = 12
)
