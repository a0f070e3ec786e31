package rencode

// Type bytes and fixed ranges, matching the reference rencode tables.
const (
	chrList    = 59
	chrDict    = 60
	chrInt     = 61
	chrInt1    = 62
	chrInt2    = 63
	chrInt4    = 64
	chrInt8    = 65
	chrFloat32 = 66
	chrTrue    = 67
	chrFalse   = 68
	chrNone    = 69
	chrFloat64 = 44
	chrTerm    = 127

	intPosFixedStart = 0
	intPosFixedCount = 44
	intNegFixedStart = 70
	intNegFixedCount = 32
	dictFixedStart   = 102
	dictFixedCount   = 25
	strFixedStart    = 128
	strFixedCount    = 64
	listFixedStart   = 192
	listFixedCount   = 64

	// Longest ASCII digit run accepted for arbitrary-precision integers.
	maxIntLength = 64
)
