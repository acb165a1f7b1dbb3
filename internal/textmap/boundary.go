package textmap

import "corpusengine"

// maxUTF8CodepointLen is the longest a single UTF-8 codepoint can be.
const maxUTF8CodepointLen = 4

// isContinuationByte reports whether b is a UTF-8 continuation byte
// (10xxxxxx), i.e. the middle of a multi-byte codepoint.
func isContinuationByte(b byte) bool { return b&0xC0 == 0x80 }

// ValidLength implements C1: the UTF-8 boundary finder.
//
// Given source bytes, an offset into them, a desired chunk length and a hard
// maximum chunk length, it returns the largest L <= desiredLen such that
// source[offset:offset+L] ends on a UTF-8 codepoint boundary. At most the
// last four bytes of the candidate window are inspected, since a codepoint
// is never longer than four bytes; the result is therefore always within
// desiredLen-3 .. desiredLen.
func ValidLength(source []byte, offset, desiredLen, maxChunkLen uint64) (uint64, error) {
	if desiredLen > maxChunkLen {
		return 0, corpusengine.NewError(corpusengine.KindInvalidChunkSize, "textmap.ValidLength",
			"desired length exceeds max chunk length", nil)
	}

	srcLen := uint64(len(source))
	if offset+desiredLen >= srcLen {
		// The candidate end is at or past the end of the buffer: the end of
		// the buffer is always a valid boundary.
		if offset >= srcLen {
			return 0, nil
		}
		return srcLen - offset, nil
	}

	limit := uint64(maxUTF8CodepointLen - 1)
	if limit > desiredLen {
		limit = desiredLen
	}
	for back := uint64(0); back <= limit; back++ {
		l := desiredLen - back
		if l == 0 && desiredLen == maxChunkLen {
			break
		}
		pos := offset + l
		if !isContinuationByte(source[pos]) {
			return l, nil
		}
	}

	if desiredLen == maxChunkLen {
		return 0, corpusengine.NewError(corpusengine.KindChunkTooSmall, "textmap.ValidLength",
			"no codepoint boundary fits within max chunk length", nil)
	}
	return 0, corpusengine.NewError(corpusengine.KindInvalidUTF8, "textmap.ValidLength",
		"no valid utf-8 boundary found in window", nil)
}
