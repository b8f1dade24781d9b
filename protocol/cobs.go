package protocol

import "errors"

// errCOBSInvalid is returned by cobsDecode when the stuffed block does not
// describe a well-formed COBS encoding.
var errCOBSInvalid = errors.New("protocol: invalid cobs encoding")

// cobsEncode applies Consistent-Overhead Byte Stuffing to src, guaranteeing
// the result contains no 0x00 byte. The caller appends the single
// terminating FrameDelimiter separately.
func cobsEncode(src []byte) []byte {
	if len(src) == 0 {
		return []byte{0x01}
	}

	dst := make([]byte, 0, len(src)+len(src)/254+2)
	// Reserve a byte for the first code; filled in once we know its value.
	dst = append(dst, 0)
	codeIdx := 0
	code := byte(1)

	for _, b := range src {
		if b == 0x00 {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
			continue
		}

		dst = append(dst, b)
		code++

		if code == 0xFF {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
		}
	}

	dst[codeIdx] = code
	return dst
}

// cobsDecode reverses cobsEncode. It rejects malformed input rather than
// returning a partial result, matching the decoder's "COBS invalid -> reject
// whole frame" rule (spec.md §4.1).
func cobsDecode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, errCOBSInvalid
	}

	dst := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		code := src[i]
		if code == 0 {
			return nil, errCOBSInvalid
		}
		i++

		n := int(code) - 1
		if i+n > len(src) {
			return nil, errCOBSInvalid
		}
		dst = append(dst, src[i:i+n]...)
		i += n

		if code < 0xFF && i < len(src) {
			dst = append(dst, 0x00)
		}
	}

	return dst, nil
}
