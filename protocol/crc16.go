package protocol

// crc16CCITTFalse computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF, no
// reflection, xor-out 0x0000) over data. Used over the header+payload of
// every frame (spec.md §4.1); there is no CRC-16 library anywhere in the
// retrieval pack, so this mirrors the teacher's own approach of computing
// its checksum directly against a stdlib hash rather than importing one —
// CRC-16/CCITT-FALSE has no stdlib implementation, so it is hand-rolled the
// same bit-by-bit way the reference radar firmware would.
func crc16CCITTFalse(data []byte) uint16 {
	const poly = 0x1021
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
