package core

// CRC16 checksums stored config blobs so a torn flash write reads
// back as no config instead of as garbage JSON. CCITT variant,
// bitwise, no table, the blobs are small.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b = b ^ uint8(crc&0xFF)
		b = b ^ (b << 4)
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}
