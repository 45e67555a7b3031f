package paynow

import "fmt"

const (
	crcInitial    uint16 = 0xFFFF
	crcPolynomial uint16 = 0x1021
)

// CRC16 computes CRC-16/CCITT (init 0xFFFF, poly 0x1021, MSB first, no
// reflection, no final XOR) over data.
func CRC16(data []byte) uint16 {
	crc := crcInitial
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Checksum returns the CRC of data as the 4 uppercase hex digits PayNow
// expects in tag 63.
func Checksum(data []byte) string {
	return formatChecksum(CRC16(data))
}

func formatChecksum(crc uint16) string {
	return fmt.Sprintf("%04X", crc)
}
