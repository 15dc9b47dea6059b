package promptpay

import "github.com/sigurn/crc16"

// crcTable is CRC-16/CCITT-FALSE, the checksum EMV QR payloads carry in field 63.
var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

func checksum(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}
