package color

import "fmt"

// DeviceAddress is the fixed 7-bit I2C address of the TCS3400.
const DeviceAddress = 0x39

// Register is a TCS3400 register address.
type Register byte

const (
	RegEnable  Register = 0x80
	RegATime   Register = 0x81
	RegWTime   Register = 0x83
	RegAILTL   Register = 0x84
	RegAILTH   Register = 0x85
	RegAIHTL   Register = 0x86
	RegAIHTH   Register = 0x87
	RegAPers   Register = 0x8C
	RegConfig  Register = 0x8D
	RegControl Register = 0x8F
	RegID      Register = 0x92
	RegStatus  Register = 0x93
	RegCDataL  Register = 0x94
)

var registerNames = map[Register]string{
	RegEnable:  "ENABLE",
	RegATime:   "ATIME",
	RegWTime:   "WTIME",
	RegAILTL:   "AILTL",
	RegAILTH:   "AILTH",
	RegAIHTL:   "AIHTL",
	RegAIHTH:   "AIHTH",
	RegAPers:   "APERS",
	RegConfig:  "CONFIG",
	RegControl: "CONTROL",
	RegID:      "ID",
	RegStatus:  "STATUS",
	RegCDataL:  "CDATAL",
}

func (r Register) String() string {
	if name, ok := registerNames[r]; ok {
		return name
	}
	return fmt.Sprintf("%#04x", byte(r))
}

// ENABLE register bits
const (
	BitPowerOn       byte = 0x01 // PON
	BitRGBCEnable    byte = 0x02 // AEN
	BitWaitEnable    byte = 0x08 // WEN
	BitRGBCIntEnable byte = 0x10 // AIEN
)

// CONFIG register bits
const (
	BitWaitLong byte = 0x02 // WLONG
)

// STATUS register bits
const (
	bitStatusValid     byte = 0x01 // AVALID
	bitStatusInterrupt byte = 0x10 // AINT
)
