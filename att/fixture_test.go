package att

import "github.com/nxp-appcodehub/ble"

var (
	batterySvcUUID   = ble.UUID16(0x180F)
	batteryLevelUUID = ble.UUID16(0x2A19)
	battery128UUID   = ble.MustParse("0000180F-0000-1000-8000-00805F9B34FB")
	testCharUUID     = ble.MustParse("00010000-0002-1000-8000-00805F9B34FB")
)

// testServices lays out:
//
//	0x0001 GAP          0x0002/0x0003 Device Name (variable, 20)   0x0004/0x0005 Appearance (fixed, 2)
//	0x0010 Battery      0x0011/0x0012 Battery Level, CCCD 0x0013, User Description 0x0014
//	                    0x0015/0x0016 test characteristic (variable, 8), no descriptors
//	0x0030 Battery      0x0031/0x0032 Battery Level, Presentation Format 0x0033
//	0x0034 secondary service with the 128-bit form of the Battery UUID
//	                    0x0035/0x0036 Battery Level
func testServices() []*ble.Service {
	gap := ble.NewService(ble.GAPUUID)
	gap.NewCharacteristic(ble.DeviceNameUUID).SetVariableValue([]byte("Gopher"), 20).SetWritable()
	gap.NewCharacteristic(ble.AppearanceUUID).SetValue([]byte{0x00, 0x80})

	bas1 := ble.NewService(batterySvcUUID)
	bas1.Base = 0x0010
	lvl := bas1.NewCharacteristic(batteryLevelUUID).SetValue([]byte{100}).SetNotify()
	lvl.NewDescriptor(ble.ClientCharacteristicConfigUUID).SetValue([]byte{0x00, 0x00}).SetWritable()
	lvl.NewDescriptor(ble.UserDescriptionUUID).SetValue([]byte("level"))
	bas1.NewCharacteristic(testCharUUID).SetVariableValue(nil, 8)

	bas2 := ble.NewService(batterySvcUUID)
	bas2.Base = 0x0030
	bas2.NewCharacteristic(batteryLevelUUID).SetValue([]byte{50}).
		NewDescriptor(ble.PresentationFormatUUID).SetValue([]byte{4, 1, 39, 173, 1, 0, 0})

	ext := ble.NewService(battery128UUID)
	ext.Secondary = true
	ext.NewCharacteristic(batteryLevelUUID).SetValue([]byte{1})

	return []*ble.Service{gap, bas1, bas2, ext}
}
