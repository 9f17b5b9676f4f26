package discovery

import "strings"

// Known service and characteristic identifiers, used to annotate GATT dumps
// for the person running setup.
var knownServices = map[string]string{
	"0000FFF0-0000-1000-8000-00805F9B34FB": "Lotus Lamp Service (Common)",
	"00001800-0000-1000-8000-00805F9B34FB": "Generic Access",
	"00001801-0000-1000-8000-00805F9B34FB": "Generic Attribute",
	"0000180A-0000-1000-8000-00805F9B34FB": "Device Information",
	"0000180F-0000-1000-8000-00805F9B34FB": "Battery Service",
}

var knownCharacteristics = map[string]string{
	"0000FFF3-0000-1000-8000-00805F9B34FB": "Lotus Lamp Write Char",
	"0000FFF4-0000-1000-8000-00805F9B34FB": "Lotus Lamp Notify Char",
	"00002A00-0000-1000-8000-00805F9B34FB": "Device Name",
	"00002A01-0000-1000-8000-00805F9B34FB": "Appearance",
	"00002A19-0000-1000-8000-00805F9B34FB": "Battery Level",
}

// DescribeService names a service UUID if it is a known one.
func DescribeService(uuid string) string {
	if desc, ok := knownServices[strings.ToUpper(uuid)]; ok {
		return desc
	}
	return "Unknown Service"
}

// DescribeCharacteristic names a characteristic UUID if it is a known one.
func DescribeCharacteristic(uuid string) string {
	if desc, ok := knownCharacteristics[strings.ToUpper(uuid)]; ok {
		return desc
	}
	return "Unknown Characteristic"
}
