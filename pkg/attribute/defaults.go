package attribute

var onOff = []Option{{Code: "1", Value: true}, {Code: "0", Value: false}}

// defaultDescriptors is the attribute table of the air purifier family.
var defaultDescriptors = []Descriptor{
	{Code: "rhset", Name: "targetHumidity", Role: RoleControl},
	{Code: "func", Name: "function", Role: RoleControl, Options: []Option{
		{Code: "P", Value: "purification"},
		{Code: "PH", Value: "humidification"},
	}},
	{Code: "pwr", Name: "power", Role: RoleControl, Options: onOff},
	{Code: "om", Name: "fanSpeed", Role: RoleControl, Options: []Option{
		{Code: "s", Value: "silent"},
		{Code: "t", Value: "turbo"},
		{Code: "a", Value: "auto"},
		{Code: "1", Value: "1"},
		{Code: "2", Value: "2"},
		{Code: "3", Value: "3"},
	}},
	{Code: "aqil", Name: "lightBrightness", Role: RoleControl},
	{Code: "aqit", Name: "airQualityNotificationThreshold", Role: RoleControl},
	{Code: "uil", Name: "buttonLight", Role: RoleControl, Options: onOff},
	{Code: "rh", Name: "humidity"},
	{Code: "iaql", Name: "allergenIndex"},
	{Code: "temp", Name: "temperature"},
	{Code: "wl", Name: "waterLevel"},
	{Code: "cl", Name: "childLock", Role: RoleControl},
	{Code: "swversion", Name: "softwareVersion", Role: RoleDevice},
	{Code: "name", Name: "name", Role: RoleDevice},
	{Code: "type", Name: "type", Role: RoleDevice},
	{Code: "modelid", Name: "modelId", Role: RoleDevice},
	{Code: "WifiVersion", Name: "wifiVersion", Role: RoleDevice},
	{Code: "ProductId", Name: "productId", Role: RoleDevice},
	{Code: "DeviceId", Name: "deviceId", Role: RoleDevice},
	{Code: "StatusType", Name: "statusType", Role: RoleDevice},
	{Code: "ConnectType", Name: "connectType", Role: RoleDevice},
	{Code: "ota", Name: "overTheAirUpdates", Role: RoleDevice},
	{Code: "Runtime", Name: "uptime", Role: RoleDevice},
	{Code: "pm25", Name: "pm25"},
	{Code: "tvoc", Name: "totalVolatileOrganicCompounds"},
	{Code: "mode", Name: "mode", Role: RoleControl, Options: []Option{
		{Code: "P", Value: "auto"},
		{Code: "A", Value: "allergen"},
		{Code: "S", Value: "sleep"},
		{Code: "M", Value: "manual"},
		{Code: "B", Value: "bacteria"},
		{Code: "N", Value: "night"},
		{Code: "T", Value: "turbo"},
		{Code: "AG", Value: "automode"},
		{Code: "GT", Value: "gentle"},
	}},
	{Code: "ddp", Name: "usedIndex", Role: RoleControl, Options: []Option{
		{Code: "3", Value: "humidity"},
		{Code: "1", Value: "pm2.5"},
		{Code: "0", Value: "iai"},
	}},
	{Code: "rddp", Name: "rddp"},
	{Code: "dt", Name: "timerHours", Role: RoleControl},
	{Code: "dtrs", Name: "timerMinutes"},
	{Code: "fltt1", Name: "hepaFilterType", Role: RoleFilter, Options: []Option{
		{Code: "A3", Value: "NanoProtect Filter Series 3 (FY2422)"},
	}},
	{Code: "fltt2", Name: "activeCarbonFilterType", Role: RoleFilter, Options: []Option{
		{Code: "C7", Value: "NanoProtect Filter AC (FY2420)"},
	}},
	{Code: "fltsts0", Name: "preFilterCleanInHours", Role: RoleFilter},
	{Code: "fltsts1", Name: "hepaFilterReplaceInHours", Role: RoleFilter},
	{Code: "fltsts2", Name: "activeCarbonFilterReplaceInHours", Role: RoleFilter},
	{Code: "wicksts", Name: "wickFilterReplaceInHours", Role: RoleFilter},
	{Code: "err", Name: "error", Role: RoleDevice, Options: []Option{
		{Code: "0", Value: "none"},
		{Code: "49408", Value: "no water"},                   // 0xC100
		{Code: "32768", Value: "water tank open"},            // 0x8000
		{Code: "49155", Value: "pre-filter must be cleaned"}, // 0xC003
	}},
}

// DefaultTable returns the built-in attribute table.
func DefaultTable() *Table {
	t, err := NewTable(defaultDescriptors)
	if err != nil {
		panic(err)
	}
	return t
}
