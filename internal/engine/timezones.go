package engine

// zoneByRegion covers countries spanning several time zones.
var zoneByRegion = map[string]map[string]string{
	"US": {
		"AK": "America/Anchorage", "AL": "America/Chicago", "AR": "America/Chicago",
		"AZ": "America/Phoenix", "CA": "America/Los_Angeles", "CO": "America/Denver",
		"CT": "America/New_York", "DC": "America/New_York", "DE": "America/New_York",
		"FL": "America/New_York", "GA": "America/New_York", "HI": "Pacific/Honolulu",
		"IA": "America/Chicago", "ID": "America/Denver", "IL": "America/Chicago",
		"IN": "America/Indiana/Indianapolis", "KS": "America/Chicago",
		"KY": "America/New_York", "LA": "America/Chicago", "MA": "America/New_York",
		"MD": "America/New_York", "ME": "America/New_York", "MI": "America/New_York",
		"MN": "America/Chicago", "MO": "America/Chicago", "MS": "America/Chicago",
		"MT": "America/Denver", "NC": "America/New_York", "ND": "America/Chicago",
		"NE": "America/Chicago", "NH": "America/New_York", "NJ": "America/New_York",
		"NM": "America/Denver", "NV": "America/Los_Angeles", "NY": "America/New_York",
		"OH": "America/New_York", "OK": "America/Chicago", "OR": "America/Los_Angeles",
		"PA": "America/New_York", "PR": "America/Puerto_Rico", "RI": "America/New_York",
		"SC": "America/New_York", "SD": "America/Chicago", "TN": "America/Chicago",
		"TX": "America/Chicago", "UT": "America/Denver", "VA": "America/New_York",
		"VT": "America/New_York", "WA": "America/Los_Angeles", "WI": "America/Chicago",
		"WV": "America/New_York", "WY": "America/Denver",
	},
	"CA": {
		"AB": "America/Edmonton", "BC": "America/Vancouver", "MB": "America/Winnipeg",
		"NB": "America/Halifax", "NL": "America/St_Johns", "NS": "America/Halifax",
		"NT": "America/Yellowknife", "NU": "America/Rankin_Inlet", "ON": "America/Toronto",
		"PE": "America/Halifax", "QC": "America/Montreal", "SK": "America/Regina",
		"YT": "America/Whitehorse",
	},
	"AU": {
		"ACT": "Australia/Sydney", "NSW": "Australia/Sydney", "NT": "Australia/Darwin",
		"QLD": "Australia/Brisbane", "SA": "Australia/Adelaide", "TAS": "Australia/Hobart",
		"VIC": "Australia/Melbourne", "WA": "Australia/Perth",
	},
}

// zoneByCountry covers countries with a single time zone.
var zoneByCountry = map[string]string{
	"AD": "Europe/Andorra", "AE": "Asia/Dubai", "AF": "Asia/Kabul",
	"AL": "Europe/Tirane", "AM": "Asia/Yerevan", "AT": "Europe/Vienna",
	"BA": "Europe/Sarajevo", "BD": "Asia/Dhaka", "BE": "Europe/Brussels",
	"BG": "Europe/Sofia", "BH": "Asia/Bahrain", "BY": "Europe/Minsk",
	"CH": "Europe/Zurich", "CN": "Asia/Shanghai", "CY": "Asia/Nicosia",
	"CZ": "Europe/Prague", "DE": "Europe/Berlin", "DK": "Europe/Copenhagen",
	"EE": "Europe/Tallinn", "EG": "Africa/Cairo", "FI": "Europe/Helsinki",
	"FR": "Europe/Paris", "GB": "Europe/London", "GR": "Europe/Athens",
	"HK": "Asia/Hong_Kong", "HR": "Europe/Zagreb", "HU": "Europe/Budapest",
	"IE": "Europe/Dublin", "IL": "Asia/Jerusalem", "IN": "Asia/Kolkata",
	"IQ": "Asia/Baghdad", "IR": "Asia/Tehran", "IS": "Atlantic/Reykjavik",
	"IT": "Europe/Rome", "JP": "Asia/Tokyo", "KE": "Africa/Nairobi",
	"KR": "Asia/Seoul", "KW": "Asia/Kuwait", "LI": "Europe/Vaduz",
	"LT": "Europe/Vilnius", "LU": "Europe/Luxembourg", "LV": "Europe/Riga",
	"MA": "Africa/Casablanca", "MC": "Europe/Monaco", "MD": "Europe/Chisinau",
	"ME": "Europe/Podgorica", "MK": "Europe/Skopje", "MT": "Europe/Malta",
	"NG": "Africa/Lagos", "NL": "Europe/Amsterdam", "NO": "Europe/Oslo",
	"NZ": "Pacific/Auckland", "PH": "Asia/Manila", "PK": "Asia/Karachi",
	"PL": "Europe/Warsaw", "PT": "Europe/Lisbon", "QA": "Asia/Qatar",
	"RO": "Europe/Bucharest", "RS": "Europe/Belgrade", "SA": "Asia/Riyadh",
	"SE": "Europe/Stockholm", "SG": "Asia/Singapore", "SI": "Europe/Ljubljana",
	"SK": "Europe/Bratislava", "SM": "Europe/San_Marino", "TH": "Asia/Bangkok",
	"TR": "Europe/Istanbul", "TW": "Asia/Taipei", "UA": "Europe/Kiev",
	"VA": "Europe/Vatican", "VN": "Asia/Ho_Chi_Minh", "ZA": "Africa/Johannesburg",
}

// TimeZone returns the IANA zone for a country and subdivision, or "" when it
// cannot be determined.
func TimeZone(countryCode, region string) string {
	if regions, ok := zoneByRegion[countryCode]; ok {
		return regions[region]
	}
	return zoneByCountry[countryCode]
}
