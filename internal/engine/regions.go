package engine

// regionNames maps a country code and a subdivision code to the
// subdivision's English name.
var regionNames = map[string]map[string]string{
	"US": {
		"AK": "Alaska", "AL": "Alabama", "AR": "Arkansas", "AZ": "Arizona",
		"CA": "California", "CO": "Colorado", "CT": "Connecticut",
		"DC": "District of Columbia", "DE": "Delaware", "FL": "Florida",
		"GA": "Georgia", "HI": "Hawaii", "IA": "Iowa", "ID": "Idaho",
		"IL": "Illinois", "IN": "Indiana", "KS": "Kansas", "KY": "Kentucky",
		"LA": "Louisiana", "MA": "Massachusetts", "MD": "Maryland",
		"ME": "Maine", "MI": "Michigan", "MN": "Minnesota", "MO": "Missouri",
		"MS": "Mississippi", "MT": "Montana", "NC": "North Carolina",
		"ND": "North Dakota", "NE": "Nebraska", "NH": "New Hampshire",
		"NJ": "New Jersey", "NM": "New Mexico", "NV": "Nevada",
		"NY": "New York", "OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon",
		"PA": "Pennsylvania", "PR": "Puerto Rico", "RI": "Rhode Island",
		"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee",
		"TX": "Texas", "UT": "Utah", "VA": "Virginia", "VT": "Vermont",
		"WA": "Washington", "WI": "Wisconsin", "WV": "West Virginia",
		"WY": "Wyoming",
	},
	"CA": {
		"AB": "Alberta", "BC": "British Columbia", "MB": "Manitoba",
		"NB": "New Brunswick", "NL": "Newfoundland", "NS": "Nova Scotia",
		"NT": "Northwest Territories", "NU": "Nunavut", "ON": "Ontario",
		"PE": "Prince Edward Island", "QC": "Quebec", "SK": "Saskatchewan",
		"YT": "Yukon Territory",
	},
	"AU": {
		"ACT": "Australian Capital Territory", "NSW": "New South Wales",
		"NT": "Northern Territory", "QLD": "Queensland",
		"SA": "South Australia", "TAS": "Tasmania", "VIC": "Victoria",
		"WA": "Western Australia",
	},
	"DE": {
		"BB": "Brandenburg", "BE": "Berlin", "BW": "Baden-Wurttemberg",
		"BY": "Bayern", "HB": "Bremen", "HE": "Hessen", "HH": "Hamburg",
		"MV": "Mecklenburg-Vorpommern", "NI": "Niedersachsen",
		"NW": "Nordrhein-Westfalen", "RP": "Rheinland-Pfalz",
		"SH": "Schleswig-Holstein", "SL": "Saarland", "SN": "Sachsen",
		"ST": "Sachsen-Anhalt", "TH": "Thuringen",
	},
}

// RegionName returns the name of a subdivision, or "" when unknown.
func RegionName(countryCode, region string) string {
	if countryCode == "" || region == "" {
		return ""
	}
	return regionNames[countryCode][region]
}
