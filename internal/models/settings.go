package models

import "github.com/shopspring/decimal"

// Settings is the process-wide business configuration singleton
type Settings struct {
	BusinessName     string          `json:"business_name"`
	BusinessAddress  string          `json:"business_address"`
	BusinessContact  string          `json:"business_contact"`
	MonthlyRate      decimal.Decimal `json:"monthly_rate"`
	DeveloperName    string          `json:"developer_name"`
	DeveloperTagline string          `json:"developer_tagline"`
	SupportContact   string          `json:"support_contact"`
}

// DefaultSettings returns the seed configuration used when no settings
// document exists yet
func DefaultSettings() Settings {
	return Settings{
		BusinessName:     "VENGATESAN CAR PARKING",
		BusinessAddress:  "Tittagudi",
		BusinessContact:  "9791365506",
		MonthlyRate:      decimal.NewFromInt(1000),
		DeveloperName:    "CODE HIVE",
		DeveloperTagline: "LEARN AND LEAD",
		SupportContact:   "9791365506",
	}
}

// FormattedRate renders the monthly rate the way it appears on bills,
// e.g. "Rs. 1000.00"
func (s Settings) FormattedRate() string {
	return "Rs. " + s.MonthlyRate.StringFixed(2)
}
