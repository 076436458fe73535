package domain

// NepaliDateTime is a moment rendered in the Bikram Sambat calendar with
// Devanagari numerals
type NepaliDateTime struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"monthName"`
	Weekday   string `json:"weekday"`

	// Devanagari strings as shown in the header clock
	YearText string `json:"yearText"`
	DayText  string `json:"dayText"`
	Hours    string `json:"hours"`
	Minutes  string `json:"minutes"`
	Seconds  string `json:"seconds"`
	Display  string `json:"display"`
}
