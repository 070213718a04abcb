package model

// Locations is the fixed list of service cities offered to the user.
var Locations = []string{
	"الرياض، المملكة العربية السعودية",
	"جدة، المملكة العربية السعودية",
	"الدمام، المملكة العربية السعودية",
	"مكة المكرمة، المملكة العربية السعودية",
	"المدينة المنورة، المملكة العربية السعودية",
	"الخبر، المملكة العربية السعودية",
}

// DefaultLocation is selected before the user picks a city.
const DefaultLocation = "الرياض، المملكة العربية السعودية"
