package domain

// TimeSlot is one open interval within a day, clock values as "HH:MM".
type TimeSlot struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// DaySchedule is the opening schedule for a single weekday.
type DaySchedule struct {
	IsClosed bool       `json:"isClosed"`
	Slots    []TimeSlot `json:"slots"`
}

// Business mirrors the business.json document served with the menu site.
type Business struct {
	Identity        Identity               `json:"identity"`
	Contact         Contact                `json:"contact"`
	Location        *Location              `json:"location,omitempty"`
	OpeningHours    map[string]DaySchedule `json:"openingHours"`
	Flags           Flags                  `json:"flags"`
	Payment         Payment                `json:"payment"`
	OnlinePlatforms OnlinePlatforms        `json:"onlinePlatforms"`
	TrustInfo       TrustInfo              `json:"trustInfo"`
}

type Identity struct {
	Name         string `json:"name"`
	CategoryLine string `json:"categoryLine"`
	FoodType     string `json:"foodType"`
	HasLogo      bool   `json:"hasLogo"`
}

type Contact struct {
	PrimaryPhone   string `json:"primaryPhone"`
	SecondaryPhone string `json:"secondaryPhone,omitempty"`
	WhatsappNumber string `json:"whatsappNumber"`
	Email          string `json:"email,omitempty"`
}

type Location struct {
	FullAddress   string `json:"fullAddress"`
	GoogleMapLink string `json:"googleMapLink,omitempty"`
}

type Flags struct {
	DeliveryAvailable    bool    `json:"deliveryAvailable"`
	DineInAvailable      bool    `json:"dineInAvailable"`
	MinimumDeliveryOrder float64 `json:"minimumDeliveryOrder,omitempty"`
}

type Payment struct {
	Enabled bool `json:"enabled"`
}

type OnlinePlatforms struct {
	Zomato    string `json:"zomato,omitempty"`
	Swiggy    string `json:"swiggy,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Google    string `json:"google,omitempty"`
	Website   string `json:"website,omitempty"`
}

type TrustInfo struct {
	Badges []string `json:"badges"`
	About  string   `json:"about"`
}
