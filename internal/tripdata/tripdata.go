// Package tripdata holds the fixed itinerary: locations, accommodations,
// trip dates and the curated drive-time table between consecutive stops.
package tripdata

import "time"

type Category string

const (
	CategoryActivity Category = "activity"
	CategoryStay     Category = "stay"
	CategoryPossible Category = "possible"
	CategoryCustom   Category = "custom"
)

type Location struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Date       string   `json:"date"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Category   Category `json:"category"`
	Address    string   `json:"address,omitempty"`
	BookingRef string   `json:"bookingRef,omitempty"`
	Time       string   `json:"time,omitempty"`
}

type Accommodation struct {
	ID            string  `json:"id"`
	HotelName     string  `json:"hotelName"`
	City          string  `json:"city"`
	Date          string  `json:"date"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone,omitempty"`
	BookingRef    string  `json:"bookingRef,omitempty"`
	BookingSource string  `json:"bookingSource,omitempty"`
	CheckIn       string  `json:"checkIn,omitempty"`
	CheckOut      string  `json:"checkOut,omitempty"`
}

type TripDay struct {
	Date          string
	DateLabel     string
	FullDate      time.Time
	Activities    []Location
	Stay          *Location
	Accommodation *Accommodation
}

// Parsed from New Zealand Trip.kmz
var Locations = []Location{
	// Planned activities
	{ID: "auckland-airport", Name: "Auckland Airport", Date: "12/30", Lat: -37.0089374, Lng: 174.7863813, Category: CategoryActivity},
	{ID: "waitomo-caves", Name: "Waitomo Caves", Date: "12/31", Lat: -38.2606874, Lng: 175.1113208, Category: CategoryActivity, BookingRef: "WTOMO-3916126-15821055", Time: "9:00 AM"},
	{ID: "hobbiton", Name: "Hobbiton", Date: "12/31", Lat: -37.8720905, Lng: 175.6829096, Category: CategoryActivity, BookingRef: "3005683, 1139989", Time: "1:00 PM"},
	{ID: "mitai-maori", Name: "Mitai Maori Village", Date: "12/31", Lat: -38.1066427, Lng: 176.220807, Category: CategoryActivity, Address: "196 Fairy Springs Road, Rotorua", BookingRef: "282491988", Time: "6:30 PM"},
	{ID: "skyline-rotorua", Name: "Skyline Rotorua", Date: "1/1", Lat: -38.110432, Lng: 176.221969, Category: CategoryActivity},
	{ID: "waimangu-volcanic", Name: "Waimangu Volcanic", Date: "1/1", Lat: -38.285254, Lng: 176.386259, Category: CategoryActivity},
	{ID: "redwoods-treewalk", Name: "Redwoods Treewalk", Date: "1/1", Lat: -38.1569672, Lng: 176.2730987, Category: CategoryActivity},
	{ID: "lake-taupo", Name: "Lake Taupo", Date: "1/1", Lat: -38.7907719, Lng: 175.9040778, Category: CategoryActivity},
	{ID: "bridge-to-nowhere", Name: "Bridge to Nowhere Jet Boat", Date: "1/2", Lat: -39.4764935, Lng: 175.0467804, Category: CategoryActivity, Address: "Pipiriki", BookingRef: "282485847", Time: "10:00 AM"},
	{ID: "weta-workshop", Name: "Weta Workshop", Date: "1/3", Lat: -41.3062325, Lng: 174.8235832, Category: CategoryActivity, BookingRef: "1345934", Time: "9:00 AM"},
	{ID: "wellington-chocolate", Name: "Wellington Chocolate", Date: "1/3", Lat: -41.2925745, Lng: 174.7773271, Category: CategoryActivity},
	{ID: "interislander-ferry", Name: "Interislander Ferry", Date: "1/3", Lat: -41.2588426, Lng: 174.7920131, Category: CategoryActivity},
	{ID: "hobbit-kayak", Name: "Hobbit Kayak Tour", Date: "1/4", Lat: -41.2800405, Lng: 173.7674174, Category: CategoryActivity, Address: "Bluemoon Lodge, Havelock", BookingRef: "286781677", Time: "9:00 AM"},
	{ID: "pancake-hike", Name: "Punakaiki Pancake Rocks", Date: "1/5", Lat: -42.1154221, Lng: 171.329956, Category: CategoryActivity},
	{ID: "monteiths-brewery", Name: "Monteith's Brewery", Date: "1/5", Lat: -42.448469, Lng: 171.2135876, Category: CategoryActivity},
	{ID: "woods-creek", Name: "Woods Creek Hike", Date: "1/5", Lat: -42.5534813, Lng: 171.3383628, Category: CategoryActivity},
	{ID: "fox-glacier", Name: "Fox Glacier", Date: "1/6", Lat: -43.4790414, Lng: 170.0075763, Category: CategoryActivity},
	{ID: "thunder-creek", Name: "Thunder Creek Falls", Date: "1/7", Lat: -43.9693438, Lng: 169.2263533, Category: CategoryActivity},
	{ID: "wanaka-lake", Name: "Wanaka Lake Tree/Lavender Farm", Date: "1/7", Lat: -44.6843507, Lng: 169.1551219, Category: CategoryActivity},
	{ID: "skippers-jet", Name: "Skippers Jet Boats", Date: "1/7", Lat: -44.8899921, Lng: 168.676486, Category: CategoryActivity, Address: "43 Camp Street, Queenstown 9300", BookingRef: "RYDZBWN", Time: "3:30 PM"},
	{ID: "milford-sound", Name: "Milford Sound", Date: "1/8", Lat: -44.6414024, Lng: 167.8973801, Category: CategoryActivity, BookingRef: "NHMYZXLI-8NVL91AM", Time: "7:20 AM"},

	// Overnight stays
	{ID: "stay-hamilton", Name: "Hamilton", Date: "12/30", Lat: -37.7870, Lng: 175.2793, Category: CategoryStay},
	{ID: "stay-rotorua", Name: "Rotorua", Date: "12/31", Lat: -38.1445987, Lng: 176.2377669, Category: CategoryStay},
	{ID: "stay-ohakune", Name: "Ohakune", Date: "1/1", Lat: -39.4185581, Lng: 175.3996118, Category: CategoryStay},
	{ID: "stay-wellington", Name: "Wellington", Date: "1/2", Lat: -41.2923814, Lng: 174.7787463, Category: CategoryStay},
	{ID: "stay-blenheim", Name: "Blenheim", Date: "1/3", Lat: -41.5138, Lng: 173.9612, Category: CategoryStay},
	{ID: "stay-murchison", Name: "Murchison", Date: "1/4", Lat: -41.8025, Lng: 172.3269, Category: CategoryStay},
	{ID: "stay-greymouth", Name: "Greymouth", Date: "1/5", Lat: -42.4598167, Lng: 171.2048865, Category: CategoryStay},
	{ID: "stay-haast", Name: "Haast", Date: "1/6", Lat: -43.8761032, Lng: 169.0436192, Category: CategoryStay},
	{ID: "stay-queenstown", Name: "Queenstown", Date: "1/7", Lat: -45.0301511, Lng: 168.6615141, Category: CategoryStay},
	{ID: "stay-queenstown-2", Name: "Queenstown", Date: "1/8", Lat: -45.0301511, Lng: 168.6615141, Category: CategoryStay},

	// Possible activities
	{ID: "puzzling-world", Name: "Puzzling World", Lat: -44.6967084, Lng: 169.1615767, Category: CategoryPossible},
	{ID: "hamilton-gardens", Name: "Hamilton Gardens", Lat: -37.8057423, Lng: 175.3048807, Category: CategoryPossible},
	{ID: "whale-safari", Name: "Auckland Whale & Dolphin Safari", Lat: -36.842224, Lng: 174.762412, Category: CategoryPossible},
	{ID: "auckland-zoo", Name: "Auckland Zoo", Lat: -36.864113, Lng: 174.719685, Category: CategoryPossible},
	{ID: "festival-lights", Name: "Festival of Lights", Lat: -39.0635183, Lng: 174.0800565, Category: CategoryPossible},
	{ID: "zorb-rotorua", Name: "ZORB Rotorua", Lat: -38.1036829, Lng: 176.2214451, Category: CategoryPossible},
	{ID: "treetop-walkway", Name: "West Coast Tree Top Walkway", Lat: -42.8092301, Lng: 170.9209173, Category: CategoryPossible},
}

var Accommodations = []Accommodation{
	{ID: "acc-hamilton", HotelName: "Classic Motel", City: "Hamilton", Date: "12/30", Lat: -37.7870, Lng: 175.2793, Address: "451 Ulster Street, Hamilton, 3200", BookingRef: "73124140809410", BookingSource: "hotels.com"},
	{ID: "acc-rotorua", HotelName: "Urban Lounge Sleepery", City: "Rotorua", Date: "12/31", Lat: -38.1368, Lng: 176.2497, Address: "1286 Arawa Street, 3010 Rotorua", Phone: "+64 7 348 8636", BookingRef: "6514095021", BookingSource: "booking.com"},
	{ID: "acc-ohakune", HotelName: "Ossies Motels and Chalets", City: "Ohakune", Date: "1/1", Lat: -39.4185, Lng: 175.3996, Address: "59 Tainui Street, 4625 Ohakune", Phone: "+64 6-385 8088", BookingRef: "15058", BookingSource: "booking.com"},
	{ID: "acc-wellington", HotelName: "Best Western Wellington", City: "Wellington", Date: "1/2", Lat: -41.2924, Lng: 174.7787, Address: "QRH5+595 Wellington, New Zealand", BookingRef: "73128554709482", BookingSource: "Expedia"},
	{ID: "acc-blenheim", HotelName: "Commodore Court Motel", City: "Blenheim", Date: "1/3", Lat: -41.5138, Lng: 173.9612, Address: "173 Middle Renwick Road, 7201 Blenheim", Phone: "+64 3-578 1259", BookingSource: "booking.com"},
	{ID: "acc-murchison", HotelName: "The Lazy Cow Accommodation", City: "Murchison", Date: "1/4", Lat: -41.8025, Lng: 172.3269, Address: "37 Waller Street, 7007 Murchison", BookingRef: "6783103940", BookingSource: "booking.com"},
	{ID: "acc-greymouth", HotelName: "Greymouth Seaside TOP 10 Holiday Park", City: "Greymouth", Date: "1/5", Lat: -42.4598, Lng: 171.2049, Address: "2 Chesterfield Street, 7805 Greymouth", Phone: "+64 3-768 6618", BookingRef: "6660927434", BookingSource: "booking.com"},
	{ID: "acc-haast", HotelName: "Haast River Motels & Holiday Park", City: "Haast", Date: "1/6", Lat: -43.8761, Lng: 169.0436, Address: "52 Haast Pass Highway, 7844 Haast", Phone: "+64 03 7500020", BookingRef: "6013541956", BookingSource: "booking.com"},
	{ID: "acc-queenstown", HotelName: "Pinewood", City: "Queenstown", Date: "1/7", Lat: -45.0301, Lng: 168.6615, Address: "48 Hamilton Road, Queenstown, 9300", Phone: "+64-3-4428272", BookingRef: "1658104527114440", BookingSource: "booking.com"},
	{ID: "acc-queenstown-2", HotelName: "Pinewood", City: "Queenstown", Date: "1/8", Lat: -45.0301, Lng: 168.6615, Address: "48 Hamilton Road, Queenstown, 9300", Phone: "+64-3-4428272", BookingRef: "1658104527114440", BookingSource: "booking.com"},
}

type TripDate struct {
	Date      string
	DateLabel string
	FullDate  time.Time
}

// Trip dates: Dec 30, 2025 - Jan 9, 2026
var TripDates = []TripDate{
	{Date: "12/30", DateLabel: "Mon, Dec 30", FullDate: time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC)},
	{Date: "12/31", DateLabel: "Tue, Dec 31", FullDate: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
	{Date: "1/1", DateLabel: "Wed, Jan 1", FullDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
	{Date: "1/2", DateLabel: "Thu, Jan 2", FullDate: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)},
	{Date: "1/3", DateLabel: "Fri, Jan 3", FullDate: time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC)},
	{Date: "1/4", DateLabel: "Sat, Jan 4", FullDate: time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC)},
	{Date: "1/5", DateLabel: "Sun, Jan 5", FullDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)},
	{Date: "1/6", DateLabel: "Mon, Jan 6", FullDate: time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)},
	{Date: "1/7", DateLabel: "Tue, Jan 7", FullDate: time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC)},
	{Date: "1/8", DateLabel: "Wed, Jan 8", FullDate: time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC)},
	{Date: "1/9", DateLabel: "Thu, Jan 9", FullDate: time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)},
}

func TripDays() []TripDay {
	days := make([]TripDay, 0, len(TripDates))
	for _, td := range TripDates {
		day := TripDay{Date: td.Date, DateLabel: td.DateLabel, FullDate: td.FullDate}
		for i := range Locations {
			l := &Locations[i]
			switch {
			case l.Category == CategoryActivity && l.Date == td.Date:
				day.Activities = append(day.Activities, *l)
			case l.Category == CategoryStay && l.Date == td.Date && day.Stay == nil:
				day.Stay = l
			}
		}
		for i := range Accommodations {
			if Accommodations[i].Date == td.Date {
				day.Accommodation = &Accommodations[i]
				break
			}
		}
		days = append(days, day)
	}
	return days
}

func PossibleActivities() []Location {
	var out []Location
	for _, l := range Locations {
		if l.Category == CategoryPossible {
			out = append(out, l)
		}
	}
	return out
}

func LocationByID(id string) (Location, bool) {
	for _, l := range Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

func AccommodationByDate(date string) (Accommodation, bool) {
	for _, a := range Accommodations {
		if a.Date == date {
			return a, true
		}
	}
	return Accommodation{}, false
}

// Approximate drive times between consecutive locations (in minutes).
var driveTimes = map[string]map[string]int{
	"auckland-airport":     {"stay-hamilton": 90},
	"stay-hamilton":        {"waitomo-caves": 60},
	"waitomo-caves":        {"hobbiton": 75},
	"hobbiton":             {"mitai-maori": 55},
	"mitai-maori":          {"stay-rotorua": 10},
	"stay-rotorua":         {"skyline-rotorua": 5},
	"skyline-rotorua":      {"waimangu-volcanic": 25},
	"waimangu-volcanic":    {"redwoods-treewalk": 20},
	"redwoods-treewalk":    {"lake-taupo": 60},
	"lake-taupo":           {"stay-ohakune": 75},
	"stay-ohakune":         {"bridge-to-nowhere": 45},
	"bridge-to-nowhere":    {"stay-wellington": 240},
	"stay-wellington":      {"weta-workshop": 15},
	"weta-workshop":        {"wellington-chocolate": 15},
	"wellington-chocolate": {"interislander-ferry": 10},
	"interislander-ferry":  {"stay-blenheim": 220}, // 3.5hr ferry + 30min drive
	"stay-blenheim":        {"hobbit-kayak": 50},
	"hobbit-kayak":         {"stay-murchison": 140},
	"stay-murchison":       {"pancake-hike": 160},
	"pancake-hike":         {"monteiths-brewery": 45},
	"monteiths-brewery":    {"woods-creek": 20},
	"woods-creek":          {"stay-greymouth": 15},
	"stay-greymouth":       {"fox-glacier": 180},
	"fox-glacier":          {"stay-haast": 90},
	"stay-haast":           {"thunder-creek": 15},
	"thunder-creek":        {"wanaka-lake": 90},
	"wanaka-lake":          {"skippers-jet": 60},
	"skippers-jet":         {"stay-queenstown": 30},
	"stay-queenstown":      {"milford-sound": 285},
	"milford-sound":        {"stay-queenstown-2": 285},
}

// DriveTime returns the curated drive time between two named locations,
// or ok=false when the pair is not in the table.
func DriveTime(fromID, toID string) (int, bool) {
	m, ok := driveTimes[fromID]
	if !ok {
		return 0, false
	}
	v, ok := m[toID]
	return v, ok
}
