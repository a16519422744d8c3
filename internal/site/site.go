package site

// Beach is one of the fixed shoreline locations the crew covers.
type Beach struct {
	Name      string  `json:"name"`
	Area      string  `json:"area"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CrewMember is an entry in the static volunteer roster.
type CrewMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// CleanupEvent is a scheduled beach cleanup. Date is an ISO date string.
type CleanupEvent struct {
	Title     string `json:"title"`
	Beach     string `json:"beach"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	MeetPoint string `json:"meetPoint"`
}

var beaches = []Beach{
	{Name: "East Coast Park", Area: "East", Latitude: 1.3008, Longitude: 103.9122},
	{Name: "Changi Beach", Area: "East", Latitude: 1.3910, Longitude: 103.9915},
	{Name: "Pasir Ris Park", Area: "East", Latitude: 1.3721, Longitude: 103.9474},
	{Name: "Sembawang Park", Area: "North", Latitude: 1.4623, Longitude: 103.8345},
	{Name: "Punggol Beach", Area: "North-East", Latitude: 1.4226, Longitude: 103.9110},
}

var crew = []CrewMember{
	{Name: "Wei Lin Tan", Role: "Coordinator"},
	{Name: "Arjun Nair", Role: "Safety Lead"},
	{Name: "Mei Hui Chua", Role: "Logistics"},
	{Name: "Daniel Koh", Role: "Volunteer Wrangler"},
	{Name: "Siti Rahman", Role: "Waste Audit"},
	{Name: "Marcus Lee", Role: "Photography"},
}

var events = []CleanupEvent{
	{
		Title:     "Monsoon Season Kickoff",
		Beach:     "East Coast Park",
		Date:      "2026-09-05",
		StartTime: "08:00",
		MeetPoint: "Carpark C2, near Bedok Jetty",
	},
	{
		Title:     "Changi Shoreline Sweep",
		Beach:     "Changi Beach",
		Date:      "2026-09-12",
		StartTime: "07:30",
		MeetPoint: "Changi Point Ferry Terminal",
	},
	{
		Title:     "Pasir Ris Mangrove Edge",
		Beach:     "Pasir Ris Park",
		Date:      "2026-09-19",
		StartTime: "08:00",
		MeetPoint: "Car Park A",
	},
	{
		Title:     "Northern Shores Cleanup",
		Beach:     "Sembawang Park",
		Date:      "2026-09-26",
		StartTime: "08:30",
		MeetPoint: "Beaulieu House entrance",
	},
}

// Beaches returns the fixed beach list.
func Beaches() []Beach { return beaches }

// Crew returns the static volunteer roster.
func Crew() []CrewMember { return crew }

// Events returns all scheduled cleanup events.
func Events() []CleanupEvent { return events }

// EventsOn returns the events scheduled for the given ISO date.
func EventsOn(date string) []CleanupEvent {
	var out []CleanupEvent
	for _, ev := range events {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out
}
