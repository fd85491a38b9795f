package domain

// AssignmentKind tags how a guest was placed. KindWalk is only ever carried
// by alerts; walked guests get no Assignment.
type AssignmentKind string

const (
	KindStandard      AssignmentKind = "standard"
	KindUpgrade       AssignmentKind = "upgrade"
	KindCrossCategory AssignmentKind = "cross-category"
	KindEmergency     AssignmentKind = "emergency"
	KindNamedSuite    AssignmentKind = "named-suite"
	KindWalk          AssignmentKind = "walk"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

type OccupancySnapshot struct {
	Date         Date           `json:"date"`
	InHouse      map[string]int `json:"in_house"`
	DueOut       map[string]int `json:"due_out"`
	InHouseTotal int            `json:"in_house_total"`
	DueOutTotal  int            `json:"due_out_total"`
}

type DemandSnapshot struct {
	Date     Date           `json:"date"`
	ByType   map[string]int `json:"by_type"`
	Arrivals []Reservation  `json:"arrivals"`
}

type Overbooking struct {
	RoomType  string `json:"room_type"`
	Arrivals  int    `json:"arrivals"`
	InHouse   int    `json:"in_house"`
	DueOuts   int    `json:"due_outs"`
	Available int    `json:"available"`
	Overby    int    `json:"overby"`
}

// ReportRow is one line of the per-room-type availability table.
type ReportRow struct {
	RoomType   string `json:"room_type"`
	Available  int    `json:"available"`
	Arrivals   int    `json:"arrivals"`
	Sold       int    `json:"sold"`
	OutOfOrder int    `json:"out_of_order"`
	Inventory  int    `json:"inventory"`
	Departures int    `json:"departures"`
	InHouse    int    `json:"in_house"`
	Overby     int    `json:"overby"`
	Overbooked bool   `json:"overbooked"`
}

type Assignment struct {
	Reservation      Reservation    `json:"reservation"`
	AssignedRoomType string         `json:"assigned_room_type"`
	Kind             AssignmentKind `json:"kind"`
}

type Alert struct {
	Severity      Severity       `json:"severity"`
	Message       string         `json:"message"`
	GuestName     string         `json:"guest_name"`
	ReservationID string         `json:"reservation_id"`
	Kind          AssignmentKind `json:"kind"`
	Approved      bool           `json:"approved"`
}

// ConnectingRequest is a placed guest asking for connecting rooms; these are
// arranged by hand.
type ConnectingRequest struct {
	GuestName        string `json:"guest_name"`
	AssignedRoomType string `json:"assigned_room_type"`
}

type Summary struct {
	Arrivals        int `json:"arrivals"`
	OverbookedTypes int `json:"overbooked_types"`
	Alerts          int `json:"alerts"`
	Walks           int `json:"walks"`
	Upgrades        int `json:"upgrades"`
	InHouse         int `json:"in_house"`
	DueOuts         int `json:"due_outs"`
	Occupied        int `json:"occupied"`
	OccupancyPct    int `json:"occupancy_pct"`
}

// Result is the full candidate output of one analysis run.
type Result struct {
	Date         Date                `json:"date"`
	Occupancy    OccupancySnapshot   `json:"occupancy"`
	Demand       DemandSnapshot      `json:"demand"`
	Overbookings []Overbooking       `json:"overbookings"`
	Report       []ReportRow         `json:"report"`
	Totals       ReportRow           `json:"totals"`
	Alerts       []Alert             `json:"alerts"`
	Assignments  []Assignment        `json:"assignments"`
	Connecting   []ConnectingRequest `json:"connecting,omitempty"`
	Summary      Summary             `json:"summary"`
}

type FinalStats struct {
	TotalGuests  int `json:"total_guests"`
	Assigned     int `json:"assigned"`
	Upgrades     int `json:"upgrades"`
	Occupied     int `json:"occupied"`
	OccupancyPct int `json:"occupancy_pct"`
}

// Finalized merges one Result with the approval ledger.
type Finalized struct {
	Date        Date         `json:"date"`
	Assignments []Assignment `json:"assignments"`
	Resolved    []Alert      `json:"resolved"`
	Unresolved  []Alert      `json:"unresolved"`
	Stats       FinalStats   `json:"stats"`
}

// DateOverview is one entry of the arrival-date listing.
type DateOverview struct {
	Date         Date `json:"date"`
	Arrivals     int  `json:"arrivals"`
	Occupied     int  `json:"occupied"`
	OccupancyPct int  `json:"occupancy_pct"`
}

type Recommendation struct {
	GuestName       string `json:"guest_name"`
	Priority        string `json:"priority"`
	FromRoom        string `json:"from_room"`
	ToRoom          string `json:"to_room"`
	Reasoning       string `json:"reasoning"`
	HonorsStatus    string `json:"honors_status,omitempty"`
	LengthOfStay    int    `json:"length_of_stay,omitempty"`
	RateType        string `json:"rate_type,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
	Source          string `json:"source,omitempty"`
}

// AdvisoryRequest is the read-only snapshot handed to a recommender.
type AdvisoryRequest struct {
	Date         Date          `json:"date"`
	Guests       []Reservation `json:"guests"`
	Overbookings []Overbooking `json:"overbookings"`
}
