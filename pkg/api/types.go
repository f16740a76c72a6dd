// Package api holds the request and response messages of the familyfinance.v1
// RPC services. Dates travel as YYYY-MM-DD strings and money as decimal strings.
package api

// Transaction is an income or expense record.
type Transaction struct {
	Id            string `json:"id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	AmountDisplay string `json:"amountDisplay,omitempty"`
	Category      string `json:"category"`
	Date          string `json:"date"`
	Person        string `json:"person"`
	Description   string `json:"description"`
	CreatedBy     string `json:"createdBy,omitempty"`
	CreatedAt     int64  `json:"createdAt,omitempty"`
	UpdatedAt     int64  `json:"updatedAt,omitempty"`
}

// CategoryTotal is the spending in one category.
type CategoryTotal struct {
	Category      string `json:"category"`
	Amount        string `json:"amount"`
	AmountDisplay string `json:"amountDisplay,omitempty"`
}

// PersonTotal is the income and expense of one family member.
type PersonTotal struct {
	Person  string `json:"person"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// Participant is one entry of a junta roster.
type Participant struct {
	Name string `json:"name"`
	// AssignedDate is empty until dates are assigned.
	AssignedDate string `json:"assignedDate,omitempty"`
}

// Junta is a rotating savings pool.
type Junta struct {
	Id                string         `json:"id"`
	Name              string         `json:"name"`
	From              string         `json:"from"`
	To                string         `json:"to"`
	DailyContribution string         `json:"dailyContribution"`
	Currency          string         `json:"currency"`
	Participants      []*Participant `json:"participants"`
	Strategy          string         `json:"strategy,omitempty"`
	Assigned          bool           `json:"assigned"`
	CreatedBy         string         `json:"createdBy,omitempty"`
	CreatedAt         int64          `json:"createdAt,omitempty"`
	AssignedAt        int64          `json:"assignedAt,omitempty"`
}

// Payment is the contribution recorded for one junta day.
type Payment struct {
	Day           string `json:"day"`
	Paid          bool   `json:"paid"`
	Amount        string `json:"amount"`
	AmountDisplay string `json:"amountDisplay,omitempty"`
	Method        string `json:"method"`
	Recipient     string `json:"recipient,omitempty"`
	RecordedBy    string `json:"recordedBy,omitempty"`
	RecordedAt    int64  `json:"recordedAt,omitempty"`
	Revision      int64  `json:"revision"`
}

// DayStatus is one row of the contribution calendar.
type DayStatus struct {
	Day         string   `json:"day"`
	Responsible string   `json:"responsible"`
	Paid        bool     `json:"paid"`
	IsToday     bool     `json:"isToday,omitempty"`
	Payment     *Payment `json:"payment,omitempty"`
}

// Compliance tells whether a participant paid for their day.
type Compliance struct {
	Participant string `json:"participant"`
	Day         string `json:"day,omitempty"`
	Status      string `json:"status"`
	Amount      string `json:"amount"`
}

// Settlement is the aggregated view of a junta and its payments.
type Settlement struct {
	Currency              string            `json:"currency"`
	TotalCollected        string            `json:"totalCollected"`
	ExpectedByRoster      string            `json:"expectedByRoster"`
	ExpectedByPaidEntries string            `json:"expectedByPaidEntries"`
	Balance               string            `json:"balance"`
	Display               map[string]string `json:"display,omitempty"`
	PaidCount             int32             `json:"paidCount"`
	PendingCount          int32             `json:"pendingCount"`
	MethodBreakdown       map[string]int32  `json:"methodBreakdown"`
	CollectorTotals       map[string]string `json:"collectorTotals"`
	Compliance            []*Compliance     `json:"compliance"`
}

// ChatMessage is one turn of an advisor conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
