package api

// SessionService

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members []string `json:"members"`
}

type SelectMemberRequest struct {
	Name string `json:"name"`
}

type SelectMemberResponse struct {
	Member    string `json:"member"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// TransactionService

type CreateTransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Person      string `json:"person"`
	Description string `json:"description"`
}

type CreateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

// UpdateTransactionRequest changes a transaction. With Merge unset every
// field must be present and the record is replaced.
type UpdateTransactionRequest struct {
	Id          string  `json:"id"`
	Merge       bool    `json:"merge"`
	Type        *string `json:"type,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Category    *string `json:"category,omitempty"`
	Date        *string `json:"date,omitempty"`
	Person      *string `json:"person,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UpdateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type GetTransactionRequest struct {
	Id string `json:"id"`
}

type GetTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	Id string `json:"id"`
}

type DeleteTransactionResponse struct{}

type ListTransactionsRequest struct {
	Person   string `json:"person,omitempty"`
	Type     string `json:"type,omitempty"`
	Category string `json:"category,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	// Order is one of date_desc (default), date_asc, amount_desc, created_desc.
	Order string `json:"order,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type GetSummaryRequest struct {
	Person string `json:"person,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

type GetSummaryResponse struct {
	Currency           string            `json:"currency"`
	TotalIncome        string            `json:"totalIncome"`
	TotalExpense       string            `json:"totalExpense"`
	Balance            string            `json:"balance"`
	Display            map[string]string `json:"display,omitempty"`
	Count              int32             `json:"count"`
	SpendingByCategory []*CategoryTotal  `json:"spendingByCategory"`
	ByPerson           []*PersonTotal    `json:"byPerson"`
}

type WatchTransactionsRequest struct {
	Person   string `json:"person,omitempty"`
	Type     string `json:"type,omitempty"`
	Category string `json:"category,omitempty"`
}

// WatchTransactionsResponse is one message of the watch stream. The first
// message has Kind "snapshot" and carries the current list in Transactions;
// later ones carry a single changed Transaction.
type WatchTransactionsResponse struct {
	Kind         string         `json:"kind"`
	Transaction  *Transaction   `json:"transaction,omitempty"`
	Transactions []*Transaction `json:"transactions,omitempty"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

// JuntaService

type CreateJuntaRequest struct {
	Name              string   `json:"name,omitempty"`
	From              string   `json:"from"`
	To                string   `json:"to"`
	DailyContribution string   `json:"dailyContribution"`
	Currency          string   `json:"currency,omitempty"`
	Participants      []string `json:"participants"`
}

type CreateJuntaResponse struct {
	Junta *Junta `json:"junta"`
}

type GetJuntaRequest struct {
	Id string `json:"id"`
}

type GetJuntaResponse struct {
	Junta *Junta `json:"junta"`
}

type ListJuntasRequest struct{}

type ListJuntasResponse struct {
	Juntas []*Junta `json:"juntas"`
}

type DeleteJuntaRequest struct {
	Id string `json:"id"`
}

type DeleteJuntaResponse struct{}

type AssignDatesRequest struct {
	JuntaId string `json:"juntaId"`
	// Strategy is "sequential" or "random".
	Strategy string `json:"strategy"`
}

type AssignDatesResponse struct {
	Junta *Junta `json:"junta"`
}

type RecordPaymentRequest struct {
	JuntaId   string `json:"juntaId"`
	Day       string `json:"day"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	Recipient string `json:"recipient,omitempty"`
	// ExpectedRevision, when set, makes the write conditional on the stored
	// revision. 0 means no payment is expected to exist yet.
	ExpectedRevision *int64 `json:"expectedRevision,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type GetPaymentRequest struct {
	JuntaId string `json:"juntaId"`
	Day     string `json:"day"`
}

// GetPaymentResponse has Found false and no Payment for a day never recorded.
type GetPaymentResponse struct {
	Found   bool     `json:"found"`
	Payment *Payment `json:"payment,omitempty"`
}

type GetScheduleRequest struct {
	JuntaId string `json:"juntaId"`
}

type GetScheduleResponse struct {
	Days []*DayStatus `json:"days"`
}

type GetSettlementRequest struct {
	JuntaId string `json:"juntaId"`
}

type GetSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ExportReportRequest struct {
	JuntaId string `json:"juntaId"`
}

type ExportReportResponse struct {
	Token string `json:"token"`
}

type OpenReportRequest struct {
	Token string `json:"token"`
}

type OpenReportResponse struct {
	Junta      *Junta       `json:"junta"`
	Days       []*DayStatus `json:"days"`
	Settlement *Settlement  `json:"settlement"`
}

// AdvisorService

type AskRequest struct {
	Question string         `json:"question"`
	History  []*ChatMessage `json:"history,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
