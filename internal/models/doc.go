// Package models defines the core domain models for the family finance service.
//
// # Models
//
//   - Transaction: an income or expense recorded by a family member
//   - Junta: a rotating savings pool with a roster of participants and a date range
//   - Participant: one member of a junta roster, with the day they are responsible for
//   - Payment: a contribution recorded against one day of a junta
//   - Date: a calendar day without a time component
//   - Session: the acting family member for an operation
//
// Family members are identified by name strings; there are no user accounts.
//
// # Design Principles
//
// 1. **Plain data**: models carry no behavior beyond small helpers; rules live in
// the junta and calculator packages
// 2. **Exact money**: amounts are decimal.Decimal, never float64
// 3. **Date-only days**: junta days are Date values so a day never shifts with time zones
// 4. **IDs over pointers**: relationships use ID strings instead of pointers
package models
