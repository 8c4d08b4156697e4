package entity

import "fmt"

// ConversationState is the position of a chat identity in the onboarding dialogue.
// Values are persisted with the session, keep them stable.
type ConversationState string

const (
	StateStart                   ConversationState = "start"
	StateChoosingPath            ConversationState = "choosing_path"
	StateAwaitingFullName        ConversationState = "awaiting_full_name"
	StateAwaitingPhone           ConversationState = "awaiting_phone"
	StateAwaitingEmail           ConversationState = "awaiting_email"
	StateAwaitingBusinessName    ConversationState = "awaiting_business_name"
	StateAwaitingBusinessAddress ConversationState = "awaiting_business_address"
	StateAwaitingGovernorate     ConversationState = "awaiting_governorate"
	StateAwaitingRevenue         ConversationState = "awaiting_revenue"
	StateAwaitingBusinessType    ConversationState = "awaiting_business_type"
	StateAwaitingPassword        ConversationState = "awaiting_password"
	StateAwaitingConfirmation    ConversationState = "awaiting_confirmation"
	StateAwaitingLoginPhone      ConversationState = "awaiting_login_phone"
	StateAwaitingLoginPassword   ConversationState = "awaiting_login_password"
	StateTerminal                ConversationState = "terminal"
)

// InProgress reports whether a dialogue is waiting for user input in this state.
// Start and Terminal (and the zero value) mean no conversation is running.
func (s ConversationState) InProgress() bool {
	switch s {
	case "", StateStart, StateTerminal:
		return false
	}
	return true
}

// RegistrationDraft accumulates registration fields across turns until it is
// committed or discarded.
type RegistrationDraft struct {
	FullName        string        `json:"full_name,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	Email           string        `json:"email,omitempty"`
	BusinessName    string        `json:"business_name,omitempty"`
	BusinessAddress string        `json:"business_address,omitempty"`
	Governorate     string        `json:"governorate,omitempty"`
	AnnualRevenue   AnnualRevenue `json:"annual_revenue,omitempty"`
	BusinessType    BusinessType  `json:"business_type,omitempty"`
	Password        string        `json:"password,omitempty"`
}

// Complete reports whether every required field has been captured.
func (d *RegistrationDraft) Complete() bool {
	return d != nil &&
		d.FullName != "" &&
		d.Phone != "" &&
		d.Email != "" &&
		d.BusinessName != "" &&
		d.BusinessAddress != "" &&
		d.Governorate != "" &&
		d.AnnualRevenue != "" &&
		d.BusinessType != "" &&
		d.Password != ""
}

// String never includes the password.
func (d RegistrationDraft) String() string {
	pwd := ""
	if d.Password != "" {
		pwd = "[REDACTED]"
	}
	return fmt.Sprintf("RegistrationDraft{name=%q phone=%q email=%q business=%q revenue=%s type=%s password=%s}",
		d.FullName, d.Phone, d.Email, d.BusinessName, d.AnnualRevenue, d.BusinessType, pwd)
}

// GoString keeps %#v from leaking the password as well.
func (d RegistrationDraft) GoString() string { return d.String() }
