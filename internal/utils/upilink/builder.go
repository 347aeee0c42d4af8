package upilink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/citycable/cable_collect_app/internal/utils"
	"github.com/shopspring/decimal"
)

// MaxRefLen is the UPI protocol cap on the tid and tr fields.
const MaxRefLen = 35

// ErrMissingPayee indicates the operator VPA is not configured, so no deep
// link can be built. Callers degrade to the manual-instructions payload.
var ErrMissingPayee = errors.New("payee VPA not configured")

// refTimeFormat is compact enough to survive truncation while keeping the
// second-level suffix that actually distinguishes two references.
const refTimeFormat = "20060102150405"

// Payee identifies the operator's collecting account.
type Payee struct {
	VPA          string // pa: payee virtual payment address
	Name         string // pn: display name shown in the UPI app
	MerchantCode string // mc: merchant category code
	Currency     string // cu: ISO currency code, e.g. INR
}

// Request carries the per-payment fields of a deep link.
type Request struct {
	TransactionID  string // tid, <= 35 chars after truncation
	TransactionRef string // tr, <= 35 chars after truncation
	Note           string // tn: human-readable note
	Amount         decimal.Decimal
}

// Strategy names one way of handing off to a UPI app, tried in order.
type Strategy string

const (
	// StrategyChooser opens the platform app chooser on the upi:// scheme.
	StrategyChooser Strategy = "APP_CHOOSER"
	// StrategyIntent wraps the link in an Android intent URI.
	StrategyIntent Strategy = "ANDROID_INTENT"
	// StrategyLegacyScheme targets well-known app-specific schemes directly.
	StrategyLegacyScheme Strategy = "LEGACY_SCHEME"
)

// LaunchOption is one attemptable URI. A successful open only means some
// external app launched; it is never a payment confirmation.
type LaunchOption struct {
	Strategy Strategy `json:"strategy"`
	URI      string   `json:"uri"`
}

// ManualInstructions is the degraded path shown when no launch strategy is
// available: the subscriber pays by hand and reports the reference.
type ManualInstructions struct {
	PayeeVPA  string `json:"payeeVPA"`
	PayeeName string `json:"payeeName"`
	Amount    string `json:"amount"`
	Note      string `json:"note"`
	Reference string `json:"reference"`
}

// LaunchPlan is the ordered launch-and-degrade sequence for one payment.
type LaunchPlan struct {
	Options []LaunchOption     `json:"options"`
	Manual  ManualInstructions `json:"manual"`
}

// BuildReference composes prefix + entity id + timestamp into a reference
// that fits MaxRefLen. The prefix is always preserved whole; when the
// composed value is too long, roughly 40% of the remaining budget goes to
// the entity id and the rest to the timestamp, so truncated references stay
// stable and recognisable instead of being cut at an arbitrary byte.
// The same input always yields the same output.
func BuildReference(prefix, entityID string, at time.Time) string {
	ts := at.UTC().Format(refTimeFormat)
	full := prefix + entityID + ts
	if len(full) <= MaxRefLen {
		return full
	}

	budget := MaxRefLen - len(prefix)
	if budget <= 0 {
		return prefix[:MaxRefLen]
	}

	idBudget := budget * 2 / 5
	tsBudget := budget - idBudget

	if len(entityID) > idBudget {
		entityID = entityID[:idBudget]
	} else {
		// Give unused id budget back to the timestamp.
		tsBudget = budget - len(entityID)
	}
	if len(ts) > tsBudget {
		// Keep the tail: the most recent digits are what varies.
		ts = ts[len(ts)-tsBudget:]
	}

	return prefix + entityID + ts
}

// BuildLink renders the upi://pay deep link. All field values go through a
// single url.Values encoding step; nothing is escaped by hand.
func BuildLink(payee Payee, req Request) (string, error) {
	if payee.VPA == "" {
		return "", ErrMissingPayee
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("amount must be positive, got %s", req.Amount)
	}

	currency := payee.Currency
	if currency == "" {
		currency = "INR"
	}

	v := url.Values{}
	v.Set("pa", payee.VPA)
	v.Set("pn", payee.Name)
	if payee.MerchantCode != "" {
		v.Set("mc", payee.MerchantCode)
	}
	v.Set("tid", clamp(req.TransactionID))
	v.Set("tr", clamp(req.TransactionRef))
	v.Set("tn", req.Note)
	v.Set("am", utils.FormatUPIAmount(req.Amount))
	v.Set("cu", currency)

	return "upi://pay?" + v.Encode(), nil
}

// legacySchemes are tried last, newest-first.
var legacySchemes = []string{"tez://upi/pay", "phonepe://pay", "paytmmp://pay"}

// BuildLaunchPlan assembles the ordered launch sequence for one payment.
// When the payee VPA is missing it returns a manual-only plan along with
// ErrMissingPayee so callers can degrade rather than abort.
func BuildLaunchPlan(payee Payee, req Request) (LaunchPlan, error) {
	manual := ManualInstructions{
		PayeeVPA:  payee.VPA,
		PayeeName: payee.Name,
		Amount:    utils.FormatUPIAmount(req.Amount),
		Note:      req.Note,
		Reference: clamp(req.TransactionRef),
	}

	link, err := BuildLink(payee, req)
	if err != nil {
		return LaunchPlan{Manual: manual}, err
	}

	query := strings.TrimPrefix(link, "upi://pay?")
	options := []LaunchOption{
		{Strategy: StrategyChooser, URI: link},
		{Strategy: StrategyIntent, URI: "intent://pay?" + query + "#Intent;scheme=upi;end"},
	}
	for _, scheme := range legacySchemes {
		options = append(options, LaunchOption{Strategy: StrategyLegacyScheme, URI: scheme + "?" + query})
	}

	return LaunchPlan{Options: options, Manual: manual}, nil
}

func clamp(s string) string {
	if len(s) > MaxRefLen {
		return s[:MaxRefLen]
	}
	return s
}
