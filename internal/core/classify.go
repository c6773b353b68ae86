package core

import "strings"

// DefaultProtectionLabels mark the shipping-protection products most order
// exports carry. A product title containing any label, case-sensitively, is
// a protection line. Overridable via the tariff file.
var DefaultProtectionLabels = []string{
	"Package protection",
	"Shipping Protection",
}

// IsProtectionTitle reports whether a product title names a protection or
// insurance product. Matching is a case-sensitive substring check per label.
func IsProtectionTitle(title string, labels []string) bool {
	for _, label := range labels {
		if label == "" {
			continue
		}
		if strings.Contains(title, label) {
			return true
		}
	}
	return false
}

// Classify returns a copy of the sequence with IsProtection set on every
// line whose product title matches the label set. Protection lines stay in
// the sequence: they remain visible in the All Orders view and only drop out
// of cost math and the protection-free view.
func Classify(items []LineItem, labels []string) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		item.IsProtection = IsProtectionTitle(item.ProductTitle, labels)
		out[i] = item
	}
	return out
}

// WithoutProtection returns the classified sequence minus protection lines.
func WithoutProtection(items []LineItem) []LineItem {
	kept := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.IsProtection {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
