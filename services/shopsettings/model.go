package shopsettings

import "github.com/sabarishmetals/shopcore/services/pricing"

// Settings is the store configuration relevant to the storefront. Amounts
// are whole currency units.
type Settings struct {
	SiteName              string
	SiteEmail             string
	TaxRatePercent        float64
	ShippingFee           int
	FreeShippingThreshold int
	CurrencyCode          string
	CurrencySymbol        string
}

// Pricing narrows the settings to what the pricing engine consumes.
func (s Settings) Pricing() pricing.Settings {
	return pricing.Settings{
		TaxRatePercent:        s.TaxRatePercent,
		ShippingFee:           s.ShippingFee,
		FreeShippingThreshold: s.FreeShippingThreshold,
	}
}

// DefaultSettings apply when the store has never been configured.
func DefaultSettings() Settings {
	return Settings{
		SiteName:              "Sabarish Metals",
		SiteEmail:             "contact@sabarishmetals.com",
		TaxRatePercent:        18,
		ShippingFee:           99,
		FreeShippingThreshold: 5000,
		CurrencyCode:          "INR",
		CurrencySymbol:        "₹",
	}
}
