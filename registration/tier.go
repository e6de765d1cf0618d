package registration

import "github.com/Rhymond/go-money"

// Tier is the kind of registration, and with it the checkout a form leads to.
type Tier string

const (
	PARTICIPANT    Tier = "participant"
	VENDOR         Tier = "vendor"
	SPONSOR_SILVER Tier = "sponsor_silver"
	SPONSOR_GOLD   Tier = "sponsor_gold"
	DONATION       Tier = "donation"
)

// TierPrice is what a checkout for a tier charges. When PriceRef is set it
// names a price registered with the payment processor and Amount is ignored.
type TierPrice struct {
	Amount      *money.Money
	PriceRef    string
	SuccessPage string
}

// TierTable lists the purchasable tiers. DONATION is absent since its amount
// comes from the request.
type TierTable map[Tier]TierPrice

func DefaultTierTable(currency string) TierTable {
	return TierTable{
		PARTICIPANT: {
			Amount:      money.New(2500, currency),
			SuccessPage: "payment-success-participant.html",
		},
		VENDOR: {
			Amount:      money.New(5000, currency),
			SuccessPage: "payment-success-vendor.html",
		},
		SPONSOR_SILVER: {
			Amount:      money.New(30000, currency),
			SuccessPage: "payment-success-sponsor.html",
		},
		SPONSOR_GOLD: {
			Amount:      money.New(15000, currency),
			SuccessPage: "payment-success-sponsor.html",
		},
	}
}

func (t TierTable) Lookup(tier Tier) (TierPrice, bool) {
	price, ok := t[tier]
	if !ok {
		return TierPrice{}, false
	}
	if price.PriceRef == "" && price.Amount == nil {
		return TierPrice{}, false
	}
	return price, true
}
