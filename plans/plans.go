// Package plans holds the subscription catalog: what each tier costs, how
// many listings it allows and which commission the platform takes on its
// sales. The table is fixed at build time; changing a plan's terms means
// shipping a new catalog, not writing rows.
package plans

import (
	"slices"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/shopspring/decimal"
)

const Currency = "KES"

// Unlimited marks a limit with no ceiling.
const Unlimited = -1

type Plan struct {
	Tier            entity.Tier     `json:"tier"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	MaxProducts     int             `json:"maxProducts"`
	MaxOrders       int             `json:"maxOrders"`
	CommissionRate  decimal.Decimal `json:"commissionRate"`
	MarketDataDelay time.Duration   `json:"-"`
	PremiumContent  bool            `json:"premiumContent"`
	PriceAlerts     bool            `json:"priceAlerts"`
	BulkSelling     bool            `json:"bulkSelling"`
	APIAccess       bool            `json:"apiAccess"`
	Features        []string        `json:"features"`
}

// AllowsProducts reports whether a farmer holding count listings may add one more.
func (p Plan) AllowsProducts(count int64) bool {
	return p.MaxProducts == Unlimited || count < int64(p.MaxProducts)
}

type Catalog struct {
	order []entity.Tier
	plans map[entity.Tier]Plan
}

var defaultCatalog = newCatalog(
	Plan{
		Tier:            entity.TierFree,
		Name:            "Free",
		Price:           decimal.Zero,
		Currency:        Currency,
		MaxProducts:     5,
		MaxOrders:       10,
		CommissionRate:  decimal.RequireFromString("0.10"),
		MarketDataDelay: 24 * time.Hour,
		Features: []string{
			"List up to 5 products",
			"Basic market price data (delayed)",
			"Access to educational articles",
			"10% transaction commission",
			"Community support",
		},
	},
	Plan{
		Tier:           entity.TierPremium,
		Name:           "Premium",
		Price:          decimal.NewFromInt(500),
		Currency:       Currency,
		MaxProducts:    50,
		MaxOrders:      100,
		CommissionRate: decimal.RequireFromString("0.07"),
		PremiumContent: true,
		PriceAlerts:    true,
		Features: []string{
			"List up to 50 products",
			"Real-time market prices",
			"Weather alerts & forecasts",
			"Premium educational content",
			"7% transaction commission",
			"Price alerts (SMS/Email)",
			"Priority support",
		},
	},
	Plan{
		Tier:           entity.TierEnterprise,
		Name:           "Enterprise",
		Price:          decimal.NewFromInt(2500),
		Currency:       Currency,
		MaxProducts:    Unlimited,
		MaxOrders:      Unlimited,
		CommissionRate: decimal.RequireFromString("0.05"),
		PremiumContent: true,
		PriceAlerts:    true,
		BulkSelling:    true,
		APIAccess:      true,
		Features: []string{
			"Unlimited product listings",
			"Real-time market intelligence",
			"Advanced analytics & reporting",
			"Bulk selling tools",
			"Quality grading services",
			"5% transaction commission",
			"Dedicated account manager",
			"API access",
			"Custom integrations",
		},
	},
)

func newCatalog(ps ...Plan) *Catalog {
	c := &Catalog{plans: make(map[entity.Tier]Plan, len(ps))}
	for _, p := range ps {
		c.order = append(c.order, p.Tier)
		c.plans[p.Tier] = p
	}
	return c
}

// Default returns the process-wide catalog.
func Default() *Catalog { return defaultCatalog }

func (c *Catalog) Valid(t entity.Tier) bool {
	_, ok := c.plans[t]
	return ok
}

// Lookup returns a copy of the plan for t.
func (c *Catalog) Lookup(t entity.Tier) (Plan, bool) {
	p, ok := c.plans[t]
	if !ok {
		return Plan{}, false
	}
	p.Features = slices.Clone(p.Features)
	return p, true
}

// Resolve falls back to FREE for an empty or unknown tier, which is what a
// user without a subscription row gets.
func (c *Catalog) Resolve(t entity.Tier) Plan {
	if p, ok := c.Lookup(t); ok {
		return p
	}
	p, _ := c.Lookup(entity.TierFree)
	return p
}

func (c *Catalog) CommissionRate(t entity.Tier) decimal.Decimal {
	return c.Resolve(t).CommissionRate
}

func (c *Catalog) MaxProducts(t entity.Tier) int {
	return c.Resolve(t).MaxProducts
}

func (c *Catalog) Price(t entity.Tier) decimal.Decimal {
	return c.Resolve(t).Price
}

func (c *Catalog) Tiers() []entity.Tier {
	return slices.Clone(c.order)
}

// All lists the plans cheapest first.
func (c *Catalog) All() []Plan {
	out := make([]Plan, 0, len(c.order))
	for _, t := range c.order {
		p, _ := c.Lookup(t)
		out = append(out, p)
	}
	return out
}
