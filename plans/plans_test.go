package plans

import (
	"testing"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPlans(t *testing.T) {
	c := Default()

	cases := []struct {
		tier        entity.Tier
		price       int64
		maxProducts int
		rate        string
	}{
		{entity.TierFree, 0, 5, "0.10"},
		{entity.TierPremium, 500, 50, "0.07"},
		{entity.TierEnterprise, 2500, Unlimited, "0.05"},
	}
	for _, tc := range cases {
		t.Run(string(tc.tier), func(t *testing.T) {
			p, ok := c.Lookup(tc.tier)
			require.True(t, ok)
			assert.True(t, p.Price.Equal(decimal.NewFromInt(tc.price)))
			assert.Equal(t, tc.maxProducts, p.MaxProducts)
			assert.True(t, p.CommissionRate.Equal(decimal.RequireFromString(tc.rate)))
			assert.Equal(t, "KES", p.Currency)
		})
	}
}

func TestResolveFallsBackToFree(t *testing.T) {
	c := Default()
	assert.Equal(t, entity.TierFree, c.Resolve("").Tier)
	assert.Equal(t, entity.TierFree, c.Resolve("GOLD").Tier)
	assert.True(t, c.CommissionRate("").Equal(decimal.RequireFromString("0.10")))
	assert.Equal(t, 5, c.MaxProducts("nope"))
	assert.False(t, c.Valid("GOLD"))
	assert.True(t, c.Valid(entity.TierPremium))
}

func TestAllowsProducts(t *testing.T) {
	c := Default()
	free := c.Resolve(entity.TierFree)
	assert.True(t, free.AllowsProducts(4))
	assert.False(t, free.AllowsProducts(5))

	ent := c.Resolve(entity.TierEnterprise)
	assert.True(t, ent.AllowsProducts(1_000_000))
}

func TestLookupReturnsCopy(t *testing.T) {
	c := Default()
	p, _ := c.Lookup(entity.TierFree)
	p.Features[0] = "tampered"
	p.MaxProducts = 999

	again, _ := c.Lookup(entity.TierFree)
	assert.Equal(t, "List up to 5 products", again.Features[0])
	assert.Equal(t, 5, again.MaxProducts)
}

func TestAllOrdered(t *testing.T) {
	all := Default().All()
	require.Len(t, all, 3)
	assert.Equal(t, []entity.Tier{entity.TierFree, entity.TierPremium, entity.TierEnterprise},
		[]entity.Tier{all[0].Tier, all[1].Tier, all[2].Tier})
	assert.Equal(t, Default().Tiers(), []entity.Tier{entity.TierFree, entity.TierPremium, entity.TierEnterprise})
}
