package services

import (
	"context"
	"sort"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	topProductsShown       = 5
	recentOrdersConsidered = 20
	DefaultRecommendations = 10
	MaxRecommendations     = 50
)

type AnalyticsService struct {
	Orders   *repository.OrderRepository
	Products *repository.ProductRepository
}

func NewAnalyticsService(orders *repository.OrderRepository, products *repository.ProductRepository) *AnalyticsService {
	return &AnalyticsService{Orders: orders, Products: products}
}

type ProductRevenue struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Quantity  float64         `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type Performance struct {
	TotalOrders   int                        `json:"totalOrders"`
	TotalRevenue  decimal.Decimal            `json:"totalRevenue"`
	AvgOrderValue decimal.Decimal            `json:"avgOrderValue"`
	StatusCounts  map[entity.OrderStatus]int `json:"statusCounts"`
	TopProducts   []ProductRevenue           `json:"topProducts"`
}

// Performance summarises a farmer's sales. Total revenue is what the farmer
// keeps after commission; per-product revenue is the gross line subtotal.
func (s *AnalyticsService) Performance(ctx context.Context, farmerID uint) (*Performance, error) {
	orders, err := s.Orders.SellerHistory(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	out := &Performance{
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
		StatusCounts:  map[entity.OrderStatus]int{},
		TopProducts:   []ProductRevenue{},
	}

	var (
		byProduct []ProductRevenue
		index     = map[uint]int{}
	)
	for _, o := range orders {
		out.TotalOrders++
		out.StatusCounts[o.Status]++
		net := o.SellerNet()
		out.TotalRevenue = out.TotalRevenue.Add(net)

		for _, it := range o.Items {
			i, seen := index[it.ProductID]
			if !seen {
				name := ""
				if it.Product != nil {
					name = it.Product.Name
				}
				i = len(byProduct)
				index[it.ProductID] = i
				byProduct = append(byProduct, ProductRevenue{ProductID: it.ProductID, Name: name, Revenue: decimal.Zero})
			}
			byProduct[i].Quantity += it.Quantity
			byProduct[i].Revenue = byProduct[i].Revenue.Add(it.Subtotal)
		}
	}

	if out.TotalOrders > 0 {
		out.AvgOrderValue = out.TotalRevenue.Div(decimal.NewFromInt(int64(out.TotalOrders))).Round(2)
	}
	sort.SliceStable(byProduct, func(a, b int) bool {
		return byProduct[a].Revenue.GreaterThan(byProduct[b].Revenue)
	})
	if len(byProduct) > topProductsShown {
		byProduct = byProduct[:topProductsShown]
	}
	out.TopProducts = append(out.TopProducts, byProduct...)
	return out, nil
}

// Recommendations carries topProducts for buyers only; it is always an
// array for them and absent for everyone else.
type Recommendations struct {
	TopCategory entity.ProductCategory `json:"topCategory,omitempty"`
	TopProducts *[]uint                `json:"topProducts,omitempty"`
	Recommended []entity.Product       `json:"recommended"`
}

// ClampLimit applies the default and the ceiling to a requested count.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecommendations
	}
	return min(limit, MaxRecommendations)
}

type tally[K comparable] struct {
	keys   []K
	counts map[K]float64
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{counts: map[K]float64{}}
}

func (t *tally[K]) add(k K, v float64) {
	if _, ok := t.counts[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.counts[k] += v
}

// ranked returns keys by count, highest first; ties keep first-seen order.
func (t *tally[K]) ranked() []K {
	out := append([]K(nil), t.keys...)
	sort.SliceStable(out, func(a, b int) bool { return t.counts[out[a]] > t.counts[out[b]] })
	return out
}

func (s *AnalyticsService) Recommendations(ctx context.Context, userID uint, role entity.Role, limit int) (*Recommendations, error) {
	limit = ClampLimit(limit)
	if role == entity.RoleBuyer {
		return s.forBuyer(ctx, userID, limit)
	}
	return s.popular(ctx, limit)
}

// forBuyer looks at the buyer's recent orders and suggests fresh listings
// from the category they buy most.
func (s *AnalyticsService) forBuyer(ctx context.Context, buyerID uint, limit int) (*Recommendations, error) {
	orders, err := s.Orders.RecentForBuyer(ctx, buyerID, recentOrdersConsidered)
	if err != nil {
		return nil, err
	}

	categories := newTally[entity.ProductCategory]()
	products := newTally[uint]()
	for _, o := range orders {
		for _, it := range o.Items {
			products.add(it.ProductID, it.Quantity)
			if it.Product != nil {
				categories.add(it.Product.Category, it.Quantity)
			}
		}
	}

	out := &Recommendations{}
	if ranked := categories.ranked(); len(ranked) > 0 {
		out.TopCategory = ranked[0]
	}
	top := products.ranked()
	if len(top) > limit {
		top = top[:limit]
	}
	ids := append([]uint{}, top...)
	out.TopProducts = &ids

	out.Recommended, err = s.Products.ListAvailable(ctx, out.TopCategory, limit)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// popular ranks products by quantity ordered across the whole marketplace.
func (s *AnalyticsService) popular(ctx context.Context, limit int) (*Recommendations, error) {
	// over-fetch so delisted products do not leave the list short
	rows, err := s.Orders.PopularProducts(ctx, limit*2)
	if err != nil {
		return nil, err
	}
	ids := lo.Map(rows, func(r repository.ProductPopularity, _ int) uint { return r.ProductID })

	available, err := s.Products.ListAvailableByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(available, func(p entity.Product) uint { return p.ID })

	recommended := lo.FilterMap(ids, func(id uint, _ int) (entity.Product, bool) {
		p, ok := byID[id]
		return p, ok
	})
	if len(recommended) > limit {
		recommended = recommended[:limit]
	}
	return &Recommendations{Recommended: recommended}, nil
}
