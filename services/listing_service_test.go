package services

import (
	"testing"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListings(f *fixture) *ListingService {
	s := NewListingService(repository.NewListingRepository(f.db))
	s.Now = clock
	return s
}

func TestAgrovetFilters(t *testing.T) {
	f := newFixture(t)
	svc := newListings(f)
	rows := []entity.Agrovet{
		{Name: "Green Seeds", Region: "Central", Rating: 4.5, Categories: []string{"seeds", "fertilizer"}},
		{Name: "Harvest Hub", Region: "Rift Valley", Rating: 4.8, Categories: []string{"tools"}},
		{Name: "Mlima Agro", Region: "Central", Rating: 3.9, Categories: []string{"Fertilizer"}},
	}
	require.NoError(t, f.db.Create(&rows).Error)

	all, err := svc.Agrovets(f.ctx, repository.AgrovetFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Harvest Hub", all[0].Name, "best rated first")

	central, err := svc.Agrovets(f.ctx, repository.AgrovetFilter{Region: "central"})
	require.NoError(t, err)
	assert.Len(t, central, 2)

	fert, err := svc.Agrovets(f.ctx, repository.AgrovetFilter{Category: "fertilizer", Take: 1})
	require.NoError(t, err)
	require.Len(t, fert, 1)
	assert.Equal(t, "Green Seeds", fert[0].Name)
	assert.Equal(t, []string{"seeds", "fertilizer"}, []string(fert[0].Categories))

	_, err = svc.Agrovets(f.ctx, repository.AgrovetFilter{Take: -1})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestEventsAreUpcomingOnly(t *testing.T) {
	f := newFixture(t)
	svc := newListings(f)
	rows := []entity.Event{
		{Title: "Past Expo", Region: "Central", Category: "expo", StartDate: fixedNow.AddDate(0, 0, -1)},
		{Title: "Seed Workshop", Region: "Central", Category: "training", StartDate: fixedNow.AddDate(0, 0, 14)},
		{Title: "Nakuru Expo", Region: "Rift Valley", Category: "expo", StartDate: fixedNow.AddDate(0, 0, 7)},
	}
	require.NoError(t, f.db.Create(&rows).Error)

	upcoming, err := svc.Events(f.ctx, repository.EventFilter{})
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Nakuru Expo", upcoming[0].Title, "soonest first")

	later, err := svc.Events(f.ctx, repository.EventFilter{AfterDays: 10})
	require.NoError(t, err)
	require.Len(t, later, 1)
	assert.Equal(t, "Seed Workshop", later[0].Title)

	expos, err := svc.Events(f.ctx, repository.EventFilter{Category: "expo", Region: "rift"})
	require.NoError(t, err)
	require.Len(t, expos, 1)
	assert.Equal(t, "Nakuru Expo", expos[0].Title)
}

func TestEducationPremiumFilter(t *testing.T) {
	f := newFixture(t)
	svc := newListings(f)
	rows := []entity.EducationContent{
		{Title: "Drip irrigation", Category: "irrigation"},
		{Title: "Cold chain", Category: "post-harvest", IsPremium: true},
	}
	require.NoError(t, f.db.Create(&rows).Error)

	all, err := svc.Education(f.ctx, repository.EducationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	premium := true
	paid, err := svc.Education(f.ctx, repository.EducationFilter{Premium: &premium})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "Cold chain", paid[0].Title)

	free := false
	open, err := svc.Education(f.ctx, repository.EducationFilter{Premium: &free, Category: "irrigation"})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Drip irrigation", open[0].Title)
}
