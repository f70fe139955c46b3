package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const authSecret = "test-secret"

func newAuth(f *fixture) *AuthService {
	return NewAuthService(f.db, f.userRepo, f.subs, authSecret, time.Hour, zap.NewNop())
}

func TestRegisterProvisionsFreeSubscription(t *testing.T) {
	f := newFixture(t)
	auth := newAuth(f)

	u, err := auth.Register(f.ctx, RegisterInput{
		Email: "  Wanjiku@Example.com ", Password: "password123", Name: "Wanjiku",
		Role: entity.RoleFarmer, Location: "Nyeri",
	})
	require.NoError(t, err)
	assert.Equal(t, "wanjiku@example.com", u.Email)
	assert.NotEqual(t, "password123", u.Password)

	sub, err := f.subs.Get(f.ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, entity.TierFree, sub.Tier)
	assert.True(t, sub.MonthlyPrice.IsZero())
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
}

func TestRegisterRejects(t *testing.T) {
	f := newFixture(t)
	auth := newAuth(f)
	valid := RegisterInput{Email: "a@example.com", Password: "password123", Name: "A", Role: entity.RoleBuyer}

	_, err := auth.Register(f.ctx, valid)
	require.NoError(t, err)

	dup := valid
	dup.Email = "A@EXAMPLE.COM"
	_, err = auth.Register(f.ctx, dup)
	assert.ErrorIs(t, err, ErrEmailTaken)

	admin := valid
	admin.Email, admin.Role = "b@example.com", "ADMIN"
	_, err = auth.Register(f.ctx, admin)
	assert.ErrorIs(t, err, ErrInvalidRole)

	short := valid
	short.Email, short.Password = "c@example.com", "123"
	_, err = auth.Register(f.ctx, short)
	assert.Equal(t, KindValidation, KindOf(err))

	assert.EqualValues(t, 1, f.count(t, &entity.User{}))
	assert.EqualValues(t, 1, f.count(t, &entity.Subscription{}))
}

func TestLoginIssuesToken(t *testing.T) {
	f := newFixture(t)
	auth := newAuth(f)
	u, err := auth.Register(f.ctx, RegisterInput{Email: "farmer@example.com", Password: "password123", Name: "F", Role: entity.RoleFarmer})
	require.NoError(t, err)

	token, got, err := auth.Login(f.ctx, LoginInput{Email: "Farmer@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := utils.ParseToken(token, authSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "FARMER", claims.Role)

	_, _, err = auth.Login(f.ctx, LoginInput{Email: "farmer@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login(f.ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := auth.Me(f.ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, me.Subscription)
	assert.Equal(t, entity.TierFree, me.Subscription.Tier)

	_, err = auth.Me(f.ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDuplicateEmailIsTranslated(t *testing.T) {
	f := newFixture(t)
	f.user(t, "taken@example.com", entity.RoleBuyer, "")

	err := f.userRepo.Create(f.db, &entity.User{Email: "taken@example.com", Name: "Again", Role: entity.RoleBuyer})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestConcurrentRegistrationsForOneEmail(t *testing.T) {
	f := newFixture(t)
	auth := newAuth(f)

	errs := parallel(6, func(i int) error {
		_, err := auth.Register(f.ctx, RegisterInput{
			Email: "same@example.com", Password: "password123",
			Name: fmt.Sprintf("Racer %d", i), Role: entity.RoleBuyer,
		})
		return err
	})

	assert.Equal(t, 1, successes(errs))
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrEmailTaken)
		}
	}
	assert.EqualValues(t, 1, f.count(t, &entity.User{}))
	assert.EqualValues(t, 1, f.count(t, &entity.Subscription{}))
}
