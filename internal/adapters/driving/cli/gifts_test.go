package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func TestGiftsCatalogCmd(t *testing.T) {
	svc := &mockPaymentService{
		catalog: &domain.StarGifts{
			Modified: true,
			Gifts: []domain.Gift{
				&domain.StarGift{ID: 5, Title: "Rose", Stars: 25},
				&domain.StarGift{ID: 6, Stars: 50, SoldOut: true},
				domain.Unsupported{Family: domain.FamilyStarGift, Tag: "starGiftFromTheFuture"},
			},
		},
	}
	setupTestServices(t, &Services{Payment: svc})

	out, err := executeCommand(t, "gifts", "catalog")

	require.NoError(t, err)
	assert.Contains(t, out, "Rose")
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "6 (sold out)")
	assert.Contains(t, out, "starGiftFromTheFuture")
}

func TestGiftsCatalogCmd_Empty(t *testing.T) {
	setupTestServices(t, &Services{Payment: &mockPaymentService{catalog: &domain.StarGifts{}}})

	out, err := executeCommand(t, "gifts", "catalog")

	require.NoError(t, err)
	assert.Contains(t, out, "No gifts found.")
}

func TestGiftsSavedCmd(t *testing.T) {
	svc := &mockPaymentService{
		saved: []domain.SavedStarGift{
			{
				Gift: &domain.StarGift{ID: 5, Title: "Rose", Stars: 25},
				From: &domain.Chat{ID: 1, FirstName: "Alice"},
				Date: time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC),
			},
			{Gift: &domain.UniqueStarGift{Title: "Rose", Num: 12}},
		},
	}
	setupTestServices(t, &Services{Payment: svc})

	out, err := executeCommand(t, "gifts", "saved", "@news", "-n", "10")

	require.NoError(t, err)
	assert.Equal(t, "@news", svc.lastPeer)
	assert.Equal(t, 10, svc.lastListOpts.Limit)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "2024-12-24 18:00")
	assert.Contains(t, out, "anonymous")
	assert.Contains(t, out, "Rose #12")
}

func TestGiftsSavedCmd_Error(t *testing.T) {
	setupTestServices(t, &Services{Payment: &mockPaymentService{err: domain.ErrDisconnected}})

	_, err := executeCommand(t, "gifts", "saved")

	assert.ErrorIs(t, err, domain.ErrDisconnected)
}

func TestGiftsShowCmd(t *testing.T) {
	svc := &mockPaymentService{
		unique: &domain.UniqueStarGift{
			Title:              "Rose",
			Slug:               "rose-12",
			Num:                12,
			AvailabilityIssued: 40,
			AvailabilityTotal:  1000,
			OwnerName:          "Nina",
		},
	}
	setupTestServices(t, &Services{Payment: svc})

	out, err := executeCommand(t, "gifts", "show", "rose-12")

	require.NoError(t, err)
	assert.Equal(t, "rose-12", svc.lastSlug)
	assert.Contains(t, out, "Rose #12")
	assert.Contains(t, out, "40/1000")
	assert.Contains(t, out, "Nina")
}

func TestGiftsCmd_NoService(t *testing.T) {
	setupTestServices(t, nil)

	_, err := executeCommand(t, "gifts", "catalog")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment service not configured")
}
