package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type txTestRow struct {
	ID    uint `gorm:"primaryKey"`
	Label string
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&txTestRow{}))

	return &Client{conn: conn}
}

func TestWithTxCommits(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	var before int64
	require.NoError(t, client.DB().Model(&txTestRow{}).Count(&before).Error)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&txTestRow{Label: "committed"}).Error
	})
	require.NoError(t, err)

	var after int64
	require.NoError(t, client.DB().Model(&txTestRow{}).Count(&after).Error)
	require.Equal(t, before+1, after)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	var before int64
	require.NoError(t, client.DB().Model(&txTestRow{}).Count(&before).Error)

	boom := errors.New("boom")
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&txTestRow{Label: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var after int64
	require.NoError(t, client.DB().Model(&txTestRow{}).Count(&after).Error)
	require.Equal(t, before, after)
}

func TestPingAndClose(t *testing.T) {
	client := newTestClient(t)

	require.NoError(t, client.Ping(context.Background()))
	require.NoError(t, client.Close())
}
