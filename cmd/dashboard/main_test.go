package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/camuig/lcf-dashboard/internal/storage"
)

func TestTickersCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tradingData.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&storage.PriceRow{}))
	require.NoError(t, db.Create(&[]storage.PriceRow{
		{Ticker: "TQQQ", OpenTimestamp: 1},
		{Ticker: "ETHUSD", OpenTimestamp: 1},
		{Ticker: "ETHUSD", OpenTimestamp: 2},
	}).Error)
	require.NoError(t, storage.Close(db))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("stores:\n  price_db: "+dbPath+"\n"), 0o644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"tickers", "--config", cfgPath})

	require.NoError(t, root.Execute())
	assert.Equal(t, "ETHUSD\nTQQQ\n", out.String())
}

func TestServeCommand_MissingTradeLog(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "trade_log:\n  path: " + filepath.Join(dir, "absent.log") + "\nlogging:\n  level: error\nweb:\n  debug: false\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"serve", "--config", cfgPath})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open trade log")
}
