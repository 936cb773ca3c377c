// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Duration   int
	StripPunct bool
}

// StoreConfig selects and configures the content store.
type StoreConfig struct {
	Driver        string
	Path          string
	MongoURI      string
	MongoDatabase string
}

// RefreshConfig defines how new reference texts are harvested and written.
type RefreshConfig struct {
	Source   string
	FeedURL  string
	Items    int
	Wordlist string
	Words    int
	Model    string
	APIKey   string
	Every    time.Duration
}

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Refresh sources.
const (
	SourceFeed     = "feed"
	SourceWordlist = "wordlist"
)
