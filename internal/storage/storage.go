// Package storage persists the small amount of per-guild bookkeeping the
// bot keeps: recent command executions and recently played tracks. Queue
// and session state are deliberately not persisted; they die with the
// process.
package storage

import (
	"context"
	"time"

	"github.com/keshon/datastore"
)

const (
	commandHistoryLimit = 20
	trackHistoryLimit   = 12
)

type Storage struct {
	ds     *datastore.DataStore
	cancel context.CancelFunc
}

type CommandRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Datetime  time.Time `json:"datetime"`
}

type TrackRecord struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	RequestedBy string    `json:"requested_by"`
	PlayedAt    time.Time `json:"played_at"`
}

type Record struct {
	CommandHistory []CommandRecord `json:"cmd_history"`
	TrackHistory   []TrackRecord   `json:"track_history"`
}

func New(filePath string) (*Storage, error) {
	ctx, cancel := context.WithCancel(context.Background())
	ds, err := datastore.New(ctx, filePath)
	if err != nil {
		cancel()
		return nil, err
	}
	return &Storage{ds: ds, cancel: cancel}, nil
}

func (s *Storage) Close() error {
	s.cancel()
	return s.ds.Close()
}

// getOrCreateGuildRecord reads a guild's record, materializing an empty one
// on first touch. Histories are re-capped on read in case limits shrank.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	var record Record
	exists, err := s.ds.Get(guildID, &record)
	if err != nil {
		return nil, err
	}
	if !exists {
		record := &Record{}
		s.ds.Set(guildID, record)
		return record, nil
	}

	if len(record.CommandHistory) > commandHistoryLimit {
		record.CommandHistory = record.CommandHistory[len(record.CommandHistory)-commandHistoryLimit:]
	}
	if len(record.TrackHistory) > trackHistoryLimit {
		record.TrackHistory = record.TrackHistory[len(record.TrackHistory)-trackHistoryLimit:]
	}

	return &record, nil
}

// AppendCommandToHistory records a command execution for a guild.
func (s *Storage) AppendCommandToHistory(guildID string, cmd CommandRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandHistory = append(record.CommandHistory, cmd)
	if len(record.CommandHistory) > commandHistoryLimit {
		record.CommandHistory = record.CommandHistory[len(record.CommandHistory)-commandHistoryLimit:]
	}
	s.ds.Set(guildID, record)
	return nil
}

func (s *Storage) FetchCommandHistory(guildID string) ([]CommandRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandHistory, nil
}

// AppendTrackToHistory records a played track for a guild.
func (s *Storage) AppendTrackToHistory(guildID string, track TrackRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.TrackHistory = append(record.TrackHistory, track)
	if len(record.TrackHistory) > trackHistoryLimit {
		record.TrackHistory = record.TrackHistory[len(record.TrackHistory)-trackHistoryLimit:]
	}
	s.ds.Set(guildID, record)
	return nil
}

func (s *Storage) FetchTrackHistory(guildID string) ([]TrackRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.TrackHistory, nil
}
