package dev

import (
	"context"
	"math/rand"

	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/stage"
)

// randomSource generates synthetic records.
type randomSource struct {
	rnd    *rand.Rand
	fields int64
}

func (s *randomSource) Init(ctx context.Context, cfg stage.Config) error {
	seed, ok := cfg.Int("seed")
	if !ok {
		seed = rand.Int63()
	}
	s.rnd = rand.New(rand.NewSource(seed))

	s.fields, _ = cfg.Int("fields")
	if s.fields <= 0 {
		s.fields = 3
	}

	ctxlog.FromContext(ctx).Debug("Dev random source initialized.", "fields", s.fields)
	return nil
}

func (s *randomSource) Destroy(ctx context.Context) error {
	s.rnd = nil
	return nil
}

// Next produces one synthetic record.
func (s *randomSource) Next() map[string]int64 {
	record := make(map[string]int64, s.fields)
	for i := int64(0); i < s.fields; i++ {
		record[fieldName(i)] = s.rnd.Int63()
	}
	return record
}

func fieldName(i int64) string {
	return "field_" + string(rune('a'+i%26))
}

// trashTarget discards records.
type trashTarget struct {
	logRecords bool
}

func (t *trashTarget) Init(ctx context.Context, cfg stage.Config) error {
	t.logRecords, _ = cfg.Bool("log_records")
	return nil
}

func (t *trashTarget) Destroy(ctx context.Context) error {
	return nil
}

// Write discards a batch, optionally logging how many records went away.
func (t *trashTarget) Write(ctx context.Context, records []any) {
	if t.logRecords {
		ctxlog.FromContext(ctx).Debug("Discarded records.", "count", len(records))
	}
}
