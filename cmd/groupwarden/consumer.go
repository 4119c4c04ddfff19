package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/groupwarden/groupwarden/moderator"
	"github.com/groupwarden/groupwarden/moderator/event"

	"github.com/redis/go-redis/v9"
)

// RedisEventSource consumes inbound events from a redis stream. The platform
// bridge (the process talking to the actual chat API) appends one entry per
// event, with the event JSON in the "event" field.
type RedisEventSource struct {
	rdb    *redis.Client
	stream string
	server *Server
}

func (src *RedisEventSource) Next(ctx context.Context) (*event.Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		last := src.server.getLastID()
		if last == "" {
			last = "0"
		}
		res, err := src.rdb.XRead(ctx, &redis.XReadArgs{
			Streams: []string{src.stream, last},
			Count:   1,
			Block:   5 * time.Second,
		}).Result()
		if err == redis.Nil {
			// block timeout, poll again
			continue
		} else if err != nil {
			return nil, fmt.Errorf("reading event stream: %w", err)
		}
		for _, stream := range res {
			for _, entry := range stream.Messages {
				src.server.setLastID(entry.ID)
				raw, ok := entry.Values["event"].(string)
				if !ok {
					src.server.logger.Warn("skipping malformed stream entry", "id", entry.ID)
					continue
				}
				var ev event.Event
				if err := json.Unmarshal([]byte(raw), &ev); err != nil {
					src.server.logger.Warn("skipping unparseable stream entry", "id", entry.ID, "err", err)
					continue
				}
				return &ev, nil
			}
		}
	}
}

// RedisPlanSink publishes finished action plans to a redis stream for the
// platform bridge to execute.
type RedisPlanSink struct {
	rdb    *redis.Client
	stream string
}

type planEnvelope struct {
	Chat  string                `json:"chat"`
	Actor string                `json:"actor"`
	Plan  *moderator.ActionPlan `json:"plan"`
}

func (snk *RedisPlanSink) Deliver(ctx context.Context, ev *event.Event, plan *moderator.ActionPlan) error {
	out, err := json.Marshal(planEnvelope{Chat: ev.Chat, Actor: ev.Actor, Plan: plan})
	if err != nil {
		return fmt.Errorf("encoding action plan: %w", err)
	}
	err = snk.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: snk.stream,
		Values: map[string]any{"plan": string(out)},
	}).Err()
	if err != nil {
		return fmt.Errorf("publishing action plan: %w", err)
	}
	return nil
}

// StdinEventSource reads one JSON event per line. Useful for development and
// for replaying captured event logs.
type StdinEventSource struct {
	scanner *bufio.Scanner
}

func NewStdinEventSource(r io.Reader) *StdinEventSource {
	return &StdinEventSource{scanner: bufio.NewScanner(r)}
}

func (src *StdinEventSource) Next(ctx context.Context) (*event.Event, error) {
	for src.scanner.Scan() {
		line := src.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev event.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			slog.Warn("skipping unparseable event line", "err", err)
			continue
		}
		return &ev, nil
	}
	if err := src.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// LogPlanSink writes plans to the log instead of a queue.
type LogPlanSink struct {
	logger *slog.Logger
}

func (snk *LogPlanSink) Deliver(ctx context.Context, ev *event.Event, plan *moderator.ActionPlan) error {
	out, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	snk.logger.Info("action plan", "actor", ev.Actor, "chat", ev.Chat, "plan", string(out))
	return nil
}
