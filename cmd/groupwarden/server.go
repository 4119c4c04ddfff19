package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/groupwarden/groupwarden/moderator"
	"github.com/groupwarden/groupwarden/moderator/activity"
	"github.com/groupwarden/groupwarden/moderator/commands"
	"github.com/groupwarden/groupwarden/moderator/event"
	"github.com/groupwarden/groupwarden/moderator/rules"
	"github.com/groupwarden/groupwarden/moderator/userstore"
	"github.com/groupwarden/groupwarden/moderator/wordset"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// EventSource hands the server one inbound event at a time. Next blocks until
// an event is available, the source is exhausted (io.EOF), or ctx is done.
type EventSource interface {
	Next(ctx context.Context) (*event.Event, error)
}

// PlanSink hands finished action plans to the platform bridge for execution.
// Delivery is best-effort: failures are logged by the caller and never fed
// back into later decisions.
type PlanSink interface {
	Deliver(ctx context.Context, ev *event.Event, plan *moderator.ActionPlan) error
}

type Server struct {
	logger     *slog.Logger
	engine     *moderator.Engine
	dispatcher *commands.Dispatcher
	source     EventSource
	sink       PlanSink
	limiter    *rate.Limiter
	rdb        *redis.Client

	// last consumed event-stream entry ID (redis source only), shared
	// between the consume loop and the cursor persist loop
	lastIDMu sync.Mutex
	lastID   string
}

func (s *Server) setLastID(id string) {
	s.lastIDMu.Lock()
	defer s.lastIDMu.Unlock()
	s.lastID = id
}

func (s *Server) getLastID() string {
	s.lastIDMu.Lock()
	defer s.lastIDMu.Unlock()
	return s.lastID
}

type Config struct {
	Logger            *slog.Logger
	RedisURL          string
	WordlistJSON      string
	EventsStream      string
	PlansStream       string
	UserRecordTTL     time.Duration
	ActivityRetention time.Duration
	NoticeRateLimit   int
}

func NewServer(config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if config.UserRecordTTL == 0 {
		config.UserRecordTTL = userstore.DefaultRecordTTL
	}
	if config.NoticeRateLimit <= 0 {
		config.NoticeRateLimit = 5
	}

	words := wordset.Default()
	if config.WordlistJSON != "" {
		if err := words.LoadFromFileJSON(config.WordlistJSON); err != nil {
			return nil, fmt.Errorf("initializing wordset: %v", err)
		}
		logger.Info("loaded disallowed terms from JSON", "path", config.WordlistJSON, "size", words.Size())
	}

	var users userstore.UserStore
	var act activity.ActivityStore
	var rdb *redis.Client
	var source EventSource
	var sink PlanSink
	if config.RedisURL != "" {
		// generic client, for cursor state and the event streams
		opt, err := redis.ParseURL(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL: %v", err)
		}
		rdb = redis.NewClient(opt)
		// check redis connection
		_, err = rdb.Ping(context.TODO()).Result()
		if err != nil {
			return nil, fmt.Errorf("redis ping failed: %v", err)
		}

		ust, err := userstore.NewRedisUserStore(config.RedisURL, config.UserRecordTTL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis userstore: %v", err)
		}
		users = ust

		ast, err := activity.NewRedisActivityStore(config.RedisURL, config.ActivityRetention)
		if err != nil {
			return nil, fmt.Errorf("initializing redis activity store: %v", err)
		}
		act = ast
	} else {
		users = userstore.NewMemUserStore(10_000, config.UserRecordTTL)
		act = activity.NewMemActivityStore()
	}

	eng := moderator.NewEngine(logger, rules.DefaultRules(), users, act, words)

	s := &Server{
		logger:     logger,
		engine:     eng,
		dispatcher: commands.NewDispatcher(logger, eng),
		limiter:    rate.NewLimiter(rate.Limit(config.NoticeRateLimit), 1),
		rdb:        rdb,
	}
	if rdb != nil {
		source = &RedisEventSource{rdb: rdb, stream: config.EventsStream, server: s}
		sink = &RedisPlanSink{rdb: rdb, stream: config.PlansStream}
	} else {
		logger.Info("redis not configured, reading events from stdin")
		source = NewStdinEventSource(os.Stdin)
		sink = &LogPlanSink{logger: logger}
	}
	s.source = source
	s.sink = sink

	return s, nil
}

func (s *Server) RunMetrics(listen string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, nil)
}

// Run consumes events until the source is exhausted or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if last, err := s.ReadLastCursor(ctx); err != nil {
		return err
	} else {
		s.setLastID(last)
	}

	for {
		ev, err := s.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		s.handleEvent(ctx, ev)
	}
}

func (s *Server) handleEvent(ctx context.Context, ev *event.Event) {
	switch ev.Kind {
	case event.KindMessage:
		suppressed := s.engine.Locked() && !ev.Privileged
		plan, err := s.engine.ProcessMessage(ctx, ev)
		if err != nil {
			s.logger.Error("event processing failed", "err", err, "actor", ev.Actor)
		}
		s.deliver(ctx, ev, plan)
		if suppressed {
			return
		}
		cmdPlan, handled, err := s.dispatcher.Dispatch(ctx, ev)
		if err != nil {
			s.logger.Error("command dispatch failed", "err", err, "actor", ev.Actor)
		}
		if handled {
			s.deliver(ctx, ev, cmdPlan)
		}
	case event.KindProfileUpdate:
		plan, err := s.engine.ProcessProfileUpdate(ctx, ev)
		if err != nil {
			s.logger.Error("event processing failed", "err", err, "actor", ev.Actor)
		}
		s.deliver(ctx, ev, plan)
	default:
		s.logger.Warn("ignoring unknown event kind", "kind", ev.Kind)
	}
}

// deliver publishes a plan to the sink. Failures are logged and swallowed:
// delivery is never retried and never blocks later decisions.
func (s *Server) deliver(ctx context.Context, ev *event.Event, plan *moderator.ActionPlan) {
	if plan == nil || plan.Empty() {
		return
	}
	if len(plan.Notices) > 0 {
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
	}
	if err := s.sink.Deliver(ctx, ev, plan); err != nil {
		s.logger.Warn("plan delivery failed", "err", err, "actor", ev.Actor)
	}
}

var cursorKey = "groupwarden/cursor"

func (s *Server) ReadLastCursor(ctx context.Context) (string, error) {
	// if redis isn't configured, just skip
	if s.rdb == nil {
		return "", nil
	}

	val, err := s.rdb.Get(ctx, cursorKey).Result()
	if err == redis.Nil {
		s.logger.Info("no pre-existing cursor in redis")
		return "", nil
	} else if err != nil {
		return "", err
	}
	s.logger.Info("found prior event stream cursor in redis", "id", val)
	return val, nil
}

func (s *Server) PersistCursor(ctx context.Context) error {
	// if redis isn't configured, just skip
	if s.rdb == nil {
		return nil
	}
	last := s.getLastID()
	if last == "" {
		return nil
	}
	return s.rdb.Set(ctx, cursorKey, last, 14*24*time.Hour).Err()
}

// this method runs in a loop, persisting the current cursor state every 5 seconds
func (s *Server) RunPersistCursor(ctx context.Context) error {

	// if redis isn't configured, just skip
	if s.rdb == nil {
		return nil
	}
	ticker := time.NewTicker(5 * time.Second)
	for {
		select {
		case <-ctx.Done():
			if last := s.getLastID(); last != "" {
				s.logger.Info("persisting final cursor value", "id", last)
				err := s.PersistCursor(ctx)
				if err != nil {
					s.logger.Error("failed to persist cursor", "err", err, "id", last)
				}
			}
			return nil
		case <-ticker.C:
			if last := s.getLastID(); last != "" {
				err := s.PersistCursor(ctx)
				if err != nil {
					s.logger.Error("failed to persist cursor", "err", err, "id", last)
				}
			}
		}
	}
}
