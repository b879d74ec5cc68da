package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	sinkQueueSize = 4096
	sinkBatchSize = 50
	sinkDrainTick = 2 * time.Second
)

// Document is one log record as stored in MongoDB.
type Document struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

type insertFunc func(ctx context.Context, docs []any) error

// sinkCore is shared by every handler derived through WithAttrs/WithGroup.
type sinkCore struct {
	insert     insertFunc
	disconnect func(context.Context) error
	queue      chan Document
	done       chan struct{}
	stopped    chan struct{}
	once       sync.Once
}

// MongoSink is an slog.Handler that batches records into a collection from
// a background goroutine. Handle never blocks: records are dropped when the
// queue is full.
type MongoSink struct {
	core   *sinkCore
	level  slog.Leveler
	attrs  []slog.Attr // keys already carry their group prefix
	prefix string
}

// NewMongoSink connects to uri and writes records at or above level to
// db.collection.
func NewMongoSink(ctx context.Context, uri, db, collection string, level slog.Leveler) (*MongoSink, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).
		SetConnectTimeout(5*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(4))
	if err != nil {
		return nil, fmt.Errorf("logger/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger/mongo: ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "time", Value: -1}}})

	insert := func(ctx context.Context, docs []any) error {
		_, err := col.InsertMany(ctx, docs)
		return err
	}
	return newSink(insert, client.Disconnect, level), nil
}

func newSink(insert insertFunc, disconnect func(context.Context) error, level slog.Leveler) *MongoSink {
	core := &sinkCore{
		insert:     insert,
		disconnect: disconnect,
		queue:      make(chan Document, sinkQueueSize),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	go core.drain()
	return &MongoSink{core: core, level: level}
}

func (s *MongoSink) Enabled(_ context.Context, l slog.Level) bool {
	return l >= s.level.Level()
}

func (s *MongoSink) Handle(_ context.Context, r slog.Record) error {
	doc := Document{Time: r.Time, Level: r.Level.String(), Msg: r.Message, Attrs: bson.M{}}
	add := func(key string, v slog.Value) {
		if key == "request_id" {
			doc.RequestID = v.String()
			return
		}
		doc.Attrs[key] = v.Resolve().Any()
	}
	for _, a := range s.attrs {
		add(a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(s.prefix+a.Key, a.Value)
		return true
	})
	if len(doc.Attrs) == 0 {
		doc.Attrs = nil
	}

	select {
	case s.core.queue <- doc:
	default:
	}
	return nil
}

func (s *MongoSink) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *s
	next.attrs = make([]slog.Attr, 0, len(s.attrs)+len(attrs))
	next.attrs = append(next.attrs, s.attrs...)
	for _, a := range attrs {
		a.Key = s.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (s *MongoSink) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	next := *s
	next.prefix = s.prefix + name + "."
	return &next
}

// Close flushes queued records and disconnects. Later calls are no-ops.
func (s *MongoSink) Close(ctx context.Context) error {
	var err error
	s.core.once.Do(func() {
		close(s.core.done)
		select {
		case <-s.core.stopped:
		case <-ctx.Done():
		}
		if s.core.disconnect != nil {
			err = s.core.disconnect(ctx)
		}
	})
	return err
}

func (c *sinkCore) drain() {
	defer close(c.stopped)
	ticker := time.NewTicker(sinkDrainTick)
	defer ticker.Stop()

	batch := make([]any, 0, sinkBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.insert(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-c.queue:
			batch = append(batch, doc)
			if len(batch) >= sinkBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-c.done:
			for {
				select {
				case doc := <-c.queue:
					batch = append(batch, doc)
				default:
					flush()
					return
				}
			}
		}
	}
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// Tee makes the base logger also write to h.
func Tee(h slog.Handler) {
	L = slog.New(fanout{L.Handler(), h})
	slog.SetDefault(L)
}

// ParseLevel maps debug/info/warn/error onto slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
