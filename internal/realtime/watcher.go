package realtime

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/cache"
)

// watchTarget binds a collection to the public cache entry that its
// writes invalidate.
type watchTarget struct {
	Name     string
	Col      *mongo.Collection
	CacheKey string
}

type Watcher struct {
	targets []watchTarget
	hub     *Hub
	cache   cache.Cache
	log     *slog.Logger
}

func NewWatcher(hub *Hub, c cache.Cache, log *slog.Logger) *Watcher {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Watcher{
		hub:   hub,
		cache: c,
		log:   log,
	}
}

// Watch registers a collection. Calls must happen before Start.
func (w *Watcher) Watch(name string, col *mongo.Collection, cacheKey string) {
	w.targets = append(w.targets, watchTarget{Name: name, Col: col, CacheKey: cacheKey})
}

// Start opens one change stream per registered collection and keeps it
// alive until ctx is cancelled. Standalone Mongo deployments have no
// change streams; those streams fail once and the watcher degrades to
// a log warning instead of crashing the server.
func (w *Watcher) Start(ctx context.Context) {
	for _, target := range w.targets {
		go w.run(ctx, target)
	}
}

// maxOpenFailures bounds how often a stream that never opened is
// retried. Standalone deployments reject Watch outright, so after this
// many consecutive open failures the collection is left unwatched.
const maxOpenFailures = 5

func (w *Watcher) run(ctx context.Context, target watchTarget) {
	backoff := time.Second
	openFailures := 0
	for {
		opened, err := w.stream(ctx, target)
		if ctx.Err() != nil {
			return
		}
		if opened {
			openFailures = 0
			backoff = time.Second
		} else {
			openFailures++
			if openFailures >= maxOpenFailures {
				w.log.Warn("realtime watcher: change streams unavailable, giving up",
					slog.String("collection", target.Name))
				return
			}
		}
		if err != nil {
			w.log.Warn("realtime watcher: stream closed",
				slog.String("collection", target.Name),
				slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (w *Watcher) stream(ctx context.Context, target watchTarget) (bool, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace", "delete"}},
		}}},
	}

	cs, err := target.Col.Watch(ctx, pipeline)
	if err != nil {
		return false, err
	}
	defer cs.Close(context.Background())

	w.log.Info("realtime watcher: following", slog.String("collection", target.Name))

	for cs.Next(ctx) {
		var change struct {
			OperationType string `bson:"operationType"`
		}
		if err := cs.Decode(&change); err != nil {
			w.log.Warn("realtime watcher: decode error", slog.String("error", err.Error()))
			continue
		}

		op := change.OperationType
		if op == "replace" {
			op = OpUpdate
		}

		if target.CacheKey != "" {
			if err := w.cache.Delete(ctx, target.CacheKey); err != nil {
				w.log.Warn("realtime watcher: cache invalidation failed",
					slog.String("key", target.CacheKey),
					slog.String("error", err.Error()))
			}
		}

		w.hub.Publish(Event{Collection: target.Name, Op: op})
	}
	return true, cs.Err()
}
