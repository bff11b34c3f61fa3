// Package chatbot composes the extractors, classifier, record lookups,
// session context and formatters into one request/response turn.
package chatbot

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"AirportChat/internal/archive"
	"AirportChat/internal/cache"
	"AirportChat/internal/config"
	"AirportChat/internal/extract"
	"AirportChat/internal/format"
	"AirportChat/internal/intent"
	"AirportChat/internal/qa"
	"AirportChat/internal/session"
	"AirportChat/internal/store"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Lookup is the record-store capability the orchestrator needs. It is
// injected at construction so tests can substitute a double for the SQLite
// store.
type Lookup interface {
	AircraftByModel(ctx context.Context, term string) (*store.AircraftRecord, error)
	FlightByNumber(ctx context.Context, number string) (*store.FlightRecord, error)
	AircraftModels(ctx context.Context, limit int) ([]string, error)
}

// TurnLog records processed exchanges for later inspection.
type TurnLog interface {
	SaveTurn(ctx context.Context, sessionID, message, reply string) error
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]store.Turn, error)
}

// Bot is the dialogue orchestrator.
type Bot struct {
	config   config.Config
	lookup   Lookup
	contexts *session.ContextStore
	cache    sync.Map
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter

	// Optional collaborators.
	turns   TurnLog
	qa      *qa.Responder
	archive *archive.Reader
}

// New creates a Bot. The lookup and context store are required; optional
// collaborators are attached separately.
func New(cfg config.Config, lookup Lookup, contexts *session.ContextStore, logger *slog.Logger, tracer trace.Tracer, meter metric.Meter) *Bot {
	return &Bot{
		config:   cfg,
		lookup:   lookup,
		contexts: contexts,
		logger:   logger,
		tracer:   tracer,
		meter:    meter,
	}
}

// AttachTurnLog enables transcript logging.
func (b *Bot) AttachTurnLog(log TurnLog) { b.turns = log }

// AttachQA enables the legacy pattern-table responder on the fallback path.
func (b *Bot) AttachQA(r *qa.Responder) { b.qa = r }

// AttachArchive enables the SQL-dump fallback for flights missing from the
// live schedule.
func (b *Bot) AttachArchive(r *archive.Reader) { b.archive = r }

// ProcessMessage handles one turn: extract entities, classify the intent,
// dispatch, update session context on a successful lookup, and format the
// reply. Store failures are logged and degraded to lookup misses; every
// path returns reply text. Cache hits behave like full turns: they restore
// the entity the original turn resolved and land in the transcript.
func (b *Bot) ProcessMessage(ctx context.Context, message, sessionID string) string {
	ctx, span := b.tracer.Start(ctx, "process_message")
	defer span.End()

	message = strings.TrimSpace(message)
	if message == "" {
		return format.Prompt()
	}
	if sessionID == "" {
		sessionID = "default"
	}

	flightNum, hasFlight := extract.FlightNumber(message)
	model, hasModel := extract.AircraftModel(message)
	_, hasContext := b.contexts.Resolve(sessionID)

	turnIntent := intent.Classify(message, hasModel, hasFlight, hasContext)
	b.recordTurn(ctx, turnIntent)
	b.logger.Info("turn classified",
		"session_id", sessionID,
		"intent", turnIntent.String(),
		"flight_number", flightNum,
		"aircraft_model", model,
	)

	cacheKey := cache.Key(sessionID, message)
	if cached, ok := b.checkCache(cacheKey); ok {
		// The memoized entity becomes the current context again, so a
		// later follow-up refers to what the user just asked about.
		if cached.Entity != nil {
			b.contexts.Update(sessionID, *cached.Entity)
		}
		b.saveTurn(sessionID, message, cached.Reply)
		return cached.Reply
	}

	var reply string
	switch turnIntent {
	case intent.Aircraft:
		var resolved *session.ResolvedEntity
		var cacheable bool
		reply, resolved, cacheable = b.handleAircraft(ctx, sessionID, message, model, hasModel)
		if cacheable {
			b.storeCache(cacheKey, reply, resolved)
		}
	case intent.Flight:
		var resolved *session.ResolvedEntity
		var cacheable bool
		reply, resolved, cacheable = b.handleFlight(ctx, sessionID, message, flightNum)
		if cacheable {
			b.storeCache(cacheKey, reply, resolved)
		}
	case intent.FollowUp:
		// Follow-up and fallback replies depend on mutable per-session
		// context, so they are never cached.
		reply = b.handleFollowUp(sessionID)
	default:
		reply = b.handleFallback(ctx, message)
	}

	b.saveTurn(sessionID, message, reply)
	return reply
}

// handleAircraft reports the resolved entity, if any, and whether the reply
// may be cached. A store outage is not cacheable: the next attempt should
// reach the store again rather than replay the degraded miss for the TTL.
func (b *Bot) handleAircraft(ctx context.Context, sessionID, message, model string, hasModel bool) (string, *session.ResolvedEntity, bool) {
	// Keyword-only aircraft questions carry no extracted model; the whole
	// message becomes the search term and the tiered match does the rest.
	term := model
	if !hasModel {
		term = strings.TrimSpace(message)
	}

	start := time.Now()
	rec, err := b.lookup.AircraftByModel(ctx, term)
	b.recordQuery(ctx, "aircraft", start)
	if err != nil {
		b.logger.Error("aircraft lookup unavailable", "term", term, "error", err)
		return b.aircraftMiss(ctx, term), nil, false
	}

	if rec != nil {
		entity := &session.ResolvedEntity{
			Kind:     session.KindAircraft,
			Token:    term,
			Aircraft: rec,
		}
		b.contexts.Update(sessionID, *entity)
		return format.AircraftInfo(rec), entity, true
	}

	return b.aircraftMiss(ctx, term), nil, true
}

func (b *Bot) aircraftMiss(ctx context.Context, term string) string {
	models, err := b.lookup.AircraftModels(ctx, 20)
	if err != nil {
		b.logger.Error("failed to list aircraft models", "error", err)
		models = nil
	}
	return format.AircraftNotFound(term, models)
}

func (b *Bot) handleFlight(ctx context.Context, sessionID, message, number string) (string, *session.ResolvedEntity, bool) {
	start := time.Now()
	rec, err := b.lookup.FlightByNumber(ctx, number)
	b.recordQuery(ctx, "flight", start)
	if err != nil {
		b.logger.Error("flight lookup unavailable", "flight_number", number, "error", err)
		return b.flightMiss(message, number), nil, false
	}

	if rec != nil {
		entity := &session.ResolvedEntity{
			Kind:   session.KindFlight,
			Token:  number,
			Flight: rec,
		}
		b.contexts.Update(sessionID, *entity)
		return format.FlightInfo(rec), entity, true
	}

	return b.flightMiss(message, number), nil, true
}

func (b *Bot) flightMiss(message, number string) string {
	if b.archive != nil {
		token, _ := extract.FlightToken(message)
		date, _ := extract.Date(message)
		if dep, ok := b.archive.FindDeparture(token, date); ok {
			b.logger.Info("flight resolved from archive", "flight_number", number, "departure", dep)
			return format.ArchivedFlight(number, archive.Describe(dep))
		}
	}
	return format.FlightNotFound(number)
}

func (b *Bot) handleFollowUp(sessionID string) string {
	entity, ok := b.contexts.Resolve(sessionID)
	if !ok {
		// The classifier only picks FollowUp with context present, but the
		// entry may have been evicted since.
		return format.Fallback()
	}
	switch entity.Kind {
	case session.KindFlight:
		return format.FlightInfo(entity.Flight)
	case session.KindAircraft:
		return format.AircraftInfo(entity.Aircraft)
	}
	return format.Fallback()
}

func (b *Bot) handleFallback(ctx context.Context, message string) string {
	if b.qa != nil {
		if reply, ok := b.qa.Reply(ctx, message); ok {
			return reply
		}
	}
	return format.Fallback()
}

// saveTurn appends the exchange to the transcript without blocking the
// reply.
func (b *Bot) saveTurn(sessionID, message, reply string) {
	if b.turns == nil {
		return
	}
	go func() {
		if err := b.turns.SaveTurn(context.Background(), sessionID, message, reply); err != nil {
			b.logger.Error("failed to save turn", "error", err)
		}
	}()
}

// checkCache returns the memoized turn for this session+message if it has
// not expired.
func (b *Bot) checkCache(key string) (cache.CachedReply, bool) {
	val, ok := b.cache.Load(key)
	if !ok {
		return cache.CachedReply{}, false
	}
	cached := val.(cache.CachedReply)
	if cached.Expired(b.config.CacheTTL) {
		b.cache.Delete(key)
		return cache.CachedReply{}, false
	}
	b.logger.Debug("reply cache hit", "key", key[:16])
	return cached, true
}

func (b *Bot) storeCache(key, reply string, entity *session.ResolvedEntity) {
	b.cache.Store(key, cache.CachedReply{
		Reply:     reply,
		Entity:    entity,
		Timestamp: time.Now(),
	})
}

func (b *Bot) recordTurn(ctx context.Context, turnIntent intent.Intent) {
	counter, err := b.meter.Int64Counter(
		"chat.turns",
		metric.WithDescription("Processed chat turns by intent"),
	)
	if err != nil {
		b.logger.Warn("failed to create counter", "error", err)
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("intent", turnIntent.String())))
}

func (b *Bot) recordQuery(ctx context.Context, kind string, start time.Time) {
	histogram, err := b.meter.Float64Histogram(
		"store.query.duration",
		metric.WithDescription("Record store query duration in milliseconds"),
	)
	if err == nil {
		histogram.Record(ctx, float64(time.Since(start).Milliseconds()),
			metric.WithAttributes(attribute.String("kind", kind)))
	}
}

// Run starts an interactive chat loop on stdin, one session per process.
func (b *Bot) Run() error {
	sessionID := fmt.Sprintf("cli_%d", time.Now().Unix())

	fmt.Println("=== Airport Chat ===")
	fmt.Printf("Session: %s\n", sessionID)
	fmt.Println("Type /help for commands, /quit to exit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if b.handleCommand(ctx, input, sessionID) {
				break
			}
			continue
		}

		fmt.Printf("Bot: %s\n\n", b.ProcessMessage(ctx, input, sessionID))
	}

	fmt.Println("Goodbye!")
	return scanner.Err()
}

// handleCommand handles special commands; it returns true when the loop
// should exit.
func (b *Bot) handleCommand(ctx context.Context, cmd, sessionID string) bool {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "/quit", "/exit":
		return true

	case "/history":
		if b.turns == nil {
			fmt.Println("Transcript logging is not enabled.")
			return false
		}
		turns, err := b.turns.RecentTurns(ctx, sessionID, 10)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			b.logger.Error("failed to load history", "error", err)
			return false
		}
		for i := len(turns) - 1; i >= 0; i-- {
			fmt.Printf("You: %s\nBot: %s\n\n", turns[i].Message, turns[i].Reply)
		}
		return false

	case "/help":
		fmt.Println("Available commands:")
		fmt.Println("  /quit, /exit  - Exit the chat")
		fmt.Println("  /history      - Show recent turns in this session")
		fmt.Println("  /help         - Show this help message")
		return false

	default:
		return false
	}
}
