package enroll

import (
	"context"
	"sync"

	"github.com/bhabibullo/Education-Bot/core/logger"
	"github.com/bhabibullo/Education-Bot/core/telegram/callbacks"
	tghelpers "github.com/bhabibullo/Education-Bot/core/telegram/helpers"
	"github.com/bhabibullo/Education-Bot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

// Flow binds the pure engine to the Telegram transport: it translates inbound
// updates into events and interprets the resulting effects.
type Flow struct {
	store  *Store
	engine *Engine

	mu       sync.RWMutex
	notifier Notifier
	archive  *Archive
}

// NewFlow wires a session store and engine together.
func NewFlow(store *Store, engine *Engine) *Flow {
	return &Flow{store: store, engine: engine}
}

// SetNotifier installs the channel notifier. Called once the bot exists.
func (f *Flow) SetNotifier(n Notifier) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifier = n
}

// SetArchive installs the optional submissions archive.
func (f *Flow) SetArchive(a *Archive) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archive = a
}

func (f *Flow) currentNotifier() Notifier {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.notifier
}

func (f *Flow) currentArchive() *Archive {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.archive
}

// InProgress reports whether userID has an active conversation.
func (f *Flow) InProgress(userID int64) bool {
	return f.store.Has(userID)
}

// HandleStart processes the /start command.
func (f *Flow) HandleStart(c tele.Context) error {
	return f.dispatch(c, Event{Kind: EventCommand, Key: "start"})
}

// HandleText feeds a plain text message into the active conversation.
func (f *Flow) HandleText(c tele.Context) error {
	return f.dispatch(c, Event{Kind: EventText, Payload: c.Text()})
}

// CallbackKeys lists every callback key the flow's keyboards emit.
func CallbackKeys() []string {
	return []string{
		cbLanguage, cbCourse, cbSubcourse, cbDay, cbTime,
		cbConfirm, cbCancel, cbModify,
		cbRestart, cbAbout, cbBranches, cbTeachers,
	}
}

// CallbackHandler builds the handler for one callback key.
func (f *Flow) CallbackHandler(key string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return f.dispatch(c, Event{
			Kind:    EventButton,
			Key:     key,
			Payload: callbacks.CallbackPayload(c),
		})
	}
}

func (f *Flow) dispatch(c tele.Context, ev Event) error {
	userID := c.Sender().ID
	s := f.store.Get(userID)
	ns, effects := f.engine.Advance(s, ev)

	// Only events the engine reacted to may open or mutate a session.
	if len(effects) > 0 || ns != s {
		f.store.Set(userID, ns)
	}

	ctx := tghelpers.BuildContext(c)
	logger.LogEvent(ctx, logger.SVCEnroll, slog.LevelDebug, "event handled",
		slog.String("stage", ns.Stage.String()),
		slog.String("lang", string(ns.Lang())),
		slog.Int("effects", len(effects)),
	)

	return f.apply(ctx, c, userID, effects)
}

// apply interprets effects in order. A failed notification with a FailText
// replaces the remaining prompts with the generic error message; archive and
// clear effects still run.
func (f *Flow) apply(ctx context.Context, c tele.Context, userID int64, effects []Effect) error {
	var firstErr error
	skipPrompts := false

	for _, eff := range effects {
		switch ef := eff.(type) {
		case PromptEffect:
			if skipPrompts {
				continue
			}
			if err := tghelpers.SendKB(c, ef.Text, markupFor(ef.Buttons)); err != nil && firstErr == nil {
				firstErr = err
			}
		case AckEffect:
			_ = c.Respond(&tele.CallbackResponse{Text: ef.Text})
		case NotifyEffect:
			if err := f.notify(ctx, ef); err != nil {
				logger.LogEvent(ctx, logger.SVCNotify, slog.LevelError, "summary dispatch failed",
					slog.Int64("dest", ef.Destination),
					slog.String("err", err.Error()),
				)
				if ef.FailText != "" {
					skipPrompts = true
					if serr := tghelpers.SendText(c, ef.FailText); serr != nil && firstErr == nil {
						firstErr = serr
					}
				}
			}
		case RecordEffect:
			f.record(ctx, userID, ef)
		case ClearEffect:
			f.store.Clear(userID)
		}
	}
	return firstErr
}

func (f *Flow) notify(ctx context.Context, ef NotifyEffect) error {
	n := f.currentNotifier()
	if n == nil {
		return errNotifierUnset
	}
	return n.Notify(ctx, ef.Destination, ef.Text)
}

// record archives a finished outcome. Archive failures are logged and never
// interrupt the conversation.
func (f *Flow) record(ctx context.Context, userID int64, ef RecordEffect) {
	a := f.currentArchive()
	if a == nil {
		return
	}
	id, err := a.Record(ctx, userID, ef.Outcome, ef.Snapshot)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCArchive, slog.LevelError, "submission archive failed",
			slog.String("outcome", ef.Outcome),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.LogEvent(ctx, logger.SVCArchive, slog.LevelInfo, "submission archived",
		slog.String("submission_id", id),
		slog.String("outcome", ef.Outcome),
		slog.String("course", ef.Snapshot.Course),
	)
}

func markupFor(rows [][]Button) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	kbRows := make([][]keyboard.InlineBtn, len(rows))
	for i, row := range rows {
		btns := make([]keyboard.InlineBtn, len(row))
		for j, b := range row {
			btns[j] = keyboard.InlineBtn{Text: b.Label, Unique: b.Unique, Data: b.Data}
		}
		kbRows[i] = btns
	}
	return keyboard.InlineButtonsRows(kbRows...)
}
