package enroll

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"
)

// stubTeleContext implements just enough of tele.Context for the flow.
// Unimplemented methods panic through the embedded nil interface.
type stubTeleContext struct {
	tele.Context

	userID int64
	data   map[string]any
	sent   []string
	toasts []string
	cb     *tele.Callback
}

func newStubContext(userID int64) *stubTeleContext {
	return &stubTeleContext{userID: userID, data: map[string]any{}}
}

func (s *stubTeleContext) Sender() *tele.User  { return &tele.User{ID: s.userID} }
func (s *stubTeleContext) Chat() *tele.Chat    { return &tele.Chat{ID: s.userID} }
func (s *stubTeleContext) Update() tele.Update { return tele.Update{ID: 1} }
func (s *stubTeleContext) Callback() *tele.Callback {
	return s.cb
}

func (s *stubTeleContext) Get(key string) any    { return s.data[key] }
func (s *stubTeleContext) Set(key string, v any) { s.data[key] = v }

func (s *stubTeleContext) Send(what interface{}, _ ...interface{}) error {
	if text, ok := what.(string); ok {
		s.sent = append(s.sent, text)
	}
	return nil
}

func (s *stubTeleContext) Respond(resp ...*tele.CallbackResponse) error {
	for _, r := range resp {
		s.toasts = append(s.toasts, r.Text)
	}
	return nil
}

type stubNotifier struct {
	err   error
	dests []int64
	texts []string
}

func (n *stubNotifier) Notify(_ context.Context, dest int64, text string) error {
	if n.err != nil {
		return n.err
	}
	n.dests = append(n.dests, dest)
	n.texts = append(n.texts, text)
	return nil
}

func confirmReadyFlow(t *testing.T, n Notifier) (*Flow, *Store) {
	t.Helper()
	store := NewStore()
	flow := NewFlow(store, testEngine())
	flow.SetNotifier(n)

	s := sessionAtConfirm(t, testEngine())
	store.Set(7, s)
	return flow, store
}

func TestFlowConfirmDeliversAndClears(t *testing.T) {
	notifier := &stubNotifier{}
	flow, store := confirmReadyFlow(t, notifier)
	c := newStubContext(7)

	if err := flow.CallbackHandler("confirm")(c); err != nil {
		t.Fatalf("confirm handler: %v", err)
	}

	if len(notifier.dests) != 1 || notifier.dests[0] != -1002336411887 {
		t.Fatalf("notified %v, want IT channel", notifier.dests)
	}
	if len(c.sent) != 1 || c.sent[0] != Text(TextConfirmed, LangRU) {
		t.Fatalf("sent = %v", c.sent)
	}
	if store.Has(7) {
		t.Fatalf("session must be cleared after confirm")
	}
}

func TestFlowConfirmFailureShowsGenericError(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("channel unreachable")}
	flow, store := confirmReadyFlow(t, notifier)
	c := newStubContext(7)

	if err := flow.CallbackHandler("confirm")(c); err != nil {
		t.Fatalf("confirm handler: %v", err)
	}

	if len(c.sent) != 1 || c.sent[0] != DispatchErrorText {
		t.Fatalf("sent = %v, want only the generic error", c.sent)
	}
	if store.Has(7) {
		t.Fatalf("session must be cleared even when dispatch fails")
	}
}

func TestFlowCancelFailureKeepsAck(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("channel unreachable")}
	flow, store := confirmReadyFlow(t, notifier)
	c := newStubContext(7)

	if err := flow.CallbackHandler("cancel")(c); err != nil {
		t.Fatalf("cancel handler: %v", err)
	}

	if len(c.sent) != 1 || c.sent[0] != Text(TextCancelled, LangRU) {
		t.Fatalf("sent = %v, want the cancel ack", c.sent)
	}
	if store.Has(7) {
		t.Fatalf("session must be cleared after cancel")
	}
}

func TestFlowModifyFailureKeepsRestartPrompt(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("channel unreachable")}
	flow, store := confirmReadyFlow(t, notifier)
	c := newStubContext(7)

	if err := flow.CallbackHandler("modify")(c); err != nil {
		t.Fatalf("modify handler: %v", err)
	}

	if len(c.sent) != 1 || c.sent[0] != Text(TextChooseLanguage, LangRU) {
		t.Fatalf("sent = %v, want the language prompt", c.sent)
	}
	if !store.Has(7) {
		t.Fatalf("modify must keep the session")
	}
	if got := store.Get(7); got.Stage != StageLanguage || got.Phone != "+998901234567" {
		t.Fatalf("session = %+v", got)
	}
}

func TestFlowArchiveFailureDoesNotBlockConfirm(t *testing.T) {
	notifier := &stubNotifier{}
	flow, store := confirmReadyFlow(t, notifier)

	// lib/pq connects lazily, so the broken target only fails when the
	// flow records the outcome.
	db, err := sqlx.Open("postgres", "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	flow.SetArchive(NewArchive(db))

	c := newStubContext(7)
	if err := flow.CallbackHandler("confirm")(c); err != nil {
		t.Fatalf("confirm handler: %v", err)
	}

	if len(notifier.dests) != 1 || notifier.dests[0] != -1002336411887 {
		t.Fatalf("notified %v, want IT channel", notifier.dests)
	}
	if len(c.sent) != 1 || c.sent[0] != Text(TextConfirmed, LangRU) {
		t.Fatalf("sent = %v, want the confirmation ack", c.sent)
	}
	if store.Has(7) {
		t.Fatalf("session must be cleared despite the archive failure")
	}
}

func TestFlowSubcourseSendsToast(t *testing.T) {
	store := NewStore()
	flow := NewFlow(store, testEngine())
	flow.SetNotifier(&stubNotifier{})

	s, _ := advance(testEngine(), Session{},
		startEvent(),
		btnEvent("language", "ru"),
		textEvent("Ali"),
		btnEvent("course", "IT"),
	)
	store.Set(7, s)

	c := newStubContext(7)
	c.cb = &tele.Callback{Data: "\fsubcourse|Веб-разработка"}

	if err := flow.CallbackHandler("subcourse")(c); err != nil {
		t.Fatalf("subcourse handler: %v", err)
	}

	if len(c.toasts) != 1 || c.toasts[0] != Text(TextSubcourseChosen, LangRU) {
		t.Fatalf("toasts = %v", c.toasts)
	}
	if got := store.Get(7); got.Subcourse != "Веб-разработка" || got.Stage != StageDay {
		t.Fatalf("session = %+v", got)
	}
	if len(c.sent) != 1 || !strings.Contains(c.sent[0], Text(TextAskDay, LangRU)) {
		t.Fatalf("day prompt missing: %v", c.sent)
	}
}

func TestFlowStartOpensSession(t *testing.T) {
	store := NewStore()
	flow := NewFlow(store, testEngine())

	c := newStubContext(7)
	if err := flow.HandleStart(c); err != nil {
		t.Fatalf("start handler: %v", err)
	}

	if !flow.InProgress(7) {
		t.Fatalf("start must open a session")
	}
	if len(c.sent) != 1 || c.sent[0] != Text(TextChooseLanguage, LangRU) {
		t.Fatalf("sent = %v", c.sent)
	}
}
