package enroll

import (
	"strings"
	"testing"
)

func testEngine() *Engine {
	return NewEngine(DefaultCatalog(), DefaultAboutInfo())
}

func btnEvent(key, payload string) Event {
	return Event{Kind: EventButton, Key: key, Payload: payload}
}

func textEvent(s string) Event {
	return Event{Kind: EventText, Payload: s}
}

func startEvent() Event {
	return Event{Kind: EventCommand, Key: "start"}
}

// advance runs a sequence of events, returning the final session and the
// effects of the last event.
func advance(e *Engine, s Session, evs ...Event) (Session, []Effect) {
	var effects []Effect
	for _, ev := range evs {
		s, effects = e.Advance(s, ev)
	}
	return s, effects
}

// sessionAtConfirm drives a fresh conversation to the confirmation stage.
func sessionAtConfirm(t *testing.T, e *Engine) Session {
	t.Helper()
	s, _ := advance(e, Session{},
		startEvent(),
		btnEvent("language", "ru"),
		textEvent("Ali"),
		btnEvent("course", "IT"),
		btnEvent("subcourse", "Веб-разработка"),
		btnEvent("day", "Monday"),
		btnEvent("time", "9:00-11:00"),
		textEvent("901234567"),
	)
	if s.Stage != StageConfirm {
		t.Fatalf("stage = %v, want confirm", s.Stage)
	}
	return s
}

func firstPrompt(t *testing.T, effects []Effect) PromptEffect {
	t.Helper()
	for _, eff := range effects {
		if p, ok := eff.(PromptEffect); ok {
			return p
		}
	}
	t.Fatalf("no prompt effect in %v", effects)
	return PromptEffect{}
}

func findNotify(effects []Effect) (NotifyEffect, bool) {
	for _, eff := range effects {
		if n, ok := eff.(NotifyEffect); ok {
			return n, true
		}
	}
	return NotifyEffect{}, false
}

func findRecord(effects []Effect) (RecordEffect, bool) {
	for _, eff := range effects {
		if r, ok := eff.(RecordEffect); ok {
			return r, true
		}
	}
	return RecordEffect{}, false
}

func hasClear(effects []Effect) bool {
	for _, eff := range effects {
		if _, ok := eff.(ClearEffect); ok {
			return true
		}
	}
	return false
}

func TestFullFlowStoresAnswers(t *testing.T) {
	s := sessionAtConfirm(t, testEngine())

	if s.Language != LangRU {
		t.Fatalf("language = %q", s.Language)
	}
	if s.Name != "Ali" || s.Course != "IT" || s.Subcourse != "Веб-разработка" {
		t.Fatalf("unexpected answers: %+v", s)
	}
	if s.Day != "Monday" || s.Time != "9:00-11:00" {
		t.Fatalf("unexpected schedule: %+v", s)
	}
	if s.Phone != "+998901234567" {
		t.Fatalf("phone = %q, want +998901234567", s.Phone)
	}
}

func TestConfirmNotifiesCourseChannel(t *testing.T) {
	e := testEngine()
	s := sessionAtConfirm(t, e)

	_, effects := e.Advance(s, btnEvent("confirm", ""))

	n, ok := findNotify(effects)
	if !ok {
		t.Fatalf("confirm produced no notify effect")
	}
	if n.Destination != -1002336411887 {
		t.Fatalf("destination = %d, want IT channel", n.Destination)
	}
	if !strings.HasPrefix(n.Text, "#Tasdiqlandi") {
		t.Fatalf("summary tag missing: %q", n.Text)
	}
	for _, field := range []string{"Ali", "IT", "Веб-разработка", "Monday", "9:00-11:00", "+998901234567"} {
		if !strings.Contains(n.Text, field) {
			t.Fatalf("summary lacks %q: %q", field, n.Text)
		}
	}
	if n.FailText == "" {
		t.Fatalf("confirm notify must carry a failure message")
	}
	if !hasClear(effects) {
		t.Fatalf("confirm must clear the session")
	}
	if r, ok := findRecord(effects); !ok || r.Outcome != OutcomeConfirmed {
		t.Fatalf("confirm must record a confirmed outcome, got %+v", effects)
	}
}

func TestInvalidPhoneKeepsStage(t *testing.T) {
	e := testEngine()
	s, _ := advance(e, Session{},
		startEvent(),
		btnEvent("language", "ru"),
		textEvent("Ali"),
		btnEvent("course", "IT"),
		btnEvent("subcourse", "Веб-разработка"),
		btnEvent("day", "Monday"),
		btnEvent("time", "9:00-11:00"),
	)

	before := s
	s, effects := e.Advance(s, textEvent("12345"))

	if s != before {
		t.Fatalf("session changed on rejected phone: %+v", s)
	}
	if s.Stage != StagePhone {
		t.Fatalf("stage = %v, want phone", s.Stage)
	}
	p := firstPrompt(t, effects)
	if p.Text != Text(TextPhoneInvalid, LangRU) {
		t.Fatalf("prompt = %q", p.Text)
	}
}

func TestUnknownCourseStays(t *testing.T) {
	e := testEngine()
	s, _ := advance(e, Session{},
		startEvent(),
		btnEvent("language", "ru"),
		textEvent("Ali"),
	)

	s, effects := e.Advance(s, btnEvent("course", "French"))

	if s.Stage != StageCourse {
		t.Fatalf("stage = %v, want course", s.Stage)
	}
	p := firstPrompt(t, effects)
	if p.Text != Text(TextCourseNotFound, LangRU) {
		t.Fatalf("prompt = %q", p.Text)
	}
}

func TestSubcoursePromptListsCatalogEntries(t *testing.T) {
	e := testEngine()
	s, effects := advance(e, Session{},
		startEvent(),
		btnEvent("language", "uz"),
		textEvent("Ali"),
		btnEvent("course", "IT"),
	)

	if s.Stage != StageSubcourse {
		t.Fatalf("stage = %v, want subcourse", s.Stage)
	}
	p := firstPrompt(t, effects)
	if len(p.Buttons) != 2 {
		t.Fatalf("subcourse rows = %d, want 2", len(p.Buttons))
	}
	if p.Buttons[0][0].Label != "Python dasturlash" {
		t.Fatalf("first subcourse = %q", p.Buttons[0][0].Label)
	}
}

func TestDayOutsideCatalogRejected(t *testing.T) {
	e := testEngine()
	s, _ := advance(e, Session{},
		startEvent(),
		btnEvent("language", "ru"),
		textEvent("Ali"),
		btnEvent("course", "IT"),
		btnEvent("subcourse", "Веб-разработка"),
	)

	before := s
	s, effects := e.Advance(s, btnEvent("day", "Someday"))

	if s != before {
		t.Fatalf("session changed on invalid day")
	}
	p := firstPrompt(t, effects)
	if p.Text != Text(TextChoiceInvalid, LangRU) {
		t.Fatalf("prompt = %q", p.Text)
	}
}

func TestRestartKeepsCollectedFields(t *testing.T) {
	e := testEngine()
	s := sessionAtConfirm(t, e)

	for i := 0; i < 3; i++ {
		var effects []Effect
		s, effects = e.Advance(s, btnEvent("restart", ""))
		if s.Stage != StageLanguage {
			t.Fatalf("stage after restart = %v", s.Stage)
		}
		p := firstPrompt(t, effects)
		if len(p.Buttons) != 1 || len(p.Buttons[0]) != 2 {
			t.Fatalf("restart must prompt the two-language keyboard, got %+v", p.Buttons)
		}
	}

	if s.Name != "Ali" || s.Course != "IT" || s.Phone != "+998901234567" {
		t.Fatalf("restart dropped collected fields: %+v", s)
	}
}

func TestCancelNotifiesAndClears(t *testing.T) {
	e := testEngine()
	s := sessionAtConfirm(t, e)

	_, effects := e.Advance(s, btnEvent("cancel", ""))

	p := firstPrompt(t, effects)
	if p.Text != Text(TextCancelled, LangRU) {
		t.Fatalf("cancel ack = %q", p.Text)
	}
	if len(p.Buttons) != 2 {
		t.Fatalf("cancel keyboard rows = %d, want restart/about", len(p.Buttons))
	}
	if p.Buttons[0][0].Unique != "restart" || p.Buttons[1][0].Unique != "about" {
		t.Fatalf("cancel keyboard = %+v", p.Buttons)
	}

	n, ok := findNotify(effects)
	if !ok {
		t.Fatalf("cancel produced no notify effect")
	}
	if !strings.HasPrefix(n.Text, "#Bekor_qilindi") {
		t.Fatalf("cancel tag missing: %q", n.Text)
	}
	if n.FailText != "" {
		t.Fatalf("cancel dispatch failures must not replace the ack")
	}
	if !hasClear(effects) {
		t.Fatalf("cancel must clear the session")
	}
}

func TestModifyNotifiesPreResetSnapshot(t *testing.T) {
	e := testEngine()
	s := sessionAtConfirm(t, e)

	ns, effects := e.Advance(s, btnEvent("modify", ""))

	if ns.Stage != StageLanguage {
		t.Fatalf("modify must return to the language stage, got %v", ns.Stage)
	}
	if hasClear(effects) {
		t.Fatalf("modify must keep the session")
	}

	n, ok := findNotify(effects)
	if !ok {
		t.Fatalf("modify produced no notify effect")
	}
	if !strings.HasPrefix(n.Text, "#O`zgartirmoqchi") {
		t.Fatalf("modify tag missing: %q", n.Text)
	}
	for _, field := range []string{"Ali", "IT", "+998901234567"} {
		if !strings.Contains(n.Text, field) {
			t.Fatalf("modify summary lacks pre-reset field %q: %q", field, n.Text)
		}
	}
	if r, ok := findRecord(effects); !ok || r.Outcome != OutcomeModified || r.Snapshot.Phone != "+998901234567" {
		t.Fatalf("modify must record the pre-reset snapshot")
	}
}

func TestConfirmWithoutDestinationClears(t *testing.T) {
	e := testEngine()
	s := sessionAtConfirm(t, e)
	s.Course = "French" // catalog key vanished after selection

	_, effects := e.Advance(s, btnEvent("confirm", ""))

	if _, ok := findNotify(effects); ok {
		t.Fatalf("no notify expected without a destination")
	}
	p := firstPrompt(t, effects)
	if p.Text != DispatchErrorText {
		t.Fatalf("prompt = %q, want generic dispatch error", p.Text)
	}
	if !hasClear(effects) {
		t.Fatalf("session must still be cleared")
	}
}

func TestAboutSubmenuLeavesStage(t *testing.T) {
	e := testEngine()
	s := sessionAtConfirm(t, e)

	ns, effects := e.Advance(s, btnEvent("about", ""))
	if ns != s {
		t.Fatalf("about must not touch the session")
	}
	p := firstPrompt(t, effects)
	if len(p.Buttons) != 2 {
		t.Fatalf("about submenu rows = %d", len(p.Buttons))
	}
	if p.Buttons[0][0].Unique != "branches" || p.Buttons[1][0].Unique != "teachers" {
		t.Fatalf("about submenu = %+v", p.Buttons)
	}

	_, effects = e.Advance(ns, btnEvent("branches", ""))
	if got := firstPrompt(t, effects).Text; !strings.Contains(got, "Samarqand") {
		t.Fatalf("branches text = %q", got)
	}
}

func TestLanguageSelectionLocalizesPrompts(t *testing.T) {
	e := testEngine()
	s, effects := advance(e, Session{}, startEvent(), btnEvent("language", "uz"))

	if s.Language != LangUZ || s.Stage != StageName {
		t.Fatalf("session = %+v", s)
	}
	if got := firstPrompt(t, effects).Text; got != "Ismingiz va familiyangizni kiriting:" {
		t.Fatalf("uz name prompt = %q", got)
	}
}

func TestMismatchedEventIsIgnored(t *testing.T) {
	e := testEngine()
	s, _ := advance(e, Session{}, startEvent())

	ns, effects := e.Advance(s, textEvent("hello"))
	if ns != s || len(effects) != 0 {
		t.Fatalf("text at language stage must be ignored, got %+v / %v", ns, effects)
	}
}
