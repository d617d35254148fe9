package enroll

import "fmt"

// EventKind discriminates inbound conversation events.
type EventKind int

const (
	// EventCommand is a slash command, Key holds the command name.
	EventCommand EventKind = iota
	// EventText is a plain text message, Payload holds the text.
	EventText
	// EventButton is an inline button press, Key holds the callback key and
	// Payload the button data.
	EventButton
)

// Event is one inbound user action fed into the engine.
type Event struct {
	Kind    EventKind
	Key     string
	Payload string
}

// Button describes one inline button of an outbound keyboard.
type Button struct {
	Label  string
	Unique string
	Data   string
}

// Effect is a declarative outbound action produced by Advance and interpreted
// by the transport layer.
type Effect interface{ effect() }

// PromptEffect sends a message to the user, optionally with a keyboard.
type PromptEffect struct {
	Text    string
	Buttons [][]Button
}

// AckEffect answers the pending callback with a short toast.
type AckEffect struct {
	Text string
}

// NotifyEffect delivers a summary to a notification destination. When
// delivery fails and FailText is set, the interpreter shows FailText to the
// user instead of the remaining prompts.
type NotifyEffect struct {
	Destination int64
	Text        string
	FailText    string
}

// RecordEffect archives a finished submission outcome.
type RecordEffect struct {
	Outcome  string
	Snapshot Session
}

// ClearEffect drops the session.
type ClearEffect struct{}

func (PromptEffect) effect() {}
func (AckEffect) effect()    {}
func (NotifyEffect) effect() {}
func (RecordEffect) effect() {}
func (ClearEffect) effect()  {}

// Archive outcome labels.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeCancelled = "cancelled"
	OutcomeModified  = "modified"
)

// Callback keys shared between the engine's keyboards and the transport's
// callback registrations.
const (
	cbLanguage  = "language"
	cbCourse    = "course"
	cbSubcourse = "subcourse"
	cbDay       = "day"
	cbTime      = "time"
	cbConfirm   = "confirm"
	cbCancel    = "cancel"
	cbModify    = "modify"
	cbRestart   = "restart"
	cbAbout     = "about"
	cbBranches  = "branches"
	cbTeachers  = "teachers"
)

// Engine is the conversation state machine. Advance is pure: it performs no
// I/O and touches no shared state, so it is trivially safe under concurrent
// per-user dispatch.
type Engine struct {
	catalog Catalog
	about   AboutInfo
}

// NewEngine builds an engine over immutable catalogs.
func NewEngine(catalog Catalog, about AboutInfo) *Engine {
	return &Engine{catalog: catalog, about: about}
}

// Advance applies one event to a session and returns the updated session plus
// the effects the transport should perform. Events that do not match the
// current stage produce no effects.
func (e *Engine) Advance(s Session, ev Event) (Session, []Effect) {
	// Jumps and static submenus work from any stage.
	switch {
	case ev.Kind == EventCommand && ev.Key == "start":
		return e.restart(s)
	case ev.Kind == EventButton && ev.Key == cbRestart:
		return e.restart(s)
	case ev.Kind == EventButton && ev.Key == cbAbout:
		return s, []Effect{PromptEffect{
			Text: Text(TextAboutTitle, s.Lang()),
			Buttons: [][]Button{
				{{Label: Text(BtnBranches, s.Lang()), Unique: cbBranches}},
				{{Label: Text(BtnTeachers, s.Lang()), Unique: cbTeachers}},
			},
		}}
	case ev.Kind == EventButton && ev.Key == cbBranches:
		return s, []Effect{PromptEffect{Text: e.about.Branches}}
	case ev.Kind == EventButton && ev.Key == cbTeachers:
		return s, []Effect{PromptEffect{Text: e.about.Teachers}}
	}

	switch s.Stage {
	case StageLanguage:
		return e.advanceLanguage(s, ev)
	case StageName:
		return e.advanceName(s, ev)
	case StageCourse:
		return e.advanceCourse(s, ev)
	case StageSubcourse:
		return e.advanceSubcourse(s, ev)
	case StageDay:
		return e.advanceDay(s, ev)
	case StageTime:
		return e.advanceTime(s, ev)
	case StagePhone:
		return e.advancePhone(s, ev)
	case StageConfirm:
		return e.advanceConfirm(s, ev)
	}
	return s, nil
}

// restart re-enters the language stage. Collected fields are kept; the flow
// re-collects them stage by stage.
func (e *Engine) restart(s Session) (Session, []Effect) {
	s.Stage = StageLanguage
	return s, []Effect{PromptEffect{
		Text: Text(TextChooseLanguage, s.Lang()),
		Buttons: [][]Button{{
			{Label: Text(BtnLangRU, s.Lang()), Unique: cbLanguage, Data: string(LangRU)},
			{Label: Text(BtnLangUZ, s.Lang()), Unique: cbLanguage, Data: string(LangUZ)},
		}},
	}}
}

func (e *Engine) advanceLanguage(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventButton || ev.Key != cbLanguage {
		return s, nil
	}
	if ev.Payload == string(LangUZ) {
		s.Language = LangUZ
	} else {
		s.Language = LangRU
	}
	s.Stage = StageName
	return s, []Effect{PromptEffect{Text: Text(TextAskName, s.Lang())}}
}

func (e *Engine) advanceName(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventText || ev.Payload == "" {
		return s, nil
	}
	s.Name = ev.Payload
	s.Stage = StageCourse
	return s, []Effect{PromptEffect{
		Text:    Text(TextAskCourse, s.Lang()),
		Buttons: oneButtonRows(cbCourse, e.catalog.CourseNames()),
	}}
}

func (e *Engine) advanceCourse(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventButton || ev.Key != cbCourse {
		return s, nil
	}
	s.Course = ev.Payload
	subs := e.catalog.Subcourses(s.Course, s.Lang())
	if len(subs) == 0 {
		return s, []Effect{PromptEffect{Text: Text(TextCourseNotFound, s.Lang())}}
	}
	s.Stage = StageSubcourse
	return s, []Effect{PromptEffect{
		Text:    Text(TextAskSubcourse, s.Lang()),
		Buttons: oneButtonRows(cbSubcourse, subs),
	}}
}

func (e *Engine) advanceSubcourse(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventButton || ev.Key != cbSubcourse {
		return s, nil
	}
	if !containsLabel(e.catalog.Subcourses(s.Course, s.Lang()), ev.Payload) {
		return s, []Effect{PromptEffect{Text: Text(TextChoiceInvalid, s.Lang())}}
	}
	s.Subcourse = ev.Payload
	s.Stage = StageDay
	return s, []Effect{
		AckEffect{Text: Text(TextSubcourseChosen, s.Lang())},
		PromptEffect{
			Text:    Text(TextAskDay, s.Lang()),
			Buttons: oneButtonRows(cbDay, e.catalog.Days),
		},
	}
}

func (e *Engine) advanceDay(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventButton || ev.Key != cbDay {
		return s, nil
	}
	if !e.catalog.HasDay(ev.Payload) {
		return s, []Effect{PromptEffect{Text: Text(TextChoiceInvalid, s.Lang())}}
	}
	s.Day = ev.Payload
	s.Stage = StageTime
	return s, []Effect{PromptEffect{
		Text:    Text(TextAskTime, s.Lang()),
		Buttons: oneButtonRows(cbTime, e.catalog.Times),
	}}
}

func (e *Engine) advanceTime(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventButton || ev.Key != cbTime {
		return s, nil
	}
	if !e.catalog.HasTime(ev.Payload) {
		return s, []Effect{PromptEffect{Text: Text(TextChoiceInvalid, s.Lang())}}
	}
	s.Time = ev.Payload
	s.Stage = StagePhone
	return s, []Effect{PromptEffect{Text: Text(TextAskPhone, s.Lang())}}
}

func (e *Engine) advancePhone(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventText {
		return s, nil
	}
	normalized, ok := ValidatePhone(ev.Payload)
	if !ok {
		return s, []Effect{PromptEffect{Text: Text(TextPhoneInvalid, s.Lang())}}
	}
	s.Phone = normalized
	s.Stage = StageConfirm
	return s, []Effect{PromptEffect{
		Text: confirmationText(s),
		Buttons: [][]Button{
			{{Label: Text(BtnConfirm, s.Lang()), Unique: cbConfirm}},
			{{Label: Text(BtnCancel, s.Lang()), Unique: cbCancel}},
			{{Label: Text(BtnModify, s.Lang()), Unique: cbModify}},
		},
	}}
}

func (e *Engine) advanceConfirm(s Session, ev Event) (Session, []Effect) {
	if ev.Kind != EventButton {
		return s, nil
	}
	dest, destOK := e.catalog.Destination(s.Course)

	switch ev.Key {
	case cbConfirm:
		if !destOK {
			// Course vanished from the catalog between selection and confirm.
			return s, []Effect{
				PromptEffect{Text: DispatchErrorText},
				ClearEffect{},
			}
		}
		return s, []Effect{
			NotifyEffect{Destination: dest, Text: SummaryText(TagConfirmed, s), FailText: DispatchErrorText},
			PromptEffect{Text: Text(TextConfirmed, s.Lang()), Buttons: restartButtons(s.Lang())},
			RecordEffect{Outcome: OutcomeConfirmed, Snapshot: s},
			ClearEffect{},
		}
	case cbCancel:
		effects := []Effect{
			PromptEffect{Text: Text(TextCancelled, s.Lang()), Buttons: restartButtons(s.Lang())},
		}
		if destOK {
			effects = append(effects, NotifyEffect{Destination: dest, Text: SummaryText(TagCancelled, s)})
		}
		effects = append(effects, RecordEffect{Outcome: OutcomeCancelled, Snapshot: s}, ClearEffect{})
		return s, effects
	case cbModify:
		snapshot := s
		ns, effects := e.restart(s)
		if destOK {
			effects = append(effects, NotifyEffect{Destination: dest, Text: SummaryText(TagModified, snapshot)})
		}
		effects = append(effects, RecordEffect{Outcome: OutcomeModified, Snapshot: snapshot})
		return ns, effects
	}
	return s, nil
}

func restartButtons(lang Language) [][]Button {
	return [][]Button{
		{{Label: Text(BtnRestart, lang), Unique: cbRestart}},
		{{Label: Text(BtnAbout, lang), Unique: cbAbout}},
	}
}

func oneButtonRows(unique string, labels []string) [][]Button {
	rows := make([][]Button, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []Button{{Label: label, Unique: unique, Data: label}})
	}
	return rows
}

func confirmationText(s Session) string {
	if s.Lang() == LangUZ {
		return fmt.Sprintf("Ism: %s\nKurs: %s\nSubkurs: %s\nKun: %s\nVaqti: %s\nTelefon: %s",
			s.Name, s.Course, s.Subcourse, s.Day, s.Time, s.Phone)
	}
	return fmt.Sprintf("Имя: %s\nКурс: %s\nПодкурс: %s\nДень: %s\nВремя: %s\nТелефон: %s",
		s.Name, s.Course, s.Subcourse, s.Day, s.Time, s.Phone)
}
