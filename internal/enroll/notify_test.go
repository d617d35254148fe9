package enroll

import "testing"

func TestSummaryTextFormat(t *testing.T) {
	s := Session{
		Language:  LangRU,
		Name:      "Ali",
		Course:    "IT",
		Subcourse: "Веб-разработка",
		Day:       "Monday",
		Time:      "9:00-11:00",
		Phone:     "+998901234567",
	}

	want := "#Tasdiqlandi\n" +
		"Ism: Ali\n" +
		"Kurs: IT\n" +
		"Subkurs: Веб-разработка\n" +
		"Kun: Monday\n" +
		"Vaqti: 9:00-11:00\n" +
		"Telefon: +998901234567"

	// Summaries stay in uz even for a ru session.
	if got := SummaryText(TagConfirmed, s); got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestTextFallsBackToRU(t *testing.T) {
	if Text(TextAskName, "") != Text(TextAskName, LangRU) {
		t.Fatalf("unset language must resolve to ru")
	}
	if Text(TextAskName, LangUZ) == Text(TextAskName, LangRU) {
		t.Fatalf("uz prompt must differ from ru")
	}
}
