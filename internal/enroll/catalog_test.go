package enroll

import "testing"

func TestCatalogDestinations(t *testing.T) {
	cat := DefaultCatalog()

	cases := map[string]int64{
		"English":     -1002289014372,
		"IT":          -1002336411887,
		"Robotics":    -1002297932865,
		"Mathematics": -1002313828384,
	}
	for course, want := range cases {
		got, ok := cat.Destination(course)
		if !ok {
			t.Fatalf("no destination for %q", course)
		}
		if got != want {
			t.Fatalf("destination(%q) = %d, want %d", course, got, want)
		}
	}

	if _, ok := cat.Destination("French"); ok {
		t.Fatalf("unknown course must have no destination")
	}
}

func TestCatalogSubcoursePairs(t *testing.T) {
	cat := DefaultCatalog()

	for _, course := range cat.CourseNames() {
		for _, lang := range []Language{LangRU, LangUZ} {
			if len(cat.Subcourses(course, lang)) == 0 {
				t.Fatalf("no subcourses for (%s, %s)", course, lang)
			}
		}
	}
	if cat.Subcourses("French", LangRU) != nil {
		t.Fatalf("unknown course must yield no subcourses")
	}
}

func TestCatalogValidate(t *testing.T) {
	cat := DefaultCatalog()
	if err := cat.Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}

	dup := DefaultCatalog()
	dup.Courses = append(dup.Courses, dup.Courses[0])
	if err := dup.Validate(); err == nil {
		t.Fatalf("duplicate course must fail validation")
	}

	noChannel := DefaultCatalog()
	noChannel.Courses[0].ChannelID = 0
	if err := noChannel.Validate(); err == nil {
		t.Fatalf("missing channel_id must fail validation")
	}

	noDays := DefaultCatalog()
	noDays.Days = nil
	if err := noDays.Validate(); err == nil {
		t.Fatalf("empty days must fail validation")
	}
}

func TestCatalogDayAndTimeLookups(t *testing.T) {
	cat := DefaultCatalog()

	if !cat.HasDay("Monday") || cat.HasDay("Someday") {
		t.Fatalf("day lookup broken")
	}
	if !cat.HasTime("9:00-11:00") || cat.HasTime("23:00-01:00") {
		t.Fatalf("time lookup broken")
	}
}
