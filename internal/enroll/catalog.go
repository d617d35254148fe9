package enroll

import "fmt"

// Course binds a course name to its notification channel and per-language
// subcourse labels.
type Course struct {
	Name       string                `yaml:"name"`
	ChannelID  int64                 `yaml:"channel_id"`
	Subcourses map[Language][]string `yaml:"subcourses"`
}

// Catalog is the static configuration the flow runs on: courses with their
// notification destinations, plus the fixed day and time slot lists.
// Immutable after load, shared read-only by all sessions.
type Catalog struct {
	Courses []Course `yaml:"courses"`
	Days    []string `yaml:"days"`
	Times   []string `yaml:"times"`
}

// DefaultCatalog returns the built-in catalog used when the config file does
// not override it.
func DefaultCatalog() Catalog {
	return Catalog{
		Courses: []Course{
			{
				Name:      "English",
				ChannelID: -1002289014372,
				Subcourses: map[Language][]string{
					LangRU: {"Английский для начинающих", "Английский для бизнеса"},
					LangUZ: {"Boshqaruv uchun ingliz tili", "Ingliz tilini o'rganish"},
				},
			},
			{
				Name:      "IT",
				ChannelID: -1002336411887,
				Subcourses: map[Language][]string{
					LangRU: {"Программирование на Python", "Веб-разработка"},
					LangUZ: {"Python dasturlash", "Veb dasturlash"},
				},
			},
			{
				Name:      "Robotics",
				ChannelID: -1002297932865,
				Subcourses: map[Language][]string{
					LangRU: {"Основы робототехники", "Программирование роботов"},
					LangUZ: {"Robototexnikaning asoslari", "Robotlarni dasturlash"},
				},
			},
			{
				Name:      "Mathematics",
				ChannelID: -1002313828384,
				Subcourses: map[Language][]string{
					LangRU: {"Алгебра", "Геометрия"},
					LangUZ: {"Algebra", "Geometriya"},
				},
			},
		},
		Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		Times: []string{"9:00-11:00", "11:00-13:00", "14:00-16:00", "16:00-18:00"},
	}
}

// Validate checks the catalog for duplicate or incomplete entries.
func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Courses))
	for _, course := range c.Courses {
		if course.Name == "" {
			return fmt.Errorf("catalog: course with empty name")
		}
		if _, dup := seen[course.Name]; dup {
			return fmt.Errorf("catalog: duplicate course %q", course.Name)
		}
		seen[course.Name] = struct{}{}
		if course.ChannelID == 0 {
			return fmt.Errorf("catalog: course %q has no channel_id", course.Name)
		}
	}
	if len(c.Days) == 0 {
		return fmt.Errorf("catalog: days list is empty")
	}
	if len(c.Times) == 0 {
		return fmt.Errorf("catalog: times list is empty")
	}
	return nil
}

// CourseNames returns course names in catalog order.
func (c Catalog) CourseNames() []string {
	names := make([]string, 0, len(c.Courses))
	for _, course := range c.Courses {
		names = append(names, course.Name)
	}
	return names
}

// Destination resolves the notification channel for a course.
func (c Catalog) Destination(course string) (int64, bool) {
	for _, e := range c.Courses {
		if e.Name == course {
			return e.ChannelID, true
		}
	}
	return 0, false
}

// Subcourses returns the subcourse labels for a (course, language) pair in
// catalog order; nil when the pair has no entry.
func (c Catalog) Subcourses(course string, lang Language) []string {
	for _, e := range c.Courses {
		if e.Name == course {
			return e.Subcourses[lang]
		}
	}
	return nil
}

// HasDay reports whether day is one of the catalog day tokens.
func (c Catalog) HasDay(day string) bool {
	return containsLabel(c.Days, day)
}

// HasTime reports whether slot is one of the catalog time slots.
func (c Catalog) HasTime(slot string) bool {
	return containsLabel(c.Times, slot)
}

func containsLabel(labels []string, v string) bool {
	for _, l := range labels {
		if l == v {
			return true
		}
	}
	return false
}
