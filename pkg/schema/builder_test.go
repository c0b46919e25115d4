package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseatlas/atlas-engine/pkg/models"
)

func sptr(s string) *string { return &s }

func professorCatalog() ProfessorsDocument {
	return ProfessorsDocument{
		{ID: "prof-1", FirstName: "Jane", LastName: "Doe"},
		{ID: "prof-2", FirstName: "Robert", LastName: "Johnson"},
		{ID: "prof-3", FirstName: "John", LastName: "Smith"},
	}
}

func courseWithSections(sections ...SectionRecord) CoursesDocument {
	return CoursesDocument{
		{Key: "MATH-113", Course: CourseRecord{DeptName: sptr("MATH"), Sections: sections}},
	}
}

func TestAddProfessors(t *testing.T) {
	b := NewBuilder(nil)
	b.AddProfessors(ProfessorsDocument{
		{ID: "prof-1", FirstName: "Jane", LastName: "Doe"},
		{ID: "", FirstName: "No", LastName: "ID"},
		{ID: "prof-1", FirstName: "Duplicate", LastName: "Entry"},
		{ID: "prof-2", FirstName: "Robert", LastName: "Johnson"},
	})

	stats := b.Stats()
	assert.Equal(t, 2, stats.ProfessorsAdded)
	assert.Equal(t, 1, stats.ProfessorsSkipped)

	rows := b.Dataset().Table(models.TableProfessors).Rows
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0]["professor_id"])
	assert.Equal(t, "Jane", rows[0]["first_name"])
	assert.Equal(t, int64(2), rows[1]["professor_id"])
	// First write wins on a duplicate external ID.
	assert.Equal(t, "Jane", rows[0]["first_name"])
}

func TestAddCoursesResolvesInstructor(t *testing.T) {
	b := NewBuilder(nil)
	b.AddProfessors(professorCatalog())
	b.AddCourses(courseWithSections(SectionRecord{
		SectionNumber:  sptr("001"),
		InstructorName: sptr("Bob Johnson"),
	}))

	sections := b.Dataset().Table(models.TableSections).Rows
	require.Len(t, sections, 1)
	// Nickname rule: bob -> robert, so the section points at prof-2.
	assert.Equal(t, int64(2), sections[0]["professor_id"])
	// The raw instructor string is retained even when a match is found.
	assert.Equal(t, "Bob Johnson", sections[0]["instructor_name"])

	variants := b.Dataset().Table(models.TableNameVariants).Rows
	require.Len(t, variants, 1)
	assert.Equal(t, int64(2), variants[0]["professor_id"])
	assert.Equal(t, "Bob Johnson", variants[0]["variant_name"])
	assert.Equal(t, "courses.json", variants[0]["source"])
	assert.Equal(t, 0.9, variants[0]["match_confidence"])

	stats := b.Stats()
	assert.Equal(t, 1, stats.NamesMatched)
	assert.Equal(t, 0, stats.NamesUnmatched)
}

func TestAddCoursesUnmatchedInstructor(t *testing.T) {
	b := NewBuilder(nil)
	b.AddProfessors(professorCatalog())
	b.AddCourses(courseWithSections(SectionRecord{
		SectionNumber:  sptr("001"),
		InstructorName: sptr("Zyx Qwvolt"),
	}))

	sections := b.Dataset().Table(models.TableSections).Rows
	require.Len(t, sections, 1)
	_, present := sections[0]["professor_id"]
	assert.False(t, present, "unmatched section must not carry a professor reference")
	assert.Equal(t, "Zyx Qwvolt", sections[0]["instructor_name"])

	assert.Empty(t, b.Dataset().Table(models.TableNameVariants).Rows)
	assert.Equal(t, 1, b.Stats().NamesUnmatched)
}

func TestInstructorCacheIsPerRawString(t *testing.T) {
	b := NewBuilder(nil)
	b.AddProfessors(professorCatalog())
	b.AddCourses(CoursesDocument{
		{Key: "A-1", Course: CourseRecord{Sections: []SectionRecord{
			{SectionNumber: sptr("001"), InstructorName: sptr("John Smith")},
			{SectionNumber: sptr("002"), InstructorName: sptr("John Smith")},
			// Normalizes the same but differs in raw form: matched
			// independently and audited separately.
			{SectionNumber: sptr("003"), InstructorName: sptr("John  Smith")},
		}}},
	})

	stats := b.Stats()
	assert.Equal(t, 2, stats.NamesMatched, "one match per distinct raw string")
	assert.Len(t, b.Dataset().Table(models.TableNameVariants).Rows, 2)

	for _, row := range b.Dataset().Table(models.TableSections).Rows {
		assert.Equal(t, int64(3), row["professor_id"])
	}
}

func TestAddCoursesDuplicatesIgnored(t *testing.T) {
	b := NewBuilder(nil)
	b.AddCourses(CoursesDocument{
		{Key: "MATH-113", Course: CourseRecord{Sections: []SectionRecord{
			{SectionNumber: sptr("001")},
			{SectionNumber: sptr("001")},
			{SectionNumber: nil},
		}}},
		{Key: "MATH-113", Course: CourseRecord{}},
	})

	stats := b.Stats()
	assert.Equal(t, 1, stats.CoursesAdded)
	assert.Equal(t, 1, stats.CoursesDuplicate)
	assert.Equal(t, 1, stats.SectionsAdded)
	assert.Equal(t, 1, stats.SectionsDuplicate)
	assert.Equal(t, 1, stats.SectionsSkipped)
}

func TestAddCoursesMeetingTimesNotDeduplicated(t *testing.T) {
	block := TimeBlock{Days: sptr("M W F"), StartTime: sptr("9:00 AM"), EndTime: sptr("9:50 AM")}

	b := NewBuilder(nil)
	b.AddCourses(courseWithSections(SectionRecord{
		SectionNumber: sptr("001"),
		Times:         []TimeBlock{block, block},
	}))

	times := b.Dataset().Table(models.TableSectionTimes).Rows
	require.Len(t, times, 2)
	assert.Equal(t, int64(1), times[0]["section_id"])
	assert.Equal(t, int64(1), times[1]["section_id"])
	assert.Equal(t, "M W F", times[0]["days"])
}

func TestSectionReferencesExistingCourse(t *testing.T) {
	b := NewBuilder(nil)
	b.AddCourses(CoursesDocument{
		{Key: "A-1", Course: CourseRecord{Sections: []SectionRecord{{SectionNumber: sptr("001")}}}},
		{Key: "B-2", Course: CourseRecord{Sections: []SectionRecord{{SectionNumber: sptr("001")}}}},
	})

	courses := b.Dataset().Table(models.TableCourses).Rows
	sections := b.Dataset().Table(models.TableSections).Rows
	require.Len(t, sections, 2)

	known := map[any]bool{}
	for _, c := range courses {
		known[c["course_id"]] = true
	}
	for _, s := range sections {
		assert.True(t, known[s["course_id"]], "section references a course created in this run")
	}
}

func ratingsFor(teacherID string, nodes ...RatingNode) RatingsDocument {
	var entry RatingsEntry
	entry.Data.Node.Typename = "Teacher"
	entry.Data.Node.ID = teacherID
	for _, n := range nodes {
		entry.Data.Node.Ratings.Edges = append(entry.Data.Node.Ratings.Edges, struct {
			Node RatingNode `json:"node"`
		}{Node: n})
	}
	return RatingsDocument{entry}
}

func TestAddRatings(t *testing.T) {
	b := NewBuilder(nil)
	b.AddProfessors(professorCatalog())
	b.AddRatings(ratingsFor("prof-2", RatingNode{
		Typename:    "Rating",
		ID:          "rating-1",
		Comment:     sptr("Great class"),
		IsForCredit: true,
		RatingTags:  "Caring--Amazing lectures-- ; Tough grader",
	}))

	ratings := b.Dataset().Table(models.TableRatings).Rows
	require.Len(t, ratings, 1)
	assert.Equal(t, int64(2), ratings[0]["professor_id"])
	assert.Equal(t, "rating-1", ratings[0]["rmp_rating_id"])
	assert.Equal(t, true, ratings[0]["is_for_credit"])
	assert.Equal(t, false, ratings[0]["is_for_online_class"])

	tags := b.Dataset().Table(models.TableRatingTags).Rows
	require.Len(t, tags, 3)
	assert.Equal(t, "Caring", tags[0]["tag_name"])
	assert.Equal(t, "Amazing lectures", tags[1]["tag_name"])
	assert.Equal(t, "Tough grader", tags[2]["tag_name"])
}

func TestAddRatingsUnknownProfessorDropped(t *testing.T) {
	b := NewBuilder(nil)
	b.AddProfessors(professorCatalog())

	before := b.Stats().NamesMatched
	b.AddRatings(ratingsFor("prof-unknown", RatingNode{Typename: "Rating", ID: "rating-1"}))

	assert.Empty(t, b.Dataset().Table(models.TableRatings).Rows)
	assert.Equal(t, 1, b.Stats().RatingsDropped)
	assert.Equal(t, before, b.Stats().NamesMatched, "dropped ratings do not touch match counters")
}

func TestAddRatingsNonTeacherNodeDropped(t *testing.T) {
	doc := ratingsFor("prof-1", RatingNode{Typename: "Rating", ID: "rating-1"})
	doc[0].Data.Node.Typename = "School"

	b := NewBuilder(nil)
	b.AddProfessors(professorCatalog())
	b.AddRatings(doc)

	assert.Empty(t, b.Dataset().Table(models.TableRatings).Rows)
	assert.Equal(t, 1, b.Stats().RatingsDropped)
}

func TestAddRatingsDuplicateIgnored(t *testing.T) {
	b := NewBuilder(nil)
	b.AddProfessors(professorCatalog())
	b.AddRatings(ratingsFor("prof-1",
		RatingNode{Typename: "Rating", ID: "rating-1"},
		RatingNode{Typename: "Rating", ID: "rating-1"},
	))

	assert.Len(t, b.Dataset().Table(models.TableRatings).Rows, 1)
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{input: "", expected: nil},
		{input: "Caring", expected: []string{"Caring"}},
		{input: "A--B--C", expected: []string{"A", "B", "C"}},
		{input: "A; B", expected: []string{"A", "B"}},
		{input: " -- ; --", expected: nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, splitTags(tt.input), "input %q", tt.input)
	}
}
