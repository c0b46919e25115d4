package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoursesDocumentPreservesKeyOrder(t *testing.T) {
	payload := `{
		"C SCI-101": {"dept_name": "C SCI", "sections": []},
		"A HTG-100": {"dept_name": "A HTG", "sections": []},
		"MATH-113": {"dept_name": "MATH", "sections": []}
	}`

	var doc CoursesDocument
	require.NoError(t, json.Unmarshal([]byte(payload), &doc))

	require.Len(t, doc, 3)
	assert.Equal(t, "C SCI-101", doc[0].Key)
	assert.Equal(t, "A HTG-100", doc[1].Key)
	assert.Equal(t, "MATH-113", doc[2].Key)
}

func TestCoursesDocumentRejectsNonObject(t *testing.T) {
	var doc CoursesDocument
	assert.Error(t, json.Unmarshal([]byte(`[1, 2, 3]`), &doc))
}

func TestCoursesDocumentSectionFields(t *testing.T) {
	payload := `{
		"MATH-113": {
			"year_term": "20261",
			"curriculum_id": 1234,
			"sections": [{
				"section_number": "001",
				"credit_hours": 3,
				"instructor_name": "John Smith",
				"times": [{"days": "M W F", "start_time": "9:00 AM", "end_time": "9:50 AM"}]
			}]
		}
	}`

	var doc CoursesDocument
	require.NoError(t, json.Unmarshal([]byte(payload), &doc))
	require.Len(t, doc, 1)

	course := doc[0].Course
	require.NotNil(t, course.CurriculumID)
	assert.Equal(t, "1234", string(*course.CurriculumID))

	require.Len(t, course.Sections, 1)
	sec := course.Sections[0]
	require.NotNil(t, sec.CreditHours)
	assert.Equal(t, "3", string(*sec.CreditHours))
	assert.Nil(t, sec.Honors)
	require.Len(t, sec.Times, 1)
	require.NotNil(t, sec.Times[0].Days)
	assert.Equal(t, "M W F", *sec.Times[0].Days)
	assert.Nil(t, sec.Times[0].Building)
}

func TestLoadProfessors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "professors.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "VGVhY2hlci0x", "firstName": "John", "lastName": "Smith", "avgRating": 4.2}
	]`), 0o644))

	doc, err := LoadProfessors(path)
	require.NoError(t, err)
	require.Len(t, doc, 1)
	assert.Equal(t, "VGVhY2hlci0x", doc[0].ID)
	require.NotNil(t, doc[0].AvgRating)
	assert.Equal(t, 4.2, *doc[0].AvgRating)
	assert.Nil(t, doc[0].School)
}

func TestLoadProfessorsMissingFileIsFatal(t *testing.T) {
	_, err := LoadProfessors(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadCoursesMalformedIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "courses.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"MATH-113": `), 0o644))

	_, err := LoadCourses(path)
	assert.Error(t, err)
}
