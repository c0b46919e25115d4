// Package schema transforms the two source JSON documents into the
// in-memory relational dataset, resolving instructor names to professor
// records along the way.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/courseatlas/atlas-engine/pkg/jsonutil"
)

// ProfessorRecord is one entry of the professor catalog document.
// Pointer fields distinguish absent/null values from real ones so the
// field normalizer pass can materialize the nulls later.
type ProfessorRecord struct {
	ID                    string   `json:"id"`
	LegacyID              *int64   `json:"legacyId"`
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	Department            *string  `json:"department"`
	School                *string  `json:"school"`
	AvgRating             *float64 `json:"avgRating"`
	AvgDifficulty         *float64 `json:"avgDifficulty"`
	NumRatings            *int64   `json:"numRatings"`
	WouldTakeAgainPercent *float64 `json:"wouldTakeAgainPercent"`
}

// ProfessorsDocument is the ordered professor catalog. Order matters:
// it defines the matcher's candidate iteration order.
type ProfessorsDocument []ProfessorRecord

// TimeBlock is one meeting-time entry of a section. All fields are
// pass-through; the builder performs no day/time validation.
type TimeBlock struct {
	Days      *string `json:"days"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Building  *string `json:"building"`
	Room      *string `json:"room"`
}

// SectionRecord is one section of a course. Credit fields use tolerant
// strings because the source emits them as either numbers or strings.
type SectionRecord struct {
	SectionNumber      *string          `json:"section_number"`
	FixedOrVariable    *string          `json:"fixed_or_variable"`
	CreditHours        *jsonutil.String `json:"credit_hours"`
	MinimumCreditHours *jsonutil.String `json:"minimum_credit_hours"`
	Honors             *string          `json:"honors"`
	CreditType         *string          `json:"credit_type"`
	SectionType        *string          `json:"section_type"`
	InstructorName     *string          `json:"instructor_name"`
	InstructorID       *jsonutil.String `json:"instructor_id"`
	Mode               *string          `json:"mode"`
	ModeDesc           *string          `json:"mode_desc"`
	Times              []TimeBlock      `json:"times"`
}

// CourseRecord is the course metadata plus its embedded sections.
type CourseRecord struct {
	YearTerm      *string          `json:"year_term"`
	CurriculumID  *jsonutil.String `json:"curriculum_id"`
	TitleCode     *jsonutil.String `json:"title_code"`
	DeptName      *string          `json:"dept_name"`
	CatalogNumber *jsonutil.String `json:"catalog_number"`
	CatalogSuffix *string          `json:"catalog_suffix"`
	Title         *string          `json:"title"`
	FullTitle     *string          `json:"full_title"`
	Sections      []SectionRecord  `json:"sections"`
}

// CourseEntry pairs a course natural key with its record.
type CourseEntry struct {
	Key    string
	Course CourseRecord
}

// CoursesDocument is the course catalog in document order. The source
// is a JSON object keyed by course key; a map would lose the key order
// that surrogate ID assignment depends on, so decoding walks the tokens
// directly.
type CoursesDocument []CourseEntry

// UnmarshalJSON implements json.Unmarshaler preserving key order.
func (d *CoursesDocument) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("courses document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("courses document: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("courses document: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("courses document: expected key, got %v", keyTok)
		}

		var course CourseRecord
		if err := dec.Decode(&course); err != nil {
			return fmt.Errorf("course %q: %w", key, err)
		}
		*d = append(*d, CourseEntry{Key: key, Course: course})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("courses document: %w", err)
	}
	return nil
}

// RatingNode is a single rating entry as delivered by the rating
// system's paginated API.
type RatingNode struct {
	Typename            string           `json:"__typename"`
	ID                  string           `json:"id"`
	LegacyID            *int64           `json:"legacyId"`
	Date                *string          `json:"date"`
	Class               *string          `json:"class"`
	ClarityRating       *int64           `json:"clarityRating"`
	HelpfulRating       *int64           `json:"helpfulRating"`
	DifficultyRating    *int64           `json:"difficultyRating"`
	Comment             *string          `json:"comment"`
	Grade               *jsonutil.String `json:"grade"`
	AttendanceMandatory *jsonutil.String `json:"attendanceMandatory"`
	WouldTakeAgain      *int64           `json:"wouldTakeAgain"`
	TextbookUse         *int64           `json:"textbookUse"`
	IsForCredit         bool             `json:"isForCredit"`
	IsForOnlineClass    bool             `json:"isForOnlineClass"`
	FlagStatus          *string          `json:"flagStatus"`
	AdminReviewedAt     *string          `json:"adminReviewedAt"`
	ThumbsUpTotal       int64            `json:"thumbsUpTotal"`
	ThumbsDownTotal     int64            `json:"thumbsDownTotal"`
	CreatedByUser       bool             `json:"createdByUser"`
	RatingTags          string           `json:"ratingTags"`
}

// TeacherNode is the professor wrapper around a page of rating entries.
type TeacherNode struct {
	Typename string `json:"__typename"`
	ID       string `json:"id"`
	Ratings  struct {
		Edges []struct {
			Node RatingNode `json:"node"`
		} `json:"edges"`
	} `json:"ratings"`
}

// RatingsEntry is one fetched response envelope.
type RatingsEntry struct {
	Data struct {
		Node TeacherNode `json:"node"`
	} `json:"data"`
}

// RatingsDocument is the full ratings dump, one entry per professor.
type RatingsDocument []RatingsEntry

// LoadProfessors reads and parses the professor catalog. Any failure
// here is fatal to the run.
func LoadProfessors(path string) (ProfessorsDocument, error) {
	var doc ProfessorsDocument
	if err := loadJSON(path, &doc); err != nil {
		return nil, fmt.Errorf("professors document: %w", err)
	}
	return doc, nil
}

// LoadCourses reads and parses the course catalog.
func LoadCourses(path string) (CoursesDocument, error) {
	var doc CoursesDocument
	if err := loadJSON(path, &doc); err != nil {
		return nil, fmt.Errorf("courses document: %w", err)
	}
	return doc, nil
}

// LoadRatings reads and parses the ratings dump.
func LoadRatings(path string) (RatingsDocument, error) {
	var doc RatingsDocument
	if err := loadJSON(path, &doc); err != nil {
		return nil, fmt.Errorf("ratings document: %w", err)
	}
	return doc, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
