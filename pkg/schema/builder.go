package schema

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/courseatlas/atlas-engine/pkg/jsonutil"
	"github.com/courseatlas/atlas-engine/pkg/models"
	"github.com/courseatlas/atlas-engine/pkg/namematch"
)

// variantSource and variantConfidence label name-variant audit rows
// produced when an instructor name from the course roster resolves to a
// professor.
const (
	variantSource     = "courses.json"
	variantConfidence = 0.9
)

// Stats aggregates per-run counters. Individual bad records are never
// fatal; they end up here so a human can judge overall data quality.
type Stats struct {
	ProfessorsAdded   int
	ProfessorsSkipped int
	CoursesAdded      int
	CoursesDuplicate  int
	SectionsAdded     int
	SectionsSkipped   int
	SectionsDuplicate int
	TimesAdded        int
	RatingsAdded      int
	RatingsDropped    int
	TagsAdded         int
	NamesMatched      int
	NamesUnmatched    int
}

// matchOutcome is the cached result of matching one raw instructor
// string, including the negative case so a miss is never re-scanned.
type matchOutcome struct {
	professorID int64
	resolved    bool
}

type sectionKey struct {
	courseID int64
	number   string
}

// Builder accumulates the relational dataset across the three ingest
// stages. Not safe for concurrent use: the pipeline is a single-threaded
// batch transform and the match cache is a plain map.
type Builder struct {
	ds     *models.Dataset
	logger *zap.Logger
	now    time.Time
	stats  Stats

	// Matcher candidates in professor document load order, parallel to
	// the surrogate ID each one resolves to.
	candidates   []namematch.Candidate
	candidateIDs []int64

	professorIDs map[string]int64 // external rating-system ID -> surrogate
	courseIDs    map[string]int64 // course natural key -> surrogate
	sectionSeen  map[sectionKey]bool
	ratingSeen   map[string]bool // external rating ID

	matchCache map[string]matchOutcome // keyed by raw string literal

	nextProfessor int64
	nextCourse    int64
	nextSection   int64
	nextTime      int64
	nextRating    int64
	nextTag       int64
	nextVariant   int64
}

// NewBuilder returns an empty builder. A nil logger is replaced with a
// no-op logger.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		ds:           models.NewDataset(),
		logger:       logger,
		now:          time.Now().UTC(),
		professorIDs: make(map[string]int64),
		courseIDs:    make(map[string]int64),
		sectionSeen:  make(map[sectionKey]bool),
		ratingSeen:   make(map[string]bool),
		matchCache:   make(map[string]matchOutcome),
	}
}

// Dataset returns the accumulated tables.
func (b *Builder) Dataset() *models.Dataset { return b.ds }

// Stats returns a copy of the run counters.
func (b *Builder) Stats() Stats { return b.stats }

// AddProfessors ingests the professor catalog. Entries without an
// external rating-system ID cannot anchor ratings or matches and are
// skipped; duplicate IDs keep the first record. Must run before
// AddCourses so the matcher has its candidate list.
func (b *Builder) AddProfessors(doc ProfessorsDocument) {
	for _, rec := range doc {
		if rec.ID == "" {
			b.stats.ProfessorsSkipped++
			continue
		}
		if _, exists := b.professorIDs[rec.ID]; exists {
			continue
		}

		b.nextProfessor++
		id := b.nextProfessor
		b.professorIDs[rec.ID] = id
		b.candidates = append(b.candidates, namematch.Candidate{First: rec.FirstName, Last: rec.LastName})
		b.candidateIDs = append(b.candidateIDs, id)

		row := models.Row{
			"professor_id": id,
			"rmp_id":       rec.ID,
			"first_name":   rec.FirstName,
			"last_name":    rec.LastName,
			"created_at":   b.now,
		}
		putInt(row, "rmp_legacy_id", rec.LegacyID)
		putString(row, "department", rec.Department)
		putString(row, "school", rec.School)
		putFloat(row, "avg_rating", rec.AvgRating)
		putFloat(row, "avg_difficulty", rec.AvgDifficulty)
		putInt(row, "num_ratings", rec.NumRatings)
		putFloat(row, "would_take_again_percent", rec.WouldTakeAgainPercent)

		b.ds.Table(models.TableProfessors).Append(row)
		b.stats.ProfessorsAdded++
	}

	b.logger.Info("professors ingested",
		zap.Int("added", b.stats.ProfessorsAdded),
		zap.Int("skipped", b.stats.ProfessorsSkipped))
}

// AddCourses ingests the course catalog in document order, creating
// courses, sections and meeting times and resolving each distinct raw
// instructor name against the professor candidates at most once.
func (b *Builder) AddCourses(doc CoursesDocument) {
	for _, entry := range doc {
		if _, exists := b.courseIDs[entry.Key]; exists {
			b.stats.CoursesDuplicate++
			continue
		}

		b.nextCourse++
		courseID := b.nextCourse
		b.courseIDs[entry.Key] = courseID

		course := entry.Course
		row := models.Row{
			"course_id":  courseID,
			"course_key": entry.Key,
			"created_at": b.now,
		}
		putString(row, "year_term", course.YearTerm)
		putFlex(row, "curriculum_id", course.CurriculumID)
		putFlex(row, "title_code", course.TitleCode)
		putString(row, "dept_name", course.DeptName)
		putFlex(row, "catalog_number", course.CatalogNumber)
		putString(row, "catalog_suffix", course.CatalogSuffix)
		putString(row, "title", course.Title)
		putString(row, "full_title", course.FullTitle)

		b.ds.Table(models.TableCourses).Append(row)
		b.stats.CoursesAdded++

		for _, sec := range course.Sections {
			b.addSection(courseID, sec)
		}
	}

	b.logger.Info("courses ingested",
		zap.Int("courses", b.stats.CoursesAdded),
		zap.Int("sections", b.stats.SectionsAdded),
		zap.Int("times", b.stats.TimesAdded),
		zap.Int("instructors_matched", b.stats.NamesMatched),
		zap.Int("instructors_unmatched", b.stats.NamesUnmatched))
}

func (b *Builder) addSection(courseID int64, sec SectionRecord) {
	if sec.SectionNumber == nil || *sec.SectionNumber == "" {
		b.stats.SectionsSkipped++
		return
	}
	key := sectionKey{courseID: courseID, number: *sec.SectionNumber}
	if b.sectionSeen[key] {
		b.stats.SectionsDuplicate++
		return
	}
	b.sectionSeen[key] = true

	b.nextSection++
	sectionID := b.nextSection

	row := models.Row{
		"section_id":     sectionID,
		"course_id":      courseID,
		"section_number": *sec.SectionNumber,
	}
	putString(row, "fixed_or_variable", sec.FixedOrVariable)
	putFlex(row, "credit_hours", sec.CreditHours)
	putFlex(row, "minimum_credit_hours", sec.MinimumCreditHours)
	putString(row, "honors", sec.Honors)
	putString(row, "credit_type", sec.CreditType)
	putString(row, "section_type", sec.SectionType)
	putString(row, "instructor_name", sec.InstructorName)
	putFlex(row, "instructor_id", sec.InstructorID)
	putString(row, "mode", sec.Mode)
	putString(row, "mode_desc", sec.ModeDesc)

	if sec.InstructorName != nil && strings.TrimSpace(*sec.InstructorName) != "" {
		if outcome := b.resolveInstructor(*sec.InstructorName); outcome.resolved {
			row["professor_id"] = outcome.professorID
		}
	}

	b.ds.Table(models.TableSections).Append(row)
	b.stats.SectionsAdded++

	for _, block := range sec.Times {
		b.nextTime++
		timeRow := models.Row{
			"time_id":    b.nextTime,
			"section_id": sectionID,
		}
		putString(timeRow, "days", block.Days)
		putString(timeRow, "start_time", block.StartTime)
		putString(timeRow, "end_time", block.EndTime)
		putString(timeRow, "building", block.Building)
		putString(timeRow, "room", block.Room)
		b.ds.Table(models.TableSectionTimes).Append(timeRow)
		b.stats.TimesAdded++
	}
}

// resolveInstructor consults the per-run cache and runs the matcher on a
// miss. The cache key is the raw string literal: two strings that
// normalize identically but differ in raw form are matched independently.
func (b *Builder) resolveInstructor(raw string) matchOutcome {
	if outcome, ok := b.matchCache[raw]; ok {
		return outcome
	}

	var outcome matchOutcome
	m := namematch.BestMatch(raw, b.candidates)
	if m.Matched() {
		outcome = matchOutcome{professorID: b.candidateIDs[m.Index], resolved: true}
		b.stats.NamesMatched++

		b.nextVariant++
		b.ds.Table(models.TableNameVariants).Append(models.Row{
			"variant_id":       b.nextVariant,
			"professor_id":     outcome.professorID,
			"variant_name":     raw,
			"source":           variantSource,
			"match_confidence": variantConfidence,
		})

		b.logger.Debug("instructor resolved",
			zap.String("instructor", raw),
			zap.Int64("professor_id", outcome.professorID),
			zap.String("rule", m.Rule.String()),
			zap.Float64("confidence", m.Confidence))
	} else {
		b.stats.NamesUnmatched++
		b.logger.Debug("instructor unmatched", zap.String("instructor", raw))
	}

	b.matchCache[raw] = outcome
	return outcome
}

// AddRatings ingests the ratings dump, scoped to professors already
// known: entries whose external ID never produced a professor record are
// dropped and counted. Must run after AddProfessors.
func (b *Builder) AddRatings(doc RatingsDocument) {
	for _, entry := range doc {
		node := entry.Data.Node
		if node.Typename != "Teacher" || node.ID == "" {
			b.stats.RatingsDropped++
			continue
		}
		professorID, known := b.professorIDs[node.ID]
		if !known {
			b.stats.RatingsDropped++
			continue
		}

		for _, edge := range node.Ratings.Edges {
			b.addRating(professorID, edge.Node)
		}
	}

	b.logger.Info("ratings ingested",
		zap.Int("ratings", b.stats.RatingsAdded),
		zap.Int("dropped", b.stats.RatingsDropped),
		zap.Int("tags", b.stats.TagsAdded))
}

func (b *Builder) addRating(professorID int64, node RatingNode) {
	if node.Typename != "Rating" || node.ID == "" {
		b.stats.RatingsDropped++
		return
	}
	if b.ratingSeen[node.ID] {
		return
	}
	b.ratingSeen[node.ID] = true

	b.nextRating++
	ratingID := b.nextRating

	row := models.Row{
		"rating_id":           ratingID,
		"professor_id":        professorID,
		"rmp_rating_id":       node.ID,
		"is_for_credit":       node.IsForCredit,
		"is_for_online_class": node.IsForOnlineClass,
		"thumbs_up_total":     node.ThumbsUpTotal,
		"thumbs_down_total":   node.ThumbsDownTotal,
		"created_by_user":     node.CreatedByUser,
	}
	putInt(row, "rmp_legacy_id", node.LegacyID)
	putString(row, "date", node.Date)
	putString(row, "class_name", node.Class)
	putInt(row, "clarity_rating", node.ClarityRating)
	putInt(row, "helpful_rating", node.HelpfulRating)
	putInt(row, "difficulty_rating", node.DifficultyRating)
	putString(row, "comment", node.Comment)
	putFlex(row, "grade", node.Grade)
	putFlex(row, "attendance_mandatory", node.AttendanceMandatory)
	putInt(row, "would_take_again", node.WouldTakeAgain)
	putInt(row, "textbook_use", node.TextbookUse)
	putString(row, "flag_status", node.FlagStatus)
	putString(row, "admin_reviewed_at", node.AdminReviewedAt)

	b.ds.Table(models.TableRatings).Append(row)
	b.stats.RatingsAdded++

	for _, tag := range splitTags(node.RatingTags) {
		b.nextTag++
		b.ds.Table(models.TableRatingTags).Append(models.Row{
			"tag_id":    b.nextTag,
			"rating_id": ratingID,
			"tag_name":  tag,
		})
		b.stats.TagsAdded++
	}
}

// splitTags splits a delimited tag string into trimmed, non-empty
// labels. The rating source delimits with "--"; ";" is accepted too.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, seg := range strings.Split(s, "--") {
		for _, part := range strings.Split(seg, ";") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func putString(row models.Row, col string, v *string) {
	if v != nil {
		row[col] = *v
	}
}

func putFlex(row models.Row, col string, v *jsonutil.String) {
	if v != nil {
		row[col] = string(*v)
	}
}

func putInt(row models.Row, col string, v *int64) {
	if v != nil {
		row[col] = *v
	}
}

func putFloat(row models.Row, col string, v *float64) {
	if v != nil {
		row[col] = *v
	}
}
