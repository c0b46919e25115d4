package models

import "github.com/jinzhu/inflection"

// Table names are derived from the singular entity names. The plural
// forms intentionally match the SQL schema consumed by the search layer.
var (
	TableProfessors   = inflection.Plural("professor")
	TableCourses      = inflection.Plural("course")
	TableSections     = inflection.Plural("section")
	TableSectionTimes = inflection.Plural("section_time")
	TableRatings      = inflection.Plural("rating")
	TableRatingTags   = inflection.Plural("rating_tag")
	TableNameVariants = inflection.Plural("professor_name_variant")
)

// TableSchemas returns the pipeline table schemas in emission order:
// every foreign key points at a table earlier in the slice.
func TableSchemas() []TableSchema {
	return []TableSchema{
		{
			Name: TableProfessors,
			Columns: []Column{
				{Name: "professor_id", Type: TypeSerial, PrimaryKey: true},
				{Name: "rmp_id", Type: TypeText, Unique: true},
				{Name: "rmp_legacy_id", Type: TypeInteger},
				{Name: "first_name", Type: TypeText, NotNull: true},
				{Name: "last_name", Type: TypeText, NotNull: true},
				{Name: "department", Type: TypeText},
				{Name: "school", Type: TypeText},
				{Name: "avg_rating", Type: TypeDouble},
				{Name: "avg_difficulty", Type: TypeDouble},
				{Name: "num_ratings", Type: TypeInteger},
				{Name: "would_take_again_percent", Type: TypeDouble},
				{Name: "created_at", Type: TypeTimestampTZ},
			},
		},
		{
			Name: TableCourses,
			Columns: []Column{
				{Name: "course_id", Type: TypeSerial, PrimaryKey: true},
				{Name: "course_key", Type: TypeText, Unique: true, NotNull: true},
				{Name: "year_term", Type: TypeText},
				{Name: "curriculum_id", Type: TypeText},
				{Name: "title_code", Type: TypeText},
				{Name: "dept_name", Type: TypeText},
				{Name: "catalog_number", Type: TypeText},
				{Name: "catalog_suffix", Type: TypeText},
				{Name: "title", Type: TypeText},
				{Name: "full_title", Type: TypeText},
				{Name: "created_at", Type: TypeTimestampTZ},
			},
		},
		{
			Name: TableSections,
			Columns: []Column{
				{Name: "section_id", Type: TypeSerial, PrimaryKey: true},
				{Name: "course_id", Type: TypeInteger, NotNull: true, References: &ForeignKey{Table: TableCourses, Column: "course_id"}},
				{Name: "section_number", Type: TypeText, NotNull: true},
				{Name: "fixed_or_variable", Type: TypeText},
				{Name: "credit_hours", Type: TypeText},
				{Name: "minimum_credit_hours", Type: TypeText},
				{Name: "honors", Type: TypeText},
				{Name: "credit_type", Type: TypeText},
				{Name: "section_type", Type: TypeText},
				{Name: "instructor_name", Type: TypeText},
				{Name: "instructor_id", Type: TypeText},
				{Name: "professor_id", Type: TypeInteger, References: &ForeignKey{Table: TableProfessors, Column: "professor_id"}},
				{Name: "mode", Type: TypeText},
				{Name: "mode_desc", Type: TypeText},
			},
			Uniques: [][]string{{"course_id", "section_number"}},
		},
		{
			Name: TableSectionTimes,
			Columns: []Column{
				{Name: "time_id", Type: TypeSerial, PrimaryKey: true},
				{Name: "section_id", Type: TypeInteger, NotNull: true, References: &ForeignKey{Table: TableSections, Column: "section_id"}},
				{Name: "days", Type: TypeText},
				{Name: "start_time", Type: TypeText},
				{Name: "end_time", Type: TypeText},
				{Name: "building", Type: TypeText},
				{Name: "room", Type: TypeText},
			},
		},
		{
			Name: TableRatings,
			Columns: []Column{
				{Name: "rating_id", Type: TypeSerial, PrimaryKey: true},
				{Name: "professor_id", Type: TypeInteger, NotNull: true, References: &ForeignKey{Table: TableProfessors, Column: "professor_id"}},
				{Name: "rmp_rating_id", Type: TypeText, Unique: true},
				{Name: "rmp_legacy_id", Type: TypeInteger},
				{Name: "date", Type: TypeText},
				{Name: "class_name", Type: TypeText},
				{Name: "clarity_rating", Type: TypeInteger},
				{Name: "helpful_rating", Type: TypeInteger},
				{Name: "difficulty_rating", Type: TypeInteger},
				{Name: "comment", Type: TypeText},
				{Name: "grade", Type: TypeText},
				{Name: "attendance_mandatory", Type: TypeText},
				{Name: "would_take_again", Type: TypeInteger},
				{Name: "textbook_use", Type: TypeInteger},
				{Name: "is_for_credit", Type: TypeBoolean},
				{Name: "is_for_online_class", Type: TypeBoolean},
				{Name: "flag_status", Type: TypeText},
				{Name: "admin_reviewed_at", Type: TypeText},
				{Name: "thumbs_up_total", Type: TypeInteger},
				{Name: "thumbs_down_total", Type: TypeInteger},
				{Name: "created_by_user", Type: TypeBoolean},
			},
		},
		{
			Name: TableRatingTags,
			Columns: []Column{
				{Name: "tag_id", Type: TypeSerial, PrimaryKey: true},
				{Name: "rating_id", Type: TypeInteger, NotNull: true, References: &ForeignKey{Table: TableRatings, Column: "rating_id"}},
				{Name: "tag_name", Type: TypeText, NotNull: true},
			},
		},
		{
			Name: TableNameVariants,
			Columns: []Column{
				{Name: "variant_id", Type: TypeSerial, PrimaryKey: true},
				{Name: "professor_id", Type: TypeInteger, NotNull: true, References: &ForeignKey{Table: TableProfessors, Column: "professor_id"}},
				{Name: "variant_name", Type: TypeText, NotNull: true},
				{Name: "source", Type: TypeText},
				{Name: "match_confidence", Type: TypeDouble},
			},
		},
	}
}

// Indexes returns the secondary indexes emitted after table creation.
func Indexes() []Index {
	return []Index{
		{Name: "idx_professors_rmp_id", Table: TableProfessors, Columns: []string{"rmp_id"}},
		{Name: "idx_professors_name", Table: TableProfessors, Columns: []string{"first_name", "last_name"}},
		{Name: "idx_sections_course", Table: TableSections, Columns: []string{"course_id"}},
		{Name: "idx_sections_professor", Table: TableSections, Columns: []string{"professor_id"}},
		{Name: "idx_section_times_section", Table: TableSectionTimes, Columns: []string{"section_id"}},
		{Name: "idx_ratings_professor", Table: TableRatings, Columns: []string{"professor_id"}},
		{Name: "idx_rating_tags_rating", Table: TableRatingTags, Columns: []string{"rating_id"}},
	}
}
