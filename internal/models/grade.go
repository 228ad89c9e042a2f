package models

// Grade identifies one of the four academic levels the storefront serves.
type Grade string

const (
	GradeSixthPrimary                Grade = "sixth_primary"
	GradeThirdIntermediate           Grade = "third_intermediate"
	GradeSixthPreparatoryScientific  Grade = "sixth_preparatory_scientific"
	GradeSixthPreparatoryLiterary    Grade = "sixth_preparatory_literary"
)

// gradeLabels maps each grade to its Arabic display name as shown to customers.
var gradeLabels = map[Grade]string{
	GradeSixthPrimary:               "السادس ابتدائي",
	GradeThirdIntermediate:          "الثالث متوسط",
	GradeSixthPreparatoryScientific: "السادس إعدادي - علمي",
	GradeSixthPreparatoryLiterary:   "السادس إعدادي - أدبي",
}

// Grades returns every grade in catalog order.
func Grades() []Grade {
	return []Grade{
		GradeSixthPrimary,
		GradeThirdIntermediate,
		GradeSixthPreparatoryScientific,
		GradeSixthPreparatoryLiterary,
	}
}

// Label returns the customer-facing display name of the grade.
func (g Grade) Label() string {
	return gradeLabels[g]
}

// Valid reports whether g is one of the four known grades.
func (g Grade) Valid() bool {
	_, ok := gradeLabels[g]
	return ok
}

// ParseGrade resolves a grade from its slug or its Arabic display name.
// It returns false for anything outside the closed set.
func ParseGrade(raw string) (Grade, bool) {
	g := Grade(raw)
	if g.Valid() {
		return g, true
	}
	for grade, label := range gradeLabels {
		if raw == label {
			return grade, true
		}
	}
	return "", false
}

// GradeDescriptor is the wire representation of a grade returned by the grades listing.
type GradeDescriptor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value Grade  `json:"value"`
}

// GradeDescriptors returns the fixed descriptors for all four grades.
func GradeDescriptors() []GradeDescriptor {
	grades := Grades()
	out := make([]GradeDescriptor, 0, len(grades))
	for _, g := range grades {
		out = append(out, GradeDescriptor{ID: string(g), Name: g.Label(), Value: g})
	}
	return out
}

// DefaultCatalog is the static subject catalog per grade. Seeding recreates
// exactly these (grade, name) pairs; administrators may edit afterwards.
var DefaultCatalog = map[Grade][]string{
	GradeSixthPrimary: {
		"الرياضيات", "اللغة العربية", "اللغة الإنجليزية", "العلوم",
		"الاجتماعيات", "التربية الإسلامية",
	},
	GradeThirdIntermediate: {
		"الرياضيات", "اللغة العربية", "اللغة الإنجليزية", "الفيزياء",
		"الكيمياء", "الأحياء", "الاجتماعيات", "التربية الإسلامية",
	},
	GradeSixthPreparatoryScientific: {
		"الرياضيات", "اللغة العربية", "اللغة الإنجليزية", "الفيزياء",
		"الكيمياء", "الأحياء", "التربية الإسلامية",
	},
	GradeSixthPreparatoryLiterary: {
		"الرياضيات", "اللغة العربية", "اللغة الإنجليزية", "التاريخ",
		"الجغرافيا", "الاقتصاد", "التربية الإسلامية",
	},
}
