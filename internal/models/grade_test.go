package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGrade(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Grade
		ok    bool
	}{
		{name: "slug", input: "sixth_primary", want: GradeSixthPrimary, ok: true},
		{name: "intermediate slug", input: "third_intermediate", want: GradeThirdIntermediate, ok: true},
		{name: "arabic label", input: "السادس إعدادي - علمي", want: GradeSixthPreparatoryScientific, ok: true},
		{name: "unknown", input: "fourth_primary", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseGrade(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGradeLabel(t *testing.T) {
	assert.Equal(t, "السادس ابتدائي", GradeSixthPrimary.Label())
	assert.Equal(t, "السادس إعدادي - أدبي", GradeSixthPreparatoryLiterary.Label())
}

func TestGradeDescriptors(t *testing.T) {
	descriptors := GradeDescriptors()
	assert.Len(t, descriptors, 4)
	assert.Equal(t, "sixth_primary", descriptors[0].ID)
	assert.Equal(t, GradeSixthPrimary.Label(), descriptors[0].Name)
	assert.Equal(t, GradeSixthPrimary, descriptors[0].Value)
}

func TestDefaultCatalogCoversAllGrades(t *testing.T) {
	for _, grade := range Grades() {
		subjects, ok := DefaultCatalog[grade]
		assert.True(t, ok, "grade %s missing from catalog", grade)
		assert.NotEmpty(t, subjects)
	}
}
