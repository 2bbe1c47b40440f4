package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMapGet(t *testing.T) {
	m := FieldMap{
		"national_id": " 12345678 ",
		"full_name":   "Jean Dupont",
	}

	assert.Equal(t, "12345678", m.Get("national_id"))
	assert.Equal(t, "Jean Dupont", m.Get("full_name"))
	assert.Equal(t, "", m.Get("missing"))
}
