package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Group(t *testing.T) {
	r := Record{"Ejer": "scalar", "Bruger": map[string]string{"Navn": "A"}}

	r.Group("Bruger")["CVR"] = "1"
	assert.Equal(t, map[string]string{"Navn": "A", "CVR": "1"}, r["Bruger"])

	r.Group("Ejer")["Navn"] = "B"
	assert.Equal(t, map[string]string{"Navn": "B"}, r["Ejer"])

	assert.Empty(t, r.Group("Ny"))
	assert.Contains(t, r, "Ny")
}

func TestRecord_Accessors(t *testing.T) {
	r := Record{"s": "x", "b": true}

	s, ok := r.String("s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = r.String("b")
	assert.False(t, ok)

	b, ok := r.Bool("b")
	assert.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, []string{"b", "s"}, r.Keys())
}

func TestMerge(t *testing.T) {
	a := Record{"k": "a", "only_a": "1"}
	b := Record{"k": "b"}

	merged := Merge(a, nil, b)
	assert.Equal(t, Record{"k": "b", "only_a": "1"}, merged)
	assert.Equal(t, "a", a["k"], "inputs are not modified")

	assert.Equal(t, Record{}, Merge())
	assert.Equal(t, Record{}, Merge(nil, nil))
}
