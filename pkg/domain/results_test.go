package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResults_FirstWriteIsVerbatim(t *testing.T) {
	r := domain.NewResults()
	require.NoError(t, r.Write("gold", "10", domain.ConflictAdd))

	v, ok := r.Get("gold")
	assert.True(t, ok)
	assert.Equal(t, "10", v)
}

func TestResults_ConflictPolicies(t *testing.T) {
	tests := []struct {
		name   string
		first  any
		second any
		policy domain.ConflictPolicy
		want   any
	}{
		{"overwrite", "a", "b", domain.ConflictOverwrite, "b"},
		{"add strings", "2", "3", domain.ConflictAdd, 5},
		{"add int and string", 40, "2", domain.ConflictAdd, 42},
		{"add negative", "-5", "3", domain.ConflictAdd, -2},
		{"append", "foo", "bar", domain.ConflictAppend, "foobar"},
		{"append int", 1, "x", domain.ConflictAppend, "1x"},
		{"stack", "first", "second", domain.ConflictStack, "first\n\tsecond"},
		{"list from scalar", "a", "b", domain.ConflictList, []string{"a", "b"}},
		{"list from int", 7, "b", domain.ConflictList, []string{"7", "b"}},
		{"list extends", []string{"a", "b"}, "c", domain.ConflictList, []string{"a", "b", "c"}},
		{"skip", "keep", "drop", domain.ConflictSkip, "keep"},
		{"unknown policy keeps", "keep", "drop", domain.ConflictPolicy("bogus"), "keep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.NewResults()
			r.Set("x", tt.first)
			require.NoError(t, r.Write("x", tt.second, tt.policy))

			v, _ := r.Get("x")
			assert.Equal(t, tt.want, v)
			assert.Equal(t, 1, r.Len())
		})
	}
}

func TestResults_ListDoesNotAlias(t *testing.T) {
	r := domain.NewResults()
	original := []string{"a"}
	r.Set("x", original)
	require.NoError(t, r.Write("x", "b", domain.ConflictList))

	assert.Equal(t, []string{"a"}, original)
}

func TestResults_AddRejectsNonNumeric(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		r := domain.NewResults()
		r.Set("x", "abc")
		err := r.Write("x", "1", domain.ConflictAdd)
		assert.ErrorIs(t, err, domain.ErrMalformedNumber)
	})

	t.Run("incoming", func(t *testing.T) {
		r := domain.NewResults()
		r.Set("x", "1")
		err := r.Write("x", "1.5", domain.ConflictAdd)
		assert.ErrorIs(t, err, domain.ErrMalformedNumber)

		var numErr *domain.NumberError
		require.ErrorAs(t, err, &numErr)
		assert.Equal(t, "1.5", numErr.Value)

		v, _ := r.Get("x")
		assert.Equal(t, "1", v, "failed add must not modify the entry")
	})
}

func TestResults_InsertionOrder(t *testing.T) {
	r := domain.NewResults()
	r.Set("b", "1")
	r.Set("a", "2")
	r.Set("c", "3")
	r.Set("a", "4")

	assert.Equal(t, []string{"b", "a", "c"}, r.Names())
}

func TestResults_Lookup(t *testing.T) {
	r := domain.NewResults()
	_, err := r.Lookup("missing")
	assert.ErrorIs(t, err, domain.ErrUnboundField)

	var lookupErr *domain.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "missing", lookupErr.Name)
}

func TestResults_JSONRoundTripPreservesOrderAndTypes(t *testing.T) {
	r := domain.NewResults()
	r.Set("name", "Ada")
	r.Set("age", 36)
	r.Set("items", []string{"sword", "shield"})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"name","value":"Ada"},{"name":"age","value":36},{"name":"items","value":["sword","shield"]}]`, string(data))

	decoded := domain.NewResults()
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, r.Entries(), decoded.Entries())
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "12", domain.Stringify(12))
	assert.Equal(t, "text", domain.Stringify("text"))
	assert.Equal(t, "[a, b]", domain.Stringify([]string{"a", "b"}))
}

func TestResults_Clone(t *testing.T) {
	r := domain.NewResults()
	r.Set("items", []string{"rope"})
	r.Set("gold", 3)

	c := r.Clone()
	require.NoError(t, c.Write("items", "lamp", domain.ConflictList))
	c.Set("new", "x")

	items, _ := r.Get("items")
	assert.Equal(t, []string{"rope"}, items)
	assert.Equal(t, []string{"items", "gold"}, r.Names())
	assert.Equal(t, []string{"items", "gold", "new"}, c.Names())
}
